package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SlotEvent is one journaled slot-control command.
type SlotEvent struct {
	ID          string
	EnclosureID string
	Slot        int
	Status      string
	CreatedAt   time.Time
}

// RecordSlotEvent journals one issued slot-control command.
func (d *DB) RecordSlotEvent(enclosureID string, slot int, status string) error {
	_, err := d.conn.Exec(`
		INSERT INTO slot_events (id, enclosure_id, slot, status)
		VALUES (?, ?, ?, ?)
	`, uuid.NewString(), enclosureID, slot, status)
	if err != nil {
		return fmt.Errorf("failed to record slot event: %w", err)
	}
	return nil
}

// SlotEvents returns the most recent control commands for an enclosure.
func (d *DB) SlotEvents(enclosureID string, limit int) ([]*SlotEvent, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := d.conn.Query(`
		SELECT id, enclosure_id, slot, status, created_at
		FROM slot_events
		WHERE enclosure_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, enclosureID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query slot events: %w", err)
	}
	defer rows.Close()

	var events []*SlotEvent
	for rows.Next() {
		var ev SlotEvent
		if err := rows.Scan(&ev.ID, &ev.EnclosureID, &ev.Slot, &ev.Status, &ev.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, &ev)
	}

	return events, rows.Err()
}
