package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrDiskNotFound marks a disk identifier with no inventory record.
var ErrDiskNotFound = errors.New("disk not found")

// DiskEnclosure is a disk's persisted enclosure/slot pointer.
type DiskEnclosure struct {
	Number int
	Slot   int
}

// DiskRecord is one row of the disk inventory store.
type DiskRecord struct {
	ID         int64
	Identifier string
	Devname    string
	Enclosure  *DiskEnclosure // nil when not located in any enclosure
	FirstSeen  time.Time
	LastSeen   time.Time
}

// UpsertDisk inserts or refreshes a disk record by identifier.
func (d *DB) UpsertDisk(identifier, devname string) error {
	now := time.Now()
	_, err := d.conn.Exec(`
		INSERT INTO disks (identifier, devname, first_seen, last_seen)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(identifier) DO UPDATE SET
			devname = excluded.devname,
			last_seen = excluded.last_seen
	`, identifier, devname, now, now)
	if err != nil {
		return fmt.Errorf("failed to upsert disk: %w", err)
	}
	return nil
}

// GetDisk returns a disk record by identifier.
func (d *DB) GetDisk(identifier string) (*DiskRecord, error) {
	row := d.conn.QueryRow(`
		SELECT id, identifier, devname, enclosure_number, enclosure_slot, first_seen, last_seen
		FROM disks WHERE identifier = ?
	`, identifier)

	var rec DiskRecord
	var devname sql.NullString
	var number, slot sql.NullInt64
	err := row.Scan(&rec.ID, &rec.Identifier, &devname, &number, &slot, &rec.FirstSeen, &rec.LastSeen)
	if err == sql.ErrNoRows {
		return nil, ErrDiskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query disk: %w", err)
	}

	rec.Devname = devname.String
	if number.Valid && slot.Valid {
		rec.Enclosure = &DiskEnclosure{Number: int(number.Int64), Slot: int(slot.Int64)}
	}

	return &rec, nil
}

// SetDiskEnclosure updates a disk's enclosure/slot pointer. A nil pointer
// clears it.
func (d *DB) SetDiskEnclosure(identifier string, enc *DiskEnclosure) error {
	var number, slot sql.NullInt64
	if enc != nil {
		number = sql.NullInt64{Int64: int64(enc.Number), Valid: true}
		slot = sql.NullInt64{Int64: int64(enc.Slot), Valid: true}
	}

	res, err := d.conn.Exec(`
		UPDATE disks SET enclosure_number = ?, enclosure_slot = ?, last_seen = ?
		WHERE identifier = ?
	`, number, slot, time.Now(), identifier)
	if err != nil {
		return fmt.Errorf("failed to update disk enclosure: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrDiskNotFound
	}
	return nil
}
