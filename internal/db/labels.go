package db

import (
	"fmt"
)

// Labels returns the full label mapping, enclosure id -> label.
func (d *DB) Labels() (map[string]string, error) {
	rows, err := d.conn.Query("SELECT encid, label FROM enclosure_labels")
	if err != nil {
		return nil, fmt.Errorf("failed to query labels: %w", err)
	}
	defer rows.Close()

	labels := make(map[string]string)
	for rows.Next() {
		var encid, label string
		if err := rows.Scan(&encid, &label); err != nil {
			return nil, err
		}
		labels[encid] = label
	}

	return labels, rows.Err()
}

// SetLabel assigns a label to an enclosure id. Old label rows for the id
// are removed before the new one is written.
func (d *DB) SetLabel(encid, label string) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM enclosure_labels WHERE encid = ?", encid); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete old label: %w", err)
	}

	if _, err := tx.Exec("INSERT INTO enclosure_labels (encid, label) VALUES (?, ?)", encid, label); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to insert label: %w", err)
	}

	return tx.Commit()
}

// DeleteLabel removes the label for an enclosure id, if any.
func (d *DB) DeleteLabel(encid string) error {
	_, err := d.conn.Exec("DELETE FROM enclosure_labels WHERE encid = ?", encid)
	if err != nil {
		return fmt.Errorf("failed to delete label: %w", err)
	}
	return nil
}
