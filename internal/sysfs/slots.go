// Package sysfs reads and toggles the kernel's per-slot enclosure
// attributes under /sys/class/enclosure.
package sysfs

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Slot is the raw per-bay state read from one sysfs slot directory.
type Slot struct {
	Number int
	Device string // block device name, empty when no drive present
	Status string
	Locate string
	Fault  string
}

// ReadSlots collects the drive-slot directories under an enclosure's sysfs
// path. The directory layout is dynamic per enclosure (SLOT_001, "Disk #00",
// slot00, bare ordinals, ...); a directory counts as a slot only if it
// exposes a readable integer "slot" attribute. Directory names listed in
// ignore are skipped outright.
func ReadSlots(encPath string, ignore map[string]bool) (map[int]Slot, error) {
	entries, err := os.ReadDir(encPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read enclosure dir %s: %w", encPath, err)
	}

	slots := make(map[int]Slot)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if ignore[entry.Name()] {
			continue
		}

		dir := filepath.Join(encPath, entry.Name())
		number, err := readInt(filepath.Join(dir, "slot"))
		if err != nil {
			// not a drive slot directory
			continue
		}

		slot := Slot{
			Number: number,
			Status: readString(filepath.Join(dir, "status")),
			Locate: readString(filepath.Join(dir, "locate")),
			Fault:  readString(filepath.Join(dir, "fault")),
		}

		// first entry of device/block is the attached drive, if any
		if blocks, err := os.ReadDir(filepath.Join(dir, "device", "block")); err == nil && len(blocks) > 0 {
			slot.Device = blocks[0].Name()
		}

		slots[number] = slot
	}

	return slots, nil
}

// ToggleSlotIdentifier drives the locate/fault attributes of one slot
// directory. CLEAR lowers both indicators; IDENTIFY and FAULT raise one.
func ToggleSlotIdentifier(encPath, slotDir, status string) error {
	base := filepath.Join(encPath, slotDir)
	switch status {
	case "CLEAR":
		if err := writeAttr(filepath.Join(base, "locate"), "0"); err != nil {
			return err
		}
		return writeAttr(filepath.Join(base, "fault"), "0")
	case "IDENTIFY":
		return writeAttr(filepath.Join(base, "locate"), "1")
	case "FAULT":
		return writeAttr(filepath.Join(base, "fault"), "1")
	default:
		return fmt.Errorf("unknown slot status %q", status)
	}
}

func readInt(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

func readString(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func writeAttr(path, value string) error {
	return os.WriteFile(path, []byte(value), 0644)
}
