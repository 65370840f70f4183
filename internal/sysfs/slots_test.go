package sysfs

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSlot(t *testing.T, root, name, slot, status, locate, fault string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	attrs := map[string]string{"slot": slot, "status": status, "locate": locate, "fault": fault}
	for attr, value := range attrs {
		if value == "" {
			continue
		}
		if err := os.WriteFile(filepath.Join(dir, attr), []byte(value+"\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestReadSlots(t *testing.T) {
	root := t.TempDir()
	dir := writeSlot(t, root, "SLOT_001", "1", "active", "0", "0")
	writeSlot(t, root, "Disk #07", "7", "not installed", "1", "0")
	if err := os.MkdirAll(filepath.Join(dir, "device", "block", "sda"), 0755); err != nil {
		t.Fatal(err)
	}

	// attribute directories without a slot file are not drive bays
	writeSlot(t, root, "power", "", "on", "", "")
	// a slot file that is not an integer disqualifies the directory
	writeSlot(t, root, "weird", "n/a", "", "", "")

	slots, err := ReadSlots(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 2 {
		t.Fatalf("got %d slots, want 2", len(slots))
	}

	one := slots[1]
	if one.Number != 1 || one.Status != "active" || one.Device != "sda" {
		t.Errorf("slot 1 = %+v", one)
	}
	seven := slots[7]
	if seven.Device != "" {
		t.Errorf("slot 7 device = %q, want empty", seven.Device)
	}
	if seven.Locate != "1" {
		t.Errorf("slot 7 locate = %q", seven.Locate)
	}
}

func TestReadSlotsIgnore(t *testing.T) {
	root := t.TempDir()
	writeSlot(t, root, "4", "4", "active", "0", "0")
	writeSlot(t, root, "8", "8", "active", "0", "0")

	slots, err := ReadSlots(root, map[string]bool{"4": true})
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 1 {
		t.Fatalf("got %d slots, want 1", len(slots))
	}
	if _, ok := slots[4]; ok {
		t.Error("ignored directory must not surface as a slot")
	}
}

func TestReadSlotsMissingRoot(t *testing.T) {
	if _, err := ReadSlots(filepath.Join(t.TempDir(), "nope"), nil); err == nil {
		t.Fatal("expected an error for a missing enclosure path")
	}
}

func TestToggleSlotIdentifier(t *testing.T) {
	root := t.TempDir()
	writeSlot(t, root, "8", "8", "active", "1", "1")

	read := func(attr string) string {
		t.Helper()
		data, err := os.ReadFile(filepath.Join(root, "8", attr))
		if err != nil {
			t.Fatal(err)
		}
		return string(data)
	}

	if err := ToggleSlotIdentifier(root, "8", "CLEAR"); err != nil {
		t.Fatal(err)
	}
	if read("locate") != "0" || read("fault") != "0" {
		t.Error("CLEAR must lower both indicators")
	}

	if err := ToggleSlotIdentifier(root, "8", "IDENTIFY"); err != nil {
		t.Fatal(err)
	}
	if read("locate") != "1" {
		t.Error("IDENTIFY must raise locate")
	}
	if read("fault") != "0" {
		t.Error("IDENTIFY must leave fault alone")
	}

	if err := ToggleSlotIdentifier(root, "8", "FAULT"); err != nil {
		t.Fatal(err)
	}
	if read("fault") != "1" {
		t.Error("FAULT must raise fault")
	}

	if err := ToggleSlotIdentifier(root, "8", "BLINK"); err == nil {
		t.Error("unknown status must be rejected")
	}
}
