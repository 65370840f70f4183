package nvme

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// SlotController drives the indicator of one NVMe backplane slot. The two
// implementations differ only in how a logical bay maps to a PCI slot.
type SlotController interface {
	SetSlotStatus(slot int, status string) error
}

// attentionValue maps a requested state to the PCI slot attention value.
func attentionValue(status string) (string, error) {
	switch status {
	case "CLEAR":
		return "0", nil
	case "IDENTIFY", "FAULT":
		// the backplane has a single indicator per bay
		return "1", nil
	default:
		return "", fmt.Errorf("unknown slot status %q", status)
	}
}

func setAttention(root string, pciSlot string, status string) error {
	value, err := attentionValue(status)
	if err != nil {
		return err
	}

	path := filepath.Join(root, pciSlot, "attention")
	if err := os.WriteFile(path, []byte(value), 0644); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("pci slot %s: %w", pciSlot, ErrSlotNotFound)
		}
		return fmt.Errorf("failed to write attention for pci slot %s: %w", pciSlot, err)
	}
	return nil
}

// R30Controller addresses the R30 backplane, whose twelve bays sit behind
// VMD domains with a fixed bay-to-PCI-slot wiring.
type R30Controller struct {
	Root string
}

// r30SlotMap is the physical bay to PCI hotplug slot wiring of the R30
// backplane. Hardware-specific; not derivable.
var r30SlotMap = map[int]string{
	1: "16", 2: "17", 3: "18", 4: "19",
	5: "20", 6: "21", 7: "22", 8: "23",
	9: "24", 10: "25", 11: "26", 12: "27",
}

func (c *R30Controller) SetSlotStatus(slot int, status string) error {
	pciSlot, ok := r30SlotMap[slot]
	if !ok {
		return fmt.Errorf("slot %d: %w", slot, ErrSlotNotFound)
	}
	return setAttention(c.root(), pciSlot, status)
}

func (c *R30Controller) root() string {
	if c.Root != "" {
		return c.Root
	}
	return DefaultPCISlotRoot
}

// FSeriesController addresses the F60/F100/F130 backplane, whose bays map
// directly onto PCI hotplug slot numbers.
type FSeriesController struct {
	Root string
}

func (c *FSeriesController) SetSlotStatus(slot int, status string) error {
	root := c.Root
	if root == "" {
		root = DefaultPCISlotRoot
	}
	return setAttention(root, strconv.Itoa(slot), status)
}
