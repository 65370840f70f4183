// Package nvme supplies the synthetic NVMe-backplane enclosures and the
// dedicated slot-control backends for platforms whose NVMe bays hang off
// PCI slots rather than a SES expander.
package nvme

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/sigreer/shelfctl/internal/element"
	"github.com/sigreer/shelfctl/internal/enclosure"
)

// Dedicated enclosure identifiers routed to the NVMe control backends.
const (
	R30Enclosure  = "r30_nvme_enclosure"
	F60Enclosure  = "f60_nvme_enclosure"
	F100Enclosure = "f100_nvme_enclosure"
	F130Enclosure = "f130_nvme_enclosure"
)

// DefaultPCISlotRoot is where the kernel exposes hotplug PCI slots.
const DefaultPCISlotRoot = "/sys/bus/pci/slots"

// ErrSlotNotFound marks a slot with no PCI slot mapping.
var ErrSlotNotFound = errors.New("nvme slot not found")

// FSeriesEnclosure returns the synthetic enclosure id for an F-series
// product name, or empty when the product has no NVMe backplane here.
func FSeriesEnclosure(product string) string {
	switch product {
	case "TRUENAS-F60":
		return F60Enclosure
	case "TRUENAS-F100":
		return F100Enclosure
	case "TRUENAS-F130":
		return F130Enclosure
	}
	return ""
}

// IsFSeriesEnclosure reports whether id is one of the F-series backplanes.
func IsFSeriesEnclosure(id string) bool {
	return id == F60Enclosure || id == F100Enclosure || id == F130Enclosure
}

// slotEntry is one hotplug PCI slot with an attention indicator.
type slotEntry struct {
	Number  int
	Path    string
	Address string
}

// readPCISlots enumerates hotplug PCI slots that expose an attention file.
func readPCISlots(root string) []slotEntry {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil
	}

	var slots []slotEntry
	for _, entry := range entries {
		number, err := strconv.Atoi(entry.Name())
		if err != nil {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		if _, err := os.Stat(filepath.Join(dir, "attention")); err != nil {
			continue
		}
		addr := ""
		if data, err := os.ReadFile(filepath.Join(dir, "address")); err == nil {
			addr = strings.TrimSpace(string(data))
		}
		slots = append(slots, slotEntry{Number: number, Path: dir, Address: addr})
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].Number < slots[j].Number })
	return slots
}

// Mapper builds the synthetic NVMe enclosures for a platform.
type Mapper struct {
	PCISlotRoot string
	BlockRoot   string // /sys/block, for matching nvme drives to addresses
}

// NewMapper returns a Mapper over the default sysfs roots.
func NewMapper() *Mapper {
	return &Mapper{PCISlotRoot: DefaultPCISlotRoot, BlockRoot: "/sys/block"}
}

// Map returns the synthetic NVMe-backplane enclosures for the product, in
// stable slot order. Platforms without an NVMe backplane yield nothing.
func (m *Mapper) Map(product string) []*enclosure.Enclosure {
	var id, name, model string
	switch {
	case product == "TRUENAS-R30":
		id, name, model = R30Enclosure, "R30 NVMe Enclosure", "R30"
	case FSeriesEnclosure(product) != "":
		id = FSeriesEnclosure(product)
		model = strings.TrimPrefix(product, "TRUENAS-")
		name = model + " NVMe Enclosure"
	default:
		return nil
	}

	enc := &enclosure.Enclosure{
		ID:         id,
		Name:       name,
		Model:      model,
		Controller: true,
	}

	devices := m.devicesByAddress()
	for i, slot := range readPCISlots(m.PCISlotRoot) {
		el := &element.Element{
			Kind:         element.KindArrayDeviceSlot,
			Name:         element.KindArrayDeviceSlot.String(),
			Slot:         i + 1,
			SysfsSourced: true,
			StatusText:   "not installed",
			IdentifyText: "0",
			FaultText:    "0",
		}
		if dev := devices[slot.Address]; dev != "" {
			el.StatusText = "OK"
			el.DeviceName = dev
		}
		enc.Append(el)
	}

	return []*enclosure.Enclosure{enc}
}

// devicesByAddress maps PCI addresses to nvme block device names.
func (m *Mapper) devicesByAddress() map[string]string {
	out := make(map[string]string)

	entries, err := os.ReadDir(m.BlockRoot)
	if err != nil {
		return out
	}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "nvme") {
			continue
		}
		// device symlink ends in the PCI address of the controller
		target, err := os.Readlink(filepath.Join(m.BlockRoot, name, "device", "device"))
		if err != nil {
			if target, err = os.Readlink(filepath.Join(m.BlockRoot, name, "device")); err != nil {
				continue
			}
		}
		out[filepath.Base(target)] = name
	}

	return out
}
