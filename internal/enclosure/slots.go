package enclosure

import (
	"errors"
	"os"
	"sort"
	"strings"

	"github.com/sigreer/shelfctl/internal/element"
	"github.com/sigreer/shelfctl/internal/ses"
	"github.com/sigreer/shelfctl/internal/sysfs"
)

// mapSlots builds the authoritative drive-slot set for the enclosure from
// the kernel's per-slot attribute directories, merged with SES raw status
// bytes on platforms that report them.
func (e *Enclosure) mapSlots(sysfsRoot string, dev ses.Device) error {
	isHSeries := strings.HasPrefix(e.product, "TRUENAS-H")

	var ignore map[string]bool
	if isHSeries {
		// the broadcom HBA on this platform enumerates sysfs with bare
		// ordinals as directory names; 16 ports on the card, 12 bays wired
		ignore = map[string]bool{"4": true, "5": true, "6": true, "7": true}
	}

	addr := strings.TrimPrefix(e.Bsg, "bsg/")
	slots, err := sysfs.ReadSlots(sysfsRoot+"/"+addr, ignore)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// no per-slot directories exposed for this enclosure
			return nil
		}
		return err
	}
	if len(slots) == 0 {
		return nil
	}

	minSlot := -1
	numbers := make([]int, 0, len(slots))
	for n := range slots {
		numbers = append(numbers, n)
		if minSlot == -1 || n < minSlot {
			minSlot = n
		}
	}

	// normalize 0-based enclosures to 1-based display numbering
	shift := 0
	if minSlot == 0 {
		shift = 1
	}

	var rawValues map[int]ses.ElementStatus
	if !isHSeries {
		rawValues, err = dev.SlotStatuses()
		if err != nil {
			return err
		}
	}

	sort.Ints(numbers)
	for _, n := range numbers {
		slot := slots[n]
		display := n + shift

		var el *element.Element
		if isHSeries {
			el = e.newElement(display, "Array Device Slot", 0, "")
			if el != nil {
				el.SysfsSourced = true
				el.StatusText = slot.Status
				el.IdentifyText = slot.Locate
				el.FaultText = slot.Fault
			}
		} else {
			raw := element.NotInstalled
			if st, ok := rawValues[display]; ok {
				raw = st.Status
			}
			el = e.newElement(display, "Array Device Slot", element.PackValue(raw[:]), "")
		}

		if el != nil {
			el.DeviceName = slot.Device
			e.Append(el)
		}
	}

	return nil
}
