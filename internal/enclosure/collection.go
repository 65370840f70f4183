package enclosure

import (
	"sort"
	"strings"

	"github.com/sigreer/shelfctl/internal/element"
	"github.com/sigreer/shelfctl/internal/platform"
)

// firstExpanderMarker names the expander that must always display first on
// the multi-expander R50 chassis, independent of physical cabling order.
const firstExpanderMarker = "eDrawer4048S1"

// Blacklist returns the enclosure-name substrings to exclude on this
// platform. A virtual SES chassis only exists for real on the H series;
// the second SGPIO enclosure is only real hardware on Minis and R20s.
func Blacklist(product string) []string {
	var bl []string
	if !platform.IsHSeries(product) {
		bl = append(bl, "VirtualSES")
	}
	if !strings.Contains(product, "-MINI-") && !platform.IsR20Variant(product) {
		bl = append(bl, "AHCI SGPIO Enclosure 2.00")
	}
	return bl
}

// Blacklisted reports whether an enclosure name is excluded on this platform.
func Blacklisted(name, product string) bool {
	for _, s := range Blacklist(product) {
		if strings.Contains(name, s) {
			return true
		}
	}
	return false
}

// Collection is the ordered set of enclosures answering one query. It is
// rebuilt from the hardware on every call and owned by that call alone.
type Collection struct {
	enclosures []*Enclosure
}

// Add appends an enclosure in discovery order.
func (c *Collection) Add(enc *Enclosure) {
	if enc == nil {
		return
	}
	c.enclosures = append(c.enclosures, enc)
}

// All returns the enclosures in collection order.
func (c *Collection) All() []*Enclosure {
	return c.enclosures
}

// Len returns the number of enclosures.
func (c *Collection) Len() int {
	return len(c.enclosures)
}

// SortAndNumber orders the collection (controllers first, then by id),
// applies the cabling-order correction, and assigns display numbers.
func (c *Collection) SortAndNumber() {
	sort.SliceStable(c.enclosures, func(i, j int) bool {
		a, b := c.enclosures[i], c.enclosures[j]
		if a.Controller != b.Controller {
			return a.Controller
		}
		return a.ID < b.ID
	})

	for i, enc := range c.enclosures {
		if strings.Contains(enc.Name, firstExpanderMarker) && i > 0 {
			copy(c.enclosures[1:i+1], c.enclosures[:i])
			c.enclosures[0] = enc
			break
		}
	}

	for number, enc := range c.enclosures {
		enc.Number = number
	}
}

// ApplyLabels merges the user label mapping into the collection.
func (c *Collection) ApplyLabels(labels map[string]string) {
	for _, enc := range c.enclosures {
		enc.Label = labels[enc.ID]
	}
}

// GetByID returns the enclosure with the given id, or nil.
func (c *Collection) GetByID(id string) *Enclosure {
	for _, enc := range c.enclosures {
		if enc.ID == id {
			return enc
		}
	}
	return nil
}

// SlotPredicate selects an array device slot element.
type SlotPredicate func(*element.Element) bool

// ByDevice matches the slot holding the named block device.
func ByDevice(devname string) SlotPredicate {
	return func(el *element.Element) bool {
		return devname != "" && el.DeviceName == devname
	}
}

// BySlotNumber matches the slot with the given display number.
func BySlotNumber(slot int) SlotPredicate {
	return func(el *element.Element) bool {
		return el.Slot == slot
	}
}

// FindSlot returns the first (enclosure, slot element) match in collection
// order. encFilter narrows the search to matching enclosures when non-nil.
func (c *Collection) FindSlot(pred SlotPredicate, encFilter func(*Enclosure) bool) (*Enclosure, *element.Element, error) {
	for _, enc := range c.enclosures {
		if encFilter != nil && !encFilter(enc) {
			continue
		}
		for _, el := range enc.Slots() {
			if pred(el) {
				return enc, el, nil
			}
		}
	}
	return nil, nil, ErrNotFound
}
