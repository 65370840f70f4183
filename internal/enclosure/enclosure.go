// Package enclosure decodes SES diagnostic pages into typed element trees,
// classifies chassis by hardware model, and reconciles drive-slot state
// from the kernel's per-slot enclosure attributes.
package enclosure

import (
	"errors"
	"sort"
	"strings"

	"github.com/sigreer/shelfctl/internal/element"
)

// ErrNotFound marks a missing enclosure, slot, or mapping. Expected in
// normal operation (e.g. a disk with no enclosure).
var ErrNotFound = errors.New("not found")

// Enclosure is one physical chassis, or one synthetic NVMe backplane.
type Enclosure struct {
	ID         string // hex logical identifier, or a synthetic id
	Bsg        string // control device handle, e.g. "bsg/13:0:0:0"
	Name       string
	Model      string
	Controller bool
	Number     int    // 0-based display position, assigned by the collection
	Label      string // user label; falls back to Name

	product  string
	elements []*element.Element
	byName   map[string][]*element.Element
}

// Group is one ordered kind group of elements for display.
type Group struct {
	Name     string
	Elements []*element.Element
}

// Append adds an element to the enclosure, keeping discovery order within
// its kind group.
func (e *Enclosure) Append(el *element.Element) {
	if el == nil {
		return
	}
	if e.byName == nil {
		e.byName = make(map[string][]*element.Element)
	}
	e.elements = append(e.elements, el)
	e.byName[el.Name] = append(e.byName[el.Name], el)
}

// Groups returns the element groups with kind names sorted for display.
func (e *Enclosure) Groups() []Group {
	names := make([]string, 0, len(e.byName))
	for name := range e.byName {
		names = append(names, name)
	}
	sort.Strings(names)

	groups := make([]Group, 0, len(names))
	for _, name := range names {
		groups = append(groups, Group{Name: name, Elements: e.byName[name]})
	}
	return groups
}

// Slots returns the array device slot elements in discovery order.
func (e *Enclosure) Slots() []*element.Element {
	return e.byName[element.KindArrayDeviceSlot.String()]
}

// SlotByDevice returns the drive slot holding the named block device.
func (e *Enclosure) SlotByDevice(devname string) *element.Element {
	if devname == "" {
		return nil
	}
	for _, el := range e.Slots() {
		if el.DeviceName == devname {
			return el
		}
	}
	return nil
}

// SlotByNumber returns the drive slot with the given display slot number.
func (e *Enclosure) SlotByNumber(slot int) *element.Element {
	for _, el := range e.Slots() {
		if el.Slot == slot {
			return el
		}
	}
	return nil
}

// DisplayName returns the user label when set, the decoded name otherwise.
func (e *Enclosure) DisplayName() string {
	if e.Label != "" {
		return e.Label
	}
	return e.Name
}

// collapseWhitespace folds internal whitespace runs into single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
