package enclosure

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sigreer/shelfctl/internal/element"
	"github.com/sigreer/shelfctl/internal/ses"
)

var (
	logicalIDRe   = regexp.MustCompile(`\s+enclosure logical identifier \(hex\): ([0-9a-f]+)`)
	elementTypeRe = regexp.MustCompile(`^\s+Element type: (.+), subenclosure`)
	descriptorRe  = regexp.MustCompile(`^\s+Element ([0-9]+) descriptor:`)
	rawBytesRe    = regexp.MustCompile(`^\s+([0-9a-f ]{11})`)
)

// New decodes one enclosure: identity and model from the configuration
// page, drive slots from the sysfs/SES reconciler, and every other element
// group from the status page.
func New(handle ses.Handle, dev ses.Device, sysfsRoot, product string) (*Enclosure, error) {
	config, status, err := dev.Diagnostics()
	if err != nil {
		return nil, err
	}

	enc := &Enclosure{
		Bsg:     handle.Bsg,
		product: product,
	}
	enc.parseIdentity(config)
	enc.Model, enc.Controller = Classify(enc.Name, product, config)

	if err := enc.mapSlots(sysfsRoot, dev); err != nil {
		return nil, err
	}
	enc.decodeStatus(status)

	return enc, nil
}

// parseIdentity extracts the chassis name and hex logical id from the
// configuration page. A missing logical id leaves ID empty; not an error.
func (e *Enclosure) parseIdentity(config string) {
	lines := strings.SplitN(config, "\n", 2)
	e.Name = collapseWhitespace(lines[0])

	if m := logicalIDRe.FindStringSubmatch(config); m != nil {
		e.ID = m[1]
	}
}

// parseState tracks how much of an element group header the status walk
// has seen.
type parseState int

const (
	stateIdle          parseState = iota
	stateInGroup                  // element type known
	stateAwaitingBytes            // element type and number known
)

// decodeStatus walks the status page line by line. Three line shapes are
// recognized: a group header, an element descriptor header, and a raw
// hex-byte run. Anything else resets the walk to idle, so malformed vendor
// output degrades to skipped elements rather than a failed decode.
//
// Array device slots are never populated here; the reconciler owns them.
func (e *Enclosure) decodeStatus(status string) {
	state := stateIdle
	elementType := ""
	elementNumber := 0

	for _, line := range strings.Split(status, "\n") {
		if m := elementTypeRe.FindStringSubmatch(line); m != nil {
			elementType = canonicalTypeName(m[1])
			state = stateInGroup
			continue
		}

		if m := descriptorRe.FindStringSubmatch(line); m != nil {
			if state == stateIdle {
				continue
			}
			elementNumber, _ = strconv.Atoi(m[1])
			state = stateAwaitingBytes
			continue
		}

		if m := rawBytesRe.FindStringSubmatch(line); m != nil {
			if state == stateAwaitingBytes && elementType != "Array Device Slot" && elementNumber != 0 {
				raw, err := element.ParseRawValue(m[1])
				if err == nil {
					e.Append(e.newElement(elementNumber+1, elementType, raw, ""))
				}
			}
			if state == stateAwaitingBytes {
				state = stateInGroup
			}
			continue
		}

		state = stateIdle
		elementType = ""
	}
}

// canonicalTypeName title-cases a raw element type except for the literal
// "Audible alarm", and pluralizes "Temperature Sensor" the way the vendor
// pages do.
func canonicalTypeName(name string) string {
	if name != "Audible alarm" {
		words := strings.Fields(name)
		for i, w := range words {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
		name = strings.Join(words, " ")
	}
	if name == "Temperature Sensor" {
		name = "Temperature Sensors"
	}
	return name
}

// newElement builds the typed element for a decoded group entry, applying
// the per-model phantom-slot exclusions for array device slots.
func (e *Enclosure) newElement(slot int, typeName string, raw uint32, descriptor string) *element.Element {
	kind := element.KindFromTypeName(typeName)

	if kind == element.KindArrayDeviceSlot {
		// Echostream chassis report 20 slots but only have 16 physical bays
		if strings.HasPrefix(e.Name, "ECStream 3U16+4R-4X6G.3") && slot > 16 {
			return nil
		}
		if strings.HasPrefix(e.Model, "R50, ") && slot >= 25 {
			return nil
		}
	}

	if kind == element.KindGeneric {
		return element.NewGeneric(typeName, slot, raw, descriptor)
	}
	return element.New(kind, slot, raw, descriptor)
}
