package element

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the SES element type of an Element.
type Kind int

const (
	KindGeneric Kind = iota
	KindAudibleAlarm
	KindCommunicationPort
	KindCurrentSensor
	KindEnclosure
	KindVoltageSensor
	KindCooling
	KindTemperatureSensor
	KindPowerSupply
	KindArrayDeviceSlot
	KindSASConnector
	KindSASExpander
)

// kindNames are the group names as they appear in the diagnostic pages.
var kindNames = map[Kind]string{
	KindAudibleAlarm:      "Audible alarm",
	KindCommunicationPort: "Communication Port",
	KindCurrentSensor:     "Current Sensor",
	KindEnclosure:         "Enclosure",
	KindVoltageSensor:     "Voltage Sensor",
	KindCooling:           "Cooling",
	KindTemperatureSensor: "Temperature Sensor",
	KindPowerSupply:       "Power Supply",
	KindArrayDeviceSlot:   "Array Device Slot",
	KindSASConnector:      "SAS Connector",
	KindSASExpander:       "SAS Expander",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Generic"
}

// KindFromTypeName maps a canonicalized element type string from the status
// page to its Kind. Unknown type names map to KindGeneric.
func KindFromTypeName(name string) Kind {
	switch name {
	case "Audible alarm":
		return KindAudibleAlarm
	case "Communication Port":
		return KindCommunicationPort
	case "Current Sensor":
		return KindCurrentSensor
	case "Enclosure":
		return KindEnclosure
	case "Voltage Sensor":
		return KindVoltageSensor
	case "Cooling":
		return KindCooling
	case "Temperature Sensors":
		return KindTemperatureSensor
	case "Power Supply":
		return KindPowerSupply
	case "Array Device Slot":
		return KindArrayDeviceSlot
	case "SAS Connector":
		return KindSASConnector
	case "SAS Expander":
		return KindSASExpander
	default:
		return KindGeneric
	}
}

// statusDesc maps the status nibble of a packed raw value to its
// human-readable description.
var statusDesc = [16]string{
	"Unsupported",
	"OK",
	"Critical",
	"Noncritical",
	"Unrecoverable",
	"Not installed",
	"Unknown",
	"Not available",
	"No access allowed",
	"reserved [9]",
	"reserved [10]",
	"reserved [11]",
	"reserved [12]",
	"reserved [13]",
	"reserved [14]",
	"reserved [15]",
}

// NotInstalled is the default raw status bytes used for a drive slot that has
// no corresponding SES element entry.
var NotInstalled = [4]byte{5, 0, 0, 0}

// SlotOrigin records the physical enclosure handle and slot a display slot
// was remapped from. Present only on elements of remapped enclosures.
type SlotOrigin struct {
	EnclosureID  string
	EnclosureBsg string
	Slot         int
}

// Element is one monitored component inside an enclosure diagnostic page.
//
// An element normally carries a 32-bit packed raw value decoded from the SES
// status page. Array device slots on sysfs-sourced platforms instead carry
// the operating system's status/locate/fault strings; SysfsSourced flags
// that mode.
type Element struct {
	Kind       Kind
	Name       string // group name; raw type string for KindGeneric
	Slot       int    // 1-based within the kind group
	Descriptor string
	ValueRaw   uint32

	SysfsSourced bool
	StatusText   string // sysfs status string, SysfsSourced only
	IdentifyText string // sysfs locate string, SysfsSourced only
	FaultText    string // sysfs fault string, SysfsSourced only

	DeviceName string // block device, KindArrayDeviceSlot only
	Original   *SlotOrigin
}

// New builds an element of the given kind from a packed raw value.
func New(kind Kind, slot int, raw uint32, descriptor string) *Element {
	return &Element{
		Kind:       kind,
		Name:       kind.String(),
		Slot:       slot,
		Descriptor: descriptor,
		ValueRaw:   raw,
	}
}

// NewGeneric builds an element for a type the model has no dedicated kind for.
func NewGeneric(name string, slot int, raw uint32, descriptor string) *Element {
	e := New(KindGeneric, slot, raw, descriptor)
	e.Name = name
	return e
}

// PackValue packs up to 4 raw status bytes into a 32-bit value,
// big-endian nibble pairs: byte i lands at bit offset (2*(3-i))*4.
func PackValue(b []byte) uint32 {
	var v uint32
	for i, x := range b {
		if i > 3 {
			break
		}
		v |= uint32(x) << ((2 * (3 - i)) * 4)
	}
	return v
}

// UnpackByte extracts raw status byte i (0-3) back out of a packed value.
func UnpackByte(v uint32, i int) byte {
	return byte((v >> ((2 * (3 - i)) * 4)) & 0xff)
}

// ParseRawValue parses a run of hex byte fields ("01 00 00 00" or
// "0x01 0x00 0x00 0x00") into a packed value.
func ParseRawValue(s string) (uint32, error) {
	var bytes []byte
	for _, f := range strings.Fields(s) {
		n, err := strconv.ParseUint(strings.TrimPrefix(f, "0x"), 16, 8)
		if err != nil {
			return 0, fmt.Errorf("bad raw status byte %q: %w", f, err)
		}
		bytes = append(bytes, byte(n))
	}
	return PackValue(bytes), nil
}

// Status returns the element's overall status description. For sysfs-sourced
// slots this is the operating system's status string verbatim.
func (e *Element) Status() string {
	if e.SysfsSourced {
		return e.StatusText
	}
	return statusDesc[(e.ValueRaw>>24)&0xf]
}

// Value returns the low 16 bits of the raw value, the generic element value.
func (e *Element) Value() uint32 {
	return e.ValueRaw & 0xffff
}

// Identify reports whether the identify indicator is lit. Only meaningful
// for array device slots; other kinds expose their identify bit through
// ValueString.
func (e *Element) Identify() bool {
	if e.SysfsSourced {
		return e.IdentifyText != "0"
	}
	return (e.ValueRaw>>8)&0x2 != 0
}

// Fault reports whether the fault indicator is lit.
func (e *Element) Fault() bool {
	if e.SysfsSourced {
		return e.FaultText != "0"
	}
	return e.ValueRaw&0x20 != 0
}
