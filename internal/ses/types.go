package ses

import "errors"

// Common errors
var (
	ErrSgSesNotInstalled = errors.New("sg_ses not found in PATH")
	ErrPermissionDenied  = errors.New("permission denied (requires root)")
)

// Control page actions understood by SetControl.
const (
	ActionSetIdent   = "set=ident"
	ActionSetFault   = "set=fault"
	ActionClearIdent = "clear=ident"
	ActionClearFault = "clear=fault"
)

// ArrayDeviceSlotType is the SES element type code for drive slots.
const ArrayDeviceSlotType = 23

// ElementStatus is one element entry from the enclosure status page.
type ElementStatus struct {
	Type       int
	Descriptor string
	Status     [4]byte
}

// Device is the control interface to one SES enclosure.
//
// Diagnostics returns the decoded configuration and status page text pair.
// SlotStatuses returns the per-slot raw status bytes for array device slot
// elements, keyed by 1-based slot number. SetControl issues one control
// action against a 0-based physical slot.
type Device interface {
	Diagnostics() (config string, status string, err error)
	SlotStatuses() (map[int]ElementStatus, error)
	SetControl(slot int, action string) error
}

// Handle identifies one detected enclosure device.
type Handle struct {
	Addr string // SCSI address, e.g. "13:0:0:0"
	Bsg  string // device handle, e.g. "bsg/13:0:0:0"
}
