package ses

import (
	"fmt"
	"os/exec"
	"strings"
)

// BsgDevice talks to one enclosure through sg_ses over its bsg handle.
type BsgDevice struct {
	Bsg string // e.g. "bsg/13:0:0:0"
}

// Open returns a Device for the given bsg handle.
func Open(bsg string) *BsgDevice {
	return &BsgDevice{Bsg: bsg}
}

func (d *BsgDevice) devPath() string {
	return "/dev/" + d.Bsg
}

// CheckSgSesInstalled verifies sg_ses is available
func CheckSgSesInstalled() error {
	if _, err := exec.LookPath("sg_ses"); err != nil {
		return ErrSgSesNotInstalled
	}
	return nil
}

func runSgSes(args ...string) (string, error) {
	if err := CheckSgSesInstalled(); err != nil {
		return "", err
	}

	out, err := exec.Command("sg_ses", args...).CombinedOutput()
	if err != nil {
		outStr := strings.TrimSpace(string(out))
		lower := strings.ToLower(outStr)
		if strings.Contains(lower, "permission denied") ||
			strings.Contains(lower, "operation not permitted") {
			return "", ErrPermissionDenied
		}
		return "", fmt.Errorf("sg_ses failed: %s: %w", outStr, err)
	}

	return string(out), nil
}

// Diagnostics reads the configuration and status diagnostic pages.
func (d *BsgDevice) Diagnostics() (string, string, error) {
	config, err := runSgSes("--page=cf", d.devPath())
	if err != nil {
		return "", "", fmt.Errorf("configuration page read failed for %s: %w", d.Bsg, err)
	}

	status, err := runSgSes("--page=es", "--join", d.devPath())
	if err != nil {
		return "", "", fmt.Errorf("status page read failed for %s: %w", d.Bsg, err)
	}

	return config, status, nil
}

// SlotStatuses reads the status page and extracts the raw status bytes of
// every array device slot element.
func (d *BsgDevice) SlotStatuses() (map[int]ElementStatus, error) {
	_, status, err := d.Diagnostics()
	if err != nil {
		return nil, err
	}
	return ParseSlotStatuses(status), nil
}

// SetControl issues one control action ("set=ident", "clear=fault", ...)
// against a 0-based device slot.
func (d *BsgDevice) SetControl(slot int, action string) error {
	_, err := runSgSes(fmt.Sprintf("--dev-slot-num=%d", slot), "--"+action, d.devPath())
	return err
}
