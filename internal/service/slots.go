package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/sigreer/shelfctl/internal/element"
	"github.com/sigreer/shelfctl/internal/enclosure"
	"github.com/sigreer/shelfctl/internal/nvme"
	"github.com/sigreer/shelfctl/internal/ses"
	"github.com/sigreer/shelfctl/internal/sysfs"
)

// mappedEnclosureID is the id of a display enclosure whose slots were
// remapped for the administrator; its elements carry the original physical
// enclosure handle and slot.
const mappedEnclosureID = "mapped_enclosure_0"

// hseriesSysfsSlots maps a physical bay number to the sysfs slot directory
// ordinal on the H series backplane. Fixed wiring; not derivable.
var hseriesSysfsSlots = map[int]string{
	1: "8", 2: "9", 3: "10", 4: "11",
	5: "12", 6: "13", 7: "14", 8: "15",
	9: "0", 10: "1", 11: "2", 12: "3",
}

// SetSlotStatus routes an indicator request for one logical enclosure slot
// to the backend that owns the hardware. Concurrent requests for the same
// slot are not serialized; the last command to reach the hardware wins.
func (s *Service) SetSlotStatus(enclosureID string, slot int, status string) error {
	switch status {
	case "CLEAR", "FAULT", "IDENTIFY":
	default:
		return fmt.Errorf("status must be CLEAR, FAULT or IDENTIFY, got %q: %w", status, ErrValidation)
	}

	if err := s.routeSlotStatus(enclosureID, slot, status); err != nil {
		return err
	}

	if s.store != nil {
		if err := s.store.RecordSlotEvent(enclosureID, slot, status); err != nil {
			s.log.Warn("failed to journal slot command", zap.Error(err))
		}
	}
	return nil
}

func (s *Service) routeSlotStatus(enclosureID string, slot int, status string) error {
	// dedicated NVMe backends bypass the SES path entirely
	if enclosureID == nvme.R30Enclosure {
		return s.opts.R30Control.SetSlotStatus(slot, status)
	}
	if nvme.IsFSeriesEnclosure(enclosureID) {
		return s.opts.FSeriesControl.SetSlotStatus(slot, status)
	}

	info, err := s.GetByID(enclosureID)
	if err != nil {
		return err
	}

	if info.Model == "H Series" {
		return s.toggleHSeriesSlot(info, slot, status)
	}

	return s.setSESSlot(info, slot, status)
}

// toggleHSeriesSlot drives the sysfs locate/fault attributes for the H
// series, whose slots have no SES control path.
func (s *Service) toggleHSeriesSlot(info *enclosure.Enclosure, slot int, status string) error {
	mapped, ok := hseriesSysfsSlots[slot]
	if !ok {
		return fmt.Errorf("slot %d: %w", slot, enclosure.ErrNotFound)
	}

	addr := strings.TrimPrefix(info.Bsg, "bsg/")
	encPath := filepath.Join(s.opts.EnclosureRoot, addr)
	if err := sysfs.ToggleSlotIdentifier(encPath, mapped, status); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("slot %d: %w", slot, enclosure.ErrNotFound)
		}
		return err
	}
	return nil
}

// setSESSlot issues the control-page actions for a generic enclosure. The
// display slot is resolved back to the original physical enclosure handle
// and slot before addressing the wire.
func (s *Service) setSESSlot(info *enclosure.Enclosure, slot int, status string) error {
	originalBsg, originalSlot, err := originalSlot(info, slot)
	if err != nil {
		return err
	}

	var actions []string
	if status == "CLEAR" {
		actions = []string{ses.ActionClearIdent, ses.ActionClearFault}
	} else if status == "FAULT" {
		actions = []string{ses.ActionSetFault}
	} else {
		actions = []string{ses.ActionSetIdent}
	}

	dev := s.opts.OpenDevice(originalBsg)
	for _, action := range actions {
		// the slot addressed on the wire is 0-based
		if err := dev.SetControl(originalSlot-1, action); err != nil {
			msg := fmt.Sprintf("failed to %s slot %d on enclosure %q", status, slot, info.ID)
			s.log.Warn(msg, zap.Error(err))
			return fmt.Errorf("%s: %w", msg, err)
		}
	}
	return nil
}

// originalSlot resolves a display slot back to the physical enclosure
// handle and slot number it was discovered at.
func originalSlot(info *enclosure.Enclosure, slot int) (string, int, error) {
	var el *element.Element
	for _, candidate := range info.Slots() {
		if candidate.Slot == slot {
			el = candidate
			break
		}
	}
	if el == nil {
		return "", 0, fmt.Errorf("slot %d: %w", slot, enclosure.ErrNotFound)
	}

	if info.ID == mappedEnclosureID {
		// drive slots were renumbered for display; undo the remapping
		if el.Original == nil {
			return "", 0, fmt.Errorf("slot %d has no original mapping: %w", slot, enclosure.ErrNotFound)
		}
		return el.Original.EnclosureBsg, el.Original.Slot, nil
	}

	return info.Bsg, slot, nil
}
