package service

import (
	"errors"

	"go.uber.org/zap"

	"github.com/sigreer/shelfctl/internal/db"
	"github.com/sigreer/shelfctl/internal/enclosure"
)

// SyncDisk aligns a disk's persisted enclosure/slot pointer with the live
// topology. When the disk's slot cannot be found and retry is set, one
// re-check is scheduled after the retry delay on a detached goroutine;
// best-effort, with no result surfaced to the caller. Without retry, a
// missing slot clears the pointer.
func (s *Service) SyncDisk(identifier string, retry bool) error {
	disk, err := s.store.GetDisk(identifier)
	if err != nil {
		return err
	}

	col, err := s.Query()
	if err != nil {
		return err
	}

	enc, el, err := col.FindSlot(enclosure.ByDevice(disk.Devname), nil)
	if errors.Is(err, enclosure.ErrNotFound) {
		if retry {
			go func() {
				s.opts.Sleep(s.opts.RetryDelay)
				if err := s.SyncDisk(identifier, false); err != nil {
					s.log.Debug("delayed disk sync failed",
						zap.String("disk", identifier), zap.Error(err))
				}
			}()
			return nil
		}

		if disk.Enclosure != nil {
			return s.store.SetDiskEnclosure(identifier, nil)
		}
		return nil
	}
	if err != nil {
		return err
	}

	want := db.DiskEnclosure{Number: enc.Number, Slot: el.Slot}
	if disk.Enclosure != nil && *disk.Enclosure == want {
		// avoid redundant writes
		return nil
	}
	return s.store.SetDiskEnclosure(identifier, &want)
}
