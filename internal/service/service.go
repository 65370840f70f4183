// Package service exposes the enclosure management operations: query,
// label update, slot-control dispatch, and disk-to-slot sync.
package service

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sigreer/shelfctl/internal/db"
	"github.com/sigreer/shelfctl/internal/enclosure"
	"github.com/sigreer/shelfctl/internal/nvme"
	"github.com/sigreer/shelfctl/internal/platform"
	"github.com/sigreer/shelfctl/internal/ses"
)

// ErrValidation marks malformed input to an update operation.
var ErrValidation = errors.New("validation failed")

// Options wires the service's collaborators. Zero fields get production
// defaults; tests substitute fakes.
type Options struct {
	Logger *zap.Logger
	Store  *db.DB

	Product        func() string
	Discover       func() ([]ses.Handle, error)
	OpenDevice     func(bsg string) ses.Device
	Backplane      func(product string) []*enclosure.Enclosure
	R30Control     nvme.SlotController
	FSeriesControl nvme.SlotController

	EnclosureRoot string // sysfs enclosure root
	RetryDelay    time.Duration
	Sleep         func(time.Duration)
}

// Service answers enclosure queries and control requests. It holds no
// enclosure state between calls; every query rebuilds the collection from
// the hardware.
type Service struct {
	log   *zap.Logger
	store *db.DB
	opts  Options
}

// New builds a Service, filling in production defaults for any
// collaborator not supplied.
func New(opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Product == nil {
		opts.Product = platform.ProductName
	}
	if opts.Discover == nil {
		root := opts.EnclosureRoot
		opts.Discover = func() ([]ses.Handle, error) { return ses.Discover(root) }
	}
	if opts.OpenDevice == nil {
		opts.OpenDevice = func(bsg string) ses.Device { return ses.Open(bsg) }
	}
	if opts.Backplane == nil {
		mapper := nvme.NewMapper()
		opts.Backplane = mapper.Map
	}
	if opts.R30Control == nil {
		opts.R30Control = &nvme.R30Controller{}
	}
	if opts.FSeriesControl == nil {
		opts.FSeriesControl = &nvme.FSeriesController{}
	}
	if opts.EnclosureRoot == "" {
		opts.EnclosureRoot = ses.DefaultEnclosureRoot
	}
	if opts.RetryDelay == 0 {
		opts.RetryDelay = 60 * time.Second
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}

	return &Service{
		log:   opts.Logger,
		store: opts.Store,
		opts:  opts,
	}
}

// Query rebuilds and returns the full enclosure collection: every detected
// physical enclosure plus the platform's synthetic NVMe backplanes, labeled,
// ordered, and numbered.
func (s *Service) Query() (*enclosure.Collection, error) {
	col := &enclosure.Collection{}

	product := s.opts.Product()
	if !platform.Supported(product) {
		// enclosure management only exists on appliance hardware
		return col, nil
	}

	handles, err := s.opts.Discover()
	if err != nil {
		return nil, err
	}

	for _, handle := range handles {
		dev := s.opts.OpenDevice(handle.Bsg)
		enc, err := enclosure.New(handle, dev, s.opts.EnclosureRoot, product)
		if err != nil {
			s.log.Warn("failed to decode enclosure",
				zap.String("bsg", handle.Bsg), zap.Error(err))
			continue
		}
		if enclosure.Blacklisted(enc.Name, product) {
			continue
		}
		col.Add(enc)
	}

	for _, enc := range s.opts.Backplane(product) {
		col.Add(enc)
	}

	if s.store != nil {
		labels, err := s.store.Labels()
		if err != nil {
			return nil, err
		}
		col.ApplyLabels(labels)
	}

	col.SortAndNumber()
	return col, nil
}

// GetByID returns one enclosure by id.
func (s *Service) GetByID(id string) (*enclosure.Enclosure, error) {
	col, err := s.Query()
	if err != nil {
		return nil, err
	}
	enc := col.GetByID(id)
	if enc == nil {
		return nil, fmt.Errorf("enclosure %q: %w", id, enclosure.ErrNotFound)
	}
	return enc, nil
}

// UpdateLabel assigns a user label to an enclosure and returns the
// refreshed enclosure.
func (s *Service) UpdateLabel(id, label string) (*enclosure.Enclosure, error) {
	if id == "" {
		return nil, fmt.Errorf("enclosure id must not be empty: %w", ErrValidation)
	}

	if _, err := s.GetByID(id); err != nil {
		return nil, err
	}

	if err := s.store.SetLabel(id, label); err != nil {
		return nil, err
	}

	return s.GetByID(id)
}

// SlotEvents returns the journal of recent control commands for an
// enclosure.
func (s *Service) SlotEvents(enclosureID string, limit int) ([]*db.SlotEvent, error) {
	return s.store.SlotEvents(enclosureID, limit)
}
