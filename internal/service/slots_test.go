package service

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigreer/shelfctl/internal/element"
	"github.com/sigreer/shelfctl/internal/enclosure"
	"github.com/sigreer/shelfctl/internal/nvme"
	"github.com/sigreer/shelfctl/internal/ses"
)

// fakeSES is an in-memory ses.Device shared across opened handles.
type fakeSES struct {
	config   string
	status   string
	slots    map[int]ses.ElementStatus
	err      error
	controls []control
}

type control struct {
	bsg    string
	slot   int
	action string
}

// boundSES binds a shared fakeSES to one opened bsg handle.
type boundSES struct {
	dev *fakeSES
	bsg string
}

func (b *boundSES) Diagnostics() (string, string, error) {
	return b.dev.config, b.dev.status, b.dev.err
}

func (b *boundSES) SlotStatuses() (map[int]ses.ElementStatus, error) {
	if b.dev.slots == nil {
		return map[int]ses.ElementStatus{}, nil
	}
	return b.dev.slots, nil
}

func (b *boundSES) SetControl(slot int, action string) error {
	b.dev.controls = append(b.dev.controls, control{bsg: b.bsg, slot: slot, action: action})
	return b.dev.err
}

// fakeController records NVMe backend calls.
type fakeController struct {
	calls []control
	err   error
}

func (c *fakeController) SetSlotStatus(slot int, status string) error {
	c.calls = append(c.calls, control{slot: slot, action: status})
	return c.err
}

type testEnv struct {
	svc        *Service
	dev        *fakeSES
	r30        *fakeController
	fseries    *fakeController
	root       string
	opened     []string
	backplanes []*enclosure.Enclosure
}

func newTestEnv(t *testing.T, product, config string) *testEnv {
	t.Helper()
	env := &testEnv{
		dev:     &fakeSES{config: config},
		r30:     &fakeController{},
		fseries: &fakeController{},
		root:    t.TempDir(),
	}
	env.svc = New(Options{
		Product:  func() string { return product },
		Discover: func() ([]ses.Handle, error) {
			return []ses.Handle{{Addr: "13:0:0:0", Bsg: "bsg/13:0:0:0"}}, nil
		},
		OpenDevice: func(bsg string) ses.Device {
			env.opened = append(env.opened, bsg)
			return &boundSES{dev: env.dev, bsg: bsg}
		},
		Backplane:      func(string) []*enclosure.Enclosure { return env.backplanes },
		R30Control:     env.r30,
		FSeriesControl: env.fseries,
		EnclosureRoot:  env.root,
		Sleep:          func(time.Duration) {},
	})
	return env
}

// writeSlot creates the sysfs slot directory tree for one bay.
func (env *testEnv) writeSlot(t *testing.T, dir string, number int, device string) {
	t.Helper()
	base := filepath.Join(env.root, "13:0:0:0", dir)
	require.NoError(t, os.MkdirAll(base, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "slot"), []byte(strconv.Itoa(number)+"\n"), 0644))
	for _, attr := range []string{"status", "locate", "fault"} {
		require.NoError(t, os.WriteFile(filepath.Join(base, attr), []byte("0\n"), 0644))
	}
	if device != "" {
		require.NoError(t, os.MkdirAll(filepath.Join(base, "device", "block", device), 0755))
	}
}

const genericConfig = "iX 4024Sp e001\n  enclosure logical identifier (hex): 5b0bd6d1a3097fe5\n"

func TestSetSlotStatusRejectsUnknownStatus(t *testing.T) {
	env := newTestEnv(t, "TRUENAS-M40", genericConfig)

	err := env.svc.SetSlotStatus("5b0bd6d1a3097fe5", 1, "BLINK")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, env.opened, "no device may be touched on invalid input")
}

func TestSetSlotStatusR30Route(t *testing.T) {
	env := newTestEnv(t, "TRUENAS-R30", genericConfig)

	require.NoError(t, env.svc.SetSlotStatus(nvme.R30Enclosure, 5, "IDENTIFY"))

	require.Len(t, env.r30.calls, 1)
	assert.Equal(t, control{slot: 5, action: "IDENTIFY"}, env.r30.calls[0])
	assert.Empty(t, env.opened, "NVMe backends must not open a SCSI generic device")
	assert.Empty(t, env.dev.controls)
}

func TestSetSlotStatusFSeriesRoute(t *testing.T) {
	env := newTestEnv(t, "TRUENAS-F100", genericConfig)

	for _, id := range []string{nvme.F60Enclosure, nvme.F100Enclosure, nvme.F130Enclosure} {
		require.NoError(t, env.svc.SetSlotStatus(id, 2, "FAULT"))
	}

	require.Len(t, env.fseries.calls, 3)
	assert.Empty(t, env.r30.calls)
	assert.Empty(t, env.opened)
}

func TestSetSlotStatusGenericClear(t *testing.T) {
	env := newTestEnv(t, "TRUENAS-M40", genericConfig)
	for i := 1; i <= 5; i++ {
		env.writeSlot(t, "SLOT_00"+strconv.Itoa(i), i, "")
	}

	require.NoError(t, env.svc.SetSlotStatus("5b0bd6d1a3097fe5", 5, "CLEAR"))

	require.Len(t, env.dev.controls, 2, "CLEAR lowers both indicators")
	assert.Equal(t, control{bsg: "bsg/13:0:0:0", slot: 4, action: ses.ActionClearIdent}, env.dev.controls[0])
	assert.Equal(t, control{bsg: "bsg/13:0:0:0", slot: 4, action: ses.ActionClearFault}, env.dev.controls[1])
}

func TestSetSlotStatusGenericIdentifyAndFault(t *testing.T) {
	env := newTestEnv(t, "TRUENAS-M40", genericConfig)
	env.writeSlot(t, "SLOT_003", 3, "sda")

	require.NoError(t, env.svc.SetSlotStatus("5b0bd6d1a3097fe5", 3, "IDENTIFY"))
	require.NoError(t, env.svc.SetSlotStatus("5b0bd6d1a3097fe5", 3, "FAULT"))

	require.Len(t, env.dev.controls, 2)
	assert.Equal(t, ses.ActionSetIdent, env.dev.controls[0].action)
	assert.Equal(t, ses.ActionSetFault, env.dev.controls[1].action)
	assert.Equal(t, 2, env.dev.controls[0].slot, "wire slot is 0-based")
}

func TestSetSlotStatusUnknownSlot(t *testing.T) {
	env := newTestEnv(t, "TRUENAS-M40", genericConfig)
	env.writeSlot(t, "SLOT_001", 1, "")

	err := env.svc.SetSlotStatus("5b0bd6d1a3097fe5", 9, "IDENTIFY")
	assert.ErrorIs(t, err, enclosure.ErrNotFound)
	assert.Empty(t, env.dev.controls)
}

func TestSetSlotStatusUnknownEnclosure(t *testing.T) {
	env := newTestEnv(t, "TRUENAS-M40", genericConfig)

	err := env.svc.SetSlotStatus("bogus", 1, "IDENTIFY")
	assert.ErrorIs(t, err, enclosure.ErrNotFound)
}

const hseriesConfig = "BROADCOM VirtualSES 03-0099\n  enclosure logical identifier (hex): 500605b0000272b9\n"

func TestSetSlotStatusHSeries(t *testing.T) {
	env := newTestEnv(t, "TRUENAS-H10", hseriesConfig)
	// bay 1 is wired to sysfs slot directory "8"
	env.writeSlot(t, "8", 8, "")

	require.NoError(t, env.svc.SetSlotStatus("500605b0000272b9", 1, "IDENTIFY"))

	locate, err := os.ReadFile(filepath.Join(env.root, "13:0:0:0", "8", "locate"))
	require.NoError(t, err)
	assert.Equal(t, "1", string(locate))
	assert.Empty(t, env.dev.controls, "H series has no SES control path")
}

func TestSetSlotStatusHSeriesClear(t *testing.T) {
	env := newTestEnv(t, "TRUENAS-H10", hseriesConfig)
	env.writeSlot(t, "0", 0, "")

	// bay 9 maps to directory "0"
	require.NoError(t, env.svc.SetSlotStatus("500605b0000272b9", 9, "CLEAR"))

	for _, attr := range []string{"locate", "fault"} {
		data, err := os.ReadFile(filepath.Join(env.root, "13:0:0:0", "0", attr))
		require.NoError(t, err)
		assert.Equal(t, "0", string(data), attr)
	}
}

func TestSetSlotStatusHSeriesUnmappedSlot(t *testing.T) {
	env := newTestEnv(t, "TRUENAS-H10", hseriesConfig)

	err := env.svc.SetSlotStatus("500605b0000272b9", 13, "IDENTIFY")
	assert.ErrorIs(t, err, enclosure.ErrNotFound)
}

func TestSetSlotStatusMappedEnclosure(t *testing.T) {
	env := newTestEnv(t, "TRUENAS-M40", genericConfig)

	mapped := &enclosure.Enclosure{ID: mappedEnclosureID, Name: "Drive Bays"}
	el := element.New(element.KindArrayDeviceSlot, 3, 0x01000000, "")
	el.Original = &element.SlotOrigin{
		EnclosureID:  "5b0bd6d1a3097fe5",
		EnclosureBsg: "bsg/7:0:0:0",
		Slot:         9,
	}
	mapped.Append(el)
	env.backplanes = []*enclosure.Enclosure{mapped}

	require.NoError(t, env.svc.SetSlotStatus(mappedEnclosureID, 3, "IDENTIFY"))

	require.Len(t, env.dev.controls, 1)
	assert.Equal(t, control{bsg: "bsg/7:0:0:0", slot: 8, action: ses.ActionSetIdent}, env.dev.controls[0])
}
