package service

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigreer/shelfctl/internal/db"
	"github.com/sigreer/shelfctl/internal/enclosure"
	"github.com/sigreer/shelfctl/internal/ses"
)

func TestQueryUnsupportedPlatform(t *testing.T) {
	discovered := false
	svc := New(Options{
		Product: func() string { return "Whitebox Server" },
		Discover: func() ([]ses.Handle, error) {
			discovered = true
			return nil, nil
		},
	})

	col, err := svc.Query()
	require.NoError(t, err)
	assert.Zero(t, col.Len())
	assert.False(t, discovered, "consumer hardware must not be probed")
}

func TestQueryDecodesAndOrders(t *testing.T) {
	env := newTestEnv(t, "TRUENAS-M40", genericConfig)

	col, err := env.svc.Query()
	require.NoError(t, err)
	require.Equal(t, 1, col.Len())

	enc := col.All()[0]
	assert.Equal(t, "5b0bd6d1a3097fe5", enc.ID)
	assert.Equal(t, "iX 4024Sp e001", enc.Name)
	assert.Equal(t, "M Series", enc.Model)
	assert.True(t, enc.Controller)
	assert.Equal(t, 0, enc.Number)
}

func TestQuerySkipsBlacklisted(t *testing.T) {
	// a VirtualSES chassis is phantom hardware everywhere but the H series
	env := newTestEnv(t, "TRUENAS-M40", hseriesConfig)

	col, err := env.svc.Query()
	require.NoError(t, err)
	assert.Zero(t, col.Len())
}

func TestQuerySkipsUndecodableEnclosure(t *testing.T) {
	env := newTestEnv(t, "TRUENAS-M40", genericConfig)
	env.dev.err = errors.New("sg_ses: transport error")

	col, err := env.svc.Query()
	require.NoError(t, err, "one broken enclosure must not fail the query")
	assert.Zero(t, col.Len())
}

func TestQueryIncludesBackplanes(t *testing.T) {
	env := newTestEnv(t, "TRUENAS-M40", genericConfig)
	env.backplanes = []*enclosure.Enclosure{
		{ID: "r30_nvme_enclosure", Name: "R30 NVMe Enclosure"},
	}

	col, err := env.svc.Query()
	require.NoError(t, err)
	require.Equal(t, 2, col.Len())
	assert.NotNil(t, col.GetByID("r30_nvme_enclosure"))
}

func newLabelEnv(t *testing.T) (*testEnv, *db.DB) {
	t.Helper()
	store, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	env := newTestEnv(t, "TRUENAS-M40", genericConfig)
	env.svc.store = store
	return env, store
}

func TestUpdateLabel(t *testing.T) {
	env, store := newLabelEnv(t)

	enc, err := env.svc.UpdateLabel("5b0bd6d1a3097fe5", "rack 2 shelf 1")
	require.NoError(t, err)
	assert.Equal(t, "rack 2 shelf 1", enc.Label)
	assert.Equal(t, "rack 2 shelf 1", enc.DisplayName())

	labels, err := store.Labels()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"5b0bd6d1a3097fe5": "rack 2 shelf 1"}, labels)
}

func TestUpdateLabelValidation(t *testing.T) {
	env, _ := newLabelEnv(t)

	_, err := env.svc.UpdateLabel("", "whatever")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.svc.UpdateLabel("bogus", "whatever")
	assert.ErrorIs(t, err, enclosure.ErrNotFound)
}
