package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"topogen/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modelASpec = `platform: eos
peer: [Ethernet49, Ethernet50, Ethernet51]
uplinks: [Ethernet1, Ethernet2, Ethernet3, Ethernet4, Ethernet5]
downlinks: [Ethernet10, Ethernet11, Ethernet12, Ethernet13]
`

func writeSpec(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0644))
}

func TestDirCatalogLookup(t *testing.T) {
	dir := t.TempDir()
	writeSpec(t, dir, "modelA.yml", modelASpec)
	writeSpec(t, dir, "modelB.yaml", "platform: nxos\npeer: []\nuplinks: [e1/1]\ndownlinks: []\n")
	writeSpec(t, dir, "broken.yml", "platform: [unterminated\n")

	c := NewDirCatalog(dir)

	t.Run("reads yml document", func(t *testing.T) {
		spec, err := c.Lookup("modelA")
		require.NoError(t, err)
		assert.Equal(t, "eos", spec.Platform)
		assert.Equal(t, []string{"Ethernet49", "Ethernet50", "Ethernet51"}, spec.Peer)
		assert.Len(t, spec.Uplinks, 5)
		assert.Len(t, spec.Downlinks, 4)
	})

	t.Run("falls back to yaml extension", func(t *testing.T) {
		spec, err := c.Lookup("modelB")
		require.NoError(t, err)
		assert.Equal(t, "nxos", spec.Platform)
	})

	t.Run("missing model is an unknown device", func(t *testing.T) {
		_, err := c.Lookup("modelZ")
		var devErr *domain.UnknownDeviceError
		require.True(t, errors.As(err, &devErr), "got %v", err)
		assert.Equal(t, "modelZ", devErr.Device)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed document is an unknown device", func(t *testing.T) {
		_, err := c.Lookup("broken")
		var devErr *domain.UnknownDeviceError
		require.True(t, errors.As(err, &devErr), "got %v", err)
		assert.Equal(t, "broken", devErr.Device)
	})

	t.Run("path traversal is rejected", func(t *testing.T) {
		for _, model := range []string{"../modelA", "a/b", "", ".."} {
			_, err := c.Lookup(model)
			var devErr *domain.UnknownDeviceError
			assert.True(t, errors.As(err, &devErr), "model %q: got %v", model, err)
		}
	})
}

func TestDirCatalogModels(t *testing.T) {
	dir := t.TempDir()
	writeSpec(t, dir, "modelB.yml", modelASpec)
	writeSpec(t, dir, "modelA.yaml", modelASpec)
	writeSpec(t, dir, "modelA.yml", modelASpec)
	writeSpec(t, dir, "README.md", "not a spec")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.yml"), 0755))

	models, err := NewDirCatalog(dir).Models()
	require.NoError(t, err)
	assert.Equal(t, []string{"modelA", "modelB"}, models)

	_, err = NewDirCatalog(filepath.Join(dir, "missing")).Models()
	assert.Error(t, err)
}

type countingCatalog struct {
	calls map[string]int
	specs map[string]domain.DeviceSpec
}

func (c *countingCatalog) Lookup(model string) (domain.DeviceSpec, error) {
	c.calls[model]++
	spec, ok := c.specs[model]
	if !ok {
		return domain.DeviceSpec{}, &domain.UnknownDeviceError{Device: model}
	}
	return spec, nil
}

func TestCachedCatalog(t *testing.T) {
	backing := &countingCatalog{
		calls: make(map[string]int),
		specs: map[string]domain.DeviceSpec{"modelA": {Platform: "eos"}},
	}
	c, err := NewCachedCatalog(backing, 0)
	require.NoError(t, err)

	t.Run("repeated lookups hit the cache", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			spec, err := c.Lookup("modelA")
			require.NoError(t, err)
			assert.Equal(t, "eos", spec.Platform)
		}
		assert.Equal(t, 1, backing.calls["modelA"])
		assert.Equal(t, 1, c.Len())
	})

	t.Run("errors are not cached", func(t *testing.T) {
		_, err := c.Lookup("modelZ")
		require.Error(t, err)
		_, err = c.Lookup("modelZ")
		require.Error(t, err)
		assert.Equal(t, 2, backing.calls["modelZ"])
	})

	t.Run("purge forces a reload", func(t *testing.T) {
		c.Purge()
		_, err := c.Lookup("modelA")
		require.NoError(t, err)
		assert.Equal(t, 2, backing.calls["modelA"])
	})
}
