package codec

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"topogen/internal/domain"
	"topogen/internal/inventory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleInventory(t *testing.T) *inventory.Inventory {
	t.Helper()
	inv := inventory.New()
	require.NoError(t, inv.AddGroup("topology"))
	require.NoError(t, inv.SetVariable("topology", "downlink_switches", 1))
	require.NoError(t, inv.SetVariable("topology", "offline", false))

	for _, ip := range []string{"10.0.0.2", "10.0.0.1"} {
		require.NoError(t, inv.AddHost(ip, "topology"))
	}
	require.NoError(t, inv.SetVariable("10.0.0.2", "role", "DSTB"))
	require.NoError(t, inv.SetVariable("10.0.0.2", "topology_connections", domain.TopologyConnections{
		Peer:      []string{"Ethernet49", "Ethernet50"},
		Uplinks:   []string{},
		Downlinks: []string{"Ethernet1", "Ethernet2"},
	}))
	require.NoError(t, inv.SetVariable("10.0.0.2", "peer", "SNG01-DSTA"))
	require.NoError(t, inv.SetVariable("10.0.0.1", "role", "DSTA"))
	return inv
}

func TestAnsibleCodecExport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewAnsibleCodec().Export(sampleInventory(t), &buf))
	out := buf.String()

	// Host order follows the inventory, not lexical order
	assert.Less(t, strings.Index(out, "10.0.0.2:"), strings.Index(out, "10.0.0.1:"))
	assert.Less(t, strings.Index(out, "role: DSTB"), strings.Index(out, "topology_connections:"))

	var parsed struct {
		All struct {
			Children map[string]struct {
				Hosts map[string]map[string]any `yaml:"hosts"`
				Vars  map[string]any            `yaml:"vars"`
			} `yaml:"children"`
		} `yaml:"all"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &parsed))

	group := parsed.All.Children["topology"]
	assert.Equal(t, 1, group.Vars["downlink_switches"])
	assert.Equal(t, false, group.Vars["offline"])
	require.Len(t, group.Hosts, 2)
	assert.Equal(t, "SNG01-DSTA", group.Hosts["10.0.0.2"]["peer"])

	conns, ok := group.Hosts["10.0.0.2"]["topology_connections"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{"Ethernet49", "Ethernet50"}, conns["peer"])
	assert.Equal(t, []any{}, conns["uplinks"])
}

func TestJSONCodecExport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONCodec().Export(sampleInventory(t), &buf))

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Contains(t, doc, "_meta")
	require.Contains(t, doc, "all")
	require.Contains(t, doc, "topology")

	var group jsonGroup
	require.NoError(t, json.Unmarshal(doc["topology"], &group))
	assert.Equal(t, []string{"10.0.0.2", "10.0.0.1"}, group.Hosts)
	assert.Equal(t, float64(1), group.Vars["downlink_switches"])

	var all jsonGroup
	require.NoError(t, json.Unmarshal(doc["all"], &all))
	assert.Equal(t, []string{"topology"}, all.Children)

	var meta jsonMeta
	require.NoError(t, json.Unmarshal(doc["_meta"], &meta))
	assert.Equal(t, "DSTA", meta.HostVars["10.0.0.1"]["role"])
	assert.Equal(t, "SNG01-DSTA", meta.HostVars["10.0.0.2"]["peer"])
}

func TestJSONCodecExportHost(t *testing.T) {
	inv := sampleInventory(t)
	c := NewJSONCodec()

	t.Run("known host", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, c.ExportHost(inv, "10.0.0.1", &buf))
		var vars map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &vars))
		assert.Equal(t, map[string]any{"role": "DSTA"}, vars)
	})

	t.Run("unknown host is empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, c.ExportHost(inv, "10.9.9.9", &buf))
		assert.JSONEq(t, "{}", buf.String())
	})
}

func TestForFormat(t *testing.T) {
	for _, f := range []string{"yaml", "json"} {
		e, err := ForFormat(f)
		require.NoError(t, err)
		assert.Equal(t, f, e.Format())
	}
	_, err := ForFormat("ini")
	assert.Error(t, err)
}
