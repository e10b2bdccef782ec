package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"topogen/internal/config"
	"topogen/internal/repository/sqlite"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRequest = `topology: dst_access_l2
location: Singapore
site: 01
offline: false
topology_nodes:
  dst:
    - device: modelA
      mgmt_ip: 10.0.0.1
    - device: modelA
      mgmt_ip: 10.0.0.2
  access:
    - device: modelB
      mgmt_ip: 10.0.1.1
`

// writeFixture lays out a source file, request and device specs under a temp dir
func writeFixture(t *testing.T) (dir, sourcePath string) {
	t.Helper()
	dir = t.TempDir()
	specs := filepath.Join(dir, "device_specs")
	require.NoError(t, os.MkdirAll(specs, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(specs, "modelA.yml"),
		[]byte("platform: eos\npeer: [Ethernet49, Ethernet50]\nuplinks: [Ethernet1]\ndownlinks: [Ethernet10, Ethernet11]\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(specs, "modelB.yml"),
		[]byte("platform: ios\npeer: []\nuplinks: [Gi0/1, Gi0/2]\ndownlinks: []\n"), 0644))

	reqPath := filepath.Join(dir, "request.yml")
	require.NoError(t, os.WriteFile(reqPath, []byte(testRequest), 0644))

	sourcePath = filepath.Join(dir, "hosts.yml")
	source := fmt.Sprintf("plugin: topogen\nrequest: %s\ndevice_specs: %s\n", reqPath, specs)
	require.NoError(t, os.WriteFile(sourcePath, []byte(source), 0644))
	return dir, sourcePath
}

// resetFlags restores every flag of c and its subcommands to its default
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command with args and returns its stdout
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { resetFlags(rootCmd) })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRootList(t *testing.T) {
	_, source := writeFixture(t)

	out, err := execute(t, "--source", source, "--list")
	require.NoError(t, err)

	var doc struct {
		All struct {
			Children []string `json:"children"`
		} `json:"all"`
		Topology struct {
			Hosts []string       `json:"hosts"`
			Vars  map[string]any `json:"vars"`
		} `json:"topology"`
		Meta struct {
			HostVars map[string]map[string]any `json:"hostvars"`
		} `json:"_meta"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.Equal(t, []string{"topology"}, doc.All.Children)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2", "10.0.1.1"}, doc.Topology.Hosts)
	assert.Equal(t, float64(1), doc.Topology.Vars["downlink_switches"])
	assert.Equal(t, "SNG01-DSTA", doc.Meta.HostVars["10.0.0.1"]["hostname"])
	assert.Equal(t, "SNG01-DSTB", doc.Meta.HostVars["10.0.0.1"]["peer"])
}

func TestRootHost(t *testing.T) {
	_, source := writeFixture(t)

	t.Run("known host", func(t *testing.T) {
		out, err := execute(t, "--source", source, "--host", "10.0.1.1")
		require.NoError(t, err)

		var vars map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &vars))
		assert.Equal(t, "ACC001", vars["role"])
		assert.Equal(t, "SNG01-ACC001", vars["hostname"])
		assert.Equal(t, []any{"SNG01-DSTA", "SNG01-DSTB"}, vars["uplinks"])
	})

	t.Run("unknown host prints empty object", func(t *testing.T) {
		out, err := execute(t, "--source", source, "--host", "192.0.2.1")
		require.NoError(t, err)
		assert.JSONEq(t, "{}", out)
	})

	t.Run("list and host together fail", func(t *testing.T) {
		_, err := execute(t, "--source", source, "--list", "--host", "10.0.0.1")
		require.Error(t, err)
	})
}

func TestInventoryOutputFile(t *testing.T) {
	dir, source := writeFixture(t)
	outPath := filepath.Join(dir, "generated.yml")

	_, err := execute(t, "inventory", "--source", source, "-o", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "SNG01-DSTA")

	info, err := os.Stat(outPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.False(t, strings.HasPrefix(entry.Name(), ".topogen-"), "temp file left behind: %s", entry.Name())
	}
}

func TestInventoryRequestOverride(t *testing.T) {
	dir, source := writeFixture(t)
	other := filepath.Join(dir, "site02.yml")
	require.NoError(t, os.WriteFile(other, []byte(strings.Replace(testRequest, "site: 01", "site: 02", 1)), 0644))

	out, err := execute(t, "inventory", "--source", source, "--request", other)
	require.NoError(t, err)
	assert.Contains(t, out, "SNG02-DSTA")
	assert.NotContains(t, out, "SNG01-DSTA")
}

func TestInventoryDatabaseOverride(t *testing.T) {
	dir, source := writeFixture(t)
	dbPath := filepath.Join(dir, "snapshots.db")

	_, err := execute(t, "inventory", "--source", source, "--db", dbPath)
	require.NoError(t, err)

	repo, err := sqlite.New(dbPath)
	require.NoError(t, err)
	snaps, err := repo.ListSnapshots(context.Background(), 0)
	require.NoError(t, err)
	require.NoError(t, repo.Close())
	require.Len(t, snaps, 1)
	assert.Equal(t, "Singapore", snaps[0].Location)
	assert.Equal(t, 3, snaps[0].HostCount)

	out, err := execute(t, "history", "--source", source, "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Singapore")

	// host queries never record
	_, err = execute(t, "host", "10.0.0.1", "--source", source)
	require.NoError(t, err)
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory", "hosts.yml")

	_, err := execute(t, "init", path)
	require.NoError(t, err)

	src, err := config.LoadSource(path)
	require.NoError(t, err)
	assert.Equal(t, config.PluginName, src.Plugin)

	_, err = execute(t, "init", path)
	require.Error(t, err, "existing file must not be overwritten")

	_, err = execute(t, "init", path, "--force")
	require.NoError(t, err)

	_, err = execute(t, "init", filepath.Join(t.TempDir(), "inventory.yml"))
	require.ErrorIs(t, err, config.ErrInvalidSource)
}

func TestRegenerator(t *testing.T) {
	t.Run("drops triggers after cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		var runs atomic.Int32
		r := &regenerator{ctx: ctx, run: func(bool) { runs.Add(1) }}

		r.trigger(false)
		cancel()
		r.trigger(true)
		assert.Equal(t, int32(1), runs.Load())
	})

	t.Run("drops triggers after stop", func(t *testing.T) {
		var runs atomic.Int32
		r := &regenerator{ctx: context.Background(), run: func(bool) { runs.Add(1) }}

		r.stop()
		r.trigger(true)
		assert.Equal(t, int32(0), runs.Load())
	})

	t.Run("stop waits for the run in flight", func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		var finished atomic.Bool
		r := &regenerator{ctx: context.Background(), run: func(bool) {
			close(started)
			<-release
			finished.Store(true)
		}}

		go r.trigger(true)
		<-started

		stopped := make(chan struct{})
		go func() {
			r.stop()
			close(stopped)
		}()

		select {
		case <-stopped:
			t.Fatal("stop returned while a run was in flight")
		case <-time.After(50 * time.Millisecond):
		}

		close(release)
		<-stopped
		assert.True(t, finished.Load())
	})
}
