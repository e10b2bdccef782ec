package loader

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"topogen/internal/domain"
)

const sampleRequest = `topology: dst_access_l2
location: Singapore
site: 01
offline: true
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

func TestParseRequest(t *testing.T) {
	t.Run("parses complete request", func(t *testing.T) {
		req, err := ParseRequest([]byte(sampleRequest))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if req.Topology != domain.TopologyDSTAccessL2 {
			t.Errorf("Topology = %q", req.Topology)
		}
		if req.Location != "Singapore" {
			t.Errorf("Location = %q", req.Location)
		}
		if !req.Offline {
			t.Error("Offline should be true")
		}
		if len(req.Nodes.DST) != 2 || len(req.Nodes.Access) != 1 {
			t.Fatalf("unexpected node counts: dst=%d access=%d", len(req.Nodes.DST), len(req.Nodes.Access))
		}
		if req.Nodes.DST[1].MgmtIP != "10.0.0.2" {
			t.Errorf("dst[1].MgmtIP = %q", req.Nodes.DST[1].MgmtIP)
		}
		if req.DownlinkSwitches() != 1 {
			t.Errorf("DownlinkSwitches() = %d, want 1", req.DownlinkSwitches())
		}
	})

	t.Run("keeps unquoted site code literal", func(t *testing.T) {
		req, err := ParseRequest([]byte(sampleRequest))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if req.Site != "01" {
			t.Errorf("Site = %q, want %q", req.Site, "01")
		}
	})

	t.Run("access may be omitted", func(t *testing.T) {
		data := strings.Split(sampleRequest, "  access:")[0]
		req, err := ParseRequest([]byte(data))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(req.Nodes.Access) != 0 {
			t.Errorf("expected no access nodes, got %d", len(req.Nodes.Access))
		}
	})

	t.Run("missing topology_nodes fails", func(t *testing.T) {
		if _, err := ParseRequest([]byte("topology: dst_access_l2\n")); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("missing device fails", func(t *testing.T) {
		data := strings.Replace(sampleRequest, "device: modelB", "device: ''", 1)
		if _, err := ParseRequest([]byte(data)); err == nil {
			t.Error("expected error for empty device")
		}
	})

	t.Run("empty document fails", func(t *testing.T) {
		if _, err := ParseRequest(nil); err == nil {
			t.Error("expected error for empty document")
		}
	})

	t.Run("malformed YAML fails", func(t *testing.T) {
		if _, err := ParseRequest([]byte("topology: [")); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestLoadRequest(t *testing.T) {
	dir := t.TempDir()

	t.Run("loads file", func(t *testing.T) {
		path := filepath.Join(dir, "request.yml")
		if err := os.WriteFile(path, []byte(sampleRequest), 0644); err != nil {
			t.Fatal(err)
		}
		req, err := LoadRequest(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if req.Site != "01" {
			t.Errorf("Site = %q", req.Site)
		}
	})

	t.Run("missing file is a request load error", func(t *testing.T) {
		path := filepath.Join(dir, "missing.yml")
		_, err := LoadRequest(path)
		var loadErr *domain.RequestLoadError
		if !errors.As(err, &loadErr) {
			t.Fatalf("expected RequestLoadError, got %v", err)
		}
		if loadErr.Path != path {
			t.Errorf("Path = %q, want %q", loadErr.Path, path)
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Error("expected wrapped os.ErrNotExist")
		}
	})

	t.Run("reader", func(t *testing.T) {
		req, err := ReadRequest(strings.NewReader(sampleRequest))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(req.Nodes.DST) != 2 {
			t.Errorf("expected 2 dst nodes, got %d", len(req.Nodes.DST))
		}
	})

	t.Run("reader failures are request load errors", func(t *testing.T) {
		tests := []struct {
			name  string
			input io.Reader
		}{
			{"malformed", strings.NewReader("topology: [")},
			{"empty", strings.NewReader("")},
			{"missing topology_nodes", strings.NewReader("topology: dst_access_l2\n")},
			{"read failure", iotest.ErrReader(errors.New("broken pipe"))},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := ReadRequest(tt.input)
				var loadErr *domain.RequestLoadError
				if !errors.As(err, &loadErr) {
					t.Fatalf("expected RequestLoadError, got %v", err)
				}
				if loadErr.Path != StdinPath {
					t.Errorf("Path = %q, want %q", loadErr.Path, StdinPath)
				}
			})
		}
	})
}
