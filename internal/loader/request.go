package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"topogen/internal/domain"

	"gopkg.in/yaml.v3"
)

// RequestYAML represents the request file structure
type RequestYAML struct {
	Topology      string             `yaml:"topology"`
	Location      string             `yaml:"location"`
	Site          SiteYAML           `yaml:"site"`
	Offline       bool               `yaml:"offline"`
	TopologyNodes *TopologyNodesYAML `yaml:"topology_nodes"`
}

// TopologyNodesYAML represents the per-tier node lists
type TopologyNodesYAML struct {
	DST    []NodeYAML `yaml:"dst"`
	Access []NodeYAML `yaml:"access"`
}

// NodeYAML represents a single device entry
type NodeYAML struct {
	Device string `yaml:"device"`
	MgmtIP string `yaml:"mgmt_ip"`
}

// SiteYAML keeps the site code exactly as written. An unquoted code such as
// 01 is read as its literal text instead of the integer 1.
type SiteYAML string

// UnmarshalYAML implements yaml.Unmarshaler
func (s *SiteYAML) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: site must be a scalar", node.Line)
	}
	*s = SiteYAML(node.Value)
	return nil
}

// LoadRequest loads a topology request from a YAML file
func LoadRequest(path string) (*domain.TopologyRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.RequestLoadError{Path: path, Err: err}
	}

	req, err := ParseRequest(data)
	if err != nil {
		return nil, &domain.RequestLoadError{Path: path, Err: err}
	}
	return req, nil
}

// StdinPath names a request read from a reader rather than a file
const StdinPath = "-"

// ReadRequest loads a topology request from a reader
func ReadRequest(r io.Reader) (*domain.TopologyRequest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &domain.RequestLoadError{Path: StdinPath, Err: err}
	}

	req, err := ParseRequest(data)
	if err != nil {
		return nil, &domain.RequestLoadError{Path: StdinPath, Err: err}
	}
	return req, nil
}

// ParseRequest parses a topology request from YAML bytes
func ParseRequest(data []byte) (*domain.TopologyRequest, error) {
	var y RequestYAML
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&y); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("request is empty")
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return convertYAMLToRequest(&y)
}

func convertYAMLToRequest(y *RequestYAML) (*domain.TopologyRequest, error) {
	if y.TopologyNodes == nil {
		return nil, errors.New("topology_nodes is required")
	}

	req := &domain.TopologyRequest{
		Topology: y.Topology,
		Location: y.Location,
		Site:     string(y.Site),
		Offline:  y.Offline,
		Nodes: domain.TopologyNodes{
			DST:    make([]domain.RawHost, 0, len(y.TopologyNodes.DST)),
			Access: make([]domain.RawHost, 0, len(y.TopologyNodes.Access)),
		},
	}

	for i, n := range y.TopologyNodes.DST {
		if n.Device == "" {
			return nil, fmt.Errorf("dst[%d]: device is required", i)
		}
		req.Nodes.DST = append(req.Nodes.DST, domain.RawHost{Device: n.Device, MgmtIP: n.MgmtIP})
	}
	for i, n := range y.TopologyNodes.Access {
		if n.Device == "" {
			return nil, fmt.Errorf("access[%d]: device is required", i)
		}
		req.Nodes.Access = append(req.Nodes.Access, domain.RawHost{Device: n.Device, MgmtIP: n.MgmtIP})
	}

	return req, nil
}
