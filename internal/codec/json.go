package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"topogen/internal/inventory"
)

// JSONCodec handles Ansible dynamic inventory JSON (the --list protocol)
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

type jsonGroup struct {
	Hosts    []string       `json:"hosts,omitempty"`
	Children []string       `json:"children,omitempty"`
	Vars     map[string]any `json:"vars,omitempty"`
}

type jsonMeta struct {
	HostVars map[string]map[string]any `json:"hostvars"`
}

// Export exports an inventory as a dynamic inventory document
func (c *JSONCodec) Export(inv *inventory.Inventory, w io.Writer) error {
	doc := make(map[string]any)
	meta := jsonMeta{HostVars: make(map[string]map[string]any)}

	var children []string
	for _, g := range inv.Groups() {
		children = append(children, g.Name)
		doc[g.Name] = jsonGroup{
			Hosts: g.Hosts,
			Vars:  g.Vars.Map(),
		}
	}
	for _, h := range inv.Hosts() {
		meta.HostVars[h.Name] = h.Vars.Map()
	}

	doc["all"] = jsonGroup{Children: children}
	doc["_meta"] = meta

	return encodeJSON(w, doc)
}

// ExportHost writes a single host's variables (the --host protocol).
// Unknown hosts produce an empty object.
func (c *JSONCodec) ExportHost(inv *inventory.Inventory, name string, w io.Writer) error {
	vars := map[string]any{}
	if h, ok := inv.Host(name); ok {
		vars = h.Vars.Map()
	}
	return encodeJSON(w, vars)
}

func encodeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
