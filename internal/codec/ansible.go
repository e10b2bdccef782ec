package codec

import (
	"fmt"
	"io"

	"topogen/internal/inventory"

	"gopkg.in/yaml.v3"
)

// AnsibleCodec handles static Ansible YAML inventory export
type AnsibleCodec struct{}

// NewAnsibleCodec creates a new Ansible codec
func NewAnsibleCodec() *AnsibleCodec {
	return &AnsibleCodec{}
}

// Format returns the codec format identifier
func (c *AnsibleCodec) Format() string {
	return "yaml"
}

// ansibleInventory represents the Ansible inventory structure
type ansibleInventory struct {
	All ansibleGroup `yaml:"all"`
}

type ansibleGroup struct {
	Children ansibleChildren `yaml:"children,omitempty"`
}

type ansibleGroupDef struct {
	Hosts ansibleHosts    `yaml:"hosts,omitempty"`
	Vars  *inventory.Vars `yaml:"vars,omitempty"`
}

// ansibleChildren and ansibleHosts keep inventory order in the output
type ansibleChildren []namedGroup

type namedGroup struct {
	name string
	def  ansibleGroupDef
}

type ansibleHosts []*inventory.Host

func (c ansibleChildren) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, g := range c {
		var val yaml.Node
		if err := val.Encode(g.def); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode(g.name), &val)
	}
	return node, nil
}

func (h ansibleHosts) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, host := range h {
		var val yaml.Node
		if err := val.Encode(host.Vars); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode(host.Name), &val)
	}
	return node, nil
}

func keyNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// Export exports an inventory to Ansible YAML format
func (c *AnsibleCodec) Export(inv *inventory.Inventory, w io.Writer) error {
	out := ansibleInventory{}

	for _, g := range inv.Groups() {
		def := ansibleGroupDef{}
		for _, name := range g.Hosts {
			if h, ok := inv.Host(name); ok {
				def.Hosts = append(def.Hosts, h)
			}
		}
		if g.Vars.Len() > 0 {
			def.Vars = g.Vars
		}
		out.All.Children = append(out.All.Children, namedGroup{name: g.Name, def: def})
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(&out); err != nil {
		return fmt.Errorf("failed to encode Ansible inventory: %w", err)
	}

	return nil
}
