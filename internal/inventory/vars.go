package inventory

import (
	"gopkg.in/yaml.v3"
)

// Vars is an insertion-ordered variable map. Overwriting a key keeps its
// original position.
type Vars struct {
	keys   []string
	values map[string]any
}

// NewVars creates an empty variable map
func NewVars() *Vars {
	return &Vars{values: make(map[string]any)}
}

// Set stores a value
func (v *Vars) Set(key string, value any) {
	if _, ok := v.values[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.values[key] = value
}

// Get returns a value
func (v *Vars) Get(key string) (any, bool) {
	val, ok := v.values[key]
	return val, ok
}

// Keys returns keys in insertion order
func (v *Vars) Keys() []string {
	return append([]string(nil), v.keys...)
}

// Len returns the number of variables
func (v *Vars) Len() int {
	return len(v.keys)
}

// Map returns a plain copy of the variables
func (v *Vars) Map() map[string]any {
	m := make(map[string]any, len(v.values))
	for k, val := range v.values {
		m[k] = val
	}
	return m
}

// MarshalYAML renders the variables as a mapping in insertion order
func (v *Vars) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range v.keys {
		var val yaml.Node
		if err := val.Encode(v.values[k]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&val,
		)
	}
	return node, nil
}
