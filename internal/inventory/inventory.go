// Package inventory defines the sink generated hosts are registered into and
// an in-memory implementation of it.
//
// The sink follows the Ansible inventory model: hosts belong to groups, and
// variables are set on either a group or a host by name. Groups are looked up
// before hosts when a name is ambiguous.
package inventory

import (
	"errors"
	"fmt"
)

// ErrUnknownEntity is returned when a group or host is referenced before it exists
var ErrUnknownEntity = errors.New("could not identify group or host")

// Sink receives the generated inventory
type Sink interface {
	AddGroup(name string) error
	AddHost(host, group string) error
	SetVariable(entity, key string, value any) error
}

// Group is a named set of hosts with shared variables
type Group struct {
	Name  string
	Hosts []string
	Vars  *Vars
}

// Host is an inventory host with its own variables
type Host struct {
	Name   string
	Groups []string
	Vars   *Vars
}

// Inventory is an ordered, in-memory Sink
type Inventory struct {
	groups     map[string]*Group
	groupOrder []string
	hosts      map[string]*Host
	hostOrder  []string
}

// New creates an empty inventory
func New() *Inventory {
	return &Inventory{
		groups: make(map[string]*Group),
		hosts:  make(map[string]*Host),
	}
}

// AddGroup registers a group; adding an existing group is a no-op
func (inv *Inventory) AddGroup(name string) error {
	if name == "" {
		return errors.New("group name must not be empty")
	}
	if _, ok := inv.groups[name]; ok {
		return nil
	}
	inv.groups[name] = &Group{Name: name, Vars: NewVars()}
	inv.groupOrder = append(inv.groupOrder, name)
	return nil
}

// AddHost registers a host and places it in an existing group
func (inv *Inventory) AddHost(host, group string) error {
	if host == "" {
		return errors.New("host name must not be empty")
	}
	g, ok := inv.groups[group]
	if !ok {
		return fmt.Errorf("add host %s: group %s: %w", host, group, ErrUnknownEntity)
	}

	h, ok := inv.hosts[host]
	if !ok {
		h = &Host{Name: host, Vars: NewVars()}
		inv.hosts[host] = h
		inv.hostOrder = append(inv.hostOrder, host)
	}

	for _, existing := range h.Groups {
		if existing == group {
			return nil
		}
	}
	h.Groups = append(h.Groups, group)
	g.Hosts = append(g.Hosts, host)
	return nil
}

// SetVariable sets a variable on a group or host, replacing any earlier value
func (inv *Inventory) SetVariable(entity, key string, value any) error {
	if g, ok := inv.groups[entity]; ok {
		g.Vars.Set(key, value)
		return nil
	}
	if h, ok := inv.hosts[entity]; ok {
		h.Vars.Set(key, value)
		return nil
	}
	return fmt.Errorf("set %s on %s: %w", key, entity, ErrUnknownEntity)
}

// Group returns a group by name
func (inv *Inventory) Group(name string) (*Group, bool) {
	g, ok := inv.groups[name]
	return g, ok
}

// Host returns a host by name
func (inv *Inventory) Host(name string) (*Host, bool) {
	h, ok := inv.hosts[name]
	return h, ok
}

// Groups returns groups in insertion order
func (inv *Inventory) Groups() []*Group {
	out := make([]*Group, 0, len(inv.groupOrder))
	for _, name := range inv.groupOrder {
		out = append(out, inv.groups[name])
	}
	return out
}

// Hosts returns hosts in insertion order
func (inv *Inventory) Hosts() []*Host {
	out := make([]*Host, 0, len(inv.hostOrder))
	for _, name := range inv.hostOrder {
		out = append(out, inv.hosts[name])
	}
	return out
}
