package resolver

import (
	"fmt"

	"topogen/internal/domain"
	"topogen/internal/inventory"
)

// GroupName is the inventory group every resolved host is registered in
const GroupName = "topology"

// Emit registers a resolved topology into the sink. Hosts are keyed by
// management address; the hostname is only an attribute.
func Emit(topo *domain.Topology, sink inventory.Sink) error {
	if err := sink.AddGroup(GroupName); err != nil {
		return fmt.Errorf("add group %s: %w", GroupName, err)
	}
	if err := sink.SetVariable(GroupName, "downlink_switches", topo.DownlinkSwitches); err != nil {
		return err
	}
	if err := sink.SetVariable(GroupName, "offline", topo.Offline); err != nil {
		return err
	}

	for _, h := range topo.Hosts {
		if err := sink.AddHost(h.MgmtIP, GroupName); err != nil {
			return fmt.Errorf("add host %s: %w", h.MgmtIP, err)
		}
		for _, v := range HostVars(h) {
			if err := sink.SetVariable(h.MgmtIP, v.Key, v.Value); err != nil {
				return err
			}
		}
	}
	return nil
}

// Var is a single host variable
type Var struct {
	Key   string
	Value any
}

// HostVars returns a host's variables in emission order
func HostVars(h domain.Host) []Var {
	return []Var{
		{"role", h.Role.String()},
		{"ansible_hostname", h.MgmtIP},
		{"ansible_network_os", h.Platform},
		{"topology_connections", h.Connections},
		{"hostname", h.Hostname},
		{"peer", h.Peer},
		{"uplinks", h.Uplinks},
		{"downlinks", h.Downlinks},
	}
}
