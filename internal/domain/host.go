package domain

// DeviceSpec is the static link inventory of a device model
type DeviceSpec struct {
	Platform  string   `json:"platform" yaml:"platform"`
	Peer      []string `json:"peer" yaml:"peer"`
	Uplinks   []string `json:"uplinks" yaml:"uplinks"`
	Downlinks []string `json:"downlinks" yaml:"downlinks"`
}

// TopologyConnections holds the catalog port identifiers a host will use
type TopologyConnections struct {
	Peer      []string `json:"peer" yaml:"peer"`
	Uplinks   []string `json:"uplinks" yaml:"uplinks"`
	Downlinks []string `json:"downlinks" yaml:"downlinks"`
}

// Host is a fully resolved device.
//
// Connections carries the port identifiers taken from the device catalog.
// Peer, Uplinks and Downlinks carry neighbor hostnames. The two are emitted
// as separate attributes.
type Host struct {
	Device      string              `json:"device" yaml:"device"`
	MgmtIP      string              `json:"mgmt_ip" yaml:"mgmt_ip"`
	Role        Role                `json:"role" yaml:"role"`
	Hostname    string              `json:"hostname" yaml:"hostname"`
	Platform    string              `json:"platform" yaml:"platform"`
	Connections TopologyConnections `json:"topology_connections" yaml:"topology_connections"`

	Peer      string   `json:"peer" yaml:"peer"`
	Uplinks   []string `json:"uplinks" yaml:"uplinks"`
	Downlinks []string `json:"downlinks" yaml:"downlinks"`
}

// Topology is the result of resolving one request
type Topology struct {
	DownlinkSwitches int    `json:"downlink_switches" yaml:"downlink_switches"`
	Offline          bool   `json:"offline" yaml:"offline"`
	Hosts            []Host `json:"hosts" yaml:"hosts"`
}

// Host returns the host with the given hostname
func (t *Topology) Host(hostname string) (*Host, bool) {
	for i := range t.Hosts {
		if t.Hosts[i].Hostname == hostname {
			return &t.Hosts[i], true
		}
	}
	return nil, false
}

// Links returns every neighbor relationship once, peers before uplinks
func (t *Topology) Links() []Link {
	var links []Link
	seen := make(map[string]bool)
	add := func(l *Link) {
		if !seen[l.ID] {
			seen[l.ID] = true
			links = append(links, *l)
		}
	}
	for _, h := range t.Hosts {
		if h.Peer != "" {
			add(NewLink(h.Hostname, h.Peer, LinkTypePeer))
		}
	}
	for _, h := range t.Hosts {
		for _, up := range h.Uplinks {
			add(NewLink(h.Hostname, up, LinkTypeUplink))
		}
	}
	return links
}
