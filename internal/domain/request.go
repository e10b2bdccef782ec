package domain

// TopologyDSTAccessL2 is the only supported topology: a redundant DST pair
// with N access switches dual-homed to it.
const TopologyDSTAccessL2 = "dst_access_l2"

// DistributionCount is the fixed size of the DST tier.
const DistributionCount = 2

// TopologyRequest describes the desired fleet shape and placement
type TopologyRequest struct {
	Topology string        `json:"topology" yaml:"topology"`
	Location string        `json:"location" yaml:"location"`
	Site     string        `json:"site" yaml:"site"`
	Offline  bool          `json:"offline" yaml:"offline"`
	Nodes    TopologyNodes `json:"topology_nodes" yaml:"topology_nodes"`
}

// TopologyNodes holds the per-tier device lists in request order
type TopologyNodes struct {
	DST    []RawHost `json:"dst" yaml:"dst"`
	Access []RawHost `json:"access" yaml:"access"`
}

// RawHost is a device as it appears in the request
type RawHost struct {
	Device string `json:"device" yaml:"device"`
	MgmtIP string `json:"mgmt_ip" yaml:"mgmt_ip"`
}

// DownlinkSwitches returns the number of access switches in the request
func (r *TopologyRequest) DownlinkSwitches() int {
	return len(r.Nodes.Access)
}
