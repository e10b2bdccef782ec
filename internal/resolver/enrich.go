package resolver

import "topogen/internal/domain"

// Catalog port counts taken for every host, regardless of tier
const (
	PeerLinkCount   = 2
	UplinkCount     = 4
	DownlinksPerAcc = 2
)

// HostAttributes is what a host derives from its own catalog entry
type HostAttributes struct {
	Role        domain.Role
	MgmtIP      string
	Platform    string
	Connections domain.TopologyConnections
}

// Enrich derives a host's catalog attributes. Downlinks scale with the number
// of access switches; peer and uplink counts are fixed.
func Enrich(raw domain.RawHost, role domain.Role, spec domain.DeviceSpec, downlinkSwitches int) HostAttributes {
	return HostAttributes{
		Role:     role,
		MgmtIP:   raw.MgmtIP,
		Platform: spec.Platform,
		Connections: domain.TopologyConnections{
			Peer:      head(spec.Peer, PeerLinkCount),
			Uplinks:   head(spec.Uplinks, UplinkCount),
			Downlinks: head(spec.Downlinks, DownlinksPerAcc*downlinkSwitches),
		},
	}
}

// head copies at most n leading items
func head(items []string, n int) []string {
	if n > len(items) {
		n = len(items)
	}
	if n < 0 {
		n = 0
	}
	out := make([]string, n)
	copy(out, items[:n])
	return out
}
