package resolver

import "topogen/internal/domain"

// Member is a host as seen by neighbor computation
type Member struct {
	Hostname string
	Role     domain.Role
}

// Neighbors holds the hostnames a host is linked to
type Neighbors struct {
	Peer      string
	Uplinks   []string
	Downlinks []string
}

// ComputeNeighbors derives each member's peer, uplinks and downlinks from
// tier alone. Members are compared by hostname, not position.
//
// A DST host takes the last other DST host as its peer; with exactly two DST
// hosts that is the other one. Access-to-access pairs are not linked.
func ComputeNeighbors(members []Member) map[string]Neighbors {
	out := make(map[string]Neighbors, len(members))

	for _, h := range members {
		n := Neighbors{
			Uplinks:   []string{},
			Downlinks: []string{},
		}
		for _, other := range members {
			if other.Hostname == h.Hostname {
				continue
			}
			switch {
			case other.Role.IsDistribution() && h.Role.IsDistribution():
				n.Peer = other.Hostname
			case other.Role.IsDistribution():
				n.Uplinks = append(n.Uplinks, other.Hostname)
			case h.Role.IsDistribution():
				n.Downlinks = append(n.Downlinks, other.Hostname)
			}
		}
		out[h.Hostname] = n
	}

	return out
}
