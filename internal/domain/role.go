package domain

import "fmt"

// Tier classifies a role within the two-tier topology
type Tier int

const (
	TierUnknown      Tier = iota
	TierDistribution      // DST pair
	TierAccess            // ACC switches
)

// String returns the tier prefix used in role names
func (t Tier) String() string {
	switch t {
	case TierDistribution:
		return "DST"
	case TierAccess:
		return "ACC"
	default:
		return "unknown"
	}
}

// Role identifies a host's position in the topology. The zero value is not a
// valid role; use DistributionRole or AccessRole.
type Role struct {
	tier     Tier
	instance byte // 'A', 'B', ... for distribution roles
	index    int  // 1-based for access roles
}

// DistributionRole returns the DST role for the i-th (0-based) distribution host
func DistributionRole(i int) Role {
	return Role{tier: TierDistribution, instance: byte('A' + i)}
}

// AccessRole returns the ACC role for the i-th (0-based) access host
func AccessRole(i int) Role {
	return Role{tier: TierAccess, index: i + 1}
}

// Tier returns the tier of the role
func (r Role) Tier() Tier {
	return r.tier
}

// IsDistribution reports whether the role belongs to the DST tier
func (r Role) IsDistribution() bool {
	return r.tier == TierDistribution
}

// Instance returns the DST instance letter, or 0 for access roles
func (r Role) Instance() byte {
	return r.instance
}

// Index returns the 1-based ACC index, or 0 for distribution roles
func (r Role) Index() int {
	return r.index
}

// String renders the role as DSTA, DSTB, ACC001, ...
func (r Role) String() string {
	switch r.tier {
	case TierDistribution:
		return fmt.Sprintf("DST%c", r.instance)
	case TierAccess:
		return fmt.Sprintf("ACC%03d", r.index)
	default:
		return ""
	}
}

// MarshalText renders the role in its string form
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// ParseRole parses a rendered role back into its tagged form
func ParseRole(s string) (Role, error) {
	if len(s) == 4 && s[:3] == "DST" && s[3] >= 'A' && s[3] <= 'Z' {
		return Role{tier: TierDistribution, instance: s[3]}, nil
	}
	if len(s) > 3 && s[:3] == "ACC" {
		var idx int
		if _, err := fmt.Sscanf(s[3:], "%d", &idx); err == nil && idx > 0 && fmt.Sprintf("%03d", idx) == s[3:] {
			return Role{tier: TierAccess, index: idx}, nil
		}
	}
	return Role{}, fmt.Errorf("invalid role %q", s)
}

// UnmarshalText parses a rendered role
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
