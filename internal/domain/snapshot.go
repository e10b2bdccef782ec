package domain

import "time"

// Snapshot describes a stored generation
type Snapshot struct {
	ID               int64     `json:"id"`
	Source           string    `json:"source"`
	Location         string    `json:"location"`
	Site             string    `json:"site"`
	DownlinkSwitches int       `json:"downlink_switches"`
	Offline          bool      `json:"offline"`
	HostCount        int       `json:"host_count"`
	CreatedAt        time.Time `json:"created_at"`
}
