// Package resolver turns a topology request into a list of resolved hosts.
//
// Resolution is a linear pipeline: roles, hostnames, catalog enrichment,
// neighbor computation, merge. Any failure aborts the whole resolution and
// nothing is emitted.
package resolver

import (
	"fmt"
	"log/slog"

	"topogen/internal/catalog"
	"topogen/internal/domain"
	"topogen/internal/logging"
)

// Resolver resolves DST/ACC topology requests
type Resolver struct {
	catalog   catalog.Catalog
	locations domain.LocationMap
	logger    *slog.Logger
}

// Option configures a Resolver
type Option func(*Resolver)

// WithLocations replaces the default location codes
func WithLocations(locations domain.LocationMap) Option {
	return func(r *Resolver) {
		r.locations = locations
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a resolver backed by the given device catalog
func New(c catalog.Catalog, opts ...Option) *Resolver {
	r := &Resolver{
		catalog:   c,
		locations: domain.DefaultLocations(),
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Hostname builds LOCATION_CODE + site + "-" + role
func Hostname(locations domain.LocationMap, location, site string, role domain.Role) (string, error) {
	code, err := locations.Code(location)
	if err != nil {
		return "", err
	}
	return code + site + "-" + role.String(), nil
}

// AssignRoles pairs each request host with its role: DST hosts in request
// order as DSTA, DSTB, then access hosts as ACC001, ACC002, ...
func AssignRoles(req *domain.TopologyRequest) ([]domain.RawHost, []domain.Role) {
	hosts := make([]domain.RawHost, 0, len(req.Nodes.DST)+len(req.Nodes.Access))
	roles := make([]domain.Role, 0, cap(hosts))

	for i, h := range req.Nodes.DST {
		hosts = append(hosts, h)
		roles = append(roles, domain.DistributionRole(i))
	}
	for i, h := range req.Nodes.Access {
		hosts = append(hosts, h)
		roles = append(roles, domain.AccessRole(i))
	}
	return hosts, roles
}

// Validate checks the request against the supported topology shape
func Validate(req *domain.TopologyRequest) error {
	if req.Topology != domain.TopologyDSTAccessL2 {
		return &domain.UnknownTopologyError{Topology: req.Topology}
	}
	if n := len(req.Nodes.DST); n != domain.DistributionCount {
		return fmt.Errorf("%w: expected %d dst nodes, got %d", domain.ErrInvalidRequest, domain.DistributionCount, n)
	}
	return nil
}

// Resolve produces the fully resolved topology for a request
func (r *Resolver) Resolve(req *domain.TopologyRequest) (*domain.Topology, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}

	downlinkSwitches := req.DownlinkSwitches()
	raws, roles := AssignRoles(req)

	attrs := make([]HostAttributes, len(raws))
	members := make([]Member, len(raws))
	for i, raw := range raws {
		spec, err := r.catalog.Lookup(raw.Device)
		if err != nil {
			return nil, err
		}

		hostname, err := Hostname(r.locations, req.Location, req.Site, roles[i])
		if err != nil {
			return nil, err
		}

		attrs[i] = Enrich(raw, roles[i], spec, downlinkSwitches)
		members[i] = Member{Hostname: hostname, Role: roles[i]}
		r.logger.Debug("enriched host",
			"hostname", hostname,
			"device", raw.Device,
			"platform", spec.Platform)
	}

	neighbors := ComputeNeighbors(members)

	topo := &domain.Topology{
		DownlinkSwitches: downlinkSwitches,
		Offline:          req.Offline,
		Hosts:            make([]domain.Host, len(raws)),
	}
	for i, raw := range raws {
		topo.Hosts[i] = merge(raw, members[i].Hostname, attrs[i], neighbors[members[i].Hostname])
	}

	r.logger.Info("resolved topology",
		"location", req.Location,
		"site", req.Site,
		"hosts", len(topo.Hosts),
		"downlink_switches", downlinkSwitches)

	return topo, nil
}

// merge combines catalog attributes with neighbor hostnames. Neighbor values
// are the top-level peer/uplinks/downlinks; catalog values stay in Connections.
func merge(raw domain.RawHost, hostname string, attrs HostAttributes, n Neighbors) domain.Host {
	return domain.Host{
		Device:      raw.Device,
		MgmtIP:      attrs.MgmtIP,
		Role:        attrs.Role,
		Hostname:    hostname,
		Platform:    attrs.Platform,
		Connections: attrs.Connections,
		Peer:        n.Peer,
		Uplinks:     n.Uplinks,
		Downlinks:   n.Downlinks,
	}
}
