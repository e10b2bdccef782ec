// Package domain defines the core types for the topogen inventory generator.
//
// This package contains the request, role, host and device specification types
// that describe a two-tier distribution/access (DST/ACC) network topology.
//
// # Request
//
// TopologyRequest is the declarative input: topology name, location, site code,
// offline flag and the DST/ACC device lists. Each RawHost carries only a device
// model identifier and a management address.
//
// # Roles
//
// Role is a tagged value: either a distribution instance (DSTA, DSTB) or an
// access index (ACC001, ACC002, ...). Tier classifies a role without inspecting
// its rendered string.
//
// # Hosts
//
// Host is a fully resolved device: role, generated hostname, platform, the
// catalog-derived TopologyConnections and the neighbor-derived peer, uplinks
// and downlinks. Both link views are kept side by side.
//
// # Errors
//
// Every failure a generation can hit has its own error type carrying the
// offending value, so callers can match them with errors.As.
//
// # Design Principles
//
// - Immutable value objects where possible
// - No file, database or external dependencies
package domain
