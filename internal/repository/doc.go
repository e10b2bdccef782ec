// Package repository defines the data access interfaces for topogen.
//
// Every successful generation can be recorded as a snapshot: the request
// placement (location, site), the resolved hosts and their neighbor links.
// Snapshots let operators compare what was generated over time without
// keeping old inventory files around.
//
// # SQLite Implementation
//
// The sqlite subpackage stores snapshots in a single SQLite file using the
// pure-Go modernc driver. Hosts are stored with indexed columns for the
// fields that are queried (mgmt_ip, hostname, role) plus a JSON column
// holding the complete resolved host.
//
// # Testing
//
// The sqlite repository is tested with in-memory databases.
package repository
