package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"topogen/internal/domain"
	"topogen/internal/repository"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a snapshot does not exist
var ErrNotFound = errors.New("snapshot not found")

// Repository implements repository.Repository using SQLite
type Repository struct {
	db *sql.DB
}

var _ repository.Repository = (*Repository)(nil)

// New creates a new SQLite repository
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps :memory: databases alive and serializes writes
	db.SetMaxOpenConns(1)

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	PRAGMA foreign_keys = ON;
	PRAGMA busy_timeout = 5000;

	CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL,
		site TEXT NOT NULL,
		downlink_switches INTEGER NOT NULL,
		offline INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS snapshot_hosts (
		snapshot_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		mgmt_ip TEXT NOT NULL,
		hostname TEXT NOT NULL,
		role TEXT NOT NULL,
		device TEXT NOT NULL,
		platform TEXT NOT NULL,
		data JSON NOT NULL,
		PRIMARY KEY (snapshot_id, mgmt_ip),
		FOREIGN KEY (snapshot_id) REFERENCES snapshots(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS snapshot_links (
		snapshot_id INTEGER NOT NULL,
		id TEXT NOT NULL,
		from_host TEXT NOT NULL,
		to_host TEXT NOT NULL,
		type TEXT NOT NULL,
		position INTEGER NOT NULL,
		PRIMARY KEY (snapshot_id, id),
		FOREIGN KEY (snapshot_id) REFERENCES snapshots(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_snapshot_hosts_hostname ON snapshot_hosts(hostname);
	CREATE INDEX IF NOT EXISTS idx_snapshots_site ON snapshots(location, site);
	`

	_, err := r.db.Exec(schema)
	return err
}

// SaveSnapshot stores a resolved topology and returns the new snapshot ID.
// snap.ID and snap.HostCount are filled in; a zero CreatedAt is set to now.
func (r *Repository) SaveSnapshot(ctx context.Context, snap *domain.Snapshot, topo *domain.Topology) (int64, error) {
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO snapshots (source, location, site, downlink_switches, offline, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, snap.Source, snap.Location, snap.Site, topo.DownlinkSwitches, boolToInt(topo.Offline), snap.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert snapshot: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read snapshot id: %w", err)
	}

	hostStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO snapshot_hosts (snapshot_id, position, mgmt_ip, hostname, role, device, platform, data)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare host statement: %w", err)
	}
	defer hostStmt.Close()

	for i, host := range topo.Hosts {
		data, err := json.Marshal(host)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal host %s: %w", host.MgmtIP, err)
		}
		if _, err := hostStmt.ExecContext(ctx, id, i, host.MgmtIP, host.Hostname, host.Role.String(), host.Device, host.Platform, string(data)); err != nil {
			return 0, fmt.Errorf("failed to insert host %s: %w", host.MgmtIP, err)
		}
	}

	linkStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO snapshot_links (snapshot_id, id, from_host, to_host, type, position)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare link statement: %w", err)
	}
	defer linkStmt.Close()

	for i, link := range topo.Links() {
		if _, err := linkStmt.ExecContext(ctx, id, link.ID, link.From, link.To, string(link.Type), i); err != nil {
			return 0, fmt.Errorf("failed to insert link %s: %w", link.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	snap.ID = id
	snap.DownlinkSwitches = topo.DownlinkSwitches
	snap.Offline = topo.Offline
	snap.HostCount = len(topo.Hosts)
	return id, nil
}

// DeleteSnapshot removes a snapshot and its hosts and links
func (r *Repository) DeleteSnapshot(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("snapshot %d: %w", id, ErrNotFound)
	}
	return nil
}

const snapshotColumns = `
	s.id, s.source, s.location, s.site, s.downlink_switches, s.offline, s.created_at,
	(SELECT COUNT(*) FROM snapshot_hosts h WHERE h.snapshot_id = s.id)
`

// ListSnapshots returns the most recent snapshots first. A non-positive
// limit returns all of them.
func (r *Repository) ListSnapshots(ctx context.Context, limit int) ([]domain.Snapshot, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+snapshotColumns+`
		FROM snapshots s
		ORDER BY s.id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []domain.Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, *snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshots: %w", err)
	}

	return snaps, nil
}

// GetSnapshot loads a snapshot and its resolved topology
func (r *Repository) GetSnapshot(ctx context.Context, id int64) (*domain.Snapshot, *domain.Topology, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+snapshotColumns+` FROM snapshots s WHERE s.id = ?`, id)
	snap, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("snapshot %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, nil, err
	}

	topo, err := r.loadTopology(ctx, snap)
	if err != nil {
		return nil, nil, err
	}
	return snap, topo, nil
}

// LatestSnapshot loads the most recent snapshot
func (r *Repository) LatestSnapshot(ctx context.Context) (*domain.Snapshot, *domain.Topology, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM snapshots ORDER BY id DESC LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query latest snapshot: %w", err)
	}
	return r.GetSnapshot(ctx, id)
}

// ListLinks returns the neighbor links stored with a snapshot
func (r *Repository) ListLinks(ctx context.Context, snapshotID int64) ([]domain.Link, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, from_host, to_host, type
		FROM snapshot_links
		WHERE snapshot_id = ?
		ORDER BY position
	`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("failed to query links: %w", err)
	}
	defer rows.Close()

	var links []domain.Link
	for rows.Next() {
		var (
			l        domain.Link
			linkType string
		)
		if err := rows.Scan(&l.ID, &l.From, &l.To, &linkType); err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		l.Type = domain.LinkType(linkType)
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating links: %w", err)
	}
	return links, nil
}

func (r *Repository) loadTopology(ctx context.Context, snap *domain.Snapshot) (*domain.Topology, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT data FROM snapshot_hosts
		WHERE snapshot_id = ?
		ORDER BY position
	`, snap.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query hosts: %w", err)
	}
	defer rows.Close()

	topo := &domain.Topology{
		DownlinkSwitches: snap.DownlinkSwitches,
		Offline:          snap.Offline,
		Hosts:            make([]domain.Host, 0, snap.HostCount),
	}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan host: %w", err)
		}
		var host domain.Host
		if err := json.Unmarshal([]byte(data), &host); err != nil {
			return nil, fmt.Errorf("failed to unmarshal host data: %w", err)
		}
		topo.Hosts = append(topo.Hosts, host)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hosts: %w", err)
	}
	return topo, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(s scanner) (*domain.Snapshot, error) {
	var (
		snap    domain.Snapshot
		offline int
	)
	if err := s.Scan(&snap.ID, &snap.Source, &snap.Location, &snap.Site,
		&snap.DownlinkSwitches, &offline, &snap.CreatedAt, &snap.HostCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan snapshot: %w", err)
	}
	snap.Offline = offline != 0
	return &snap, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}
