package repository

import (
	"context"

	"topogen/internal/domain"
)

// Repository defines the interface for generated inventory snapshots
type Repository interface {
	// Write operations
	SaveSnapshot(ctx context.Context, snap *domain.Snapshot, topo *domain.Topology) (int64, error)
	DeleteSnapshot(ctx context.Context, id int64) error

	// Read operations
	ListSnapshots(ctx context.Context, limit int) ([]domain.Snapshot, error)
	GetSnapshot(ctx context.Context, id int64) (*domain.Snapshot, *domain.Topology, error)
	LatestSnapshot(ctx context.Context) (*domain.Snapshot, *domain.Topology, error)
	ListLinks(ctx context.Context, snapshotID int64) ([]domain.Link, error)

	// Close releases resources
	Close() error
}
