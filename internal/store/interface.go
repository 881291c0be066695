package store

import (
	"context"

	"github.com/baselomar044-dev/qs-empire/internal/models"
)

// SnapshotStore defines the contract for the remote versioned document store
type SnapshotStore interface {
	// Publish overwrites the remote document with the given snapshot,
	// preconditioned on the revision read just before the write. A stale
	// revision fails the write outright; there is no merge and no retry.
	Publish(ctx context.Context, snapshot *models.Snapshot) error
}

// OpportunityStore defines the contract for the local opportunity database
type OpportunityStore interface {
	Save(ctx context.Context, opportunities []models.Opportunity) error
	List(ctx context.Context) ([]models.Opportunity, error)
	Close() error
}
