package driven

import (
	"context"

	"github.com/custodia-labs/joblistings/internal/core/domain"
)

// JobStore persists canonical job listings.
// A store is opened, used and closed within a single loader call.
type JobStore interface {
	// EnsureSchema creates the shared and source-specific tables if they
	// do not exist. Calling it on an existing store is a no-op.
	EnsureSchema(ctx context.Context) error

	// InsertBatch inserts every item inside one transaction using
	// insert-or-ignore semantics keyed by listing id. Items whose source has a
	// unique table are also written there. Any error rolls back the batch.
	InsertBatch(ctx context.Context, items []domain.LoadItem) (domain.LoadStats, error)

	// ListListings returns every row of the shared table in insertion order.
	ListListings(ctx context.Context) ([]domain.JobListing, error)

	// Close releases the underlying connection.
	Close() error
}

// JobStoreOpener opens a JobStore addressed by a file path or DSN.
type JobStoreOpener func(ctx context.Context, dsn string) (JobStore, error)
