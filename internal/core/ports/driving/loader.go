package driving

import (
	"context"

	"github.com/custodia-labs/joblistings/internal/core/domain"
)

// LoaderService loads normalised files into the relational store.
type LoaderService interface {
	// CreateDatabase opens or creates the store at dsn and ensures both
	// tables exist.
	CreateDatabase(ctx context.Context, dsn string) error

	// PopulateDatabase inserts every record of files, ignoring ids that are
	// already stored. The whole call fails on the first error.
	PopulateDatabase(ctx context.Context, dsn string, files []domain.SourceFile) (*domain.LoadStats, error)

	// Listings returns all stored listings keyed by id.
	Listings(ctx context.Context, dsn string) (map[string]domain.JobListing, error)
}
