// Package storage selects a JobStore implementation from a database DSN.
package storage

import (
	"context"

	"github.com/custodia-labs/joblistings/internal/adapters/driven/storage/postgres"
	"github.com/custodia-labs/joblistings/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/joblistings/internal/core/ports/driven"
	"github.com/custodia-labs/joblistings/internal/logger"
)

// Ensure Open satisfies the opener signature.
var _ driven.JobStoreOpener = Open

// Open opens a PostgreSQL store for postgres:// and postgresql:// DSNs and
// treats anything else as a SQLite file path.
func Open(ctx context.Context, dsn string) (driven.JobStore, error) {
	kind := backend(dsn)
	logger.Debug("opening %s store %s", kind, dsn)
	if kind == "postgres" {
		return postgres.Opener(ctx, dsn)
	}
	return sqlite.Opener(ctx, dsn)
}

func backend(dsn string) string {
	if postgres.IsDSN(dsn) {
		return "postgres"
	}
	return "sqlite"
}
