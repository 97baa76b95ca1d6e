package driving

import (
	"context"

	"github.com/custodia-labs/joblistings/internal/core/domain"
)

// PipelineRequest describes one end-to-end run.
type PipelineRequest struct {
	// Sources are the raw exports to normalise.
	Sources []domain.SourceFile

	// Database is the SQLite path or Postgres DSN to load into.
	Database string

	// Audit prints the key comparison of the normalised files.
	Audit bool
}

// PipelineResult summarises a run.
type PipelineResult struct {
	RunID   string
	Reports []*domain.IngestReport
	Audit   *domain.KeyAudit
	Stats   *domain.LoadStats
}

// PipelineService runs normalisation, auditing and loading in sequence.
type PipelineService interface {
	Run(ctx context.Context, req PipelineRequest) (*PipelineResult, error)
}
