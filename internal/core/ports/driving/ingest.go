package driving

import (
	"context"

	"github.com/custodia-labs/joblistings/internal/core/domain"
)

// IngestService normalises raw JSON-lines exports.
type IngestService interface {
	// NormaliseFile writes the normalised sibling of path and reports
	// which lines were skipped.
	NormaliseFile(ctx context.Context, path string) (*domain.IngestReport, error)

	// NormaliseFiles normalises each source in order. Sources that cannot be
	// opened are logged and left out of the result.
	NormaliseFiles(ctx context.Context, sources []domain.SourceFile) ([]domain.SourceFile, []*domain.IngestReport)
}
