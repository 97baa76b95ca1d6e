package driving

import (
	"context"

	"github.com/custodia-labs/joblistings/internal/core/domain"
)

// AuditService compares the keys of normalised files.
type AuditService interface {
	// AuditKeys returns the shared and per-file unique keys of paths.
	AuditKeys(ctx context.Context, paths []string) domain.KeyAudit
}
