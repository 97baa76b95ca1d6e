package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/joblistings/internal/core/domain"
	"github.com/custodia-labs/joblistings/internal/core/ports/driving"
	"github.com/custodia-labs/joblistings/internal/logger"
)

// Ensure PipelineService implements the interface.
var _ driving.PipelineService = (*PipelineService)(nil)

// PipelineService runs a full normalise, audit and load pass.
type PipelineService struct {
	ingest driving.IngestService
	audit  driving.AuditService
	loader driving.LoaderService
	newID  func() string
}

// NewPipelineService creates a new pipeline service.
func NewPipelineService(
	ingest driving.IngestService,
	audit driving.AuditService,
	loader driving.LoaderService,
) *PipelineService {
	return &PipelineService{
		ingest: ingest,
		audit:  audit,
		loader: loader,
		newID:  func() string { return uuid.NewString()[:8] },
	}
}

// Run normalises every source, optionally audits the results, then creates
// and populates the database. Sources that fail to normalise are skipped;
// database failures abort the run.
func (s *PipelineService) Run(ctx context.Context, req driving.PipelineRequest) (*driving.PipelineResult, error) {
	if req.Database == "" {
		return nil, fmt.Errorf("%w: database path is empty", domain.ErrInvalidInput)
	}
	if len(req.Sources) == 0 {
		return nil, fmt.Errorf("%w: no sources configured", domain.ErrInvalidInput)
	}

	result := &driving.PipelineResult{RunID: s.newID()}
	logger.SetRunID(result.RunID)
	defer logger.SetRunID("")

	logger.Section("Normalise")
	normalised, reports := s.ingest.NormaliseFiles(ctx, req.Sources)
	result.Reports = reports

	if req.Audit && s.audit != nil {
		logger.Section("Audit")
		paths := make([]string, len(normalised))
		for i, f := range normalised {
			paths[i] = f.Path
		}
		audit := s.audit.AuditKeys(ctx, paths)
		result.Audit = &audit
	}

	logger.Section("Load")
	if err := s.loader.CreateDatabase(ctx, req.Database); err != nil {
		return result, err
	}
	stats, err := s.loader.PopulateDatabase(ctx, req.Database, normalised)
	if err != nil {
		return result, err
	}
	result.Stats = stats
	return result, nil
}
