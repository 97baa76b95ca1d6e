package services

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/custodia-labs/joblistings/internal/core/domain"
	"github.com/custodia-labs/joblistings/internal/core/ports/driven"
	"github.com/custodia-labs/joblistings/internal/core/ports/driving"
	"github.com/custodia-labs/joblistings/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService normalises raw JSON-lines exports line by line.
type IngestService struct {
	normaliser driven.RecordNormaliser
}

// NewIngestService creates a new ingest service.
func NewIngestService(normaliser driven.RecordNormaliser) *IngestService {
	return &IngestService{normaliser: normaliser}
}

// NormaliseFile reads path and writes one normalised record per line to its
// "_normalized" sibling. Lines that fail to decode are logged, recorded in
// the report and skipped.
func (s *IngestService) NormaliseFile(ctx context.Context, path string) (*domain.IngestReport, error) {
	if s.normaliser == nil {
		return nil, fmt.Errorf("%w: no normaliser configured", domain.ErrInvalidInput)
	}

	in, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return nil, fmt.Errorf("opening source: %w", err)
	}
	defer in.Close()

	report := &domain.IngestReport{
		Source: path,
		Output: domain.NormalizedPath(path),
	}

	out, err := os.Create(report.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	defer out.Close()

	w := bufio.NewWriterSize(out, 64*1024)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	logger.Debug("normalising %s -> %s", path, report.Output)

	err = eachLine(in, func(lineNo int, line string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return nil
		}
		report.LinesRead++

		records, err := decodeLine(line)
		if err != nil {
			lineErr := domain.LineError{File: path, Line: lineNo, Err: err}
			logger.Warn("Error parsing line in %s: %v", path, lineErr)
			report.Errors = append(report.Errors, lineErr)
			return nil
		}

		for _, raw := range records {
			if err := enc.Encode(s.normaliser.Normalise(raw)); err != nil {
				return fmt.Errorf("writing record: %w", err)
			}
			report.RecordsWritten++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := w.Flush(); err != nil {
		return nil, fmt.Errorf("flushing output: %w", err)
	}
	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("closing output: %w", err)
	}

	logger.Info("normalised %s: %d records from %d lines, %d skipped",
		path, report.RecordsWritten, report.LinesRead, len(report.Errors))
	return report, nil
}

// NormaliseFiles normalises each source in order and returns the produced
// files tagged with their source. A source that cannot be processed is
// logged and contributes nothing.
func (s *IngestService) NormaliseFiles(
	ctx context.Context,
	sources []domain.SourceFile,
) ([]domain.SourceFile, []*domain.IngestReport) {
	normalised := make([]domain.SourceFile, 0, len(sources))
	reports := make([]*domain.IngestReport, 0, len(sources))

	for _, src := range sources {
		report, err := s.NormaliseFile(ctx, src.Path)
		if err != nil {
			logger.Warn("skipping %s: %v", src.Path, err)
			continue
		}
		reports = append(reports, report)
		normalised = append(normalised, domain.SourceFile{Path: report.Output, Source: src.Source})
	}
	return normalised, reports
}
