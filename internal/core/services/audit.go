package services

import (
	"context"
	"errors"
	"io/fs"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/custodia-labs/joblistings/internal/core/domain"
	"github.com/custodia-labs/joblistings/internal/core/ports/driving"
	"github.com/custodia-labs/joblistings/internal/logger"
)

// Ensure AuditService implements the interface.
var _ driving.AuditService = (*AuditService)(nil)

// AuditService compares the top-level keys of normalised files. Its output
// is diagnostic only.
type AuditService struct{}

// NewAuditService creates a new audit service.
func NewAuditService() *AuditService {
	return &AuditService{}
}

// AuditKeys collects the distinct keys of every file, the keys all files
// share and the keys unique to each file. Unreadable files and lines are
// logged; an unreadable file has an empty key set.
func (s *AuditService) AuditKeys(ctx context.Context, paths []string) domain.KeyAudit {
	sets := make([]map[string]struct{}, len(paths))
	for i, path := range paths {
		sets[i] = collectKeys(ctx, path)
	}

	var shared map[string]struct{}
	for i, set := range sets {
		if i == 0 {
			shared = maps.Clone(set)
			continue
		}
		for key := range shared {
			if _, ok := set[key]; !ok {
				delete(shared, key)
			}
		}
	}

	audit := domain.KeyAudit{
		Shared: sortedKeys(shared),
		Files:  make([]domain.FileKeys, len(paths)),
	}
	for i, path := range paths {
		unique := make(map[string]struct{})
		for key := range sets[i] {
			if _, ok := shared[key]; !ok {
				unique[key] = struct{}{}
			}
		}
		audit.Files[i] = domain.FileKeys{
			Path:   path,
			Keys:   sortedKeys(sets[i]),
			Unique: sortedKeys(unique),
		}
	}
	return audit
}

func collectKeys(ctx context.Context, path string) map[string]struct{} {
	keys := make(map[string]struct{})

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("%s not found", path)
		} else {
			logger.Warn("opening %s: %v", path, err)
		}
		return keys
	}
	defer f.Close()

	err = eachLine(f, func(lineNo int, line string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return nil
		}
		rec, err := decodeObject(line)
		if err != nil {
			logger.Warn("Invalid format: %s:%d is not a JSON object: %v", path, lineNo, err)
			return nil
		}
		for key := range rec {
			keys[key] = struct{}{}
		}
		return nil
	})
	if err != nil {
		logger.Warn("reading %s: %v", path, err)
	}
	return keys
}

func sortedKeys(set map[string]struct{}) []string {
	return slices.Sorted(maps.Keys(set))
}
