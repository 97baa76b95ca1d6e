package services

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/joblistings/internal/core/domain"
	"github.com/custodia-labs/joblistings/internal/core/ports/driven"
	"github.com/custodia-labs/joblistings/internal/core/ports/driving"
	"github.com/custodia-labs/joblistings/internal/logger"
)

// Ensure LoaderService implements the interface.
var _ driving.LoaderService = (*LoaderService)(nil)

// LoaderService loads normalised files into a JobStore. Every call opens its
// own store and closes it before returning.
type LoaderService struct {
	open     driven.JobStoreOpener
	validate *validator.Validate
}

// NewLoaderService creates a new loader service.
func NewLoaderService(open driven.JobStoreOpener) *LoaderService {
	return &LoaderService{
		open:     open,
		validate: validator.New(),
	}
}

// CreateDatabase opens or creates the store at dsn and ensures its tables exist.
func (s *LoaderService) CreateDatabase(ctx context.Context, dsn string) error {
	logger.Info("Creating database %s", dsn)

	store, err := s.openStore(ctx, dsn)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		logger.Error("Database error: %v", err)
		return fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("%s created", dsn)
	return nil
}

// PopulateDatabase reads every record of files and inserts them in a single
// transaction. Ids already stored are skipped. Any unreadable line, missing
// shared field or store error aborts the call without committing.
func (s *LoaderService) PopulateDatabase(
	ctx context.Context,
	dsn string,
	files []domain.SourceFile,
) (*domain.LoadStats, error) {
	logger.Info("Populating %s", dsn)

	items, err := s.readItems(ctx, files)
	if err != nil {
		logger.Error("Populate aborted: %v", err)
		return nil, err
	}

	store, err := s.openStore(ctx, dsn)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	stats, err := store.InsertBatch(ctx, items)
	if err != nil {
		logger.Error("Database error: %v", err)
		return nil, fmt.Errorf("inserting listings: %w", err)
	}
	stats.RecordsRead = len(items)

	logger.Info("%s populated: %d inserted, %d already present",
		dsn, stats.ListingsInserted, stats.ListingsIgnored)
	return &stats, nil
}

// Listings returns every stored listing keyed by id.
func (s *LoaderService) Listings(ctx context.Context, dsn string) (map[string]domain.JobListing, error) {
	store, err := s.openStore(ctx, dsn)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	rows, err := store.ListListings(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing job listings: %w", err)
	}

	listings := make(map[string]domain.JobListing, len(rows))
	for _, row := range rows {
		listings[row.ID] = row
	}
	return listings, nil
}

func (s *LoaderService) openStore(ctx context.Context, dsn string) (driven.JobStore, error) {
	if s.open == nil {
		return nil, fmt.Errorf("%w: no store configured", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("%w: database path is empty", domain.ErrInvalidInput)
	}
	store, err := s.open(ctx, dsn)
	if err != nil {
		logger.Error("Database error: %v", err)
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return store, nil
}

func (s *LoaderService) readItems(ctx context.Context, files []domain.SourceFile) ([]domain.LoadItem, error) {
	var items []domain.LoadItem
	for _, file := range files {
		fileItems, err := s.readFile(ctx, file)
		if err != nil {
			return nil, err
		}
		items = append(items, fileItems...)
	}
	return items, nil
}

func (s *LoaderService) readFile(ctx context.Context, file domain.SourceFile) ([]domain.LoadItem, error) {
	if !file.Source.Valid() {
		return nil, fmt.Errorf("%s: %w: %q", file.Path, domain.ErrUnsupportedSource, file.Source)
	}

	f, err := os.Open(file.Path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", file.Path, err)
	}
	defer f.Close()

	table := file.Source.UniqueTable()

	var items []domain.LoadItem
	err = eachLine(f, func(lineNo int, line string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return nil
		}

		item, err := s.buildItem(line, file.Source, table)
		if err != nil {
			return domain.LineError{File: file.Path, Line: lineNo, Err: err}
		}
		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *LoaderService) buildItem(line string, source domain.SourceTag, table *domain.UniqueTable) (domain.LoadItem, error) {
	raw, err := decodeObject(line)
	if err != nil {
		return domain.LoadItem{}, fmt.Errorf("%w: %v", domain.ErrInvalidRecord, err)
	}
	rec := domain.CanonicalRecord(raw)

	listing, err := domain.ListingFromRecord(rec)
	if err != nil {
		return domain.LoadItem{}, err
	}
	if err := s.validate.Struct(listing); err != nil {
		return domain.LoadItem{}, fmt.Errorf("%w: %v", domain.ErrInvalidRecord, err)
	}

	item := domain.LoadItem{Listing: listing, Source: source}
	if table != nil {
		item.Unique = make(map[string]any, len(table.Columns))
		for _, col := range table.Columns {
			if v, ok := rec[col]; ok {
				item.Unique[col] = v
			}
		}
	}
	return item, nil
}
