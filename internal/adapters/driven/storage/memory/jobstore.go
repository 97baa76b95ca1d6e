package memory

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/custodia-labs/joblistings/internal/core/domain"
	"github.com/custodia-labs/joblistings/internal/core/ports/driven"
)

// Ensure JobStore implements the interface.
var _ driven.JobStore = (*JobStore)(nil)

// ErrNoSchema is returned when inserting before EnsureSchema.
var ErrNoSchema = errors.New("no such table: job_listings")

// JobStore is an in-memory implementation of driven.JobStore.
// Batches are applied atomically.
type JobStore struct {
	mu       sync.RWMutex
	schema   bool
	order    []string
	listings map[string]domain.JobListing
	unique   map[string]map[string]map[string]any
	closes   int
}

// NewJobStore creates a new empty in-memory job store.
func NewJobStore() *JobStore {
	return &JobStore{
		listings: make(map[string]domain.JobListing),
		unique:   make(map[string]map[string]map[string]any),
	}
}

// EnsureSchema marks the tables as created.
func (s *JobStore) EnsureSchema(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schema = true
	return nil
}

// InsertBatch inserts items, ignoring ids that are already stored.
func (s *JobStore) InsertBatch(ctx context.Context, items []domain.LoadItem) (domain.LoadStats, error) {
	var stats domain.LoadStats
	if err := ctx.Err(); err != nil {
		return stats, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.schema {
		return stats, ErrNoSchema
	}

	// Stage into copies so a failed batch leaves the store untouched.
	order := append([]string(nil), s.order...)
	listings := maps.Clone(s.listings)
	unique := make(map[string]map[string]map[string]any, len(s.unique))
	for name, rows := range s.unique {
		unique[name] = maps.Clone(rows)
	}

	for _, item := range items {
		id := item.Listing.ID
		if id == "" {
			return domain.LoadStats{}, fmt.Errorf("%w: listing without id", domain.ErrInvalidInput)
		}
		if _, ok := listings[id]; ok {
			stats.ListingsIgnored++
		} else {
			listings[id] = item.Listing
			order = append(order, id)
			stats.ListingsInserted++
		}

		table := item.Source.UniqueTable()
		if table == nil {
			continue
		}
		rows := unique[table.Name]
		if rows == nil {
			rows = make(map[string]map[string]any)
			unique[table.Name] = rows
		}
		if _, ok := rows[id]; ok {
			stats.UniqueIgnored++
			continue
		}
		row := make(map[string]any, len(table.Columns))
		for _, col := range table.Columns {
			row[col] = item.Unique[col]
		}
		rows[id] = row
		stats.UniqueInserted++
	}

	s.order, s.listings, s.unique = order, listings, unique
	return stats, nil
}

// ListListings returns every listing in insertion order.
func (s *JobStore) ListListings(_ context.Context) ([]domain.JobListing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	listings := make([]domain.JobListing, 0, len(s.order))
	for _, id := range s.order {
		listings = append(listings, s.listings[id])
	}
	return listings, nil
}

// UniqueRow returns the stored unique-table row for id.
func (s *JobStore) UniqueRow(table, id string) (map[string]any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.unique[table][id]
	return row, ok
}

// Close records the close. The data stays available for later opens.
func (s *JobStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closes++
	return nil
}

// Closes returns how many times the store was closed.
func (s *JobStore) Closes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closes
}

// Databases hands out one JobStore per DSN so data survives between opens.
type Databases struct {
	mu     sync.Mutex
	stores map[string]*JobStore
}

// NewDatabases creates an empty set of in-memory databases.
func NewDatabases() *Databases {
	return &Databases{stores: make(map[string]*JobStore)}
}

// Open returns the store for dsn, creating it on first use.
// It satisfies driven.JobStoreOpener.
func (d *Databases) Open(_ context.Context, dsn string) (driven.JobStore, error) {
	return d.Store(dsn), nil
}

// Store returns the concrete store for dsn.
func (d *Databases) Store(dsn string) *JobStore {
	d.mu.Lock()
	defer d.mu.Unlock()
	store, ok := d.stores[dsn]
	if !ok {
		store = NewJobStore()
		d.stores[dsn] = store
	}
	return store
}
