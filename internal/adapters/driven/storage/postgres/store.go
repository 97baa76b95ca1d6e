package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/custodia-labs/joblistings/internal/adapters/driven/storage/postgres/schema"
	"github.com/custodia-labs/joblistings/internal/core/domain"
	"github.com/custodia-labs/joblistings/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.JobStore = (*Store)(nil)

// Store is a PostgreSQL-backed job listing store.
type Store struct {
	pool *pgxpool.Pool
}

// IsDSN reports whether dsn names a PostgreSQL database.
func IsDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Open connects to the database at databaseURL and verifies the connection.
func Open(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Opener adapts Open to driven.JobStoreOpener.
func Opener(ctx context.Context, dsn string) (driven.JobStore, error) {
	return Open(ctx, dsn)
}

// Close closes the connection pool.
func (s *Store) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// EnsureSchema creates the job listing tables if they are absent.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema.SQL); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

const insertListing = `
	INSERT INTO job_listings (
		id, title, company, location, date_posted, description,
		employment_type, "interval", compensation, job_url
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (id) DO NOTHING`

// InsertBatch inserts all items in one transaction. Existing ids are left
// untouched and counted as ignored.
func (s *Store) InsertBatch(ctx context.Context, items []domain.LoadItem) (stats domain.LoadStats, err error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) && err == nil {
			err = fmt.Errorf("failed to roll back: %w", rErr)
		}
	}()

	for _, item := range items {
		l := item.Listing
		tag, err := tx.Exec(ctx, insertListing, l.ID, l.Title, l.Company, l.Location,
			l.DatePosted, l.Description, l.EmploymentType, l.Interval, l.Compensation, l.JobURL)
		if err != nil {
			return stats, fmt.Errorf("failed to insert listing %s: %w", l.ID, err)
		}
		if tag.RowsAffected() > 0 {
			stats.ListingsInserted++
		} else {
			stats.ListingsIgnored++
		}

		table := item.Source.UniqueTable()
		if table == nil {
			continue
		}
		args := make([]any, 0, len(table.Columns)+1)
		args = append(args, l.ID)
		for _, col := range table.Columns {
			args = append(args, textValue(item.Unique[col]))
		}
		tag, err = tx.Exec(ctx, insertUniqueSQL(table), args...)
		if err != nil {
			return stats, fmt.Errorf("failed to insert %s row %s: %w", table.Name, l.ID, err)
		}
		if tag.RowsAffected() > 0 {
			stats.UniqueInserted++
		} else {
			stats.UniqueIgnored++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return stats, fmt.Errorf("failed to commit: %w", err)
	}
	return stats, nil
}

// ListListings returns every shared row in insertion order.
func (s *Store) ListListings(ctx context.Context) ([]domain.JobListing, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, COALESCE(title, ''), COALESCE(company, ''), COALESCE(location, ''),
		       COALESCE(date_posted, ''), COALESCE(description, ''),
		       COALESCE(employment_type, ''), COALESCE("interval", ''),
		       COALESCE(compensation, ''), COALESCE(job_url, '')
		FROM job_listings
		ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer rows.Close()

	var listings []domain.JobListing
	for rows.Next() {
		var l domain.JobListing
		if err := rows.Scan(&l.ID, &l.Title, &l.Company, &l.Location, &l.DatePosted,
			&l.Description, &l.EmploymentType, &l.Interval, &l.Compensation, &l.JobURL); err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

func insertUniqueSQL(table *domain.UniqueTable) string {
	placeholders := make([]string, len(table.Columns)+1)
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (id, %s) VALUES (%s) ON CONFLICT (id) DO NOTHING",
		table.Name, strings.Join(table.Columns, ", "), strings.Join(placeholders, ", "))
}

// textValue renders a decoded JSON value for a TEXT column. Null stays NULL.
func textValue(v any) any {
	if v == nil {
		return nil
	}
	return domain.FormatValue(v)
}
