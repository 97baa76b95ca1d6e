package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/joblistings/internal/adapters/driven/storage/sqlite/schema"
	"github.com/custodia-labs/joblistings/internal/core/domain"
	"github.com/custodia-labs/joblistings/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.JobStore = (*Store)(nil)

// Store is a SQLite-backed job listing store.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the SQLite database file at path.
// Parent directories are created as needed.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: database path is empty", domain.ErrInvalidInput)
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One writer, one connection per loader call.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Opener adapts Open to driven.JobStoreOpener.
func Opener(ctx context.Context, dsn string) (driven.JobStore, error) {
	return Open(ctx, dsn)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// EnsureSchema creates the job listing tables if they are absent.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema.SQL); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}

// Tables returns the names of the user tables in the database, sorted.
func (s *Store) Tables(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("querying tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning table name: %w", err)
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

const insertListing = `
	INSERT OR IGNORE INTO job_listings (
		id, title, company, location, date_posted, description,
		employment_type, interval, compensation, job_url
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// InsertBatch inserts all items in one transaction. Existing ids are left
// untouched and counted as ignored.
func (s *Store) InsertBatch(ctx context.Context, items []domain.LoadItem) (domain.LoadStats, error) {
	var stats domain.LoadStats

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return stats, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	listingStmt, err := tx.PrepareContext(ctx, insertListing)
	if err != nil {
		return stats, fmt.Errorf("preparing statement: %w", err)
	}
	defer listingStmt.Close()

	uniqueStmts := make(map[domain.SourceTag]*sql.Stmt)
	defer func() {
		for _, stmt := range uniqueStmts {
			stmt.Close()
		}
	}()

	for _, item := range items {
		l := item.Listing
		res, err := listingStmt.ExecContext(ctx, l.ID, l.Title, l.Company, l.Location,
			l.DatePosted, l.Description, l.EmploymentType, l.Interval, l.Compensation, l.JobURL)
		if err != nil {
			return stats, fmt.Errorf("inserting listing %s: %w", l.ID, err)
		}
		if inserted(res) {
			stats.ListingsInserted++
		} else {
			stats.ListingsIgnored++
		}

		table := item.Source.UniqueTable()
		if table == nil {
			continue
		}
		stmt, ok := uniqueStmts[item.Source]
		if !ok {
			stmt, err = tx.PrepareContext(ctx, insertUniqueSQL(table))
			if err != nil {
				return stats, fmt.Errorf("preparing %s statement: %w", table.Name, err)
			}
			uniqueStmts[item.Source] = stmt
		}

		args := make([]any, 0, len(table.Columns)+1)
		args = append(args, l.ID)
		for _, col := range table.Columns {
			args = append(args, sqlValue(item.Unique[col]))
		}
		res, err = stmt.ExecContext(ctx, args...)
		if err != nil {
			return stats, fmt.Errorf("inserting %s row %s: %w", table.Name, l.ID, err)
		}
		if inserted(res) {
			stats.UniqueInserted++
		} else {
			stats.UniqueIgnored++
		}
	}

	if err := tx.Commit(); err != nil {
		return stats, fmt.Errorf("committing transaction: %w", err)
	}
	return stats, nil
}

// ListListings returns every shared row in insertion order.
func (s *Store) ListListings(ctx context.Context) ([]domain.JobListing, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, company, location, date_posted, description,
		       employment_type, interval, compensation, job_url
		FROM job_listings
		ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("querying listings: %w", err)
	}
	defer rows.Close()

	var listings []domain.JobListing
	for rows.Next() {
		var (
			l    domain.JobListing
			cols [9]sql.NullString
		)
		if err := rows.Scan(&l.ID, &cols[0], &cols[1], &cols[2], &cols[3], &cols[4],
			&cols[5], &cols[6], &cols[7], &cols[8]); err != nil {
			return nil, fmt.Errorf("scanning listing: %w", err)
		}
		l.Title = cols[0].String
		l.Company = cols[1].String
		l.Location = cols[2].String
		l.DatePosted = cols[3].String
		l.Description = cols[4].String
		l.EmploymentType = cols[5].String
		l.Interval = cols[6].String
		l.Compensation = cols[7].String
		l.JobURL = cols[8].String
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

func insertUniqueSQL(table *domain.UniqueTable) string {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(table.Columns)+1), ", ")
	return fmt.Sprintf("INSERT OR IGNORE INTO %s (id, %s) VALUES (%s)",
		table.Name, strings.Join(table.Columns, ", "), placeholders)
}

func inserted(res sql.Result) bool {
	n, err := res.RowsAffected()
	return err == nil && n > 0
}

// sqlValue converts a decoded JSON value into a SQLite bind argument.
// Booleans become 0/1 and arrays or objects are stored as JSON text.
func sqlValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return val
	case json.Number:
		if n, err := strconv.ParseInt(val.String(), 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(val.String(), 64); err == nil {
			return f
		}
		return val.String()
	case bool:
		if val {
			return int64(1)
		}
		return int64(0)
	case float64, int, int64:
		return val
	default:
		return domain.FormatValue(val)
	}
}
