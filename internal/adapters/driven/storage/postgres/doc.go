// Package postgres provides a PostgreSQL JobStore built on pgx.
//
// It mirrors the SQLite store: the same two tables, insert-or-ignore by id
// and one transaction per batch. Unique-table columns are stored as TEXT
// because scraped values vary in type between records.
package postgres
