// Package sqlite provides the file-backed SQLite implementation of driven.JobStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// Two tables are created from the embedded schema/schema.sql:
//
//   - job_listings: fields shared by every source, keyed by id
//   - rapid_results_unique_data: attributes only the rapid_results source carries
//
// The unique table is related to job_listings by id without a foreign key
// constraint. Rows are only ever inserted with INSERT OR IGNORE.
//
// # Connections
//
// A Store holds a single connection and is meant to be opened and closed
// within one loader call.
package sqlite
