// Package schema embeds the SQL that creates the job listing tables.
// Statements use CREATE TABLE IF NOT EXISTS and are safe to re-run.
package schema

import _ "embed"

// SQL creates the shared job_listings table and the source-specific tables.
//
//go:embed schema.sql
var SQL string
