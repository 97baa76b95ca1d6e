// Package schema embeds the PostgreSQL table definitions.
package schema

import _ "embed"

// SQL creates the job listing tables if they do not exist.
//
//go:embed schema.sql
var SQL string
