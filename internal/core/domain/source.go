package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SourceTag identifies the scraping source a file of records came from.
// It replaces matching on file names when deciding which tables a record
// populates.
type SourceTag string

const (
	// SourceRapidJobs is the source that exports one array of postings per line.
	// It has no unique table.
	SourceRapidJobs SourceTag = "rapid_jobs"

	// SourceRapidResults is the source that exports one posting per line and
	// carries extra company and salary attributes.
	SourceRapidResults SourceTag = "rapid_results"
)

// UniqueTable describes the source-specific table for a source.
type UniqueTable struct {
	// Name is the table name, "<source>_unique_data".
	Name string

	// Columns are the record keys copied into the table, excluding id.
	Columns []string
}

var rapidResultsColumns = []string{
	"company_url_direct",
	"company_description",
	"currency",
	"job_function",
	"company_num_employees",
	"job_url_direct",
	"company_revenue",
	"job_level",
	"salary_source",
	"emails",
	"site",
	"is_remote",
	"listing_type",
	"company_industry",
	"company_url",
}

// KnownSources returns all supported source tags.
func KnownSources() []SourceTag {
	return []SourceTag{SourceRapidJobs, SourceRapidResults}
}

// UniqueTable returns the source-specific table for the tag, or nil when the
// source only populates the shared table.
func (s SourceTag) UniqueTable() *UniqueTable {
	switch s {
	case SourceRapidResults:
		return &UniqueTable{
			Name:    string(s) + "_unique_data",
			Columns: append([]string(nil), rapidResultsColumns...),
		}
	default:
		return nil
	}
}

// Valid reports whether the tag is a known source.
func (s SourceTag) Valid() bool {
	for _, known := range KnownSources() {
		if s == known {
			return true
		}
	}
	return false
}

// ParseSourceTag resolves a tag name or a source file path to a SourceTag.
// "rapid_results", "rapid_results.json" and "rapid_results_normalized.json"
// all resolve to SourceRapidResults. The jobs export is also accepted under its
// historical "rapid_jobs2" file name.
func ParseSourceTag(value string) (SourceTag, error) {
	name := strings.TrimSpace(value)
	name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	name = strings.TrimSuffix(name, NormalizedSuffix)
	name = strings.ToLower(name)
	if name == "rapid_jobs2" {
		name = string(SourceRapidJobs)
	}

	tag := SourceTag(name)
	if !tag.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedSource, value)
	}
	return tag, nil
}

// SourceFile is a normalised file together with the source it came from.
type SourceFile struct {
	Path   string
	Source SourceTag
}
