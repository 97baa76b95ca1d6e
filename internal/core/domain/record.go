package domain

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// RawRecord is one job posting as exported by a scraping source.
// Key names and structure depend on the source.
type RawRecord map[string]any

// CanonicalRecord is a job posting after normalisation. It always exposes the
// shared fields; source-unique fields are carried alongside them.
type CanonicalRecord map[string]any

// Shared field names present on every canonical record.
const (
	FieldID             = "id"
	FieldTitle          = "title"
	FieldCompany        = "company"
	FieldLocation       = "location"
	FieldDatePosted     = "date_posted"
	FieldDescription    = "description"
	FieldEmploymentType = "employment_type"
	FieldInterval       = "interval"
	FieldCompensation   = "compensation"
	FieldJobURL         = "job_url"
)

// SharedFields lists the shared table columns in storage order.
var SharedFields = []string{
	FieldID,
	FieldTitle,
	FieldCompany,
	FieldLocation,
	FieldDatePosted,
	FieldDescription,
	FieldEmploymentType,
	FieldInterval,
	FieldCompensation,
	FieldJobURL,
}

// NormalizedSuffix is inserted before the extension of a normalised file.
const NormalizedSuffix = "_normalized"

// NormalizedPath returns the sibling path that holds the normalised form of
// source: "dir/rapid_jobs2.json" becomes "dir/rapid_jobs2_normalized.json".
func NormalizedPath(source string) string {
	ext := filepath.Ext(source)
	return strings.TrimSuffix(source, ext) + NormalizedSuffix + ext
}

// String returns the value for key rendered as text. Strings are returned as-is,
// numbers keep their JSON literal form and null or missing values are empty.
func (r CanonicalRecord) String(key string) string {
	return FormatValue(r[key])
}

// FormatValue renders a decoded JSON value as text.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		encoded, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(encoded)
	}
}

// JobListing is a row of the shared job_listings table.
type JobListing struct {
	ID             string `json:"id" validate:"required"`
	Title          string `json:"title"`
	Company        string `json:"company"`
	Location       string `json:"location"`
	DatePosted     string `json:"date_posted"`
	Description    string `json:"description"`
	EmploymentType string `json:"employment_type"`
	Interval       string `json:"interval"`
	Compensation   string `json:"compensation"`
	JobURL         string `json:"job_url"`
}

// ListingFromRecord builds the shared-table row for a canonical record.
// Every shared field must be present as a key; null values become empty strings.
func ListingFromRecord(rec CanonicalRecord) (JobListing, error) {
	var missing []string
	for _, field := range SharedFields {
		if _, ok := rec[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return JobListing{}, fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}

	return JobListing{
		ID:             rec.String(FieldID),
		Title:          rec.String(FieldTitle),
		Company:        rec.String(FieldCompany),
		Location:       rec.String(FieldLocation),
		DatePosted:     rec.String(FieldDatePosted),
		Description:    rec.String(FieldDescription),
		EmploymentType: rec.String(FieldEmploymentType),
		Interval:       rec.String(FieldInterval),
		Compensation:   rec.String(FieldCompensation),
		JobURL:         rec.String(FieldJobURL),
	}, nil
}

// PresentationView returns the listing keyed the way the presentation layer
// reads it. The title is exposed as "job_title".
func (l JobListing) PresentationView() map[string]string {
	return map[string]string{
		"job_title":       l.Title,
		"company":         l.Company,
		"location":        l.Location,
		"date_posted":     l.DatePosted,
		"description":     l.Description,
		"employment_type": l.EmploymentType,
		"interval":        l.Interval,
		"compensation":    l.Compensation,
		"job_url":         l.JobURL,
	}
}

// LoadItem is one record ready for insertion.
type LoadItem struct {
	Listing JobListing

	// Source decides whether Unique is written to a source-specific table.
	Source SourceTag

	// Unique holds the source-specific column values keyed by column name.
	// Missing columns are stored as NULL.
	Unique map[string]any
}
