package services

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/joblistings/internal/core/domain"
	"github.com/custodia-labs/joblistings/internal/logger"
	"github.com/custodia-labs/joblistings/internal/normalisers/jobposting"
	"github.com/custodia-labs/joblistings/internal/normalisers/location"
)

func newNormaliser() *jobposting.Normaliser {
	return jobposting.New(location.NewResolver(location.Options{}))
}

// captureLogs redirects logger output to a buffer for the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })
	return &buf
}

// writeFile writes content to name inside a fresh temp dir.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// copyFixture copies a testdata file into a temp dir so outputs land there.
func copyFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return writeFile(t, name, string(data))
}

// readRecords decodes every line of a JSON-lines file.
func readRecords(t *testing.T, path string) []domain.CanonicalRecord {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var recs []domain.CanonicalRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		var rec domain.CanonicalRecord
		dec := json.NewDecoder(bytes.NewReader(scanner.Bytes()))
		dec.UseNumber()
		require.NoError(t, dec.Decode(&rec))
		recs = append(recs, rec)
	}
	require.NoError(t, scanner.Err())
	return recs
}

// canonicalLine renders a complete normalised record as one JSON line.
func canonicalLine(id, title string) string {
	rec := map[string]any{
		"id":              id,
		"title":           title,
		"company":         "Epic",
		"location":        "Verona, WI, United States",
		"date_posted":     "2025-02-03",
		"description":     "desc",
		"employment_type": "Full-time",
		"interval":        "yearly",
		"compensation":    "",
		"job_url":         "",
	}
	data, _ := json.Marshal(rec)
	return string(data)
}
