package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditService_SharedAndUnique(t *testing.T) {
	captureLogs(t)
	jobs := writeFile(t, "rapid_jobs2_normalized.json",
		`{"id":"a","title":"t","job_providers":[]}`+"\n"+`{"id":"b","company_logo":"x"}`+"\n")
	results := writeFile(t, "rapid_results_normalized.json",
		`{"id":"c","title":"t","currency":"USD"}`+"\n")

	audit := NewAuditService().AuditKeys(context.Background(), []string{jobs, results})

	assert.Equal(t, []string{"id", "title"}, audit.Shared)
	require.Len(t, audit.Files, 2)

	assert.Equal(t, jobs, audit.Files[0].Path)
	assert.Equal(t, []string{"company_logo", "id", "job_providers", "title"}, audit.Files[0].Keys)
	assert.Equal(t, []string{"company_logo", "job_providers"}, audit.Files[0].Unique)

	assert.Equal(t, []string{"currency", "id", "title"}, audit.Files[1].Keys)
	assert.Equal(t, []string{"currency"}, audit.Files[1].Unique)
}

func TestAuditService_SingleFile(t *testing.T) {
	captureLogs(t)
	path := writeFile(t, "rapid_jobs2_normalized.json", `{"b":1,"a":2}`)

	audit := NewAuditService().AuditKeys(context.Background(), []string{path})

	assert.Equal(t, []string{"a", "b"}, audit.Shared)
	assert.Empty(t, audit.Files[0].Unique)
}

func TestAuditService_MissingFile(t *testing.T) {
	logs := captureLogs(t)
	present := writeFile(t, "rapid_jobs2_normalized.json", `{"id":"a"}`)
	missing := filepath.Join(t.TempDir(), "rapid_results_normalized.json")

	audit := NewAuditService().AuditKeys(context.Background(), []string{present, missing})

	assert.Empty(t, audit.Shared)
	assert.Empty(t, audit.Files[1].Keys)
	assert.Equal(t, []string{"id"}, audit.Files[0].Unique)
	assert.Contains(t, logs.String(), "not found")
}

func TestAuditService_InvalidLines(t *testing.T) {
	logs := captureLogs(t)
	path := writeFile(t, "rapid_jobs2_normalized.json", "[{\"id\":\"a\"}]\n{\"title\":\"t\"}\nnot json\n")

	audit := NewAuditService().AuditKeys(context.Background(), []string{path})

	assert.Equal(t, []string{"title"}, audit.Shared)
	assert.Contains(t, logs.String(), "Invalid format")
}

func TestAuditService_NoFiles(t *testing.T) {
	audit := NewAuditService().AuditKeys(context.Background(), nil)

	assert.Empty(t, audit.Shared)
	assert.Empty(t, audit.Files)
}
