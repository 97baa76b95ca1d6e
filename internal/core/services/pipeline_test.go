package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/joblistings/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/joblistings/internal/core/domain"
	"github.com/custodia-labs/joblistings/internal/core/ports/driving"
	"github.com/custodia-labs/joblistings/internal/logger"
)

type mockLoader struct {
	createErr   error
	populateErr error
	populated   []domain.SourceFile
}

func (m *mockLoader) CreateDatabase(context.Context, string) error {
	return m.createErr
}

func (m *mockLoader) PopulateDatabase(_ context.Context, _ string, files []domain.SourceFile) (*domain.LoadStats, error) {
	m.populated = files
	if m.populateErr != nil {
		return nil, m.populateErr
	}
	return &domain.LoadStats{RecordsRead: len(files)}, nil
}

func (m *mockLoader) Listings(context.Context, string) (map[string]domain.JobListing, error) {
	return nil, nil
}

func newTestPipeline(t *testing.T, loader driving.LoaderService) *PipelineService {
	t.Helper()
	p := NewPipelineService(NewIngestService(newNormaliser()), NewAuditService(), loader)
	p.newID = func() string { return "run12345" }
	return p
}

func TestPipelineService_Run(t *testing.T) {
	captureLogs(t)
	dbs := memory.NewDatabases()
	pipeline := newTestPipeline(t, NewLoaderService(dbs.Open))

	jobs := copyFixture(t, "json_list_test_file.json")
	result, err := pipeline.Run(context.Background(), driving.PipelineRequest{
		Sources:  []domain.SourceFile{{Path: jobs, Source: domain.SourceRapidJobs}},
		Database: testDSN,
		Audit:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, "run12345", result.RunID)
	require.Len(t, result.Reports, 1)
	assert.Equal(t, 10, result.Reports[0].RecordsWritten)
	require.NotNil(t, result.Audit)
	assert.Contains(t, result.Audit.Shared, "id")
	require.NotNil(t, result.Stats)
	assert.Equal(t, 10, result.Stats.ListingsInserted)

	listings, err := dbs.Store(testDSN).ListListings(context.Background())
	require.NoError(t, err)
	require.Len(t, listings, 10)
	assert.Equal(t, "Staff Software Engineer, Risk", listings[0].Title)
	assert.Equal(t, "Portland, ME, United States", listings[0].Location)
}

func TestPipelineService_RunWithoutAudit(t *testing.T) {
	captureLogs(t)
	loader := &mockLoader{}
	pipeline := newTestPipeline(t, loader)

	path := writeFile(t, "rapid_results.json", `{"id":"a"}`)
	result, err := pipeline.Run(context.Background(), driving.PipelineRequest{
		Sources:  []domain.SourceFile{{Path: path, Source: domain.SourceRapidResults}},
		Database: testDSN,
	})
	require.NoError(t, err)

	assert.Nil(t, result.Audit)
	require.Len(t, loader.populated, 1)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "rapid_results_normalized.json"), loader.populated[0].Path)
	assert.Equal(t, domain.SourceRapidResults, loader.populated[0].Source)
}

func TestPipelineService_TagsLogLines(t *testing.T) {
	logs := captureLogs(t)
	pipeline := newTestPipeline(t, &mockLoader{})

	_, err := pipeline.Run(context.Background(), driving.PipelineRequest{
		Sources:  []domain.SourceFile{{Path: filepath.Join(t.TempDir(), "missing.json"), Source: domain.SourceRapidJobs}},
		Database: testDSN,
	})
	require.NoError(t, err)

	assert.Contains(t, logs.String(), "[WARN] [run run12345] skipping")

	logger.Warn("after")
	assert.Contains(t, logs.String(), "[WARN] after")
}

func TestPipelineService_LoaderErrors(t *testing.T) {
	captureLogs(t)
	path := writeFile(t, "rapid_jobs.json", `{"id":"a"}`)
	req := driving.PipelineRequest{
		Sources:  []domain.SourceFile{{Path: path, Source: domain.SourceRapidJobs}},
		Database: testDSN,
	}

	createErr := errors.New("create failed")
	result, err := newTestPipeline(t, &mockLoader{createErr: createErr}).Run(context.Background(), req)
	assert.ErrorIs(t, err, createErr)
	require.NotNil(t, result)
	assert.Nil(t, result.Stats)

	populateErr := errors.New("populate failed")
	_, err = newTestPipeline(t, &mockLoader{populateErr: populateErr}).Run(context.Background(), req)
	assert.ErrorIs(t, err, populateErr)
}

func TestPipelineService_InvalidRequest(t *testing.T) {
	pipeline := newTestPipeline(t, &mockLoader{})

	_, err := pipeline.Run(context.Background(), driving.PipelineRequest{
		Sources: []domain.SourceFile{{Path: "x.json", Source: domain.SourceRapidJobs}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = pipeline.Run(context.Background(), driving.PipelineRequest{Database: testDSN})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewPipelineService_RunIDLength(t *testing.T) {
	p := NewPipelineService(nil, nil, nil)
	assert.Len(t, p.newID(), 8)
}
