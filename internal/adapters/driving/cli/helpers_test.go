package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/joblistings/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/joblistings/internal/core/ports/driven"
	svc "github.com/custodia-labs/joblistings/internal/core/services"
	"github.com/custodia-labs/joblistings/internal/logger"
	"github.com/custodia-labs/joblistings/internal/normalisers/jobposting"
	"github.com/custodia-labs/joblistings/internal/normalisers/location"
)

// testEnv wires the CLI to in-memory databases and config.
type testEnv struct {
	config    *memory.ConfigStore
	databases *memory.Databases
	built     []Settings
}

func setupCLITest(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		config:    memory.NewConfigStore(),
		databases: memory.NewDatabases(),
	}

	oldOpen, oldBuild, oldDefault := openConfig, buildServices, defaultDatabase
	Configure(
		func(string) (driven.ConfigStore, error) { return env.config, nil },
		func(s Settings) (*Services, error) {
			env.built = append(env.built, s)
			normaliser := jobposting.New(location.NewResolver(location.Options{LegacyUSATrim: s.LegacyUSATrim}))
			ingest := svc.NewIngestService(normaliser)
			audit := svc.NewAuditService()
			loader := svc.NewLoaderService(env.databases.Open)
			return &Services{
				Ingest:   ingest,
				Audit:    audit,
				Loader:   loader,
				Pipeline: svc.NewPipelineService(ingest, audit, loader),
			}, nil
		},
	)

	logger.SetOutput(new(bytes.Buffer))

	t.Cleanup(func() {
		openConfig, buildServices, defaultDatabase = oldOpen, oldBuild, oldDefault
		settings, services, configStore = Settings{}, nil, nil
		logger.SetOutput(os.Stderr)
		logger.SetVerbose(false)
		resetFlags(rootCmd)
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	return env
}

// resetFlags restores every flag of cmd and its children to its default so
// tests sharing rootCmd do not leak flag values.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

// execute runs rootCmd with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const rawJobsLine = `[{"id":"job-1","title":"Software Engineer","company":"Epic","location":"Verona, Wisconsin",` +
	`"datePosted":"2025-02-03","description":"d","employmentType":"Full-time","salaryRange":"$100K"},` +
	`{"id":"job-2","title":"Software Developer","company":"Apple","location":"Austin",` +
	`"datePosted":"2025-02-04","description":"d","employmentType":"Full-time","salaryRange":""}]`

const rawResultsLine = `{"id":"in-1","title":"Data Engineer","company":"Adobe","location":"San Jose, California",` +
	`"date_posted":"2025-02-05","description":"d","job_type":"fulltime","min_amount":100,"max_amount":200,` +
	`"currency":"USD","is_remote":false}`
