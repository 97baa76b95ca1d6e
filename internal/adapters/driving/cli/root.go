// Package cli provides the joblistings command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/joblistings/internal/core/domain"
	"github.com/custodia-labs/joblistings/internal/core/ports/driven"
	"github.com/custodia-labs/joblistings/internal/core/ports/driving"
	"github.com/custodia-labs/joblistings/internal/logger"
)

// DefaultDatabase is used when neither a flag nor the config names one.
const DefaultDatabase = "job_listings.db"

var version = "dev"

// Settings are the options resolved for one invocation from the config
// file, the environment and the command-line flags.
type Settings struct {
	Database      string
	LegacyUSATrim bool
	Audit         bool
	DryRun        bool
	Sources       []domain.SourceFile
}

// Services are the driving ports the commands call.
type Services struct {
	Ingest   driving.IngestService
	Audit    driving.AuditService
	Loader   driving.LoaderService
	Pipeline driving.PipelineService
}

// ConfigOpener loads the config file at path. An empty path selects the
// default location.
type ConfigOpener func(path string) (driven.ConfigStore, error)

// ServiceBuilder creates the services for the resolved settings.
type ServiceBuilder func(settings Settings) (*Services, error)

var (
	openConfig      ConfigOpener
	buildServices   ServiceBuilder
	defaultDatabase = DefaultDatabase

	// Resolved in the persistent pre-run.
	settings    Settings
	services    *Services
	configStore driven.ConfigStore
)

// Persistent flags.
var (
	cfgFile     string
	databaseDSN string
	verbose     bool
	dryRun      bool
)

var rootCmd = &cobra.Command{
	Use:   "joblistings",
	Short: "Normalise job-posting exports and load them into a database",
	Long: `joblistings reconciles JSON-lines job-posting exports from the
rapid_jobs and rapid_results scrapers into one record shape and loads
them into a SQLite file or a PostgreSQL database.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default ~/.joblistings/config.toml)")
	rootCmd.PersistentFlags().StringVar(&databaseDSN, "database", "",
		"SQLite path or postgres:// URL (default "+DefaultDatabase+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"print progress messages")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false,
		"load into a throwaway in-memory database")
}

// Configure sets how the CLI loads its config and builds its services.
func Configure(open ConfigOpener, build ServiceBuilder) {
	openConfig = open
	buildServices = build
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetDefaultDatabase overrides the database used when none is configured.
func SetDefaultDatabase(dsn string) {
	if dsn != "" {
		defaultDatabase = dsn
	}
}

// Execute runs the root command. Command output goes to stdout.
func Execute(ctx context.Context) error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if cmd == versionCmd {
		return nil
	}

	resolved, err := resolveSettings()
	if err != nil {
		return err
	}
	settings = resolved
	if isConfigCommand(cmd) {
		return nil
	}

	if buildServices == nil {
		return errors.New("services not configured")
	}
	services, err = buildServices(settings)
	if err != nil {
		return fmt.Errorf("initialising services: %w", err)
	}
	return nil
}

// resolveSettings applies, in increasing precedence, the default database,
// the config file and the command-line flags.
func resolveSettings() (Settings, error) {
	resolved := Settings{Database: defaultDatabase}

	if openConfig != nil {
		cfg, err := openConfig(cfgFile)
		if err != nil {
			return resolved, fmt.Errorf("loading config: %w", err)
		}
		configStore = cfg
		if db := cfg.GetString(driven.ConfigDatabase); db != "" {
			resolved.Database = db
		}
		resolved.LegacyUSATrim = cfg.GetBool(driven.ConfigLegacyUSATrim)
		resolved.Audit = cfg.GetBool(driven.ConfigAudit)
		resolved.Sources, err = cfg.Sources()
		if err != nil {
			return resolved, fmt.Errorf("reading sources from %s: %w", cfg.Path(), err)
		}
	}

	if databaseDSN != "" {
		resolved.Database = databaseDSN
	}
	resolved.DryRun = dryRun
	return resolved, nil
}
