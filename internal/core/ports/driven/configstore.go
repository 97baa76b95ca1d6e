package driven

import "github.com/custodia-labs/joblistings/internal/core/domain"

// Configuration keys understood by the CLI.
const (
	ConfigDatabase      = "database"
	ConfigLegacyUSATrim = "legacy_usa_trim"
	ConfigAudit         = "audit"
	ConfigSources       = "sources"
)

// ConfigStore provides access to application configuration.
// Implementations handle persistence (e.g., TOML files) and type conversion.
type ConfigStore interface {
	// GetString retrieves a string configuration value.
	// Returns empty string if key doesn't exist or isn't a string.
	GetString(key string) string

	// GetBool retrieves a boolean configuration value.
	// Returns false if key doesn't exist or isn't a boolean.
	GetBool(key string) bool

	// Sources returns the source files configured for a pipeline run.
	Sources() ([]domain.SourceFile, error)

	// Set stores a configuration value and persists it.
	Set(key string, value any) error

	// Path returns the configuration file path.
	Path() string
}
