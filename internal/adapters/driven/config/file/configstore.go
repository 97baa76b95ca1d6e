package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/joblistings/internal/core/domain"
	"github.com/custodia-labs/joblistings/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// Configuration keys.
const (
	KeyDatabase      = driven.ConfigDatabase
	KeyLegacyUSATrim = driven.ConfigLegacyUSATrim
	KeyAudit         = driven.ConfigAudit
	KeySources       = driven.ConfigSources
)

// ConfigStore is a file-based implementation of driven.ConfigStore using TOML.
//
// A typical file:
//
//	database = "jobs.db"
//	audit = true
//
//	[[sources]]
//	path = "rapid_jobs2.json"
//	source = "rapid_jobs"
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]any
}

// NewConfigStore creates a TOML config store backed by filePath.
// If filePath is empty, defaults to ~/.joblistings/config.toml.
// A missing file is not an error; the store starts empty.
func NewConfigStore(filePath string) (*ConfigStore, error) {
	if filePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		filePath = filepath.Join(home, ".joblistings", "config.toml")
	}

	s := &ConfigStore{
		filePath: filePath,
		data:     make(map[string]any),
	}

	if err := s.Load(); err != nil {
		return nil, err
	}

	return s, nil
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.data[key]
	return val, ok
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) string {
	val, ok := s.Get(key)
	if !ok {
		return ""
	}

	str, ok := val.(string)
	if !ok {
		return ""
	}
	return str
}

// GetBool retrieves a boolean configuration value.
func (s *ConfigStore) GetBool(key string) bool {
	val, ok := s.Get(key)
	if !ok {
		return false
	}

	b, ok := val.(bool)
	if !ok {
		return false
	}
	return b
}

// Sources returns the [[sources]] entries. Relative paths are resolved
// against the directory holding the config file. An entry without a source
// tag takes it from the file name.
func (s *ConfigStore) Sources() ([]domain.SourceFile, error) {
	val, ok := s.Get(KeySources)
	if !ok {
		return nil, nil
	}

	// TOML arrays of tables are parsed as []any
	entries, ok := val.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be an array of tables", domain.ErrInvalidInput, KeySources)
	}

	baseDir := filepath.Dir(s.Path())
	files := make([]domain.SourceFile, 0, len(entries))
	for i, entry := range entries {
		table, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d] is not a table", domain.ErrInvalidInput, KeySources, i)
		}

		path, _ := table["path"].(string)
		if path == "" {
			return nil, fmt.Errorf("%w: %s[%d] has no path", domain.ErrInvalidInput, KeySources, i)
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}

		tag, _ := table["source"].(string)
		if tag == "" {
			tag = filepath.Base(path)
		}
		source, err := domain.ParseSourceTag(tag)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", KeySources, i, err)
		}

		files = append(files, domain.SourceFile{Path: path, Source: source})
	}
	return files, nil
}

// Set stores a configuration value and persists immediately.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return s.save()
}

// save writes configuration to the TOML file (caller must hold lock).
func (s *ConfigStore) save() error {
	data, err := toml.Marshal(s.data)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.filePath), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0o600)
}

// Load reads configuration from the TOML file.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file yet - start empty
			s.data = make(map[string]any)
			return nil
		}
		return err
	}

	var loaded map[string]any
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("parsing %s: %w", s.filePath, err)
	}

	if loaded == nil {
		loaded = make(map[string]any)
	}
	s.data = loaded
	return nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}
