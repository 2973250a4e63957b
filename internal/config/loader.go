package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const configFileName = ".ruffctl.yaml"

// Loader handles configuration loading from multiple sources.
type Loader struct {
	v          *viper.Viper
	configFile string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetConfigName(".ruffctl")
	v.SetConfigType("yaml")

	// Search paths in order of priority
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME")

	// Environment variable support
	v.SetEnvPrefix("RUFFCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v}
}

// SetConfigFile sets a specific config file to use.
func (l *Loader) SetConfigFile(path string) {
	l.configFile = path
	l.v.SetConfigFile(path)
}

// Load loads the configuration from all sources.
// Priority (highest to lowest):
// 1. Explicit config file (if set via SetConfigFile)
// 2. Environment variables (RUFFCTL_*)
// 3. Config file from search paths (.ruffctl.yaml)
// 4. Default values
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	l.setDefaults(cfg)

	if err := l.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found - that's ok, we'll use defaults
	}

	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setDefaults sets all default values in viper.
func (l *Loader) setDefaults(cfg *Config) {
	l.v.SetDefault("catalog.url", cfg.Catalog.URL)
	l.v.SetDefault("catalog.file", cfg.Catalog.File)
	l.v.SetDefault("catalog.timeout", cfg.Catalog.Timeout)

	l.v.SetDefault("storage.dir", cfg.Storage.Dir)

	l.v.SetDefault("history.enabled", cfg.History.Enabled)
	l.v.SetDefault("history.path", cfg.History.Path)

	l.v.SetDefault("templates.dir", cfg.Templates.Dir)

	l.v.SetDefault("export.format", cfg.Export.Format)
	l.v.SetDefault("export.include_comments", cfg.Export.IncludeComments)
	l.v.SetDefault("export.sort_ignored", cfg.Export.SortIgnored)

	l.v.SetDefault("fetch.url", cfg.Fetch.URL)
	l.v.SetDefault("fetch.timeout", cfg.Fetch.Timeout)
	l.v.SetDefault("fetch.retries", cfg.Fetch.Retries)
}

// ConfigFileUsed returns the path of the config file used, if any.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// LoadFromFile loads configuration from a specific file.
func LoadFromFile(path string) (*Config, error) {
	loader := NewLoader()
	loader.SetConfigFile(path)
	return loader.Load()
}

// LoadDefault loads configuration with default search paths.
func LoadDefault() (*Config, error) {
	loader := NewLoader()
	return loader.Load()
}
