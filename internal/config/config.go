// Package config handles all configuration management for ruffctl.
//
// Configuration is loaded from multiple sources in order of precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables (RUFFCTL_*)
// 3. Configuration file (.ruffctl.yaml)
// 4. Default values (lowest priority)
package config

import (
	"time"
)

// Config is the main configuration structure for ruffctl.
type Config struct {
	// Catalog configures where the rule catalog comes from
	Catalog CatalogConfig `mapstructure:"catalog" yaml:"catalog"`

	// Storage configures local preference persistence
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`

	// History configures the change journal
	History HistoryConfig `mapstructure:"history" yaml:"history"`

	// Templates configures export template loading
	Templates TemplatesConfig `mapstructure:"templates" yaml:"templates"`

	// Export configures config generation defaults
	Export ExportConfig `mapstructure:"export" yaml:"export"`

	// Fetch configures the offline catalog download
	Fetch FetchConfig `mapstructure:"fetch" yaml:"fetch"`
}

// CatalogConfig configures the rule catalog source.
type CatalogConfig struct {
	// URL is the catalog endpoint used when no local file exists
	URL string `mapstructure:"url" yaml:"url"`

	// File is a local catalog document; preferred over URL when present
	File string `mapstructure:"file" yaml:"file"`

	// Timeout is the catalog request timeout
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// StorageConfig configures the preference store.
type StorageConfig struct {
	// Dir is the BadgerDB directory holding user preferences
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// HistoryConfig configures the change journal.
type HistoryConfig struct {
	// Enabled turns the journal on
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Path is the SQLite database file path
	Path string `mapstructure:"path" yaml:"path"`
}

// TemplatesConfig configures export template loading.
type TemplatesConfig struct {
	// Dir is the directory containing custom template files
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// ExportConfig configures config generation defaults.
type ExportConfig struct {
	// Format is the default output format: "toml", "json"
	Format string `mapstructure:"format" yaml:"format"`

	// IncludeComments appends ignore reasons to the output
	IncludeComments bool `mapstructure:"include_comments" yaml:"include_comments"`

	// SortIgnored sorts the ignore list by rule code
	SortIgnored bool `mapstructure:"sort_ignored" yaml:"sort_ignored"`
}

// FetchConfig configures the offline catalog download.
type FetchConfig struct {
	// URL is the download location; defaults to the catalog URL
	URL string `mapstructure:"url" yaml:"url"`

	// Timeout bounds each download attempt
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`

	// Retries is the retry count after the first failure
	Retries int `mapstructure:"retries" yaml:"retries"`
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.Catalog.URL == "" && c.Catalog.File == "" {
		return &ValidationError{Field: "catalog.url", Message: "a catalog URL or file is required"}
	}

	if c.Storage.Dir == "" {
		return &ValidationError{Field: "storage.dir", Message: "storage directory is required"}
	}

	if c.History.Enabled && c.History.Path == "" {
		return &ValidationError{Field: "history.path", Message: "history path is required when history is enabled"}
	}

	validFormats := map[string]bool{"toml": true, "json": true}
	if !validFormats[c.Export.Format] {
		return &ValidationError{Field: "export.format", Message: "invalid format, must be one of: toml, json"}
	}

	if c.Fetch.Retries < 0 {
		return &ValidationError{Field: "fetch.retries", Message: "retries cannot be negative"}
	}

	return nil
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "config validation error: " + e.Field + ": " + e.Message
}
