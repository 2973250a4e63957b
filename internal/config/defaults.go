package config

import (
	"os"
	"path/filepath"
	"time"
)

// DefaultCatalogURL is the well-known location of the build-time-generated
// rule catalog.
const DefaultCatalogURL = "https://ruffctl.github.io/catalog/ruff-rules.json"

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	dataDir := defaultDataDir()

	return &Config{
		Catalog: CatalogConfig{
			URL:     DefaultCatalogURL,
			File:    filepath.Join(dataDir, "catalog.json"),
			Timeout: 30 * time.Second,
		},
		Storage: StorageConfig{
			Dir: filepath.Join(dataDir, "prefs"),
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    filepath.Join(dataDir, "history.db"),
		},
		Templates: TemplatesConfig{
			Dir: filepath.Join(dataDir, "templates"),
		},
		Export: ExportConfig{
			Format:          "toml",
			IncludeComments: true,
			SortIgnored:     false,
		},
		Fetch: FetchConfig{
			URL:     DefaultCatalogURL,
			Timeout: 30 * time.Second,
			Retries: 3,
		},
	}
}

// defaultDataDir returns the default data directory path.
func defaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".local", "share", "ruffctl")
}
