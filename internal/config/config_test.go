package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should validate: %v", err)
	}
	if cfg.Catalog.Timeout != 30*time.Second {
		t.Errorf("Catalog.Timeout = %v, want 30s", cfg.Catalog.Timeout)
	}
	if cfg.Fetch.Retries != 3 {
		t.Errorf("Fetch.Retries = %d, want 3", cfg.Fetch.Retries)
	}
	if !cfg.Export.IncludeComments {
		t.Error("Export.IncludeComments should default to true")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"no catalog source", func(c *Config) { c.Catalog.URL = ""; c.Catalog.File = "" }, "catalog.url"},
		{"no storage dir", func(c *Config) { c.Storage.Dir = "" }, "storage.dir"},
		{"history without path", func(c *Config) { c.History.Enabled = true; c.History.Path = "" }, "history.path"},
		{"bad format", func(c *Config) { c.Export.Format = "xml" }, "export.format"},
		{"negative retries", func(c *Config) { c.Fetch.Retries = -1 }, "fetch.retries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			verr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			if verr.Field != tt.wantErr {
				t.Errorf("Field = %q, want %q", verr.Field, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	content := `catalog:
  url: https://example.com/catalog.json
export:
  format: json
  sort_ignored: true
`
	path := filepath.Join(t.TempDir(), ".ruffctl.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.Catalog.URL != "https://example.com/catalog.json" {
		t.Errorf("Catalog.URL = %q", cfg.Catalog.URL)
	}
	if cfg.Export.Format != "json" || !cfg.Export.SortIgnored {
		t.Errorf("Export = %+v", cfg.Export)
	}
	// Unset values keep their defaults.
	if cfg.Fetch.Retries != 3 {
		t.Errorf("Fetch.Retries = %d, want default 3", cfg.Fetch.Retries)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	content := `export:
  format: xml
`
	path := filepath.Join(t.TempDir(), ".ruffctl.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected validation error for bad format")
	}
}
