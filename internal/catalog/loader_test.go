package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const validCatalog = `{
	"rules": [
		{
			"code": "E501",
			"name": "line-too-long",
			"category": "pycodestyle",
			"description": "Line too long",
			"legendInfo": {"status": "stable", "fixable": false}
		},
		{
			"code": "F401",
			"name": "unused-import",
			"category": "pyflakes",
			"description": "Module imported but unused",
			"legendInfo": {"status": "stable", "fixable": true}
		}
	],
	"categories": [
		{"id": "pycodestyle", "name": "pycodestyle", "description": "Style checks", "ruleCount": 1},
		{"id": "pyflakes", "name": "Pyflakes", "description": "Logical checks", "ruleCount": 1}
	],
	"version": "0.8.4",
	"buildTimestamp": "2025-11-02T10:00:00Z"
}`

func newTestServer(status int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestLoadValidCatalog(t *testing.T) {
	srv := newTestServer(http.StatusOK, validCatalog)
	defer srv.Close()

	loader := NewLoader(srv.URL, 5*time.Second)
	cat, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cat.Rules) != 2 {
		t.Errorf("len(Rules) = %d, want 2", len(cat.Rules))
	}
	if cat.Rules[0].Code != "E501" {
		t.Errorf("Rules[0].Code = %q, want E501", cat.Rules[0].Code)
	}
	if cat.Rules[1].Legend.Fixable != true {
		t.Error("Rules[1] should be fixable")
	}
	if cat.Version != "0.8.4" {
		t.Errorf("Version = %q, want 0.8.4", cat.Version)
	}
	if len(cat.Categories) != 2 {
		t.Errorf("len(Categories) = %d, want 2", len(cat.Categories))
	}
}

func TestLoadHTTPStatusError(t *testing.T) {
	srv := newTestServer(http.StatusInternalServerError, "boom")
	defer srv.Close()

	loader := NewLoader(srv.URL, 5*time.Second)
	_, err := loader.Load(context.Background())

	var statusErr *HTTPStatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected HTTPStatusError, got %T: %v", err, err)
	}
	if statusErr.Status != http.StatusInternalServerError {
		t.Errorf("Status = %d, want 500", statusErr.Status)
	}
}

func TestLoadNetworkError(t *testing.T) {
	// Connect to a server that is no longer listening.
	srv := newTestServer(http.StatusOK, validCatalog)
	url := srv.URL
	srv.Close()

	loader := NewLoader(url, 2*time.Second)
	_, err := loader.Load(context.Background())

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %T: %v", err, err)
	}
}

func TestLoadInvalidStructure(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>nope</html>"},
		{"null body", "null"},
		{"missing rules", `{"categories": [], "version": "1"}`},
		{"rules not array", `{"rules": {}, "categories": []}`},
		{"empty rules", `{"rules": [], "categories": []}`},
		{"missing categories", `{"rules": [{"code": "E1", "name": "n", "category": "c", "description": "d", "legendInfo": {"status": "stable", "fixable": true}}]}`},
		{"rule missing code", `{"rules": [{"name": "n", "category": "c", "description": "d", "legendInfo": {"status": "stable", "fixable": true}}], "categories": []}`},
		{"rule code not string", `{"rules": [{"code": 42, "name": "n", "category": "c", "description": "d", "legendInfo": {"status": "stable", "fixable": true}}], "categories": []}`},
		{"missing legend", `{"rules": [{"code": "E1", "name": "n", "category": "c", "description": "d"}], "categories": []}`},
		{"fixable not bool", `{"rules": [{"code": "E1", "name": "n", "category": "c", "description": "d", "legendInfo": {"status": "stable", "fixable": "yes"}}], "categories": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(http.StatusOK, tt.body)
			defer srv.Close()

			loader := NewLoader(srv.URL, 5*time.Second)
			_, err := loader.Load(context.Background())

			var structErr *InvalidStructureError
			if !errors.As(err, &structErr) {
				t.Fatalf("expected InvalidStructureError, got %T: %v", err, err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(validCatalog), 0o644); err != nil {
		t.Fatal(err)
	}

	cat, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if len(cat.Rules) != 2 {
		t.Errorf("len(Rules) = %d, want 2", len(cat.Rules))
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}
