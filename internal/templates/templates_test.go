package templates

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltins(t *testing.T) {
	loader := NewLoader("")

	all, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("len = %d, want 3 built-ins", len(all))
	}

	tmpl, err := loader.Get("sorted")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !tmpl.SortIgnored || tmpl.Format != "toml" {
		t.Errorf("sorted template = %+v", tmpl)
	}
}

func TestLoadCustomTemplates(t *testing.T) {
	dir := t.TempDir()
	content := `templates:
  - name: strict-ci
    description: Sorted JSON for CI
    format: json
    sort_ignored: true
  - name: default
    description: Shadowed default
    format: json
`
	if err := os.WriteFile(filepath.Join(dir, "ci.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(dir)

	tmpl, err := loader.Get("strict-ci")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if tmpl.Format != "json" || !tmpl.SortIgnored {
		t.Errorf("template = %+v", tmpl)
	}
	// include_comments omitted defaults to true.
	if !tmpl.WantsComments() {
		t.Error("WantsComments should default to true")
	}

	// User template shadows the built-in with the same name.
	def, err := loader.Get("default")
	if err != nil {
		t.Fatal(err)
	}
	if def.Format != "json" {
		t.Errorf("shadowed default format = %q, want json", def.Format)
	}
}

func TestLoadMissingDir(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "nope"))

	all, err := loader.Load()
	if err != nil {
		t.Fatalf("missing dir should not fail: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("len = %d, want built-ins only", len(all))
	}
}

func TestGetUnknown(t *testing.T) {
	if _, err := NewLoader("").Get("nope"); err == nil {
		t.Error("expected error for unknown template")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("{{{"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewLoader(dir).Load(); err == nil {
		t.Error("expected error for malformed template file")
	}
}
