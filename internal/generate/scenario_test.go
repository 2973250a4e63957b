package generate

import (
	"context"
	"strings"
	"testing"

	"github.com/ruffctl/ruffctl/internal/catalog"
	"github.com/ruffctl/ruffctl/internal/engine"
	"github.com/ruffctl/ruffctl/internal/prefstore"
)

type fixedLoader struct {
	cat *catalog.Catalog
}

func (f fixedLoader) Load(ctx context.Context) (*catalog.Catalog, error) {
	return f.cat, nil
}

// Exercises the whole pipeline: load a catalog, disable a rule with a
// reason, then export and find the rule with its reason in the output.
func TestDisableThenExport(t *testing.T) {
	store, err := prefstore.Open(prefstore.Options{InMemory: true})
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	cat := &catalog.Catalog{
		Rules: []catalog.Rule{
			{Code: "E501", Name: "line-too-long", Category: "pycodestyle", Description: "Line too long"},
			{Code: "E731", Name: "lambda-assignment", Category: "pycodestyle", Description: "Lambda assignment"},
			{Code: "F401", Name: "unused-import", Category: "pyflakes", Description: "Unused import"},
		},
		Categories: []catalog.Category{
			{ID: "pycodestyle", Name: "pycodestyle", RuleCount: 2},
			{ID: "pyflakes", Name: "Pyflakes", RuleCount: 1},
		},
	}

	eng := engine.New(engine.Config{
		Catalog: fixedLoader{cat: cat},
		Prefs:   store,
	})
	if err := eng.LoadData(context.Background()); err != nil {
		t.Fatalf("LoadData failed: %v", err)
	}

	eng.SetRuleEnabled(context.Background(), "E501", false, "test")

	c := eng.Category("pycodestyle")
	if c.EnabledCount != 1 {
		t.Errorf("EnabledCount = %d, want 1", c.EnabledCount)
	}

	result, err := Generate(eng.Rules(), FormatTOML, DefaultOptions())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if result.IgnoredCount != 1 {
		t.Errorf("IgnoredCount = %d, want 1", result.IgnoredCount)
	}
	if !strings.Contains(result.Content, `"E501",  # test`) {
		t.Errorf("ignored rule with reason missing:\n%s", result.Content)
	}

	// A fresh engine over the same store sees the persisted state.
	eng2 := engine.New(engine.Config{
		Catalog: fixedLoader{cat: cat},
		Prefs:   store,
	})
	if err := eng2.LoadData(context.Background()); err != nil {
		t.Fatalf("second LoadData failed: %v", err)
	}
	r := eng2.Rule("E501")
	if r == nil || r.Enabled || r.IgnoreReason != "test" {
		t.Errorf("persisted state not restored: %+v", r)
	}
}
