package generate

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ruffctl/ruffctl/internal/engine"
)

func rule(code string, enabled bool, reason string) *engine.Rule {
	return &engine.Rule{Code: code, Enabled: enabled, IgnoreReason: reason}
}

func TestGenerateTOMLEmptyIgnore(t *testing.T) {
	result, err := Generate(nil, FormatTOML, DefaultOptions())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !strings.Contains(result.Content, `select = ["ALL"]`) {
		t.Errorf("missing select-all directive:\n%s", result.Content)
	}
	if !strings.Contains(result.Content, "ignore = []") {
		t.Errorf("empty ignore list must be explicit:\n%s", result.Content)
	}
	if result.IgnoredCount != 0 {
		t.Errorf("IgnoredCount = %d, want 0", result.IgnoredCount)
	}
}

func TestGenerateTOMLWithReasons(t *testing.T) {
	rules := []*engine.Rule{
		rule("E501", false, "legacy line lengths"),
		rule("F401", true, ""),
		rule("W503", false, ""),
	}

	result, err := Generate(rules, FormatTOML, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	if result.IgnoredCount != 2 {
		t.Errorf("IgnoredCount = %d, want 2", result.IgnoredCount)
	}
	if !strings.Contains(result.Content, `"E501",  # legacy line lengths`) {
		t.Errorf("reason comment missing:\n%s", result.Content)
	}
	if strings.Contains(result.Content, "F401") {
		t.Errorf("enabled rule leaked into ignore list:\n%s", result.Content)
	}
	// W503 has no reason: quoted code, no trailing comment.
	if !strings.Contains(result.Content, `"W503",`+"\n") {
		t.Errorf("W503 line malformed:\n%s", result.Content)
	}
}

func TestGenerateTOMLNoComments(t *testing.T) {
	rules := []*engine.Rule{rule("E501", false, "secret context")}

	result, err := Generate(rules, FormatTOML, Options{IncludeComments: false})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(result.Content, "secret context") {
		t.Errorf("comments should be suppressed:\n%s", result.Content)
	}
}

func TestGenerateTOMLSortIgnored(t *testing.T) {
	rules := []*engine.Rule{
		rule("W503", false, ""),
		rule("E501", false, ""),
		rule("F401", false, ""),
	}

	result, err := Generate(rules, FormatTOML, Options{SortIgnored: true})
	if err != nil {
		t.Fatal(err)
	}

	e := strings.Index(result.Content, "E501")
	f := strings.Index(result.Content, "F401")
	w := strings.Index(result.Content, "W503")
	if e == -1 || f == -1 || w == -1 || !(e < f && f < w) {
		t.Errorf("ignored codes not sorted E501 < F401 < W503:\n%s", result.Content)
	}
}

func TestGenerateTOMLUnsortedPreservesOrder(t *testing.T) {
	rules := []*engine.Rule{
		rule("W503", false, ""),
		rule("E501", false, ""),
	}

	result, err := Generate(rules, FormatTOML, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Index(result.Content, "W503") > strings.Index(result.Content, "E501") {
		t.Errorf("unsorted output must preserve input order:\n%s", result.Content)
	}
}

func TestGenerateTOMLMultilineReasonSanitized(t *testing.T) {
	rules := []*engine.Rule{rule("E501", false, "line one\nline two")}

	result, err := Generate(rules, FormatTOML, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(result.Content, "# line one line two") {
		t.Errorf("newlines in reason must be flattened:\n%s", result.Content)
	}
}

func TestGenerateJSON(t *testing.T) {
	rules := []*engine.Rule{
		rule("E501", false, "too strict"),
		rule("F401", true, ""),
	}

	result, err := Generate(rules, FormatJSON, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	var doc struct {
		Tool struct {
			Ruff struct {
				Lint struct {
					Select   []string          `json:"select"`
					Ignore   []string          `json:"ignore"`
					Comments map[string]string `json:"comments"`
				} `json:"lint"`
			} `json:"ruff"`
		} `json:"tool"`
	}
	if err := json.Unmarshal([]byte(result.Content), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, result.Content)
	}

	lint := doc.Tool.Ruff.Lint
	if len(lint.Select) != 1 || lint.Select[0] != "ALL" {
		t.Errorf("select = %v, want [ALL]", lint.Select)
	}
	if len(lint.Ignore) != 1 || lint.Ignore[0] != "E501" {
		t.Errorf("ignore = %v, want [E501]", lint.Ignore)
	}
	if lint.Comments["E501"] != "too strict" {
		t.Errorf("comments = %v", lint.Comments)
	}
}

func TestGenerateJSONEmpty(t *testing.T) {
	result, err := Generate(nil, FormatJSON, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(result.Content, `"ignore": []`) {
		t.Errorf("empty ignore must be explicit:\n%s", result.Content)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	rules := []*engine.Rule{
		rule("W503", false, "a"),
		rule("E501", false, "b"),
	}

	for _, format := range []Format{FormatTOML, FormatJSON} {
		first, err := Generate(rules, format, DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		second, err := Generate(rules, format, DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		if first.Content != second.Content {
			t.Errorf("%s output not deterministic", format)
		}
	}
}

func TestGenerateUnknownFormat(t *testing.T) {
	if _, err := Generate(nil, Format("yaml"), DefaultOptions()); err == nil {
		t.Error("expected error for unknown format")
	}
}
