// Package generate turns the current rule list into a configuration
// document.
//
// Generation is a pure transformation: no I/O, no clock, deterministic for
// a given rule list and option set. Export always reflects the full rule
// list, never a filtered view.
package generate

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/ruffctl/ruffctl/internal/engine"
)

// Format selects the output document format.
type Format string

const (
	// FormatTOML emits a pyproject-style [tool.ruff.lint] table.
	FormatTOML Format = "toml"

	// FormatJSON emits the equivalent nested-object JSON document.
	FormatJSON Format = "json"
)

// Options tune the generated output.
type Options struct {
	// IncludeComments appends each rule's ignore reason as a trailing
	// comment (TOML) or a comments object (JSON).
	IncludeComments bool

	// SortIgnored orders the ignore list lexicographically by code.
	SortIgnored bool
}

// DefaultOptions returns the defaults used by the export command.
func DefaultOptions() Options {
	return Options{IncludeComments: true}
}

// Result is the generated document plus metadata about it.
type Result struct {
	Content      string
	IgnoredCount int
}

// Generate builds a configuration document from the rule list.
func Generate(rules []*engine.Rule, format Format, opts Options) (*Result, error) {
	ignored := make([]*engine.Rule, 0)
	for _, r := range rules {
		if !r.Enabled {
			ignored = append(ignored, r)
		}
	}

	if opts.SortIgnored {
		sort.Slice(ignored, func(i, j int) bool {
			return ignored[i].Code < ignored[j].Code
		})
	}

	var content string
	switch format {
	case FormatTOML:
		content = generateTOML(ignored, opts)
	case FormatJSON:
		out, err := generateJSON(ignored, opts)
		if err != nil {
			return nil, fmt.Errorf("generating json config: %w", err)
		}
		content = out
	default:
		return nil, fmt.Errorf("unknown config format: %s", format)
	}

	return &Result{Content: content, IgnoredCount: len(ignored)}, nil
}

// generateTOML emits the select-everything directive and the ignore list.
// An empty ignore list is emitted explicitly rather than omitting the key.
func generateTOML(ignored []*engine.Rule, opts Options) string {
	var b strings.Builder
	b.WriteString("[tool.ruff.lint]\n")
	b.WriteString(`select = ["ALL"]` + "\n")

	if len(ignored) == 0 {
		b.WriteString("ignore = []\n")
		return b.String()
	}

	b.WriteString("ignore = [\n")
	for _, r := range ignored {
		fmt.Fprintf(&b, "    %q,", r.Code)
		if opts.IncludeComments && r.IgnoreReason != "" {
			b.WriteString("  # " + sanitizeComment(r.IgnoreReason))
		}
		b.WriteString("\n")
	}
	b.WriteString("]\n")
	return b.String()
}

// generateJSON emits the same semantic content as a nested object. JSON has
// no comment syntax, so reasons go into a sibling comments object keyed by
// code.
func generateJSON(ignored []*engine.Rule, opts Options) (string, error) {
	codes := make([]string, 0, len(ignored))
	comments := map[string]string{}
	for _, r := range ignored {
		codes = append(codes, r.Code)
		if r.IgnoreReason != "" {
			comments[r.Code] = r.IgnoreReason
		}
	}

	lint := map[string]interface{}{
		"select": []string{"ALL"},
		"ignore": codes,
	}
	if opts.IncludeComments && len(comments) > 0 {
		lint["comments"] = comments
	}

	doc := map[string]interface{}{
		"tool": map[string]interface{}{
			"ruff": map[string]interface{}{
				"lint": lint,
			},
		},
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}

// sanitizeComment keeps a reason on one line so it cannot break the
// generated document.
func sanitizeComment(reason string) string {
	reason = strings.ReplaceAll(reason, "\n", " ")
	reason = strings.ReplaceAll(reason, "\r", " ")
	return strings.TrimSpace(reason)
}
