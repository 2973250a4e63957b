package engine

import (
	"strings"

	"github.com/ruffctl/ruffctl/internal/catalog"
)

// GetFilteredRules derives the rules matching the current selection, search
// query and filter options. Recomputed from scratch on every call; with a
// catalog of ~1000 rules this is cheap enough that no index is kept.
//
// All clauses combine with AND semantics; a clause at its "no restriction"
// value is skipped entirely.
func (e *Engine) GetFilteredRules() []*Rule {
	e.mu.Lock()
	defer e.mu.Unlock()

	query := strings.ToLower(e.searchQuery)

	var out []*Rule
	for _, r := range e.rules {
		if matchRule(r, e.selectedCategory, query, e.filters) {
			out = append(out, r)
		}
	}
	return out
}

// matchRule applies the six filter clauses. query must already be
// lowercased.
func matchRule(r *Rule, selectedCategory, query string, opts FilterOptions) bool {
	if selectedCategory != "" && r.Category != selectedCategory {
		return false
	}

	if query != "" && !matchesQuery(r, query) {
		return false
	}

	if len(opts.Status) > 0 && !matchesStatus(r, opts.Status) {
		return false
	}

	if len(opts.Legend) > 0 && !containsLegend(opts.Legend, r.Legend.Status) {
		return false
	}

	if opts.Fixable != nil && r.Legend.Fixable != *opts.Fixable {
		return false
	}

	if len(opts.Ecosystem) > 0 && !intersects(r.Legend.EcosystemSpecific, opts.Ecosystem) {
		return false
	}

	return true
}

// matchesQuery reports whether the rule's code, name or description
// contains the query substring, case-insensitively.
func matchesQuery(r *Rule, query string) bool {
	return strings.Contains(strings.ToLower(r.Code), query) ||
		strings.Contains(strings.ToLower(r.Name), query) ||
		strings.Contains(strings.ToLower(r.Description), query)
}

// matchesStatus reports whether the rule's enabled state matches at least
// one requested status.
func matchesStatus(r *Rule, statuses []string) bool {
	for _, s := range statuses {
		if s == StatusEnabled && r.Enabled {
			return true
		}
		if s == StatusDisabled && !r.Enabled {
			return true
		}
	}
	return false
}

func containsLegend(set []catalog.LegendStatus, status catalog.LegendStatus) bool {
	for _, s := range set {
		if s == status {
			return true
		}
	}
	return false
}

// intersects reports whether the two tag sets share at least one element.
// An absent rule tag set never intersects.
func intersects(tags, requested []string) bool {
	for _, tag := range tags {
		for _, want := range requested {
			if tag == want {
				return true
			}
		}
	}
	return false
}

func trimQuery(text string) string {
	return strings.TrimSpace(text)
}
