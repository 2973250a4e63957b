// Package catalog loads the build-time-generated rule catalog.
//
// The catalog is an immutable JSON document listing every lint rule and
// category known to the tool. It is produced out-of-band (see internal/fetch
// and the fetch command) and treated as read-only at runtime.
package catalog

// LegendStatus is a rule's lifecycle stage as declared by its documentation.
type LegendStatus string

const (
	StatusStable     LegendStatus = "stable"
	StatusPreview    LegendStatus = "preview"
	StatusDeprecated LegendStatus = "deprecated"
)

// Legend describes a rule's lifecycle and fixability metadata.
type Legend struct {
	Status            LegendStatus `json:"status"`
	Fixable           bool         `json:"fixable"`
	EcosystemSpecific []string     `json:"ecosystemSpecific,omitempty"`
}

// Rule is one lint rule definition as shipped in the catalog.
type Rule struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Description  string `json:"description"`
	Example      string `json:"example,omitempty"`
	FixedExample string `json:"fixedExample,omitempty"`
	Legend       Legend `json:"legendInfo"`
}

// Category groups rules sharing a named origin ruleset.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	RuleCount   int    `json:"ruleCount"`
}

// Catalog is the full static rule catalog.
type Catalog struct {
	Rules          []Rule     `json:"rules"`
	Categories     []Category `json:"categories"`
	Version        string     `json:"version"`
	BuildTimestamp string     `json:"buildTimestamp"`
}
