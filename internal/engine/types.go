package engine

import (
	"time"

	"github.com/ruffctl/ruffctl/internal/catalog"
)

// Rule is one lint rule merged with the user's current override state.
// The static fields come from the catalog and never change within a load
// cycle; Enabled, IgnoreReason and LastModified are the mutable user state.
type Rule struct {
	Code         string
	Name         string
	Category     string
	Description  string
	Example      string
	FixedExample string
	Legend       catalog.Legend

	Enabled      bool
	IgnoreReason string
	LastModified *time.Time
}

// Category is the aggregate view over rules sharing a category id.
// EnabledCount and Enabled are derived and recomputed synchronously after
// every rule mutation.
type Category struct {
	ID           string
	Name         string
	Description  string
	RuleCount    int
	EnabledCount int
	Enabled      bool
}

// Enabled-state filter values for FilterOptions.Status.
const (
	StatusEnabled  = "enabled"
	StatusDisabled = "disabled"
)

// FilterOptions is the ephemeral query shape used by GetFilteredRules.
// Empty slices and a nil Fixable mean "no restriction" for their clause.
type FilterOptions struct {
	Status    []string
	Legend    []catalog.LegendStatus
	Fixable   *bool
	Ecosystem []string
}

// Change describes one applied rule mutation, handed to the optional
// journal for audit history.
type Change struct {
	RuleCode     string
	Enabled      bool
	IgnoreReason string
	ChangedAt    time.Time
}
