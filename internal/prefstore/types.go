package prefstore

import "time"

// SettingsVersion is the schema version written into every settings
// snapshot, reserved for future migration.
const SettingsVersion = "1.0"

// RuleSetting is one rule's override inside the full settings snapshot.
type RuleSetting struct {
	Enabled      bool       `json:"enabled"`
	IgnoreReason string     `json:"ignoreReason,omitempty"`
	LastModified *time.Time `json:"lastModified,omitempty"`
}

// UserSettings is the full persisted settings snapshot.
type UserSettings struct {
	RuleSettings         map[string]RuleSetting `json:"ruleSettings"`
	ViewMode             string                 `json:"viewMode,omitempty"`
	LastSelectedCategory string                 `json:"lastSelectedCategory,omitempty"`
	CustomTemplates      []string               `json:"customTemplates,omitempty"`
	Version              string                 `json:"version"`
}

// RulePreference is one entry in the incremental per-rule preference map.
// It is functionally redundant with UserSettings.RuleSettings; the two
// records are written together so either can reconstruct the user's state
// if the other is lost.
type RulePreference struct {
	Enabled      bool   `json:"enabled"`
	IgnoreReason string `json:"ignoreReason,omitempty"`
	LastModified string `json:"lastModified"`
}
