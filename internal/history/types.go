package history

import "time"

// ChangeRecord is one persisted rule mutation.
type ChangeRecord struct {
	ID           int64
	RunID        string
	RuleCode     string
	Enabled      bool
	IgnoreReason string
	ChangedAt    time.Time
}
