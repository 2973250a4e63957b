// Package engine holds the live rules state: the static catalog merged with
// locally persisted user overrides.
//
// The engine owns the in-memory Rule and Category collections for the
// lifetime of one session. Mutations update the model in place, recompute
// the owning category's aggregates, and persist both preference records
// inline before returning. Persistence failures degrade to in-memory-only
// operation rather than failing the mutation.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/ruffctl/ruffctl/internal/catalog"
	"github.com/ruffctl/ruffctl/internal/logger"
	"github.com/ruffctl/ruffctl/internal/prefstore"
)

// CatalogLoader fetches the static rule catalog.
type CatalogLoader interface {
	Load(ctx context.Context) (*catalog.Catalog, error)
}

// PreferenceStore persists user overrides. Loads never fail: missing or
// corrupt records read as "no data".
type PreferenceStore interface {
	SaveUserSettings(settings *prefstore.UserSettings) error
	LoadUserSettings() *prefstore.UserSettings
	SaveRulePreference(code string, enabled bool, reason string) error
	LoadRulePreferences() map[string]prefstore.RulePreference
}

// Journal records applied mutations for audit history. Optional.
type Journal interface {
	Record(ctx context.Context, change Change) error
}

// Config wires an Engine's collaborators.
type Config struct {
	Catalog CatalogLoader
	Prefs   PreferenceStore

	// Journal is optional; nil disables change history.
	Journal Journal

	// Logger defaults to the package default logger.
	Logger *logger.Logger

	// Clock defaults to time.Now. Overridden in tests.
	Clock func() time.Time
}

// Engine is the rules state engine.
type Engine struct {
	mu sync.Mutex

	loader  CatalogLoader
	prefs   PreferenceStore
	journal Journal
	log     *logger.Logger
	now     func() time.Time

	rules      []*Rule
	ruleIndex  map[string]*Rule
	categories []*Category
	catIndex   map[string]*Category

	selectedCategory string
	searchQuery      string
	filters          FilterOptions

	isLoading   bool
	loadError   string
	ruffVersion string
	lastUpdated *time.Time
}

// New creates an engine. Callers construct one engine per session and share
// it explicitly; there is no package-level instance.
func New(cfg Config) *Engine {
	log := cfg.Logger
	if log == nil {
		log = logger.Default().WithPrefix("engine")
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Engine{
		loader:    cfg.Catalog,
		prefs:     cfg.Prefs,
		journal:   cfg.Journal,
		log:       log,
		now:       clock,
		ruleIndex: map[string]*Rule{},
		catIndex:  map[string]*Category{},
	}
}

// LoadData fetches the catalog, merges it with stored preferences and
// rebuilds the rule and category collections wholesale.
//
// A rule absent from stored preferences loads enabled: an unseen rule is
// active until the user opts out. On failure the previous collections are
// left untouched and the error is also captured into the Error field so a
// caller can render a persistent failure state.
func (e *Engine) LoadData(ctx context.Context) error {
	e.mu.Lock()
	e.isLoading = true
	e.mu.Unlock()

	cat, err := e.loader.Load(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.isLoading = false

	if err != nil {
		e.loadError = err.Error()
		e.log.Warn("catalog load failed: %v", err)
		return err
	}

	settings := e.prefs.LoadUserSettings()
	overrides := e.mergeSource(settings)

	rules := make([]*Rule, 0, len(cat.Rules))
	ruleIndex := make(map[string]*Rule, len(cat.Rules))
	for _, cr := range cat.Rules {
		r := &Rule{
			Code:         cr.Code,
			Name:         cr.Name,
			Category:     cr.Category,
			Description:  cr.Description,
			Example:      cr.Example,
			FixedExample: cr.FixedExample,
			Legend:       cr.Legend,
			Enabled:      true,
		}
		if o, ok := overrides[cr.Code]; ok {
			r.Enabled = o.Enabled
			if !o.Enabled {
				r.IgnoreReason = o.IgnoreReason
			}
			r.LastModified = o.LastModified
		}
		rules = append(rules, r)
		ruleIndex[r.Code] = r
	}

	e.rules = rules
	e.ruleIndex = ruleIndex
	e.buildCategories(cat.Categories)

	if settings != nil && settings.LastSelectedCategory != "" {
		e.selectedCategory = settings.LastSelectedCategory
	}

	e.loadError = ""
	e.ruffVersion = cat.Version
	now := e.now()
	e.lastUpdated = &now
	e.log.Debug("loaded %d rules across %d categories", len(e.rules), len(e.categories))
	return nil
}

// mergeSource picks the override source for a load: the settings snapshot
// when present, otherwise the per-rule preference map. Keeping both records
// means either one alone can reconstruct the user's state.
func (e *Engine) mergeSource(settings *prefstore.UserSettings) map[string]prefstore.RuleSetting {
	if settings != nil && settings.RuleSettings != nil {
		return settings.RuleSettings
	}

	prefs := e.prefs.LoadRulePreferences()
	if len(prefs) == 0 {
		return map[string]prefstore.RuleSetting{}
	}
	e.log.Info("settings snapshot missing, recovering %d overrides from rule preference map", len(prefs))

	overrides := make(map[string]prefstore.RuleSetting, len(prefs))
	for code, p := range prefs {
		setting := prefstore.RuleSetting{Enabled: p.Enabled, IgnoreReason: p.IgnoreReason}
		if ts, err := time.Parse(time.RFC3339, p.LastModified); err == nil {
			setting.LastModified = &ts
		}
		overrides[code] = setting
	}
	return overrides
}

// buildCategories rebuilds the category collection by grouping the current
// rules. Catalog metadata supplies names and descriptions; counts always
// come from the live rules so the aggregate invariant holds from the start.
func (e *Engine) buildCategories(meta []catalog.Category) {
	byID := make(map[string]catalog.Category, len(meta))
	order := make([]string, 0, len(meta))
	for _, c := range meta {
		byID[c.ID] = c
		order = append(order, c.ID)
	}

	grouped := map[string][]*Rule{}
	for _, r := range e.rules {
		grouped[r.Category] = append(grouped[r.Category], r)
	}

	// Categories that appear on rules but not in the catalog metadata are
	// still surfaced, after the declared ones.
	for id := range grouped {
		if _, ok := byID[id]; !ok {
			byID[id] = catalog.Category{ID: id, Name: id}
			order = append(order, id)
		}
	}

	e.categories = make([]*Category, 0, len(order))
	e.catIndex = make(map[string]*Category, len(order))
	for _, id := range order {
		m := byID[id]
		group := grouped[id]
		c := &Category{
			ID:          id,
			Name:        m.Name,
			Description: m.Description,
			RuleCount:   len(group),
		}
		e.recountCategory(c, group)
		e.categories = append(e.categories, c)
		e.catIndex[id] = c
	}
}

// recountCategory recomputes a category's derived fields from its rules.
func (e *Engine) recountCategory(c *Category, group []*Rule) {
	enabled := 0
	for _, r := range group {
		if r.Enabled {
			enabled++
		}
	}
	c.EnabledCount = enabled
	c.Enabled = c.RuleCount > 0 && enabled == c.RuleCount
}

// recountCategoryID recomputes aggregates for the category owning id.
func (e *Engine) recountCategoryID(id string) {
	c, ok := e.catIndex[id]
	if !ok {
		return
	}
	var group []*Rule
	for _, r := range e.rules {
		if r.Category == id {
			group = append(group, r)
		}
	}
	e.recountCategory(c, group)
}

// ToggleRule flips a rule's enabled state. Toggling back to enabled drops
// any recorded reason; reasons only ever describe why a rule is currently
// disabled. Unknown codes are a silent no-op.
func (e *Engine) ToggleRule(ctx context.Context, code string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	r, ok := e.ruleIndex[code]
	if !ok {
		e.log.Debug("toggle for unknown rule %s ignored", code)
		return
	}

	reason := ""
	if r.Enabled {
		// Disabling via toggle keeps whatever reason was recorded before.
		reason = r.IgnoreReason
	}
	e.setRuleEnabledLocked(ctx, r, !r.Enabled, reason)
}

// SetRuleEnabled sets a rule's enabled state explicitly.
//
// Enabling always clears the ignore reason. Disabling with a reason records
// it; disabling without one preserves any previously recorded reason.
// Unknown codes are a silent no-op.
func (e *Engine) SetRuleEnabled(ctx context.Context, code string, enabled bool, reason string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	r, ok := e.ruleIndex[code]
	if !ok {
		e.log.Debug("state change for unknown rule %s ignored", code)
		return
	}
	e.setRuleEnabledLocked(ctx, r, enabled, reason)
}

func (e *Engine) setRuleEnabledLocked(ctx context.Context, r *Rule, enabled bool, reason string) {
	r.Enabled = enabled
	if enabled {
		r.IgnoreReason = ""
	} else if reason != "" {
		r.IgnoreReason = reason
	}
	now := e.now()
	r.LastModified = &now

	e.recountCategoryID(r.Category)
	e.persistRuleLocked(ctx, r)
}

// ToggleCategory applies the given enabled state to every rule in the
// category, one full mutation at a time; each rule independently runs the
// complete persistence path.
func (e *Engine) ToggleCategory(ctx context.Context, categoryID string, enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, r := range e.rules {
		if r.Category == categoryID {
			e.setRuleEnabledLocked(ctx, r, enabled, "")
		}
	}
}

// persistRuleLocked writes both persisted records for the mutated rule and
// notifies the journal. All failures are logged and swallowed: the
// in-memory mutation has already succeeded and stays usable.
func (e *Engine) persistRuleLocked(ctx context.Context, r *Rule) {
	if err := e.prefs.SaveRulePreference(r.Code, r.Enabled, r.IgnoreReason); err != nil {
		e.log.Warn("persisting preference for %s: %v", r.Code, err)
	}
	if err := e.prefs.SaveUserSettings(e.snapshotLocked()); err != nil {
		e.log.Warn("persisting settings snapshot: %v", err)
	}
	if e.journal != nil {
		change := Change{
			RuleCode:     r.Code,
			Enabled:      r.Enabled,
			IgnoreReason: r.IgnoreReason,
			ChangedAt:    e.now(),
		}
		if err := e.journal.Record(ctx, change); err != nil {
			e.log.Warn("recording change for %s: %v", r.Code, err)
		}
	}
}

// snapshotLocked builds the full settings snapshot from the current model.
// Only rules that deviate from the default (disabled, or carrying a reason)
// are recorded.
func (e *Engine) snapshotLocked() *prefstore.UserSettings {
	settings := &prefstore.UserSettings{
		RuleSettings:         map[string]prefstore.RuleSetting{},
		LastSelectedCategory: e.selectedCategory,
		Version:              prefstore.SettingsVersion,
	}
	for _, r := range e.rules {
		if r.Enabled && r.IgnoreReason == "" {
			continue
		}
		settings.RuleSettings[r.Code] = prefstore.RuleSetting{
			Enabled:      r.Enabled,
			IgnoreReason: r.IgnoreReason,
			LastModified: r.LastModified,
		}
	}
	return settings
}

// SetSelectedCategory selects a category ("" clears the selection) and
// persists it as part of the settings snapshot.
func (e *Engine) SetSelectedCategory(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.selectedCategory = id
	if err := e.prefs.SaveUserSettings(e.snapshotLocked()); err != nil {
		e.log.Warn("persisting settings snapshot: %v", err)
	}
}

// SetSearchQuery stores the free-text query, trimmed. Ephemeral; never
// persisted.
func (e *Engine) SetSearchQuery(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.searchQuery = trimQuery(text)
}

// SetFilterOptions replaces the filter options wholesale. Callers wanting a
// partial update must copy the current options themselves.
func (e *Engine) SetFilterOptions(opts FilterOptions) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filters = opts
}

// ResetFilters clears the filter options, search query and selected
// category without persisting anything.
func (e *Engine) ResetFilters() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filters = FilterOptions{}
	e.searchQuery = ""
	e.selectedCategory = ""
}

// Reset restores all engine state to its initial empty values. Persisted
// storage is untouched.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rules = nil
	e.ruleIndex = map[string]*Rule{}
	e.categories = nil
	e.catIndex = map[string]*Category{}
	e.selectedCategory = ""
	e.searchQuery = ""
	e.filters = FilterOptions{}
	e.isLoading = false
	e.loadError = ""
	e.ruffVersion = ""
	e.lastUpdated = nil
}

// Rules returns the current rule collection.
func (e *Engine) Rules() []*Rule {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Rule returns the rule with the given code, or nil.
func (e *Engine) Rule(code string) *Rule {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ruleIndex[code]
}

// Categories returns the current category collection.
func (e *Engine) Categories() []*Category {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*Category, len(e.categories))
	copy(out, e.categories)
	return out
}

// Category returns the category with the given id, or nil.
func (e *Engine) Category(id string) *Category {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.catIndex[id]
}

// SelectedCategory returns the selected category id, "" for none.
func (e *Engine) SelectedCategory() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selectedCategory
}

// SearchQuery returns the current free-text query.
func (e *Engine) SearchQuery() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.searchQuery
}

// Filters returns the current filter options.
func (e *Engine) Filters() FilterOptions {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.filters
}

// IsLoading reports whether a LoadData call is in flight.
func (e *Engine) IsLoading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.isLoading
}

// Error returns the message from the last failed load, "" when healthy.
func (e *Engine) Error() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadError
}

// RuffVersion returns the catalog's declared linter version.
func (e *Engine) RuffVersion() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ruffVersion
}

// LastUpdated returns the time of the last successful load, nil before one.
func (e *Engine) LastUpdated() *time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastUpdated
}
