package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// Loader fetches and validates the rule catalog.
//
// Load performs no caching and no retries; callers hold on to the returned
// Catalog for the session and call Load again only to force a refresh.
type Loader struct {
	url    string
	client *http.Client
}

// NewLoader creates a loader for the given catalog URL.
func NewLoader(url string, timeout time.Duration) *Loader {
	return &Loader{
		url: url,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Load fetches the catalog document and validates its shape.
func (l *Loader) Load(ctx context.Context) (*Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, &NetworkError{URL: l.url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: l.url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPStatusError{URL: l.url, Status: resp.StatusCode}
	}

	var body json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &InvalidStructureError{Reason: fmt.Sprintf("body is not valid JSON: %v", err)}
	}

	return parseCatalog(body)
}

// LoadFile reads a catalog document from a local file, applying the same
// validation as Load. Used for offline operation against a fetched catalog.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	return parseCatalog(data)
}

// parseCatalog validates the document shape before decoding it.
//
// The checks mirror what a hand-written consumer of the document needs to
// hold: a JSON object with rules and categories arrays, a non-empty rule
// list, and correctly typed required fields on the first rule.
func parseCatalog(data []byte) (*Catalog, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &InvalidStructureError{Reason: "body is not a JSON object"}
	}
	if doc == nil {
		return nil, &InvalidStructureError{Reason: "body is null"}
	}

	rawRules, ok := doc["rules"]
	if !ok {
		return nil, &InvalidStructureError{Reason: "missing rules array"}
	}
	var ruleItems []json.RawMessage
	if err := json.Unmarshal(rawRules, &ruleItems); err != nil {
		return nil, &InvalidStructureError{Reason: "rules is not an array"}
	}
	if len(ruleItems) == 0 {
		return nil, &InvalidStructureError{Reason: "rules array is empty"}
	}

	rawCategories, ok := doc["categories"]
	if !ok {
		return nil, &InvalidStructureError{Reason: "missing categories array"}
	}
	var categoryItems []json.RawMessage
	if err := json.Unmarshal(rawCategories, &categoryItems); err != nil {
		return nil, &InvalidStructureError{Reason: "categories is not an array"}
	}

	if err := validateFirstRule(ruleItems[0]); err != nil {
		return nil, err
	}

	var cat Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, &InvalidStructureError{Reason: fmt.Sprintf("decoding catalog: %v", err)}
	}

	return &cat, nil
}

// validateFirstRule spot-checks required fields and their primitive types on
// the first rule. A catalog whose first entry is malformed is rejected
// wholesale rather than partially accepted.
func validateFirstRule(raw json.RawMessage) error {
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return &InvalidStructureError{Reason: "first rule is not an object"}
	}

	for _, name := range []string{"code", "name", "category", "description"} {
		v, ok := fields[name]
		if !ok {
			return &InvalidStructureError{Reason: "first rule missing field " + name}
		}
		if _, ok := v.(string); !ok {
			return &InvalidStructureError{Reason: "first rule field " + name + " is not a string"}
		}
	}

	legend, ok := fields["legendInfo"].(map[string]interface{})
	if !ok {
		return &InvalidStructureError{Reason: "first rule missing legendInfo object"}
	}
	if _, ok := legend["status"].(string); !ok {
		return &InvalidStructureError{Reason: "first rule legendInfo.status is not a string"}
	}
	if _, ok := legend["fixable"].(bool); !ok {
		return &InvalidStructureError{Reason: "first rule legendInfo.fixable is not a boolean"}
	}

	return nil
}
