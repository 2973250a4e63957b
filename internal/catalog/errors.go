package catalog

import "fmt"

// NetworkError indicates the catalog fetch could not complete at all.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("fetching catalog from %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPStatusError indicates the catalog endpoint responded with a
// non-success status. The numeric status is part of the message.
type HTTPStatusError struct {
	URL    string
	Status int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("catalog endpoint returned status %d for %s", e.Status, e.URL)
}

// InvalidStructureError indicates the catalog body parsed but failed shape
// validation. This is fatal to the load; a malformed catalog is never
// partially accepted.
type InvalidStructureError struct {
	Reason string
}

func (e *InvalidStructureError) Error() string {
	return "invalid catalog structure: " + e.Reason
}
