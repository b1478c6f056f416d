// Package store is the document-store adapter: one store type per
// collection, each with the same method shape (insert, get, list, update,
// delete, count) plus the filter queries the views need. There is no
// cross-collection transaction and no foreign-key enforcement; referential
// integrity is checked only by the callers that care.
package store

import "time"

const (
	// listCap bounds every list query; the API has no pagination.
	listCap = 1000
	// searchCap bounds free-text search results.
	searchCap = 100
)

func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
