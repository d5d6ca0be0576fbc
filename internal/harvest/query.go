package harvest

import (
	"fmt"
	"net/url"
	"strings"
)

// Query identifies one harvest run. Immutable once a session starts.
type Query struct {
	SearchTerm    string
	MaxIterations int
}

// NewQuery validates and builds a Query.
func NewQuery(term string, maxIterations int) (Query, error) {
	if strings.TrimSpace(term) == "" {
		return Query{}, fmt.Errorf("search term is required")
	}
	if maxIterations < 0 {
		return Query{}, fmt.Errorf("max iterations must be >= 0, got %d", maxIterations)
	}
	return Query{SearchTerm: term, MaxIterations: maxIterations}, nil
}

// SearchURL builds the tweet search URL for a term on the given instance.
func SearchURL(baseURL, term string) string {
	return strings.TrimRight(baseURL, "/") + "/search?f=tweets&q=" + url.QueryEscape(term)
}
