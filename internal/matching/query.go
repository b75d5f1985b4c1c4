package matching

import (
	"github.com/getmockd/httpmock/internal/canonical"
)

// MatchQueryParam checks if a specific query parameter is present with the expected value.
func MatchQueryParam(name, expectedValue string, q canonical.Query) bool {
	actual, ok := q.Get(name)
	return ok && actual == expectedValue
}

// MatchQueryString checks if all declared query parameters match.
// Extra parameters on the request are ignored.
func MatchQueryString(expected map[string]string, q canonical.Query) bool {
	for name, value := range expected {
		if !MatchQueryParam(name, value, q) {
			return false
		}
	}
	return true
}

// MatchParams checks that every declared client-side parameter is present
// with an equal value. Numbers compare by value regardless of their Go type.
func MatchParams(expected, actual map[string]any) bool {
	for name, want := range expected {
		got, ok := actual[name]
		if !ok || !valuesEqual(got, want) {
			return false
		}
	}
	return true
}
