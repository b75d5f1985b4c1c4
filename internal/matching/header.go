package matching

import (
	"net/http"
)

// MatchHeader checks if a specific header matches.
// Header names are case-insensitive (per HTTP spec).
func MatchHeader(name, expectedValue string, headers http.Header) bool {
	values := headers.Values(name)
	if len(values) == 0 {
		return false
	}
	return values[0] == expectedValue
}

// MatchHeaders checks if all specified headers match.
// Returns true only if ALL headers match.
func MatchHeaders(expected map[string]string, headers http.Header) bool {
	for name, value := range expected {
		if !MatchHeader(name, value, headers) {
			return false
		}
	}
	return true
}
