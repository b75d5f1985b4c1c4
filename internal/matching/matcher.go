package matching

import (
	"strings"

	"github.com/getmockd/httpmock/internal/canonical"
)

// Result identifies the winning pattern.
type Result struct {
	// Index is the position of the pattern in the slice passed to Best.
	Index int
	Score int
}

// Best scores every pattern against the request and returns the highest
// scoring one. Ties resolve to the lowest index. The second return value is
// false when no pattern matches.
func Best(patterns []*Pattern, req *canonical.Request) (Result, bool) {
	best := Result{Index: -1}
	for i, p := range patterns {
		score := MatchScore(p, req)
		if score > best.Score {
			best = Result{Index: i, Score: score}
		}
	}
	return best, best.Index >= 0
}

// MatchScore calculates the match score for a request against a pattern.
// Returns 0 if there's no match, higher scores indicate more specific matches.
func MatchScore(p *Pattern, req *canonical.Request) int {
	if p == nil || req == nil {
		return 0
	}

	// A rule never matches without a method.
	if p.Method == "" || !MatchMethod(p.Method, req.Method) {
		return 0
	}
	if p.Path != req.Path {
		return 0
	}
	score := ScoreBaseline

	if p.Params != nil {
		if !MatchParams(p.Params, req.Params) {
			return 0
		}
		score += ScoreConstraint
	}

	if p.QueryString != nil {
		if !MatchQueryString(p.QueryString, req.Query) {
			return 0
		}
		score += ScoreConstraint
	}

	if p.HasData {
		if !MatchData(p.Data, req.Data) {
			return 0
		}
		score += ScoreConstraint
	}

	if p.Headers != nil {
		if !MatchHeaders(p.Headers, req.Headers) {
			return 0
		}
		score += ScoreConstraint
	}

	if p.JSONPath != nil {
		if !MatchJSONPath(p.JSONPath, req.Data).Matched {
			return 0
		}
		score += ScoreConstraint
	}

	return score
}

// MatchMethod checks if the request method matches.
func MatchMethod(expected, actual string) bool {
	return strings.EqualFold(expected, actual)
}
