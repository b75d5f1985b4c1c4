package matching

import (
	"fmt"
	"sort"
	"strings"

	"github.com/getmockd/httpmock/internal/canonical"
)

// FieldResult describes whether a single pattern field matched the request.
type FieldResult struct {
	Field    string `json:"field"`
	Matched  bool   `json:"matched"`
	Expected any    `json:"expected,omitempty"`
	Actual   any    `json:"actual,omitempty"`
	// Mismatched lists the keys or expressions that failed, when the field has several.
	Mismatched []string `json:"mismatched,omitempty"`
}

// NearMiss is a pattern that partially matched a request.
type NearMiss struct {
	Index           int           `json:"index"`
	Matched         int           `json:"matched"`
	Declared        int           `json:"declared"`
	MatchPercentage int           `json:"matchPercentage"`
	Fields          []FieldResult `json:"fields"`
	Reason          string        `json:"reason"`
}

// MatchBreakdown evaluates every field of the pattern against the request
// without short-circuiting. Only fields the pattern declares are included.
func MatchBreakdown(p *Pattern, req *canonical.Request) *NearMiss {
	nm := &NearMiss{Index: -1}
	if p == nil || req == nil {
		return nm
	}

	add := func(f FieldResult) {
		nm.Fields = append(nm.Fields, f)
		nm.Declared++
		if f.Matched {
			nm.Matched++
		}
	}

	add(FieldResult{
		Field:    FieldMethod,
		Matched:  p.Method != "" && MatchMethod(p.Method, req.Method),
		Expected: p.Method,
		Actual:   req.Method,
	})
	add(FieldResult{
		Field:    FieldPath,
		Matched:  p.Path == req.Path,
		Expected: p.Path,
		Actual:   req.Path,
	})

	if p.Params != nil {
		var bad []string
		for k, v := range p.Params {
			got, ok := req.Params[k]
			if !ok || !valuesEqual(got, v) {
				bad = append(bad, k)
			}
		}
		sort.Strings(bad)
		add(FieldResult{
			Field:      FieldParams,
			Matched:    len(bad) == 0,
			Expected:   p.Params,
			Actual:     req.Params,
			Mismatched: bad,
		})
	}

	if p.QueryString != nil {
		var bad []string
		for k, v := range p.QueryString {
			if !MatchQueryParam(k, v, req.Query) {
				bad = append(bad, k)
			}
		}
		sort.Strings(bad)
		add(FieldResult{
			Field:      FieldQueryString,
			Matched:    len(bad) == 0,
			Expected:   p.QueryString,
			Actual:     req.Query.Map(),
			Mismatched: bad,
		})
	}

	if p.HasData {
		add(FieldResult{
			Field:      FieldData,
			Matched:    MatchData(p.Data, req.Data),
			Expected:   p.Data,
			Actual:     req.Data,
			Mismatched: MissingDataKeys(p.Data, req.Data),
		})
	}

	if p.Headers != nil {
		var bad []string
		for k, v := range p.Headers {
			if !MatchHeader(k, v, req.Headers) {
				bad = append(bad, k)
			}
		}
		sort.Strings(bad)
		add(FieldResult{
			Field:      FieldHeaders,
			Matched:    len(bad) == 0,
			Expected:   p.Headers,
			Mismatched: bad,
		})
	}

	if p.JSONPath != nil {
		jr := MatchJSONPath(p.JSONPath, req.Data)
		add(FieldResult{
			Field:      FieldJSONPath,
			Matched:    jr.Matched,
			Mismatched: jr.Failed,
		})
	}

	nm.MatchPercentage = nm.Matched * 100 / nm.Declared
	nm.Reason = GenerateReason(nm.Fields)
	return nm
}

// CollectNearMisses evaluates all patterns against the request and returns
// the top N by number of matched fields. Patterns that match nothing are
// skipped. Only called for unmatched requests.
func CollectNearMisses(patterns []*Pattern, req *canonical.Request, topN int) []NearMiss {
	if topN <= 0 {
		topN = 3
	}

	var candidates []NearMiss
	for i, p := range patterns {
		nm := MatchBreakdown(p, req)
		if nm.Matched == 0 {
			continue
		}
		nm.Index = i
		candidates = append(candidates, *nm)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Matched != candidates[j].Matched {
			return candidates[i].Matched > candidates[j].Matched
		}
		return candidates[i].MatchPercentage > candidates[j].MatchPercentage
	})

	if len(candidates) > topN {
		candidates = candidates[:topN]
	}
	return candidates
}

// GenerateReason creates a human-readable explanation of why a pattern
// partially matched but ultimately failed.
func GenerateReason(fields []FieldResult) string {
	if len(fields) == 0 {
		return "no fields to compare"
	}

	var matched []string
	var firstMismatch *FieldResult

	for i := range fields {
		if fields[i].Matched {
			matched = append(matched, fields[i].Field)
		} else if firstMismatch == nil {
			firstMismatch = &fields[i]
		}
	}

	if firstMismatch == nil {
		return "all specified fields matched"
	}
	if len(matched) == 0 {
		return formatMismatch(firstMismatch)
	}
	return joinFields(matched) + " matched, but " + formatMismatch(firstMismatch)
}

// formatMismatch formats a single field mismatch into a human-readable string.
func formatMismatch(f *FieldResult) string {
	switch f.Field {
	case FieldMethod:
		return fmt.Sprintf("method expected %q, got %q", f.Expected, f.Actual)
	case FieldPath:
		return fmt.Sprintf("path expected %q, got %q", f.Expected, f.Actual)
	case FieldParams:
		return "params differ on " + strings.Join(f.Mismatched, ", ")
	case FieldQueryString:
		return "query string differs on " + strings.Join(f.Mismatched, ", ")
	case FieldData:
		if f.Actual == nil {
			return "data expected but request has no body"
		}
		if len(f.Mismatched) > 0 {
			return "data differs on " + strings.Join(f.Mismatched, ", ")
		}
		return "data does not match body"
	case FieldHeaders:
		return "headers differ on " + strings.Join(f.Mismatched, ", ")
	case FieldJSONPath:
		return "JSONPath not satisfied: " + strings.Join(f.Mismatched, ", ")
	default:
		return f.Field + " did not match"
	}
}

// joinFields joins field names with commas and "and".
func joinFields(fields []string) string {
	switch len(fields) {
	case 0:
		return ""
	case 1:
		return fields[0]
	case 2:
		return fields[0] + " and " + fields[1]
	default:
		return strings.Join(fields[:len(fields)-1], ", ") + ", and " + fields[len(fields)-1]
	}
}
