package matching

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/getmockd/httpmock/internal/canonical"
	"github.com/ohler55/ojg/jp"
)

// JSONPathCondition is a parsed JSONPath expression and the value it must yield.
type JSONPathCondition struct {
	Path     string
	Expr     jp.Expr
	Expected any
}

// JSONPathResult contains the results of JSONPath matching.
type JSONPathResult struct {
	Matched bool
	// Failed lists the expressions that did not hold, in expression order.
	Failed []string
}

// CompileJSONPath parses JSONPath conditions at install time. Conditions are
// sorted by expression so evaluation order is stable.
func CompileJSONPath(conditions map[string]any) ([]JSONPathCondition, error) {
	out := make([]JSONPathCondition, 0, len(conditions))
	for path, expected := range conditions {
		expr, err := jp.ParseString(path)
		if err != nil {
			return nil, fmt.Errorf("invalid JSONPath expression %q: %w", path, err)
		}
		out = append(out, JSONPathCondition{
			Path:     path,
			Expr:     expr,
			Expected: canonical.NormalizeData(expected),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// MatchJSONPath evaluates every condition against an already decoded body.
// A body that is not a JSON object or array fails every condition except
// non-existence checks.
func MatchJSONPath(conditions []JSONPathCondition, data any) JSONPathResult {
	result := JSONPathResult{Matched: true}
	for _, c := range conditions {
		if !matchSingleJSONPath(c, data) {
			result.Matched = false
			result.Failed = append(result.Failed, c.Path)
		}
	}
	return result
}

// matchSingleJSONPath evaluates a single JSONPath condition.
func matchSingleJSONPath(c JSONPathCondition, data any) bool {
	var results []any
	switch data.(type) {
	case map[string]any, []any:
		results = c.Expr.Get(data)
	}

	if isExistenceCheck(c.Expected) {
		return (len(results) > 0) == getExistsValue(c.Expected)
	}

	// For wildcard paths that return multiple results, any match is enough
	for _, r := range results {
		if valuesEqual(r, c.Expected) {
			return true
		}
	}
	return false
}

// isExistenceCheck reports whether expected is of the form {"exists": bool}.
func isExistenceCheck(expected any) bool {
	m, ok := expected.(map[string]any)
	if !ok || len(m) != 1 {
		return false
	}
	_, ok = m["exists"].(bool)
	return ok
}

func getExistsValue(expected any) bool {
	m, _ := expected.(map[string]any)
	b, _ := m["exists"].(bool)
	return b
}

// valuesEqual compares two values for equality, handling type coercion.
// Numbers compare by value whatever their Go type; objects and arrays are
// compared element by element with the same rules.
func valuesEqual(actual, expected any) bool {
	if actual == nil || expected == nil {
		return actual == nil && expected == nil
	}

	switch e := expected.(type) {
	case map[string]any:
		a, ok := actual.(map[string]any)
		if !ok || len(a) != len(e) {
			return false
		}
		for k, ev := range e {
			av, present := a[k]
			if !present || !valuesEqual(av, ev) {
				return false
			}
		}
		return true
	case []any:
		a, ok := actual.([]any)
		if !ok || len(a) != len(e) {
			return false
		}
		for i := range e {
			if !valuesEqual(a[i], e[i]) {
				return false
			}
		}
		return true
	}

	actualNum, actualIsNum := toFloat64(actual)
	expectedNum, expectedIsNum := toFloat64(expected)
	if actualIsNum || expectedIsNum {
		return actualIsNum && expectedIsNum && actualNum == expectedNum
	}

	return reflect.DeepEqual(actual, expected)
}

// toFloat64 attempts to convert a value to float64.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case int16:
		return float64(n), true
	case int8:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint8:
		return float64(n), true
	default:
		return 0, false
	}
}
