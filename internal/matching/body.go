package matching

import "sort"

// MatchData checks the request body against a rule's data.
//
// When the rule data is an object, every key it declares must be present in
// the body with an equal value; extra body keys are ignored and an empty object
// matches any body, including none. Any other rule data must equal the body.
func MatchData(expected, actual any) bool {
	want, ok := expected.(map[string]any)
	if !ok {
		return valuesEqual(actual, expected)
	}
	if len(want) == 0 {
		return true
	}

	got, ok := actual.(map[string]any)
	if !ok {
		return false
	}
	for k, v := range want {
		av, present := got[k]
		if !present || !valuesEqual(av, v) {
			return false
		}
	}
	return true
}

// MissingDataKeys returns the declared data keys that are absent from the body
// or hold a different value. Used for near-miss reporting.
func MissingDataKeys(expected, actual any) []string {
	want, ok := expected.(map[string]any)
	if !ok {
		return nil
	}
	got, _ := actual.(map[string]any)

	var out []string
	for k, v := range want {
		av, present := got[k]
		if !present || !valuesEqual(av, v) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
