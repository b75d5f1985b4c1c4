package engine

import (
	"net/http"

	"github.com/getmockd/httpmock/pkg/rule"
)

// Outcome is the response synthesized from a matched rule.
type Outcome struct {
	Status  int
	Data    any
	Headers map[string]string

	// RuleID and RuleName identify the rule that produced the outcome.
	RuleID   string
	RuleName string
}

// Success reports whether the status is below 400.
func (o Outcome) Success() bool {
	return o.Status < http.StatusBadRequest
}

// Failure reports whether the status is 400 or above.
func (o Outcome) Failure() bool {
	return !o.Success()
}

// Synthesize projects the response section of a rule into an Outcome. The
// data is copied so callers may modify it freely.
func Synthesize(r *rule.Rule) Outcome {
	out := Outcome{
		Status:   r.Response.StatusCode(),
		Data:     copyData(r.Response.Data),
		RuleID:   r.ID,
		RuleName: r.Name,
	}
	if r.Response.Headers != nil {
		out.Headers = r.Response.Headers.Clone()
	}
	return out
}

func copyData(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = copyData(e)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = copyData(e)
		}
		return s
	case []byte:
		return append([]byte(nil), t...)
	default:
		return v
	}
}
