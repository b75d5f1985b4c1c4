package engine

import (
	"github.com/google/uuid"

	"github.com/getmockd/httpmock/internal/matching"
	"github.com/getmockd/httpmock/pkg/rule"
)

// registry is an immutable, compiled rule set. Install builds a new one and
// swaps it in; it is never modified afterwards.
type registry struct {
	rules    []rule.Rule
	patterns []*matching.Pattern
}

// compile validates and canonicalizes rules in order. It stops at the first
// invalid rule. Rules without an ID are given one.
func compile(rules []rule.Rule) (*registry, error) {
	reg := &registry{
		rules:    make([]rule.Rule, 0, len(rules)),
		patterns: make([]*matching.Pattern, 0, len(rules)),
	}
	for i := range rules {
		r := rules[i].Clone()
		if err := r.Validate(); err != nil {
			return nil, newInvalidRuleError(i, &r, err)
		}
		p, err := matching.Compile(r.Request)
		if err != nil {
			return nil, &InvalidRuleError{
				Index:   i,
				Name:    r.Name,
				Field:   "request.path",
				Message: err.Error(),
				Err:     err,
			}
		}
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		reg.rules = append(reg.rules, r)
		reg.patterns = append(reg.patterns, p)
	}
	return reg, nil
}

// snapshot returns copies of the installed rules.
func (r *registry) snapshot() []rule.Rule {
	out := make([]rule.Rule, len(r.rules))
	for i := range r.rules {
		out[i] = r.rules[i].Clone()
	}
	return out
}
