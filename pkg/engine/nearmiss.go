package engine

import (
	"fmt"

	"github.com/getmockd/httpmock/internal/matching"
)

// NearMiss describes an installed rule that partially matched a request.
type NearMiss struct {
	// RuleIndex is the position of the rule in the installed set.
	RuleIndex int    `json:"ruleIndex"`
	RuleID    string `json:"ruleId"`
	RuleName  string `json:"ruleName,omitempty"`

	// Matched and Declared count the pattern fields that held and the fields
	// the rule declares, method and path included.
	Matched         int `json:"matched"`
	Declared        int `json:"declared"`
	MatchPercentage int `json:"matchPercentage"`

	// Mismatched names the fields that failed.
	Mismatched []string `json:"mismatched,omitempty"`

	// Reason is a human-readable explanation of why the rule did not match.
	Reason string `json:"reason"`
}

func (nm NearMiss) label() string {
	if nm.RuleName != "" {
		return fmt.Sprintf("%q", nm.RuleName)
	}
	return fmt.Sprintf("rule %d", nm.RuleIndex)
}

func newNearMiss(reg *registry, m matching.NearMiss) NearMiss {
	r := reg.rules[m.Index]
	out := NearMiss{
		RuleIndex:       m.Index,
		RuleID:          r.ID,
		RuleName:        r.Name,
		Matched:         m.Matched,
		Declared:        m.Declared,
		MatchPercentage: m.MatchPercentage,
		Reason:          m.Reason,
	}
	for _, f := range m.Fields {
		if !f.Matched {
			out.Mismatched = append(out.Mismatched, f.Field)
		}
	}
	return out
}
