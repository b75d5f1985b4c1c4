package engine

// Stats holds interception counters for an engine. Counters are cumulative
// and survive both Install and clearing the request log.
type Stats struct {
	Total     int `json:"total"`
	Matched   int `json:"matched"`
	Unmatched int `json:"unmatched"`

	// ByRule counts matches per rule ID.
	ByRule map[string]int `json:"byRule"`
}

func (s *Stats) hit(ruleID string) {
	s.Total++
	s.Matched++
	if s.ByRule == nil {
		s.ByRule = make(map[string]int)
	}
	s.ByRule[ruleID]++
}

func (s *Stats) miss() {
	s.Total++
	s.Unmatched++
}

func (s Stats) clone() Stats {
	out := s
	out.ByRule = make(map[string]int, len(s.ByRule))
	for k, v := range s.ByRule {
		out.ByRule[k] = v
	}
	return out
}
