// Package matching selects the rule that best fits a canonical request.
//
// Matching is scored, not boolean. A rule matches only when every constraint it
// declares holds:
//
//   - Method: exact, case-insensitive; always required
//   - Path: exact after canonicalization; always required
//   - Params: subset match on client-side parameters
//   - QueryString: subset match on the decoded URL query
//   - Data: subset match on the top-level keys of the request body
//   - Headers: subset match, header names case-insensitive
//   - JSONPath: every expression yields the expected value from the body
//
// A failed declared constraint disqualifies the rule; there is no partial
// credit. Method and path together score ScoreBaseline and every declared,
// satisfied constraint category adds ScoreConstraint. The highest score wins and
// ties go to the earliest rule.
//
// Key types:
//
//   - Pattern: a rule request compiled for matching (see Compile)
//   - Result: the winning rule index and its score
//   - NearMiss: per-field breakdown of a rule that did not match
package matching
