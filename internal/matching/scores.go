package matching

// Match score constants. Every optional constraint category weighs the same,
// so a rule declaring more categories always outranks one declaring fewer.
const (
	// ScoreBaseline is the score of a rule whose method and path match.
	ScoreBaseline = 1

	// ScoreConstraint is added for each declared and satisfied constraint category.
	ScoreConstraint = 1
)

// Field names used in breakdowns.
const (
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldParams      = "params"
	FieldQueryString = "queryString"
	FieldData        = "data"
	FieldHeaders     = "headers"
	FieldJSONPath    = "jsonPath"
)
