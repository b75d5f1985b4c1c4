package engine

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/getmockd/httpmock/pkg/rule"
)

// ErrUnmatched is matched by every UnmatchedRequestError via errors.Is.
var ErrUnmatched = errors.New("no rule matched the request")

// InvalidRuleError is returned by Install when a rule cannot be installed.
// The previously installed rules stay active.
type InvalidRuleError struct {
	// Index is the position of the offending rule in the slice passed to Install.
	Index int
	// Name is the rule name, if any.
	Name    string
	Field   string
	Message string
	Err     error
}

func (e *InvalidRuleError) Error() string {
	label := fmt.Sprintf("rule %d", e.Index)
	if e.Name != "" {
		label = fmt.Sprintf("rule %d (%s)", e.Index, e.Name)
	}
	if e.Field == "" {
		return fmt.Sprintf("invalid %s: %s", label, e.Message)
	}
	return fmt.Sprintf("invalid %s: %s: %s", label, e.Field, e.Message)
}

func (e *InvalidRuleError) Unwrap() error {
	return e.Err
}

func newInvalidRuleError(index int, r *rule.Rule, err error) *InvalidRuleError {
	out := &InvalidRuleError{Index: index, Name: r.Name, Message: err.Error(), Err: err}
	var verr *rule.ValidationError
	if errors.As(err, &verr) {
		out.Field = verr.Field
		out.Message = verr.Message
	}
	return out
}

// UnmatchedRequestError is returned by Intercept when no installed rule
// matches the request. The request has been recorded regardless.
type UnmatchedRequestError struct {
	Method      string
	URL         string
	Path        string
	QueryString map[string]string
	Params      map[string]any
	Data        any
	Headers     http.Header
	// NearMisses are the rules that came closest, best first.
	NearMisses []NearMiss
}

func (e *UnmatchedRequestError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "no rule matched %s %s", e.Method, e.Path)
	if len(e.NearMisses) > 0 {
		nm := e.NearMisses[0]
		fmt.Fprintf(&b, " (closest: %s, %s)", nm.label(), nm.Reason)
	}
	return b.String()
}

// Is reports whether target is ErrUnmatched.
func (e *UnmatchedRequestError) Is(target error) bool {
	return target == ErrUnmatched
}
