package rule

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/ohler55/ojg/jp"
)

// ValidationError represents a validation failure with context.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on %s: %s", e.Field, e.Message)
}

// methodRegex validates HTTP method tokens (RFC 7230). JSONP and other
// non-standard verbs are accepted as long as they are valid tokens.
var methodRegex = regexp.MustCompile(`^[A-Za-z0-9!#$%&'*+\-.^_\x60|~]+$`)

// headerNameRegex validates HTTP header names (RFC 7230).
var headerNameRegex = regexp.MustCompile(`^[A-Za-z0-9!#$%&'*+\-.^_\x60|~]+$`)

// Validate checks that the rule is structurally complete.
func (r *Rule) Validate() error {
	if r.Request == nil {
		return &ValidationError{Field: "request", Message: "request is required"}
	}
	if r.Response == nil {
		return &ValidationError{Field: "response", Message: "response is required"}
	}
	if err := r.Request.Validate(); err != nil {
		return err
	}
	return r.Response.Validate()
}

// Validate checks the request pattern.
func (p *Request) Validate() error {
	method := strings.TrimSpace(p.Method)
	if method == "" {
		return &ValidationError{Field: "request.method", Message: "method is required"}
	}
	if !methodRegex.MatchString(method) {
		return &ValidationError{
			Field:   "request.method",
			Message: fmt.Sprintf("invalid HTTP method: %s", p.Method),
		}
	}

	if strings.TrimSpace(p.Path) == "" {
		return &ValidationError{Field: "request.path", Message: "path is required"}
	}
	if _, err := url.PathUnescape(p.Path); err != nil {
		return &ValidationError{
			Field:   "request.path",
			Message: fmt.Sprintf("invalid path encoding: %s", err.Error()),
		}
	}

	for name := range p.Headers {
		if !headerNameRegex.MatchString(name) {
			return &ValidationError{
				Field:   "request.headers",
				Message: fmt.Sprintf("invalid header name: %q", name),
			}
		}
	}

	for expr := range p.JSONPath {
		if _, err := jp.ParseString(expr); err != nil {
			return &ValidationError{
				Field:   "request.jsonPath",
				Message: fmt.Sprintf("invalid JSONPath expression %q: %s", expr, err.Error()),
			}
		}
	}

	return nil
}

// Validate checks the response section.
func (r *Response) Validate() error {
	if r.Status != 0 && (r.Status < 100 || r.Status > 599) {
		return &ValidationError{
			Field:   "response.status",
			Message: fmt.Sprintf("status must be between 100 and 599, got %d", r.Status),
		}
	}
	for name := range r.Headers {
		if !headerNameRegex.MatchString(name) {
			return &ValidationError{
				Field:   "response.headers",
				Message: fmt.Sprintf("invalid header name: %q", name),
			}
		}
	}
	return nil
}
