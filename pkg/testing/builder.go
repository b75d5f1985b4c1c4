package testing

import (
	"net/http"

	"github.com/getmockd/httpmock/pkg/rule"
)

// RuleBuilder provides a fluent API for configuring a rule.
type RuleBuilder struct {
	mock *HTTPMock
	rule rule.Rule
}

// WithName sets a human-readable name for the rule. Names show up in
// unmatched-request diagnostics.
func (b *RuleBuilder) WithName(name string) *RuleBuilder {
	b.rule.Name = name
	return b
}

// WithParams requires the request to carry the given client-side parameters.
func (b *RuleBuilder) WithParams(params map[string]any) *RuleBuilder {
	if b.rule.Request.Params == nil {
		b.rule.Request.Params = make(map[string]any, len(params))
	}
	for k, v := range params {
		b.rule.Request.Params[k] = v
	}
	return b
}

// WithQueryParam requires a decoded query string parameter.
func (b *RuleBuilder) WithQueryParam(key, value string) *RuleBuilder {
	if b.rule.Request.QueryString == nil {
		b.rule.Request.QueryString = make(rule.StringMap)
	}
	b.rule.Request.QueryString[key] = value
	return b
}

// WithData requires the request body to contain data. An object matches as a
// subset of the body; anything else must equal it.
func (b *RuleBuilder) WithData(data any) *RuleBuilder {
	b.rule.Request.Data = data
	return b
}

// WithRequestHeader requires a request header.
func (b *RuleBuilder) WithRequestHeader(key, value string) *RuleBuilder {
	if b.rule.Request.Headers == nil {
		b.rule.Request.Headers = make(rule.StringMap)
	}
	b.rule.Request.Headers[key] = value
	return b
}

// WithJSONPath requires a JSONPath expression to yield value in the request body.
func (b *RuleBuilder) WithJSONPath(expr string, value any) *RuleBuilder {
	if b.rule.Request.JSONPath == nil {
		b.rule.Request.JSONPath = make(map[string]any)
	}
	b.rule.Request.JSONPath[expr] = value
	return b
}

// WithStatus sets the response status code.
func (b *RuleBuilder) WithStatus(code int) *RuleBuilder {
	b.rule.Response.Status = code
	return b
}

// WithBody sets the response data.
func (b *RuleBuilder) WithBody(data any) *RuleBuilder {
	b.rule.Response.Data = data
	return b
}

// WithHeader sets a response header.
func (b *RuleBuilder) WithHeader(key, value string) *RuleBuilder {
	if b.rule.Response.Headers == nil {
		b.rule.Response.Headers = make(rule.StringMap)
	}
	b.rule.Response.Headers[key] = value
	return b
}

// Build returns the rule without installing it.
func (b *RuleBuilder) Build() rule.Rule {
	return b.rule.Clone()
}

// Reply installs the rule after the ones already registered.
// The test fails if the rule is invalid.
func (b *RuleBuilder) Reply() {
	b.mock.t.Helper()
	b.mock.Add(b.Build())
}

// RespondWith sets status and body and installs the rule.
func (b *RuleBuilder) RespondWith(code int, data any) {
	b.mock.t.Helper()
	b.WithStatus(code).WithBody(data).Reply()
}

// Err installs a rule that answers with a failure status and data.
func (b *RuleBuilder) Err(code int, data any) {
	b.mock.t.Helper()
	if code < http.StatusBadRequest {
		b.mock.t.Fatalf("httpmock: Err needs a failure status, got %d", code)
		return
	}
	b.RespondWith(code, data)
}

// RespondCreated installs a 201 response with the given data.
func (b *RuleBuilder) RespondCreated(data any) {
	b.mock.t.Helper()
	b.RespondWith(http.StatusCreated, data)
}

// RespondNotFound installs a 404 response.
func (b *RuleBuilder) RespondNotFound() {
	b.mock.t.Helper()
	b.RespondWith(http.StatusNotFound, map[string]any{"error": "not found"})
}

// RespondServerError installs a 500 response.
func (b *RuleBuilder) RespondServerError() {
	b.mock.t.Helper()
	b.RespondWith(http.StatusInternalServerError, map[string]any{"error": "internal server error"})
}
