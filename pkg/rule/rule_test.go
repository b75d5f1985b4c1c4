package rule

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func validRule() Rule {
	return Rule{
		Request:  &Request{Method: "GET", Path: "/user"},
		Response: &Response{Data: "pass"},
	}
}

func TestRuleValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *Rule)
		wantField string
	}{
		{"valid", func(r *Rule) {}, ""},
		{"missing request", func(r *Rule) { r.Request = nil }, "request"},
		{"missing response", func(r *Rule) { r.Response = nil }, "response"},
		{"missing method", func(r *Rule) { r.Request.Method = "" }, "request.method"},
		{"blank method", func(r *Rule) { r.Request.Method = "  " }, "request.method"},
		{"method with space", func(r *Rule) { r.Request.Method = "GE T" }, "request.method"},
		{"lowercase method", func(r *Rule) { r.Request.Method = "post" }, ""},
		{"jsonp method", func(r *Rule) { r.Request.Method = "jsonp" }, ""},
		{"missing path", func(r *Rule) { r.Request.Path = "" }, "request.path"},
		{"bad path escape", func(r *Rule) { r.Request.Path = "/user/%zz" }, "request.path"},
		{"bad header name", func(r *Rule) { r.Request.Headers = StringMap{"bad header": "x"} }, "request.headers"},
		{"bad jsonpath", func(r *Rule) { r.Request.JSONPath = map[string]any{"$[invalid": 1} }, "request.jsonPath"},
		{"valid jsonpath", func(r *Rule) { r.Request.JSONPath = map[string]any{"$.user.name": "x"} }, ""},
		{"status too low", func(r *Rule) { r.Response.Status = 42 }, "response.status"},
		{"status too high", func(r *Rule) { r.Response.Status = 600 }, "response.status"},
		{"status 500", func(r *Rule) { r.Response.Status = 500 }, ""},
		{"bad response header", func(r *Rule) { r.Response.Headers = StringMap{"a:b": "x"} }, "response.headers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRule()
			tt.mutate(&r)
			err := r.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestResponseStatusCode(t *testing.T) {
	assert.Equal(t, 200, (&Response{}).StatusCode())
	assert.Equal(t, 404, (&Response{Status: 404}).StatusCode())

	var nilResp *Response
	assert.Equal(t, DefaultStatus, nilResp.StatusCode())
}

func TestRuleLabel(t *testing.T) {
	r := Rule{ID: "rule-1"}
	assert.Equal(t, "rule-1", r.Label())
	r.Name = "user lookup"
	assert.Equal(t, "user lookup", r.Label())
}

func TestRuleClone(t *testing.T) {
	r := validRule()
	r.Request.Params = map[string]any{"id": 1}
	r.Request.QueryString = StringMap{"q": "a"}
	r.Response.Headers = StringMap{"X-Test": "1"}

	c := r.Clone()
	c.Request.Params["id"] = 2
	c.Request.QueryString["q"] = "b"
	c.Response.Headers["X-Test"] = "2"
	c.Request.Path = "/other"

	assert.Equal(t, 1, r.Request.Params["id"])
	assert.Equal(t, "a", r.Request.QueryString["q"])
	assert.Equal(t, "1", r.Response.Headers["X-Test"])
	assert.Equal(t, "/user", r.Request.Path)
}

func TestStringMap_JSONAcceptsScalars(t *testing.T) {
	var m StringMap
	require.NoError(t, json.Unmarshal([]byte(`{"id": 1, "ratio": 0.5, "ok": true, "city": "ny&ny"}`), &m))
	assert.Equal(t, StringMap{"id": "1", "ratio": "0.5", "ok": "true", "city": "ny&ny"}, m)

	err := json.Unmarshal([]byte(`{"nested": {"a": 1}}`), &m)
	assert.Error(t, err)
}

func TestStringMap_YAMLAcceptsScalars(t *testing.T) {
	var m StringMap
	require.NoError(t, yaml.Unmarshal([]byte("id: 1\ncity: ny&ny\n"), &m))
	assert.Equal(t, StringMap{"id": "1", "city": "ny&ny"}, m)

	err := yaml.Unmarshal([]byte("nested:\n  a: 1\n"), &m)
	assert.Error(t, err)
}

func TestRule_DecodeJSON(t *testing.T) {
	doc := `{
		"name": "save carlos",
		"request": {"method": "post", "path": "/user", "data": {"name": "Carlos"}},
		"response": {"status": 201, "data": "Carlos has been saved"}
	}`

	var r Rule
	require.NoError(t, json.Unmarshal([]byte(doc), &r))
	require.NoError(t, r.Validate())

	assert.Equal(t, "save carlos", r.Name)
	assert.Equal(t, "post", r.Request.Method)
	assert.Equal(t, map[string]any{"name": "Carlos"}, r.Request.Data)
	assert.Equal(t, 201, r.Response.StatusCode())
	assert.Equal(t, "Carlos has been saved", r.Response.Data)
}
