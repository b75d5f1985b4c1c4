package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/httpmock/pkg/rule"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const listJSON = `[
  {"name": "generic", "request": {"method": "GET", "path": "/user"}, "response": {"data": "pass"}},
  {
    "request": {"method": "GET", "path": "/user/search", "queryString": {"id": 1, "city": "ny&ny"}},
    "response": {"status": 404, "data": {"error": "none"}, "headers": {"X-Test": "yes"}}
  }
]`

const documentYAML = `
version: "1"
rules:
  - name: save
    request:
      method: post
      path: /user
      data:
        name: Carlos
      headers:
        X-Retry: 3
    response:
      status: 201
      data: saved
  - request:
      method: GET
      path: /items
      jsonPath:
        $.filter.active: true
    response:
      data: [1, 2]
`

func TestParseJSON(t *testing.T) {
	rules, err := ParseJSON([]byte(listJSON))
	require.NoError(t, err)
	require.Len(t, rules, 2)

	assert.Equal(t, "generic", rules[0].Name)
	assert.Equal(t, "pass", rules[0].Response.Data)
	assert.Nil(t, rules[0].Request.QueryString)

	assert.Equal(t, rule.StringMap{"id": "1", "city": "ny&ny"}, rules[1].Request.QueryString)
	assert.Equal(t, 404, rules[1].Response.Status)
	assert.Equal(t, "yes", rules[1].Response.Headers["X-Test"])
}

func TestParseJSON_DocumentForm(t *testing.T) {
	rules, err := ParseJSON([]byte(`{"rules": [{"request": {"method": "GET", "path": "/"}, "response": {}}]}`))
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, 200, rules[0].Response.StatusCode())
}

func TestParseYAML(t *testing.T) {
	rules, err := ParseYAML([]byte(documentYAML))
	require.NoError(t, err)
	require.Len(t, rules, 2)

	assert.Equal(t, "save", rules[0].Name)
	assert.Equal(t, "post", rules[0].Request.Method)
	assert.Equal(t, map[string]any{"name": "Carlos"}, rules[0].Request.Data)
	assert.Equal(t, rule.StringMap{"X-Retry": "3"}, rules[0].Request.Headers)
	assert.Equal(t, 201, rules[0].Response.Status)

	assert.Equal(t, map[string]any{"$.filter.active": true}, rules[1].Request.JSONPath)
	assert.Equal(t, []any{1, 2}, rules[1].Response.Data)
}

func TestParseYAML_ListForm(t *testing.T) {
	rules, err := ParseYAML([]byte("- request: {method: GET, path: /a}\n  response: {data: a}\n"))
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "/a", rules[0].Request.Path)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		parse   func([]byte) ([]rule.Rule, error)
		input   string
		wantErr error
	}{
		{"empty JSON", ParseJSON, "  \n", ErrEmptyFile},
		{"bad JSON", ParseJSON, `[{"request":`, ErrInvalidJSON},
		{"empty YAML", ParseYAML, "# nothing here\n", ErrEmptyFile},
		{"bad YAML", ParseYAML, "rules: [\n", ErrInvalidYAML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.parse([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestParse_SchemaErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantPath string
	}{
		{"missing method", `[{"request": {"path": "/"}, "response": {}}]`, "[0].request"},
		{"method not a string", `[{"request": {"method": 1, "path": "/"}, "response": {}}]`, "[0].request.method"},
		{"missing response", `[{"request": {"method": "GET", "path": "/"}}]`, "[0]"},
		{"unknown request field", `[{"request": {"method": "GET", "path": "/", "body": "x"}, "response": {}}]`, "[0].request"},
		{"status out of range", `{"rules": [{"request": {"method": "GET", "path": "/"}, "response": {"status": 700}}]}`, "rules[0].response.status"},
		{"nested query value", `[{"request": {"method": "GET", "path": "/", "queryString": {"a": {"b": 1}}}, "response": {}}]`, "[0].request.queryString.a"},
		{"document without rules", `{"version": "1"}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON([]byte(tt.input))
			require.Error(t, err)

			var schemaErr *SchemaError
			require.ErrorAs(t, err, &schemaErr)
			require.NotEmpty(t, schemaErr.Errors)

			paths := make([]string, len(schemaErr.Errors))
			for i, fe := range schemaErr.Errors {
				paths[i] = fe.Path
			}
			assert.Contains(t, paths, tt.wantPath)
		})
	}
}

func TestParseYAML_SchemaErrors(t *testing.T) {
	_, err := ParseYAML([]byte("- request: {method: GET}\n  response: {}\n"))
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, err.Error(), "[0].request")
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("json", func(t *testing.T) {
		rules, err := LoadFromFile(writeFile(t, dir, "rules.json", listJSON))
		require.NoError(t, err)
		assert.Len(t, rules, 2)
	})

	t.Run("yaml by extension", func(t *testing.T) {
		rules, err := LoadFromFile(writeFile(t, dir, "rules.YML", documentYAML))
		require.NoError(t, err)
		assert.Len(t, rules, 2)
	})

	t.Run("env expansion", func(t *testing.T) {
		t.Setenv("HTTPMOCK_TEST_PATH", "/from-env")
		path := writeFile(t, dir, "env.yaml", `
- request: {method: GET, path: "${HTTPMOCK_TEST_PATH}"}
  response: {data: "${HTTPMOCK_TEST_UNSET:-fallback}"}
`)
		rules, err := LoadFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, "/from-env", rules[0].Request.Path)
		assert.Equal(t, "fallback", rules[0].Response.Data)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFromFile(filepath.Join(dir, "nope.json"))
		assert.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := LoadFromFile(dir)
		assert.ErrorContains(t, err, "directory")
	})

	t.Run("error names the file", func(t *testing.T) {
		path := writeFile(t, dir, "empty.json", "")
		_, err := LoadFromFile(path)
		assert.ErrorIs(t, err, ErrEmptyFile)
		assert.ErrorContains(t, err, path)
	})
}

func TestLoadGlob(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.json", `[{"request": {"method": "GET", "path": "/b"}, "response": {}}]`)
	writeFile(t, dir, "a.yaml", "- request: {method: GET, path: /a}\n  response: {}\n")
	writeFile(t, dir, "nested/deep/c.yml", "- request: {method: GET, path: /c}\n  response: {}\n")
	writeFile(t, dir, "notes.txt", "ignored")

	paths := func(rules []rule.Rule) []string {
		out := make([]string, len(rules))
		for i, r := range rules {
			out[i] = r.Request.Path
		}
		return out
	}

	t.Run("recursive", func(t *testing.T) {
		rules, err := LoadGlob(filepath.Join(dir, "**", "*.{json,yaml,yml}"))
		require.NoError(t, err)
		assert.Equal(t, []string{"/a", "/b", "/c"}, paths(rules))
	})

	t.Run("overlapping patterns load once", func(t *testing.T) {
		rules, err := LoadGlob(filepath.Join(dir, "*.json"), filepath.Join(dir, "b.json"))
		require.NoError(t, err)
		assert.Equal(t, []string{"/b"}, paths(rules))
	})

	t.Run("no matches", func(t *testing.T) {
		_, err := LoadGlob(filepath.Join(dir, "*.toml"))
		assert.ErrorIs(t, err, ErrNoFiles)
	})

	t.Run("plain missing path", func(t *testing.T) {
		_, err := LoadGlob(filepath.Join(dir, "missing.json"))
		assert.ErrorIs(t, err, ErrFileNotFound)
	})
}

func TestToJSONAndYAML(t *testing.T) {
	rules := []rule.Rule{{
		Name:     "r",
		Request:  &rule.Request{Method: "GET", Path: "/"},
		Response: &rule.Response{Data: "x"},
	}}

	data, err := ToJSON(rules)
	require.NoError(t, err)
	back, err := ParseJSON(data)
	require.NoError(t, err)
	assert.Equal(t, "r", back[0].Name)

	data, err = ToYAML(rules)
	require.NoError(t, err)
	back, err = ParseYAML(data)
	require.NoError(t, err)
	assert.Equal(t, "x", back[0].Response.Data)
}

func TestFieldPath(t *testing.T) {
	assert.Equal(t, "", fieldPath(""))
	assert.Equal(t, "[0].request.method", fieldPath("/0/request/method"))
	assert.Equal(t, "rules[2].response", fieldPath("/rules/2/response"))
	assert.Equal(t, "[0].request.jsonPath.$.a/b", fieldPath("/0/request/jsonPath/$.a~1b"))
}

func TestSchema(t *testing.T) {
	assert.Contains(t, string(Schema()), "2020-12")
}
