package testing

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/getmockd/httpmock/internal/canonical"
	"github.com/getmockd/httpmock/pkg/requestlog"
	"github.com/ohler55/ojg/jp"
)

// RequestLog is a recorded request with assertion helpers.
type RequestLog struct {
	requestlog.Record
}

// AssertMethod asserts the request method.
func (r *RequestLog) AssertMethod(t testing.TB, expected string) {
	t.Helper()
	if !strings.EqualFold(r.Method, expected) {
		t.Errorf("request method does not match\nexpected: %s\nactual: %s", strings.ToUpper(expected), r.Method)
	}
}

// AssertPath asserts the decoded request path.
func (r *RequestLog) AssertPath(t testing.TB, expected string) {
	t.Helper()
	if r.Path != expected {
		t.Errorf("request path does not match\nexpected: %s\nactual: %s", expected, r.Path)
	}
}

// AssertQueryParam asserts a decoded query string parameter.
func (r *RequestLog) AssertQueryParam(t testing.TB, key, expected string) {
	t.Helper()
	actual, ok := r.QueryString[key]
	if !ok {
		t.Errorf("query parameter %q not found", key)
		return
	}
	if actual != expected {
		t.Errorf("query parameter %q does not match\nexpected: %q\nactual: %q", key, expected, actual)
	}
}

// AssertHeader asserts that a request header has the expected value.
func (r *RequestLog) AssertHeader(t testing.TB, key, expected string) {
	t.Helper()
	values := r.Headers.Values(key)
	if len(values) == 0 {
		t.Errorf("header %q not found in request", key)
		return
	}
	if values[0] != expected {
		t.Errorf("header %q does not match\nexpected: %q\nactual: %q", key, expected, values[0])
	}
}

// AssertData asserts that the request body equals expected. Structs, typed
// maps and JSON text are normalized before comparing.
func (r *RequestLog) AssertData(t testing.TB, expected any) {
	t.Helper()

	want := canonical.NormalizeData(expected)
	if s, ok := expected.(string); ok {
		want = canonical.DecodeBody([]byte(s))
	}
	got := canonical.NormalizeData(r.Data)

	if !reflect.DeepEqual(got, want) {
		expectedBytes, _ := json.MarshalIndent(want, "", "  ")
		actualBytes, _ := json.MarshalIndent(got, "", "  ")
		t.Errorf("request data does not match\nexpected:\n%s\nactual:\n%s",
			string(expectedBytes), string(actualBytes))
	}
}

// DataField extracts a value from the request body using a JSONPath
// expression such as "$.user.name". A bare "user.name" is accepted too.
// Returns nil and false when nothing is found.
func (r *RequestLog) DataField(path string) (any, bool) {
	if !strings.HasPrefix(path, "$") {
		path = "$." + path
	}
	expr, err := jp.ParseString(path)
	if err != nil {
		return nil, false
	}

	data := canonical.NormalizeData(r.Data)
	switch data.(type) {
	case map[string]any, []any:
	default:
		return nil, false
	}

	results := expr.Get(data)
	if len(results) == 0 {
		return nil, false
	}
	return results[0], true
}

// AssertDataField asserts that a field in the request body has the expected value.
func (r *RequestLog) AssertDataField(t testing.TB, path string, expected any) {
	t.Helper()

	actual, ok := r.DataField(path)
	if !ok {
		t.Errorf("field %q not found in request data", path)
		return
	}

	want := canonical.NormalizeData(expected)
	if !reflect.DeepEqual(actual, want) {
		t.Errorf("field %q does not match\nexpected: %v (%T)\nactual: %v (%T)", path, want, want, actual, actual)
	}
}
