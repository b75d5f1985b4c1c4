package rule

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultStatus is the response status used when a rule omits one.
const DefaultStatus = 200

// Rule maps a request pattern to a canned response.
type Rule struct {
	// ID identifies the rule in logs and diagnostics. Assigned at install time when empty.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// Name is an optional human-readable label.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	Request  *Request  `json:"request" yaml:"request"`
	Response *Response `json:"response" yaml:"response"`
}

// Request is the request pattern of a rule. Nil maps and a nil Data mean
// the constraint is not declared and imposes no restriction.
type Request struct {
	Method string `json:"method" yaml:"method"`
	Path   string `json:"path" yaml:"path"`

	// Params are client-side parameters supplied alongside the URL, not parsed from it.
	Params map[string]any `json:"params,omitempty" yaml:"params,omitempty"`

	// QueryString is matched against the decoded query string of the request URL.
	QueryString StringMap `json:"queryString,omitempty" yaml:"queryString,omitempty"`

	// Data is matched as a subset of the request body.
	Data any `json:"data,omitempty" yaml:"data,omitempty"`

	// Headers are matched case-insensitively by name and exactly by value.
	Headers StringMap `json:"headers,omitempty" yaml:"headers,omitempty"`

	// JSONPath maps JSONPath expressions to the value expected in the request body.
	JSONPath map[string]any `json:"jsonPath,omitempty" yaml:"jsonPath,omitempty"`
}

// Response is the canned response of a rule.
type Response struct {
	Status  int       `json:"status,omitempty" yaml:"status,omitempty"`
	Data    any       `json:"data" yaml:"data"`
	Headers StringMap `json:"headers,omitempty" yaml:"headers,omitempty"`
}

// StatusCode returns the configured status or DefaultStatus.
func (r *Response) StatusCode() int {
	if r == nil || r.Status == 0 {
		return DefaultStatus
	}
	return r.Status
}

// Label returns the name of the rule, falling back to its ID.
func (r *Rule) Label() string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

// Clone returns a copy of the rule whose maps are not shared with r.
// Data values are shared.
func (r Rule) Clone() Rule {
	out := r
	if r.Request != nil {
		req := *r.Request
		req.Params = cloneAnyMap(r.Request.Params)
		req.QueryString = r.Request.QueryString.Clone()
		req.Headers = r.Request.Headers.Clone()
		req.JSONPath = cloneAnyMap(r.Request.JSONPath)
		out.Request = &req
	}
	if r.Response != nil {
		resp := *r.Response
		resp.Headers = r.Response.Headers.Clone()
		out.Response = &resp
	}
	return out
}

func cloneAnyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// StringMap is a string-to-string mapping that also accepts numbers and
// booleans as values in JSON and YAML documents, so `id: 1` reads as "1".
type StringMap map[string]string

// Clone returns a copy of m. A nil map stays nil.
func (m StringMap) Clone() StringMap {
	if m == nil {
		return nil
	}
	out := make(StringMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *StringMap) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*m = nil
		return nil
	}
	out := make(StringMap, len(raw))
	for k, v := range raw {
		s, err := scalarString(v)
		if err != nil {
			return fmt.Errorf("key %q: %w", k, err)
		}
		out[k] = s
	}
	*m = out
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *StringMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("expected mapping node, got %d", value.Kind)
	}
	out := make(StringMap, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return fmt.Errorf("key %q: expected a scalar value", key.Value)
		}
		out[key.Value] = val.Value
	}
	*m = out
	return nil
}

func scalarString(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(t), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("expected a scalar value, got %T", v)
	}
}
