package config

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/getmockd/httpmock/pkg/rule"
)

// fileContent represents the possible contents of a rule file: either a
// bare list of rules or a document with a "rules" list.
type fileContent struct {
	Version string      `json:"version,omitempty" yaml:"version,omitempty"`
	Name    string      `json:"name,omitempty" yaml:"name,omitempty"`
	Rules   []rule.Rule `json:"rules" yaml:"rules"`
}

// UnmarshalJSON handles both the list and the document form.
func (c *fileContent) UnmarshalJSON(data []byte) error {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &c.Rules)
	}
	type alias fileContent
	return json.Unmarshal(data, (*alias)(c))
}

// UnmarshalYAML handles both the list and the document form.
func (c *fileContent) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		return node.Decode(&c.Rules)
	}
	type alias fileContent
	return node.Decode((*alias)(c))
}
