package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/rules.schema.json
var ruleSchemaJSON []byte

const ruleSchemaURL = "rules.schema.json"

var (
	ruleSchema     *jsonschema.Schema
	ruleSchemaErr  error
	ruleSchemaOnce sync.Once
)

// Schema returns the JSON Schema rule files are validated against.
func Schema() []byte {
	return bytes.Clone(ruleSchemaJSON)
}

func compiledSchema() (*jsonschema.Schema, error) {
	ruleSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(ruleSchemaURL, bytes.NewReader(ruleSchemaJSON)); err != nil {
			ruleSchemaErr = fmt.Errorf("failed to add schema resource: %w", err)
			return
		}
		ruleSchema, ruleSchemaErr = compiler.Compile(ruleSchemaURL)
	})
	return ruleSchema, ruleSchemaErr
}

// FieldError is a single schema violation.
type FieldError struct {
	// Path locates the offending value, e.g. "rules[0].request.method".
	Path    string
	Message string
}

func (e FieldError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// SchemaError reports every schema violation found in a rule document.
type SchemaError struct {
	Errors []FieldError
}

func (e *SchemaError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Error()
	}
	return "schema validation failed: " + strings.Join(msgs, "; ")
}

// validateDocument checks a decoded document (generic JSON values) against the rule schema.
func validateDocument(doc any) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}
	err = schema.Validate(doc)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	out := &SchemaError{}
	collectSchemaErrors(verr, out)
	sort.SliceStable(out.Errors, func(i, j int) bool { return out.Errors[i].Path < out.Errors[j].Path })
	return out
}

// collectSchemaErrors flattens the cause tree into its leaves.
func collectSchemaErrors(err *jsonschema.ValidationError, out *SchemaError) {
	if len(err.Causes) == 0 {
		out.Errors = append(out.Errors, FieldError{
			Path:    fieldPath(err.InstanceLocation),
			Message: err.Message,
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(cause, out)
	}
}

// fieldPath converts a JSON Pointer such as "/rules/0/request" into
// "rules[0].request".
func fieldPath(pointer string) string {
	pointer = strings.TrimPrefix(pointer, "/")
	if pointer == "" {
		return ""
	}
	var b strings.Builder
	for _, seg := range strings.Split(pointer, "/") {
		seg = strings.ReplaceAll(strings.ReplaceAll(seg, "~1", "/"), "~0", "~")
		if isIndex(seg) {
			b.WriteString("[" + seg + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
