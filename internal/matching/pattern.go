package matching

import (
	"fmt"

	"github.com/getmockd/httpmock/internal/canonical"
	"github.com/getmockd/httpmock/pkg/rule"
)

// Pattern is a rule request compiled for matching. Nil maps, a false HasData
// and a nil JSONPath mean the constraint is not declared.
type Pattern struct {
	Method      string
	Path        string
	Params      map[string]any
	QueryString map[string]string
	Data        any
	HasData     bool
	Headers     map[string]string
	JSONPath    []JSONPathCondition
}

// Compile canonicalizes a rule request. A query string embedded in the path
// is merged into the queryString constraint; explicitly declared keys win.
func Compile(req *rule.Request) (*Pattern, error) {
	if req == nil {
		return nil, fmt.Errorf("request is required")
	}

	method, path, embedded, err := canonical.Pattern(req.Method, req.Path)
	if err != nil {
		return nil, err
	}

	p := &Pattern{
		Method: method,
		Path:   path,
	}

	if req.Params != nil {
		p.Params = make(map[string]any, len(req.Params))
		for k, v := range req.Params {
			p.Params[k] = canonical.NormalizeData(v)
		}
	}

	if req.QueryString != nil || embedded.Len() > 0 {
		p.QueryString = make(map[string]string, len(req.QueryString)+embedded.Len())
		for _, k := range embedded.Keys() {
			v, _ := embedded.Get(k)
			p.QueryString[k] = v
		}
		for k, v := range req.QueryString {
			p.QueryString[k] = v
		}
	}

	if req.Data != nil {
		p.Data = canonical.NormalizeData(req.Data)
		p.HasData = true
	}

	if req.Headers != nil {
		p.Headers = make(map[string]string, len(req.Headers))
		for k, v := range req.Headers {
			p.Headers[k] = v
		}
	}

	if req.JSONPath != nil {
		conds, err := CompileJSONPath(req.JSONPath)
		if err != nil {
			return nil, err
		}
		p.JSONPath = conds
	}

	return p, nil
}

// Constraints returns the number of optional constraint categories the pattern declares.
func (p *Pattern) Constraints() int {
	n := 0
	if p.Params != nil {
		n++
	}
	if p.QueryString != nil {
		n++
	}
	if p.HasData {
		n++
	}
	if p.Headers != nil {
		n++
	}
	if p.JSONPath != nil {
		n++
	}
	return n
}
