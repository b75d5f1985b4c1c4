// Package rule defines the declarative rule format consumed by the engine.
//
// A Rule pairs a request pattern with a canned response:
//
//	rules := []rule.Rule{
//	    {
//	        Request:  &rule.Request{Method: "GET", Path: "/user"},
//	        Response: &rule.Response{Data: "pass"},
//	    },
//	    {
//	        Request:  &rule.Request{Method: "GET", Path: "/user", Params: map[string]any{"id": 1}},
//	        Response: &rule.Response{Data: map[string]any{"name": "Carlos"}},
//	    },
//	}
//
// Method and path are always required. Params, QueryString, Data, Headers and
// JSONPath are optional constraints; each one a rule declares makes it more
// specific than a rule for the same method and path that leaves it out.
//
// Rules decode from JSON and YAML with the same field names.
package rule
