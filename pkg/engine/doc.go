// Package engine intercepts outbound HTTP calls and answers them from a
// declarative rule set, without any network access.
//
// # Architecture
//
// Every intercepted call flows through the same synchronous pipeline:
//
//	RawRequest ──► canonicalize ──► request log ──► match ──► synthesize ──► Outcome
//	                                (always)        (best      (status,
//	                                                 rule)      data)
//
// The engine serializes the pipeline, so the order of the request log is the
// order in which calls entered the engine.
//
// # Hook points
//
//   - Engine.Transport: an http.RoundTripper for any *http.Client
//   - Engine.HTTPClient: a ready-made *http.Client using that transport
//   - Engine.Client: convenience wrappers (Get, Post, Head, JSONP, ...) that
//     skip HTTP encoding and return rule data as configured
//   - Engine.Intercept: the pipeline itself
//
// # Matching
//
// A rule matches when its method and path equal the request's and every
// constraint it declares holds. The rule declaring the most satisfied
// constraints wins; ties go to the rule installed first. A rule without
// constraints is a generic fallback for its method and path.
//
// # Basic Usage
//
//	e := engine.New()
//	err := e.Install([]rule.Rule{
//	    {
//	        Request:  &rule.Request{Method: "GET", Path: "/user"},
//	        Response: &rule.Response{Data: "pass"},
//	    },
//	    {
//	        Request:  &rule.Request{Method: "GET", Path: "/user", Params: map[string]any{"id": 1}},
//	        Response: &rule.Response{Data: map[string]any{"name": "Carlos"}},
//	    },
//	})
//
//	resp, err := e.Client().Get(ctx, "test-api.com/user", engine.WithParams(map[string]any{"id": 1}))
//	// resp.Data == map[string]any{"name": "Carlos"}
//
//	httpResp, err := e.HTTPClient().Get("https://test-api.com/user")
//	// httpResp.StatusCode == 200, body "pass"
//
//	e.Log().Count() // 2
//	e.Log().Clear()
package engine
