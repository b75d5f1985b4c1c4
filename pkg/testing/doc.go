// Package testing provides a testing SDK for using httpmock in Go tests.
//
// An HTTPMock binds an engine to a single test. Rules are configured with a
// fluent builder and the code under test talks to them through an
// *http.Client whose transport never leaves the process.
//
// # Basic Usage
//
//	func TestMyAPI(t *testing.T) {
//	    mock := httpmocktest.New(t)
//
//	    mock.Mock("GET", "/users/123").
//	        WithStatus(200).
//	        WithBody(map[string]any{"id": "123", "name": "Test User"}).
//	        Reply()
//
//	    api := NewAPIClient(mock.Client())
//	    user, err := api.GetUser(ctx, "123")
//	    ...
//
//	    mock.AssertCalled(t, "GET", "/users/123")
//	    mock.AssertNoUnmatched(t)
//	}
//
// # Request Matching
//
// Rules get more specific by declaring more constraints. When several rules
// match, the one satisfying the most constraints answers, and the first one
// registered wins ties.
//
//	mock.Mock("GET", "/search").
//	    WithQueryParam("q", "test").
//	    RespondWith(200, map[string]any{"results": []any{}})
//
//	mock.Mock("GET", "/api/secure").
//	    WithRequestHeader("Authorization", "Bearer token123").
//	    RespondWith(200, nil)
//
//	mock.Mock("POST", "/api/users").
//	    WithData(map[string]any{"role": "admin"}).
//	    WithJSONPath("$.tags[*]", "beta").
//	    RespondCreated(map[string]any{"id": 7})
//
// # Assertions
//
//	mock.AssertCalledTimes(t, "POST", "/api/users", 1)
//	mock.AssertNotCalled(t, "DELETE", "/api/users/7")
//
//	for _, req := range mock.Requests() {
//	    req.AssertHeader(t, "Content-Type", "application/json")
//	    req.AssertDataField(t, "user.name", "ada")
//	}
//
// # Resetting Between Tests
//
// Reset removes every rule and clears the request log:
//
//	mock.Mock("GET", "/api").RespondWith(200, nil)
//	// ... test ...
//	mock.Reset()
//	mock.Mock("GET", "/api").Err(500, "boom")
package testing
