package testing

import (
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/getmockd/httpmock/internal/canonical"
	"github.com/getmockd/httpmock/pkg/engine"
	"github.com/getmockd/httpmock/pkg/logging"
	"github.com/getmockd/httpmock/pkg/requestlog"
	"github.com/getmockd/httpmock/pkg/rule"
)

// HTTPMock is a test helper around an engine bound to a single test.
// It provides a fluent API for configuring rules and assertions on the
// requests the code under test made.
type HTTPMock struct {
	t      testing.TB
	engine *engine.Engine

	// installMu serializes rule list updates from snapshot to install.
	installMu sync.Mutex

	mu    sync.Mutex
	rules []rule.Rule
	// unmatchedBase is the engine's unmatched count at the last Reset.
	unmatchedBase int
}

// New creates an HTTPMock with the given rules installed. Engine logs go to
// t.Log. The test fails immediately if a rule is invalid.
func New(t testing.TB, rules ...rule.Rule) *HTTPMock {
	t.Helper()

	m := &HTTPMock{
		t:      t,
		engine: engine.New(engine.WithLogger(logging.NewTB(t))),
	}
	if len(rules) > 0 {
		m.install(append([]rule.Rule(nil), rules...))
	}
	return m
}

// Engine returns the underlying engine for advanced use cases.
// Most tests should not need this.
func (m *HTTPMock) Engine() *engine.Engine {
	return m.engine
}

// Client returns an http.Client whose requests are answered by the mock.
func (m *HTTPMock) Client() *http.Client {
	return m.engine.HTTPClient()
}

// Transport returns the mock as an http.RoundTripper, for clients built
// elsewhere.
func (m *HTTPMock) Transport() http.RoundTripper {
	return m.engine.Transport()
}

// Mock starts building a rule for the given method and path.
//
//	mock.Mock("GET", "/users/123").
//	    WithStatus(200).
//	    WithBody(map[string]any{"id": "123"}).
//	    Reply()
func (m *HTTPMock) Mock(method, path string) *RuleBuilder {
	m.t.Helper()
	return &RuleBuilder{
		mock: m,
		rule: rule.Rule{
			Request:  &rule.Request{Method: method, Path: path},
			Response: &rule.Response{Status: http.StatusOK},
		},
	}
}

// Add appends rules to the installed set.
func (m *HTTPMock) Add(rules ...rule.Rule) {
	m.t.Helper()
	m.installMu.Lock()
	defer m.installMu.Unlock()

	m.mu.Lock()
	next := append(append([]rule.Rule(nil), m.rules...), rules...)
	m.mu.Unlock()
	m.install(next)
}

// install installs the full rule list, failing the test on error.
func (m *HTTPMock) install(rules []rule.Rule) {
	m.t.Helper()
	if err := m.engine.Install(rules); err != nil {
		m.t.Fatalf("httpmock: %v", err)
		return
	}
	m.mu.Lock()
	m.rules = rules
	m.mu.Unlock()
}

// Reset removes all rules and clears the request log.
// Use this between test cases to start fresh.
func (m *HTTPMock) Reset() {
	m.t.Helper()
	m.installMu.Lock()
	m.install(nil)
	m.installMu.Unlock()
	m.engine.Log().Clear()
	m.mu.Lock()
	m.unmatchedBase = m.engine.Stats().Unmatched
	m.mu.Unlock()
}

// ClearRequests empties the request log, keeping the rules.
func (m *HTTPMock) ClearRequests() {
	m.engine.Log().Clear()
}

// Requests returns all logged requests in the order they were made.
func (m *HTTPMock) Requests() []RequestLog {
	records := m.engine.Log().All()
	out := make([]RequestLog, len(records))
	for i, r := range records {
		out[i] = RequestLog{Record: r}
	}
	return out
}

// AssertCalled asserts that an endpoint was called at least once.
// The path may carry a query string, which then must also match.
func (m *HTTPMock) AssertCalled(t testing.TB, method, path string) {
	t.Helper()
	if m.countCalls(method, path) == 0 {
		t.Errorf("expected %s %s to be called, but it was not\n%s", strings.ToUpper(method), path, m.describeRequests())
	}
}

// AssertCalledTimes asserts that an endpoint was called exactly n times.
func (m *HTTPMock) AssertCalledTimes(t testing.TB, method, path string, n int) {
	t.Helper()
	if got := m.countCalls(method, path); got != n {
		t.Errorf("expected %s %s to be called %d times, but it was called %d times", strings.ToUpper(method), path, n, got)
	}
}

// AssertNotCalled asserts that an endpoint was never called.
func (m *HTTPMock) AssertNotCalled(t testing.TB, method, path string) {
	t.Helper()
	if got := m.countCalls(method, path); got > 0 {
		t.Errorf("expected %s %s not to be called, but it was called %d times", strings.ToUpper(method), path, got)
	}
}

// AssertNoUnmatched asserts that every request since the last Reset matched a rule.
func (m *HTTPMock) AssertNoUnmatched(t testing.TB) {
	t.Helper()
	m.mu.Lock()
	base := m.unmatchedBase
	m.mu.Unlock()
	if n := m.engine.Stats().Unmatched - base; n > 0 {
		t.Errorf("%d request(s) matched no rule\n%s", n, m.describeRequests())
	}
}

// countCalls counts how many times a method/path combination was called.
func (m *HTTPMock) countCalls(method, path string) int {
	want := canonical.NewRequest(method, path)

	count := 0
	for _, r := range m.engine.Log().List(&requestlog.Filter{Method: want.Method}) {
		if r.Path != want.Path {
			continue
		}
		if queryMatches(want.Query, r.QueryString) {
			count++
		}
	}
	return count
}

func queryMatches(want canonical.Query, got map[string]string) bool {
	for _, k := range want.Keys() {
		v, _ := want.Get(k)
		if g, ok := got[k]; !ok || g != v {
			return false
		}
	}
	return true
}

func (m *HTTPMock) describeRequests() string {
	records := m.engine.Log().All()
	if len(records) == 0 {
		return "no requests were recorded"
	}
	var b strings.Builder
	b.WriteString("recorded requests:")
	for _, r := range records {
		b.WriteString("\n  " + r.Method + " " + r.URL)
	}
	return b.String()
}
