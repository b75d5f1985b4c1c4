package matching

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/httpmock/internal/canonical"
	"github.com/getmockd/httpmock/pkg/rule"
)

func mustCompile(t *testing.T, req *rule.Request) *Pattern {
	t.Helper()
	p, err := Compile(req)
	require.NoError(t, err)
	return p
}

func newReq(method, rawURL string, data any) *canonical.Request {
	r := canonical.NewRequest(method, rawURL)
	r.Data = canonical.NormalizeData(data)
	return r
}

func TestCompile(t *testing.T) {
	t.Run("embedded query merges into queryString", func(t *testing.T) {
		p := mustCompile(t, &rule.Request{
			Method:      "get",
			Path:        "/users?id=1&sort=asc",
			QueryString: rule.StringMap{"sort": "desc"},
		})
		assert.Equal(t, "GET", p.Method)
		assert.Equal(t, "/users", p.Path)
		assert.Equal(t, map[string]string{"id": "1", "sort": "desc"}, p.QueryString)
		assert.Equal(t, 1, p.Constraints())
	})

	t.Run("no constraints declared", func(t *testing.T) {
		p := mustCompile(t, &rule.Request{Method: "POST", Path: "/users"})
		assert.Nil(t, p.QueryString)
		assert.Nil(t, p.Params)
		assert.False(t, p.HasData)
		assert.Equal(t, 0, p.Constraints())
	})

	t.Run("empty declared maps still count", func(t *testing.T) {
		p := mustCompile(t, &rule.Request{
			Method:      "GET",
			Path:        "/users",
			Params:      map[string]any{},
			QueryString: rule.StringMap{},
			Data:        map[string]any{},
		})
		assert.Equal(t, 3, p.Constraints())
	})

	t.Run("host-prefixed path", func(t *testing.T) {
		p := mustCompile(t, &rule.Request{Method: "GET", Path: "test-api.com/users/%7Bid%7D"})
		assert.Equal(t, "/users/{id}", p.Path)
	})

	t.Run("missing method", func(t *testing.T) {
		_, err := Compile(&rule.Request{Path: "/users"})
		require.Error(t, err)
	})

	t.Run("undecodable path", func(t *testing.T) {
		_, err := Compile(&rule.Request{Method: "GET", Path: "/users/%zz"})
		require.ErrorIs(t, err, canonical.ErrInvalidPath)
	})

	t.Run("invalid jsonPath", func(t *testing.T) {
		_, err := Compile(&rule.Request{Method: "GET", Path: "/", JSONPath: map[string]any{"$[invalid": 1}})
		require.Error(t, err)
	})
}

func TestMatchScore(t *testing.T) {
	tests := []struct {
		name string
		rule *rule.Request
		req  *canonical.Request
		want int
	}{
		{
			name: "method and path only",
			rule: &rule.Request{Method: "GET", Path: "/users"},
			req:  newReq("GET", "/users", nil),
			want: ScoreBaseline,
		},
		{
			name: "method is case-insensitive",
			rule: &rule.Request{Method: "get", Path: "/users"},
			req:  newReq("Get", "/users", nil),
			want: ScoreBaseline,
		},
		{
			name: "method mismatch",
			rule: &rule.Request{Method: "POST", Path: "/users"},
			req:  newReq("GET", "/users", nil),
			want: 0,
		},
		{
			name: "path mismatch",
			rule: &rule.Request{Method: "GET", Path: "/users"},
			req:  newReq("GET", "/users/1", nil),
			want: 0,
		},
		{
			name: "absolute request URL",
			rule: &rule.Request{Method: "GET", Path: "/users"},
			req:  newReq("GET", "https://test-api.com/users", nil),
			want: ScoreBaseline,
		},
		{
			name: "relative file name is its own path",
			rule: &rule.Request{Method: "GET", Path: "data.json"},
			req:  newReq("GET", "config.json", nil),
			want: 0,
		},
		{
			name: "nested declared object must equal exactly",
			rule: &rule.Request{Method: "POST", Path: "/users", Data: map[string]any{"user": map[string]any{"name": "ada"}}},
			req:  newReq("POST", "/users", map[string]any{"user": map[string]any{"name": "ada", "age": 36}}),
			want: 0,
		},
		{
			name: "nested declared object equal",
			rule: &rule.Request{Method: "POST", Path: "/users", Data: map[string]any{"user": map[string]any{"name": "ada", "age": 36}}},
			req:  newReq("POST", "/users", map[string]any{"user": map[string]any{"age": 36, "name": "ada"}, "tags": []any{"a"}}),
			want: ScoreBaseline + ScoreConstraint,
		},
		{
			name: "query satisfied",
			rule: &rule.Request{Method: "GET", Path: "/users", QueryString: rule.StringMap{"id": "1"}},
			req:  newReq("GET", "/users?id=1&extra=x", nil),
			want: ScoreBaseline + ScoreConstraint,
		},
		{
			name: "query value differs",
			rule: &rule.Request{Method: "GET", Path: "/users", QueryString: rule.StringMap{"id": "1"}},
			req:  newReq("GET", "/users?id=2", nil),
			want: 0,
		},
		{
			name: "query key missing",
			rule: &rule.Request{Method: "GET", Path: "/users", QueryString: rule.StringMap{"id": "1"}},
			req:  newReq("GET", "/users", nil),
			want: 0,
		},
		{
			name: "data subset",
			rule: &rule.Request{Method: "POST", Path: "/users", Data: map[string]any{"name": "Ann"}},
			req:  newReq("POST", "/users", map[string]any{"name": "Ann", "age": 30}),
			want: ScoreBaseline + ScoreConstraint,
		},
		{
			name: "data value differs",
			rule: &rule.Request{Method: "POST", Path: "/users", Data: map[string]any{"name": "Ann"}},
			req:  newReq("POST", "/users", map[string]any{"name": "Bob"}),
			want: 0,
		},
		{
			name: "data without body",
			rule: &rule.Request{Method: "POST", Path: "/users", Data: map[string]any{"name": "Ann"}},
			req:  newReq("POST", "/users", nil),
			want: 0,
		},
		{
			name: "empty data matches no body",
			rule: &rule.Request{Method: "POST", Path: "/users", Data: map[string]any{}},
			req:  newReq("POST", "/users", nil),
			want: ScoreBaseline + ScoreConstraint,
		},
		{
			name: "number never equals string",
			rule: &rule.Request{Method: "POST", Path: "/users", Data: map[string]any{"id": 1}},
			req:  newReq("POST", "/users", map[string]any{"id": "1"}),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustCompile(t, tt.rule)
			assert.Equal(t, tt.want, MatchScore(p, tt.req))
		})
	}
}

func TestMatchScore_ParamsAndHeaders(t *testing.T) {
	p := mustCompile(t, &rule.Request{
		Method:  "GET",
		Path:    "/users",
		Params:  map[string]any{"page": 2},
		Headers: rule.StringMap{"X-Tenant": "acme"},
	})

	req := newReq("GET", "/users", nil)
	req.Params = map[string]any{"page": float64(2)}
	req.Headers = http.Header{}
	req.Headers.Set("x-tenant", "acme")
	assert.Equal(t, ScoreBaseline+2*ScoreConstraint, MatchScore(p, req))

	req.Headers.Set("x-tenant", "other")
	assert.Equal(t, 0, MatchScore(p, req))

	req.Headers.Set("x-tenant", "acme")
	req.Params = nil
	assert.Equal(t, 0, MatchScore(p, req))
}

func TestBest(t *testing.T) {
	generic := mustCompile(t, &rule.Request{Method: "GET", Path: "/users"})
	specific := mustCompile(t, &rule.Request{Method: "GET", Path: "/users", QueryString: rule.StringMap{"id": "1"}})
	duplicate := mustCompile(t, &rule.Request{Method: "GET", Path: "/users"})

	t.Run("more specific rule wins regardless of order", func(t *testing.T) {
		req := newReq("GET", "/users?id=1", nil)

		res, ok := Best([]*Pattern{generic, specific}, req)
		require.True(t, ok)
		assert.Equal(t, 1, res.Index)

		res, ok = Best([]*Pattern{specific, generic}, req)
		require.True(t, ok)
		assert.Equal(t, 0, res.Index)
	})

	t.Run("ties resolve to the earliest rule", func(t *testing.T) {
		res, ok := Best([]*Pattern{generic, duplicate}, newReq("GET", "/users", nil))
		require.True(t, ok)
		assert.Equal(t, 0, res.Index)
		assert.Equal(t, ScoreBaseline, res.Score)
	})

	t.Run("deterministic", func(t *testing.T) {
		patterns := []*Pattern{generic, specific, duplicate}
		req := newReq("GET", "/users?id=1", nil)
		first, _ := Best(patterns, req)
		for i := 0; i < 20; i++ {
			got, _ := Best(patterns, req)
			assert.Equal(t, first, got)
		}
	})

	t.Run("no match", func(t *testing.T) {
		res, ok := Best([]*Pattern{specific}, newReq("GET", "/users?id=2", nil))
		assert.False(t, ok)
		assert.Equal(t, -1, res.Index)
	})

	t.Run("empty", func(t *testing.T) {
		_, ok := Best(nil, newReq("GET", "/", nil))
		assert.False(t, ok)
	})
}

func TestQueryRoundTrip(t *testing.T) {
	p := mustCompile(t, &rule.Request{
		Method:      "GET",
		Path:        "/search",
		QueryString: rule.StringMap{"q": "a&b c", "tag": "x/y"},
	})

	assert.Greater(t, MatchScore(p, newReq("GET", "/search?q=a%26b+c&tag=x%2Fy", nil)), 0)
	assert.Greater(t, MatchScore(p, newReq("GET", "/search?tag=x/y&q=a%26b%20c", nil)), 0)
	assert.Equal(t, 0, MatchScore(p, newReq("GET", "/search?q=a&b+c&tag=x%2Fy", nil)))
}
