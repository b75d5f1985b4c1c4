package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/httpmock/internal/canonical"
)

func TestMatchJSONPath(t *testing.T) {
	tests := []struct {
		name       string
		conditions map[string]any
		body       string
		wantMatch  bool
		wantFailed []string
	}{
		{
			name:       "string field",
			conditions: map[string]any{"$.status": "active"},
			body:       `{"status": "active"}`,
			wantMatch:  true,
		},
		{
			name:       "string field mismatch",
			conditions: map[string]any{"$.status": "active"},
			body:       `{"status": "inactive"}`,
			wantFailed: []string{"$.status"},
		},
		{
			name:       "integer against decoded number",
			conditions: map[string]any{"$.count": 42},
			body:       `{"count": 42}`,
			wantMatch:  true,
		},
		{
			name:       "nested field",
			conditions: map[string]any{"$.user.role": "admin"},
			body:       `{"user": {"role": "admin"}}`,
			wantMatch:  true,
		},
		{
			name:       "wildcard any match",
			conditions: map[string]any{"$.items[*].sku": "B"},
			body:       `{"items": [{"sku": "A"}, {"sku": "B"}]}`,
			wantMatch:  true,
		},
		{
			name:       "exists true",
			conditions: map[string]any{"$.token": map[string]any{"exists": true}},
			body:       `{"token": "abc"}`,
			wantMatch:  true,
		},
		{
			name:       "exists false",
			conditions: map[string]any{"$.token": map[string]any{"exists": false}},
			body:       `{"other": 1}`,
			wantMatch:  true,
		},
		{
			name:       "exists false on non-JSON body",
			conditions: map[string]any{"$.token": map[string]any{"exists": false}},
			body:       `plain text`,
			wantMatch:  true,
		},
		{
			name:       "value on non-JSON body",
			conditions: map[string]any{"$.token": "abc"},
			body:       `plain text`,
			wantFailed: []string{"$.token"},
		},
		{
			name:       "failures are sorted",
			conditions: map[string]any{"$.b": 1, "$.a": 1},
			body:       `{}`,
			wantFailed: []string{"$.a", "$.b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conds, err := CompileJSONPath(tt.conditions)
			require.NoError(t, err)

			res := MatchJSONPath(conds, canonical.DecodeBody([]byte(tt.body)))
			assert.Equal(t, tt.wantMatch, res.Matched)
			assert.Equal(t, tt.wantFailed, res.Failed)
		})
	}
}

func TestCompileJSONPath_Invalid(t *testing.T) {
	_, err := CompileJSONPath(map[string]any{"$[invalid": "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "$[invalid")
}

func TestValuesEqual(t *testing.T) {
	assert.True(t, valuesEqual(int64(3), 3.0))
	assert.True(t, valuesEqual(uint8(3), 3))
	assert.False(t, valuesEqual("3", 3.0))
	assert.False(t, valuesEqual(nil, false))
	assert.True(t, valuesEqual(nil, nil))
	assert.True(t, valuesEqual(true, true))
	assert.True(t, valuesEqual(
		map[string]any{"a": []any{1.0, map[string]any{"b": "c"}}},
		map[string]any{"a": []any{1, map[string]any{"b": "c"}}},
	))
}
