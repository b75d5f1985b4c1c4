package matching

import (
	"fmt"
	"testing"

	"github.com/getmockd/httpmock/internal/canonical"
	"github.com/getmockd/httpmock/pkg/rule"
)

func benchPatterns(b *testing.B, n int) []*Pattern {
	b.Helper()
	patterns := make([]*Pattern, 0, n)
	for i := 0; i < n; i++ {
		p, err := Compile(&rule.Request{
			Method:      "GET",
			Path:        fmt.Sprintf("/api/%d", i%10),
			QueryString: rule.StringMap{"page": fmt.Sprint(i)},
			JSONPath:    map[string]any{"$.user.id": float64(i)},
		})
		if err != nil {
			b.Fatalf("compile: %v", err)
		}
		patterns = append(patterns, p)
	}
	return patterns
}

func BenchmarkBest(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("rules=%d", n), func(b *testing.B) {
			patterns := benchPatterns(b, n)
			req := canonical.NewRequest("GET", fmt.Sprintf("/api/%d?page=%d", (n-1)%10, n-1))
			req.Data = map[string]any{"user": map[string]any{"id": float64(n - 1)}}

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, ok := Best(patterns, req); !ok {
					b.Fatal("expected a match")
				}
			}
		})
	}
}

func BenchmarkCollectNearMisses(b *testing.B) {
	patterns := benchPatterns(b, 100)
	req := canonical.NewRequest("GET", "/api/3?page=none")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = CollectNearMisses(patterns, req, 3)
	}
}
