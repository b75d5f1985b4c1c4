package engine

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/getmockd/httpmock/pkg/rule"
)

func BenchmarkIntercept(b *testing.B) {
	rules := make([]rule.Rule, 0, 50)
	for i := 0; i < 50; i++ {
		rules = append(rules, rule.Rule{
			Request:  &rule.Request{Method: "GET", Path: fmt.Sprintf("/api/%d", i)},
			Response: &rule.Response{Data: map[string]any{"id": i}},
		})
	}
	e := New()
	if err := e.Install(rules); err != nil {
		b.Fatalf("install: %v", err)
	}
	ctx := context.Background()
	raw := RawRequest{Method: "GET", URL: "https://api.example.com/api/49?x=1"}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.Intercept(ctx, raw); err != nil {
			b.Fatal(err)
		}
		if i%1024 == 0 {
			e.Log().Clear()
		}
	}
}

func BenchmarkTransportParallel(b *testing.B) {
	e := New()
	err := e.Install([]rule.Rule{{
		Request:  &rule.Request{Method: "GET", Path: "/ping"},
		Response: &rule.Response{Data: "pong"},
	}})
	if err != nil {
		b.Fatalf("install: %v", err)
	}
	client := e.HTTPClient()

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			resp, err := client.Get("http://svc/ping")
			if err != nil {
				b.Error(err)
				return
			}
			resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				b.Errorf("status %d", resp.StatusCode)
				return
			}
		}
	})
}
