package requestlog

import (
	"net/http"
	"time"
)

// Record captures a single intercepted request.
type Record struct {
	// ID is a unique identifier for the record.
	ID string `json:"id"`

	// Timestamp is a logical sequence number. It increases by one for every
	// record appended to the same log and is never reused, even after Clear.
	Timestamp uint64 `json:"timestamp"`

	// ReceivedAt is the wall clock time the request was intercepted.
	ReceivedAt time.Time `json:"receivedAt"`

	// Method is the upper-case HTTP method.
	Method string `json:"method"`

	// URL is the URL exactly as the caller supplied it.
	URL string `json:"url"`

	// Path is the decoded path component with host and query removed.
	Path string `json:"path"`

	// QueryString is the decoded query string.
	QueryString map[string]string `json:"queryString,omitempty"`

	// Params are client-side parameters supplied outside the URL.
	Params map[string]any `json:"params,omitempty"`

	// Data is the request body as supplied.
	Data any `json:"data,omitempty"`

	Headers http.Header `json:"headers,omitempty"`
}

// Clone returns a copy of r that shares no mutable state with it.
func (r Record) Clone() Record {
	out := r
	if r.QueryString != nil {
		out.QueryString = make(map[string]string, len(r.QueryString))
		for k, v := range r.QueryString {
			out.QueryString[k] = v
		}
	}
	if r.Params != nil {
		out.Params = make(map[string]any, len(r.Params))
		for k, v := range r.Params {
			out.Params[k] = copyValue(v)
		}
	}
	out.Data = copyValue(r.Data)
	if r.Headers != nil {
		out.Headers = r.Headers.Clone()
	}
	return out
}

// copyValue deep-copies generic JSON containers. Other values are returned as is.
func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = copyValue(e)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = copyValue(e)
		}
		return s
	case []byte:
		return append([]byte(nil), t...)
	default:
		return v
	}
}
