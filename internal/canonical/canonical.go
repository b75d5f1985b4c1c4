// Package canonical normalizes request descriptors into a comparable form.
//
// Methods are upper-cased, absolute and host-prefixed URLs are reduced to
// path plus query string, and the query string is decoded into an ordered
// key/value mapping. Every function here is pure.
package canonical

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
)

// DefaultMethod is used for requests that do not name a method.
const DefaultMethod = http.MethodGet

// ErrInvalidPath is returned when a rule path cannot be decoded.
var ErrInvalidPath = errors.New("invalid path")

// Request is the canonical form of an intercepted call.
type Request struct {
	// Method is upper-case.
	Method string
	// URL is the URL exactly as supplied by the caller.
	URL string
	// Path is the decoded path component, host and query removed.
	Path string
	// Query is the decoded query string.
	Query Query
	// Params are client-side parameters supplied outside the URL.
	Params map[string]any
	// Data is the request body, normalized to generic JSON values.
	Data any
	// Headers are the request headers.
	Headers http.Header
}

// NewRequest canonicalizes a method and URL. Params, Data and Headers are
// left for the caller to fill.
func NewRequest(method, rawURL string) *Request {
	path, query := SplitURL(rawURL)
	return &Request{
		Method: Method(method, DefaultMethod),
		URL:    rawURL,
		Path:   path,
		Query:  query,
	}
}

// Method upper-cases m, returning fallback when m is blank.
func Method(m, fallback string) string {
	m = strings.TrimSpace(m)
	if m == "" {
		return fallback
	}
	return strings.ToUpper(m)
}

// SplitURL reduces rawURL to its decoded path and query string.
// Scheme, host and fragment are discarded. Undecodable path escapes are kept verbatim.
func SplitURL(rawURL string) (string, Query) {
	rest, rawQuery := cut(rawURL)
	path, err := url.PathUnescape(rest)
	if err != nil {
		path = rest
	}
	return path, ParseQuery(rawQuery)
}

// Pattern canonicalizes the method and path of a rule. Unlike SplitURL it
// rejects undecodable paths. Any query string embedded in the path is returned
// separately so the caller can treat it as a query constraint.
func Pattern(method, rawPath string) (string, string, Query, error) {
	m := Method(method, "")
	if m == "" {
		return "", "", Query{}, errors.New("method is required")
	}
	rest, rawQuery := cut(rawPath)
	path, err := url.PathUnescape(rest)
	if err != nil {
		return "", "", Query{}, errors.Join(ErrInvalidPath, err)
	}
	return m, path, ParseQuery(rawQuery), nil
}

// cut strips the fragment, splits off the query string and removes any
// scheme and host from what remains.
func cut(rawURL string) (string, string) {
	s := strings.TrimSpace(rawURL)
	if i := strings.IndexByte(s, '#'); i >= 0 {
		s = s[:i]
	}
	rawQuery := ""
	if i := strings.IndexByte(s, '?'); i >= 0 {
		s, rawQuery = s[:i], s[i+1:]
	}
	return stripHost(s), rawQuery
}

// stripHost removes "scheme://host", "//host" and scheme-less "host.tld/"
// prefixes and guarantees a leading slash.
func stripHost(s string) string {
	switch {
	case strings.Contains(s, "://"):
		s = s[strings.Index(s, "://")+3:]
		return afterHost(s)
	case strings.HasPrefix(s, "//"):
		return afterHost(s[2:])
	case strings.HasPrefix(s, "/"):
		return s
	case s == "":
		return "/"
	}

	// A host-like segment is only a host when a path follows it, so relative
	// file names such as "data.json" stay paths.
	if first, rest, ok := strings.Cut(s, "/"); ok && looksLikeHost(first) {
		return "/" + rest
	}
	return "/" + s
}

func afterHost(s string) string {
	if i := strings.IndexByte(s, '/'); i >= 0 {
		return s[i:]
	}
	return "/"
}

// looksLikeHost reports whether a leading URL segment is a host name such as
// "test-api.com", "localhost" or "127.0.0.1:8080".
func looksLikeHost(seg string) bool {
	if seg == "localhost" || strings.HasPrefix(seg, "localhost:") {
		return true
	}
	return strings.Contains(seg, ".") || strings.Contains(seg, ":")
}

// NormalizeData converts a body value into generic JSON values
// (map[string]any, []any, string, float64, bool, nil) so that Go structs and
// typed maps compare the same way decoded documents do. Byte slices are
// decoded as JSON when valid and kept as a string otherwise.
func NormalizeData(v any) any {
	switch t := v.(type) {
	case nil, string, bool, float64:
		return v
	case []byte:
		return DecodeBody(t)
	case json.RawMessage:
		return DecodeBody(t)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return v
	}
	return out
}

// DecodeBody decodes a raw body. Empty bodies decode to nil, valid JSON to
// generic values and anything else to a string.
func DecodeBody(body []byte) any {
	if len(body) == 0 {
		return nil
	}
	var out any
	if err := json.Unmarshal(body, &out); err == nil {
		return out
	}
	return string(body)
}
