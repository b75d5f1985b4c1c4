package canonical

import (
	"net/url"
	"strings"
)

// Query is a decoded query string. Keys keep the order of their first
// occurrence; for a repeated key the last value wins.
type Query struct {
	keys   []string
	values map[string]string
}

// ParseQuery decodes a raw query string. Each key and each value is
// percent-decoded on its own after splitting on '&' and '=', so "%26" inside
// a value stays a literal '&'. Pairs that fail to decode are kept verbatim.
func ParseQuery(raw string) Query {
	q := Query{}
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		q.Set(unescape(k), unescape(v))
	}
	return q
}

func unescape(s string) string {
	out, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return out
}

// Set stores value under key, replacing any earlier value.
func (q *Query) Set(key, value string) {
	if q.values == nil {
		q.values = make(map[string]string)
	}
	if _, ok := q.values[key]; !ok {
		q.keys = append(q.keys, key)
	}
	q.values[key] = value
}

// Get returns the value stored under key.
func (q Query) Get(key string) (string, bool) {
	v, ok := q.values[key]
	return v, ok
}

// Keys returns the keys in order of first occurrence.
func (q Query) Keys() []string {
	out := make([]string, len(q.keys))
	copy(out, q.keys)
	return out
}

// Len returns the number of distinct keys.
func (q Query) Len() int {
	return len(q.keys)
}

// Map returns the query as a plain map. It is nil for an empty query.
func (q Query) Map() map[string]string {
	if len(q.keys) == 0 {
		return nil
	}
	out := make(map[string]string, len(q.values))
	for k, v := range q.values {
		out[k] = v
	}
	return out
}
