// Package requestlog records every request an engine intercepts so tests can
// inspect what application code sent.
//
// The log is append-only and unbounded. A record is appended before matching,
// so unmatched requests are captured too. Records are immutable once stored;
// readers always receive copies. The only way to remove records is Clear,
// which empties the whole log.
//
// This is distinct from operational logging, which goes through log/slog.
//
// # Usage
//
//	log := requestlog.New()
//	log.Record(requestlog.Record{Method: "GET", URL: "/users?id=1", Path: "/users"})
//
//	for _, r := range log.All() {
//	    fmt.Println(r.Timestamp, r.Method, r.Path)
//	}
//	log.Clear()
//
// # Package Design
//
// This is a leaf package with no internal dependencies, allowing it to be
// imported by any package without creating import cycles.
package requestlog
