package requestlog

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Recorder is the minimal interface for appending records.
type Recorder interface {
	Record(r Record) Record
}

// Filter defines criteria for filtering records. Zero fields match everything.
type Filter struct {
	// Method filters by HTTP method, case-insensitively.
	Method string

	// Path filters by path prefix.
	Path string

	// Limit is the maximum number of records to return.
	Limit int
}

// Log is an append-only, in-memory request history. The zero value is ready
// to use. A Log is safe for concurrent use.
type Log struct {
	mu      sync.RWMutex
	records []Record
	seq     uint64
	now     func() time.Time
}

// New creates an empty Log.
func New() *Log {
	return &Log{}
}

// Record appends r and returns the stored copy. It assigns the ID, the next
// sequence number and, when unset, the receive time.
func (l *Log) Record(r Record) Record {
	r = r.Clone()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	r.Timestamp = l.seq
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.ReceivedAt.IsZero() {
		if l.now != nil {
			r.ReceivedAt = l.now()
		} else {
			r.ReceivedAt = time.Now()
		}
	}
	l.records = append(l.records, r)
	return r.Clone()
}

// All returns every record in capture order.
func (l *Log) All() []Record {
	return l.List(nil)
}

// List returns the records matching filter in capture order.
func (l *Log) List(filter *Filter) []Record {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Record, 0, len(l.records))
	for _, r := range l.records {
		if filter != nil && !matchesFilter(r, filter) {
			continue
		}
		out = append(out, r.Clone())
		if filter != nil && filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out
}

// Find returns the records with the given method and exact path.
func (l *Log) Find(method, path string) []Record {
	var out []Record
	for _, r := range l.List(&Filter{Method: method}) {
		if r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// Get retrieves a record by ID.
func (l *Log) Get(id string) (Record, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, r := range l.records {
		if r.ID == id {
			return r.Clone(), true
		}
	}
	return Record{}, false
}

// Count returns the number of records.
func (l *Log) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// Clear removes all records. Sequence numbers keep increasing afterwards.
func (l *Log) Clear() {
	l.mu.Lock()
	l.records = nil
	l.mu.Unlock()
}

func matchesFilter(r Record, filter *Filter) bool {
	if filter.Method != "" && !strings.EqualFold(r.Method, filter.Method) {
		return false
	}
	if filter.Path != "" && !strings.HasPrefix(r.Path, filter.Path) {
		return false
	}
	return true
}
