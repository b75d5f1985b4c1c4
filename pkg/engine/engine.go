package engine

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/getmockd/httpmock/internal/canonical"
	"github.com/getmockd/httpmock/internal/matching"
	"github.com/getmockd/httpmock/pkg/logging"
	"github.com/getmockd/httpmock/pkg/requestlog"
	"github.com/getmockd/httpmock/pkg/rule"
)

// DefaultNearMisses is the number of near misses attached to an UnmatchedRequestError.
const DefaultNearMisses = 3

// RawRequest is an outbound call as the application issued it.
type RawRequest struct {
	// Method defaults to GET when empty.
	Method string
	// URL may be a path, an absolute URL or a scheme-less host-prefixed URL.
	URL string
	// Params are client-side parameters supplied outside the URL.
	Params  map[string]any
	Data    any
	Headers http.Header
}

// Engine intercepts requests, records them and answers from the installed
// rules. Each Engine is independent; an Engine is safe for concurrent use.
type Engine struct {
	mu         sync.Mutex
	reg        *registry
	log        *requestlog.Log
	logger     *slog.Logger
	stats      Stats
	nearMisses int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.logger = log
		}
	}
}

// WithLog makes the engine record into an existing request log.
func WithLog(log *requestlog.Log) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithNearMisses sets how many near misses an UnmatchedRequestError carries.
func WithNearMisses(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.nearMisses = n
		}
	}
}

// New creates an Engine with no rules installed.
func New(opts ...Option) *Engine {
	e := &Engine{
		reg:        &registry{},
		log:        requestlog.New(),
		logger:     logging.Nop(),
		nearMisses: DefaultNearMisses,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Install replaces the active rule set. Rules are validated and canonicalized
// in order; on the first invalid rule an *InvalidRuleError is returned and the
// previous rule set stays active. Rules without an ID are assigned one.
func (e *Engine) Install(rules []rule.Rule) error {
	reg, err := compile(rules)
	if err != nil {
		e.logger.Warn("rule install rejected", "error", err)
		return err
	}

	e.mu.Lock()
	e.reg = reg
	e.mu.Unlock()

	e.logger.Info("rules installed", "count", len(reg.rules))
	return nil
}

// Rules returns copies of the installed rules in registration order.
func (e *Engine) Rules() []rule.Rule {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reg.snapshot()
}

// Intercept canonicalizes raw, records it, and answers it from the best
// matching rule. When nothing matches, the returned error is an
// *UnmatchedRequestError. A context that is already done returns its error
// and records nothing.
func (e *Engine) Intercept(ctx context.Context, raw RawRequest) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	req := canonicalize(raw)
	rec := e.log.Record(requestlog.Record{
		Method:      req.Method,
		URL:         raw.URL,
		Path:        req.Path,
		QueryString: req.Query.Map(),
		Params:      raw.Params,
		Data:        raw.Data,
		Headers:     raw.Headers,
	})

	res, ok := matching.Best(e.reg.patterns, req)
	if !ok {
		e.stats.miss()
		err := &UnmatchedRequestError{
			Method:      req.Method,
			URL:         raw.URL,
			Path:        req.Path,
			QueryString: req.Query.Map(),
			Params:      req.Params,
			Data:        req.Data,
			Headers:     req.Headers.Clone(),
			NearMisses:  e.explain(req, e.nearMisses),
		}
		e.logger.Warn("no rule matched",
			"method", req.Method,
			"path", req.Path,
			"record", rec.Timestamp,
			"near_misses", len(err.NearMisses),
		)
		return Outcome{}, err
	}

	r := &e.reg.rules[res.Index]
	e.stats.hit(r.ID)
	out := Synthesize(r)

	e.logger.Debug("request matched",
		"method", req.Method,
		"path", req.Path,
		"record", rec.Timestamp,
		"rule_id", r.ID,
		"rule", r.Label(),
		"score", res.Score,
		"status", out.Status,
	)
	return out, nil
}

// Explain scores raw against every installed rule without recording it and
// returns the rules that matched at least one field, closest first.
func (e *Engine) Explain(raw RawRequest) []NearMiss {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.explain(canonicalize(raw), len(e.reg.patterns))
}

func (e *Engine) explain(req *canonical.Request, topN int) []NearMiss {
	if topN <= 0 {
		return nil
	}
	misses := matching.CollectNearMisses(e.reg.patterns, req, topN)
	out := make([]NearMiss, len(misses))
	for i, m := range misses {
		out[i] = newNearMiss(e.reg, m)
	}
	return out
}

// Log returns the request log.
func (e *Engine) Log() *requestlog.Log {
	return e.log
}

// Stats returns a snapshot of the interception counters.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats.clone()
}

// canonicalize converts a raw request into its canonical form.
func canonicalize(raw RawRequest) *canonical.Request {
	req := canonical.NewRequest(raw.Method, raw.URL)
	if raw.Params != nil {
		req.Params = make(map[string]any, len(raw.Params))
		for k, v := range raw.Params {
			req.Params[k] = canonical.NormalizeData(v)
		}
	}
	req.Data = canonical.NormalizeData(raw.Data)
	req.Headers = raw.Headers
	return req
}
