package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// NewTB returns a logger that writes every record at debug level and above
// through tb.Log, so output is attached to the test that produced it and
// shown only when the test fails or runs with -v.
func NewTB(tb testing.TB) *slog.Logger {
	return slog.New(newTBHandler(tb, LevelDebug))
}

// tbHandler formats records with a text handler and hands each line to tb.Log.
type tbHandler struct {
	tb    testing.TB
	mu    *sync.Mutex
	buf   *bytes.Buffer
	inner slog.Handler
}

func newTBHandler(tb testing.TB, level Level) *tbHandler {
	buf := &bytes.Buffer{}
	return &tbHandler{
		tb:  tb,
		mu:  &sync.Mutex{},
		buf: buf,
		inner: slog.NewTextHandler(buf, &slog.HandlerOptions{
			Level: level,
			// The test runner already timestamps output.
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if len(groups) == 0 && a.Key == slog.TimeKey {
					return slog.Attr{}
				}
				return a
			},
		}),
	}
}

// Enabled reports whether the inner handler is enabled for the level.
func (h *tbHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle formats the record and logs it to the test.
func (h *tbHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.buf.Reset()
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}
	h.tb.Helper()
	h.tb.Log(strings.TrimRight(h.buf.String(), "\n"))
	return nil
}

// WithAttrs returns a handler sharing the test and buffer with the given attributes added.
func (h *tbHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &tbHandler{tb: h.tb, mu: h.mu, buf: h.buf, inner: h.inner.WithAttrs(attrs)}
}

// WithGroup returns a handler sharing the test and buffer with the given group.
func (h *tbHandler) WithGroup(name string) slog.Handler {
	return &tbHandler{tb: h.tb, mu: h.mu, buf: h.buf, inner: h.inner.WithGroup(name)}
}
