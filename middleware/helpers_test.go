package middleware_test

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pathway/core/handler"
	"github.com/dmitrymomot/pathway/core/response"
	"github.com/dmitrymomot/pathway/core/router"
)

// testLogHandler captures log entries for testing
type testLogHandler struct {
	mu      sync.Mutex
	entries []map[string]any
}

func (h *testLogHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

func (h *testLogHandler) Handle(_ context.Context, r slog.Record) error {
	entry := make(map[string]any)
	entry["level"] = r.Level.String()
	entry["msg"] = r.Message

	r.Attrs(func(a slog.Attr) bool {
		entry[a.Key] = a.Value.Any()
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, entry)
	return nil
}

func (h *testLogHandler) WithAttrs([]slog.Attr) slog.Handler {
	return h
}

func (h *testLogHandler) WithGroup(string) slog.Handler {
	return h
}

func (h *testLogHandler) all() []map[string]any {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]map[string]any(nil), h.entries...)
}

// serve builds a router with mw and a single GET route answering with fn.
func serve(t *testing.T, mw handler.Middleware, fn func(req handler.Request) (handler.Response, error)) *router.Router {
	t.Helper()

	r := router.New(router.WithMiddleware(mw))
	require.NoError(t, r.AddRoute(http.MethodGet, `^/test$`, router.RequestHandler(fn)))
	return r
}

func ok(body string) func(handler.Request) (handler.Response, error) {
	return func(handler.Request) (handler.Response, error) {
		return response.Text(http.StatusOK, body), nil
	}
}
