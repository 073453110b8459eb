package middleware_test

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pathway/core/handler"
	"github.com/dmitrymomot/pathway/core/response"
	"github.com/dmitrymomot/pathway/middleware"
)

func TestLoggingMiddleware(t *testing.T) {
	t.Parallel()

	logHandler := &testLogHandler{}
	mw := middleware.Chain(
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: func() string { return "req-1" }}),
		middleware.LoggingWithLogger(slog.New(logHandler)),
	)
	r := serve(t, mw, ok("ok"))

	_, err := r.Resolve(handler.NewRequest(http.MethodGet, "/test"))
	require.NoError(t, err)

	entries := logHandler.all()
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "HTTP request completed", entry["msg"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/test", entry["path"])
	assert.Equal(t, int64(200), entry["status_code"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "http", entry["component"])
	assert.Contains(t, entry, "duration")
	assert.Equal(t, `^/test$`, entry["pattern"])
}

func TestLoggingRecordsClientDetails(t *testing.T) {
	t.Parallel()

	logHandler := &testLogHandler{}
	mw := middleware.Chain(
		middleware.ClientIP(),
		middleware.LoggingWithLogger(slog.New(logHandler)),
	)
	r := serve(t, mw, ok("ok"))

	req := httptest.NewRequest(http.MethodGet, "/test", strings.NewReader("hello"))
	req.RemoteAddr = "203.0.113.7:51234"
	req.Header.Set("User-Agent", "pathway-test/1.0")
	r.ServeHTTP(httptest.NewRecorder(), req)

	entries := logHandler.all()
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, "203.0.113.7", entry["client_ip"])
	assert.Equal(t, "pathway-test/1.0", entry["user_agent"])
	assert.Equal(t, int64(5), entry["bytes_in"])
}

func TestLoggingLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		fn    func(handler.Request) (handler.Response, error)
		slow  time.Duration
		level string
	}{
		{
			name:  "client error",
			fn:    func(handler.Request) (handler.Response, error) { return response.Text(http.StatusBadRequest, "bad"), nil },
			level: "WARN",
		},
		{
			name:  "server error",
			fn:    func(handler.Request) (handler.Response, error) { return response.Text(http.StatusBadGateway, "bad"), nil },
			level: "ERROR",
		},
		{
			name:  "returned error",
			fn:    func(handler.Request) (handler.Response, error) { return nil, errors.New("boom") },
			level: "ERROR",
		},
		{
			name: "slow request",
			fn: func(handler.Request) (handler.Response, error) {
				time.Sleep(5 * time.Millisecond)
				return response.NoContent(), nil
			},
			slow:  time.Millisecond,
			level: "WARN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logHandler := &testLogHandler{}
			mw := middleware.LoggingWithConfig(middleware.LoggingConfig{
				Logger:               slog.New(logHandler),
				SlowRequestThreshold: tt.slow,
			})
			r := serve(t, mw, tt.fn)

			_, _ = r.Resolve(handler.NewRequest(http.MethodGet, "/test"))

			entries := logHandler.all()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.level, entries[0]["level"])
		})
	}
}

func TestLoggingHeadersRedacted(t *testing.T) {
	t.Parallel()

	logHandler := &testLogHandler{}
	mw := middleware.LoggingWithConfig(middleware.LoggingConfig{
		Logger:     slog.New(logHandler),
		LogHeaders: true,
		Headers:    []string{"Authorization", "Accept"},
	})
	r := serve(t, mw, ok("ok"))

	_, err := r.Resolve(handler.NewRequest(http.MethodGet, "/test",
		handler.WithHeader("Authorization", "Bearer secret"),
		handler.WithHeader("Accept", "application/json"),
	))
	require.NoError(t, err)

	entries := logHandler.all()
	require.Len(t, entries, 1)
	headers, isGroup := entries[0]["headers"].([]slog.Attr)
	require.True(t, isGroup)

	values := map[string]string{}
	for _, a := range headers {
		values[a.Key] = a.Value.String()
	}
	assert.Equal(t, "[REDACTED]", values["Authorization"])
	assert.Equal(t, "application/json", values["Accept"])
}

func TestLoggingSkip(t *testing.T) {
	t.Parallel()

	logHandler := &testLogHandler{}
	mw := middleware.LoggingWithConfig(middleware.LoggingConfig{
		Logger: slog.New(logHandler),
		Skip:   func(req handler.Request) bool { return req.Path() == "/test" },
	})
	r := serve(t, mw, ok("ok"))

	_, err := r.Resolve(handler.NewRequest(http.MethodGet, "/test"))
	require.NoError(t, err)
	assert.Empty(t, logHandler.all())
}

func TestLoggingNotCalledForUnmatchedPaths(t *testing.T) {
	t.Parallel()

	logHandler := &testLogHandler{}
	r := serve(t, middleware.LoggingWithLogger(slog.New(logHandler)), ok("ok"))

	resp, err := r.Resolve(handler.NewRequest(http.MethodGet, "/missing"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
	assert.Empty(t, logHandler.all())
}
