package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pathway/core/logger"
)

type ctxKey struct{}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	return m
}

func TestNewJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithJSONFormatter(),
		logger.WithOutput(&buf),
		logger.WithAttr(slog.String("service", "api")),
	)

	log.Info("hello", logger.Component("router"))

	m := decode(t, &buf)
	assert.Equal(t, "hello", m["msg"])
	assert.Equal(t, "api", m["service"])
	assert.Equal(t, "router", m["component"])
}

func TestNewLevelFilters(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelWarn))

	log.Info("dropped")
	assert.Empty(t, buf.String())

	log.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestPresets(t *testing.T) {
	t.Parallel()

	t.Run("development", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithDevelopment("blog"), logger.WithOutput(&buf))
		log.Debug("debug visible")

		out := buf.String()
		assert.Contains(t, out, "debug visible")
		assert.Contains(t, out, "app=blog")
		assert.Contains(t, out, "env=development")
	})

	t.Run("production", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithProduction("blog"), logger.WithOutput(&buf))
		log.Debug("hidden")
		assert.Empty(t, buf.String())

		log.Info("shown")
		m := decode(t, &buf)
		assert.Equal(t, "production", m["env"])
	})
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	log := logger.NewFromConfig(logger.Config{Level: "error", Format: "json", App: "blog", Env: "test"})
	assert.False(t, log.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, log.Enabled(context.Background(), slog.LevelError))
}

func TestNewFromConfigExtraOptions(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewFromConfig(
		logger.Config{Level: "info", Format: "json", App: "blog", Env: "test"},
		logger.WithOutput(&buf),
		logger.WithContextValue("tenant", ctxKey{}),
	)

	log.InfoContext(context.WithValue(context.Background(), ctxKey{}, "acme"), "hello")

	m := decode(t, &buf)
	assert.Equal(t, "blog", m["app"])
	assert.Equal(t, "test", m["env"])
	assert.Equal(t, "acme", m["tenant"])
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want slog.Level
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "WARN", want: slog.LevelWarn},
		{in: " error ", want: slog.LevelError},
		{in: "", want: slog.LevelInfo},
		{in: "loud", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run("level_"+tt.in, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, logger.ParseLevel(tt.in))
		})
	}
}

func TestContextExtractors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithJSONFormatter(),
		logger.WithOutput(&buf),
		logger.WithContextValue("request_id", ctxKey{}),
	)

	ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
	log.With(logger.Component("test")).InfoContext(ctx, "with id")

	m := decode(t, &buf)
	assert.Equal(t, "req-1", m["request_id"])
	assert.Equal(t, "test", m["component"])

	buf.Reset()
	log.InfoContext(context.Background(), "without id")
	assert.NotContains(t, buf.String(), "request_id")
}

func TestNewNop(t *testing.T) {
	t.Parallel()

	log := logger.NewNop()
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
}

func TestAttrHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.Error(nil))
	assert.Equal(t, slog.Attr{}, logger.Errors(nil, nil))
	assert.Equal(t, slog.Attr{}, logger.RequestID(""))
	assert.Equal(t, slog.Attr{}, logger.TraceID(""))
	assert.Equal(t, slog.Attr{}, logger.Pattern(""))
	assert.Equal(t, slog.Attr{}, logger.ClientIP(""))
	assert.Equal(t, slog.Attr{}, logger.UserAgent(""))
	assert.Equal(t, slog.Attr{}, logger.BytesIn(-1))
	assert.Equal(t, slog.Attr{}, logger.Version(""))
	assert.Equal(t, "pattern", logger.Pattern(`^/$`).Key)
	assert.Equal(t, int64(12), logger.BytesIn(12).Value.Int64())
	assert.Equal(t, "routes", logger.Count("routes", 3).Key)
	assert.Equal(t, "error", logger.Error(errors.New("x")).Key)
	assert.Equal(t, "status_code", logger.StatusCode(200).Key)
	assert.Equal(t, "fixed_start", logger.FixedStart("/api").Key)

	errs := logger.Errors(nil, errors.New("a"), errors.New("b"))
	assert.Equal(t, "errors", errs.Key)
	assert.Len(t, errs.Value.Group(), 2)

	route := logger.Route("GET", `^/$`)
	assert.Equal(t, "route", route.Key)
	assert.Len(t, route.Value.Group(), 2)

	assert.Equal(t, "trace", logger.Stack([]byte("trace")).Value.String())
	assert.True(t, strings.Contains(logger.Stack(nil).Value.String(), "goroutine"))
}
