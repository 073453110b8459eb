package router_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pathway/core/binder"
	"github.com/dmitrymomot/pathway/core/handler"
	"github.com/dmitrymomot/pathway/core/response"
	"github.com/dmitrymomot/pathway/core/router"
)

// syncBuffer is a bytes.Buffer safe for concurrent log writes.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestServeHTTPRendersResponse(t *testing.T) {
	t.Parallel()

	r := router.New()
	r.Route("/api", func(api *router.Router) {
		api.Get(`^/posts/(?<postId>\d+)$`, router.NewHandler(
			func(args binder.Args) (handler.Response, error) {
				return response.JSON(http.StatusOK, map[string]int{"id": args.Int(0)})
			},
			binder.Int("postId"),
		))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/posts/5", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":5}`, w.Body.String())
}

func TestServeHTTPNotFound(t *testing.T) {
	t.Parallel()

	r := router.New()
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestServeHTTPDefaultErrorHandler(t *testing.T) {
	t.Parallel()

	r := router.New()
	r.Get(`^/plain$`, router.RequestHandler(func(handler.Request) (handler.Response, error) {
		return nil, errors.New("database down")
	}))
	r.Get(`^/forbidden$`, router.RequestHandler(func(handler.Request) (handler.Response, error) {
		return nil, response.ErrForbidden
	}))
	r.Get(`^/bad/(?<n>\w+)$`, router.NewHandler(
		func(binder.Args) (handler.Response, error) { return response.NoContent(), nil },
		binder.Int("n"),
	))

	tests := []struct {
		path   string
		status int
		body   string
	}{
		{path: "/plain", status: http.StatusInternalServerError, body: "database down"},
		{path: "/forbidden", status: http.StatusForbidden, body: "Forbidden"},
		{path: "/bad/x", status: http.StatusInternalServerError, body: "invalid capture"},
	}

	for _, tt := range tests {
		t.Run("path_"+tt.path, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}

func TestServeHTTPCustomErrorHandler(t *testing.T) {
	t.Parallel()

	var got error
	r := router.New(router.WithErrorHandler(func(w http.ResponseWriter, req *http.Request, err error) {
		got = err
		w.WriteHeader(http.StatusTeapot)
	}))
	r.Get(`^/nil$`, router.RequestHandler(func(handler.Request) (handler.Response, error) {
		return nil, nil
	}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nil", nil))

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.ErrorIs(t, got, router.ErrContractViolation)
}

func TestServeHTTPJSONErrorHandler(t *testing.T) {
	t.Parallel()

	r := router.New(router.WithErrorHandler(response.JSONErrorHandler))
	r.Get(`^/conflict$`, router.RequestHandler(func(handler.Request) (handler.Response, error) {
		return nil, response.ErrConflict.WithMessage("slug taken")
	}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/conflict", nil))

	assert.Equal(t, http.StatusConflict, w.Code)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "conflict", payload["code"])
	assert.Equal(t, "slug taken", payload["message"])
}

func TestServeHTTPRecoversPanics(t *testing.T) {
	t.Parallel()

	cause := errors.New("kaboom")
	var got error
	r := router.New(router.WithErrorHandler(func(w http.ResponseWriter, req *http.Request, err error) {
		got = err
		w.WriteHeader(http.StatusInternalServerError)
	}))
	r.Get(`^/panic$`, router.RequestHandler(func(handler.Request) (handler.Response, error) {
		panic(cause)
	}))

	w := httptest.NewRecorder()
	require.NotPanics(t, func() {
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var pe router.PanicError
	require.ErrorAs(t, got, &pe)
	assert.Equal(t, cause, pe.Value())
	assert.NotEmpty(t, pe.Stack())
	assert.ErrorIs(t, got, cause, "panic values that are errors unwrap")
}

// panicRenderer writes part of a body and then panics.
type panicRenderer struct{}

func (panicRenderer) StatusCode() int { return http.StatusOK }

func (panicRenderer) Render(w http.ResponseWriter) error {
	_, _ = w.Write([]byte("partial"))
	panic("render failed")
}

func TestServeHTTPPanicAfterWriteIsLogged(t *testing.T) {
	t.Parallel()

	var logs syncBuffer
	called := false
	r := router.New(
		router.WithLogger(slog.New(slog.NewJSONHandler(&logs, nil))),
		router.WithErrorHandler(func(w http.ResponseWriter, req *http.Request, err error) {
			called = true
		}),
	)
	r.Get(`^/stream$`, router.RequestHandler(func(handler.Request) (handler.Response, error) {
		return panicRenderer{}, nil
	}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stream", nil))

	assert.False(t, called)
	assert.Equal(t, "partial", w.Body.String())
	assert.True(t, strings.Contains(logs.String(), "panic after response written"))
}

func TestServeHTTPLogsDispatchErrors(t *testing.T) {
	t.Parallel()

	var logs syncBuffer
	r := router.New(router.WithLogger(slog.New(slog.NewJSONHandler(&logs, nil))))
	r.Get(`^/fail$`, router.RequestHandler(func(handler.Request) (handler.Response, error) {
		return nil, errors.New("boom")
	}))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fail", nil))

	out := logs.String()
	assert.Contains(t, out, "request dispatch failed")
	assert.Contains(t, out, `"error":"boom"`)
	assert.Contains(t, out, `"method":"GET"`)
	assert.Contains(t, out, `"fixed_start":""`)
}

func TestServeHTTPUsesRawPath(t *testing.T) {
	t.Parallel()

	r := router.New()
	r.Get(`^/files/(?<name>[^/]+)$`, router.NewHandler(
		func(args binder.Args) (handler.Response, error) {
			return response.Text(http.StatusOK, args.String(0)), nil
		},
		binder.String("name"),
	))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/files/a%2Fb", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a%2Fb", w.Body.String())
}
