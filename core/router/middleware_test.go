package router_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pathway/core/handler"
	"github.com/dmitrymomot/pathway/core/response"
	"github.com/dmitrymomot/pathway/core/router"
)

func TestMiddlewareAncestorRunsBeforeDescendant(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	root := router.New(router.WithMiddleware(rec.middleware("root")))
	api := router.New(router.WithMiddleware(rec.middleware("api")))
	posts := router.New(router.WithMiddleware(rec.middleware("posts")))
	posts.Get(`^$`, rec.endpoint("handler"))

	api.Mount("/posts", posts)
	root.Mount("/api", api)

	resp := resolve(t, root, http.MethodGet, "/api/posts")
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, []string{
		"root",
		"api",
		"posts",
		"handler",
		"posts-after",
		"api-after",
		"root-after",
	}, rec.get())
}

func TestMiddlewareSiblingsNeverIntermix(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	root := router.New()

	users := router.New(router.WithMiddleware(rec.middleware("users")))
	users.Get(`^$`, rec.endpoint("users-handler"))
	admin := router.New(router.WithMiddleware(rec.middleware("admin")))
	admin.Get(`^$`, rec.endpoint("admin-handler"))

	root.Mount("/users", users)
	root.Mount("/admin", admin)

	resolve(t, root, http.MethodGet, "/users")
	resolve(t, root, http.MethodGet, "/admin")

	assert.Equal(t, []string{
		"users", "users-handler", "users-after",
		"admin", "admin-handler", "admin-after",
	}, rec.get())
}

func TestMiddlewareSkippedWhenNothingMatches(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	root := router.New(router.WithMiddleware(rec.middleware("root")))
	api := router.New(router.WithMiddleware(rec.middleware("api")))
	api.Get(`^/posts$`, rec.endpoint("handler"))
	root.Mount("/api", api)

	for _, path := range []string{"/nothing", "/api/nothing"} {
		resp := resolve(t, root, http.MethodGet, path)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode())
	}
	assert.Empty(t, rec.get())
}

func TestSetMiddlewareLastWriteWins(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	r := router.New()
	r.SetMiddleware(rec.middleware("first"))
	r.SetMiddleware(rec.middleware("second"))
	r.Get(`^/$`, rec.endpoint("handler"))

	resolve(t, r, http.MethodGet, "/")
	assert.Equal(t, []string{"second", "handler", "second-after"}, rec.get())

	r.SetMiddleware(nil)
	resolve(t, r, http.MethodGet, "/")
	assert.Equal(t, []string{"second", "handler", "second-after", "handler"}, rec.get())
}

func TestRouteMiddlewareRunsInnermost(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	root := router.New(router.WithMiddleware(rec.middleware("root")))
	api := router.New(router.WithMiddleware(rec.middleware("api")))
	api.Get(`^/secure$`, rec.endpoint("secure"), rec.middleware("route"))
	api.Get(`^/open$`, rec.endpoint("open"))
	root.Mount("/api", api)

	resolve(t, root, http.MethodGet, "/api/secure")
	resolve(t, root, http.MethodGet, "/api/open")

	assert.Equal(t, []string{
		"root", "api", "route", "secure", "route-after", "api-after", "root-after",
		"root", "api", "open", "api-after", "root-after",
	}, rec.get())
}

func TestMiddlewareShortCircuit(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	deny := handler.MiddlewareFunc(func(req handler.Request, next handler.Next) (handler.Response, error) {
		if req.Header("Authorization") == "" {
			return response.Text(http.StatusUnauthorized, "unauthorized"), nil
		}
		return next(req)
	})

	root := router.New(router.WithMiddleware(deny))
	inner := router.New(router.WithMiddleware(rec.middleware("inner")))
	inner.Get(`^$`, rec.endpoint("handler"))
	root.Mount("/private", inner)

	resp := resolve(t, root, http.MethodGet, "/private")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
	assert.Empty(t, rec.get())

	resp, err := root.Resolve(handler.NewRequest(http.MethodGet, "/private", handler.WithHeader("Authorization", "token")))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, []string{"inner", "handler", "inner-after"}, rec.get())
}

func TestMiddlewareRequestAttributesFlowDown(t *testing.T) {
	t.Parallel()

	tenant := handler.MiddlewareFunc(func(req handler.Request, next handler.Next) (handler.Response, error) {
		return next(req.WithAttribute("tenant", "acme"))
	})

	r := router.New(router.WithMiddleware(tenant))
	r.Get(`^/$`, router.RequestHandler(func(req handler.Request) (handler.Response, error) {
		return response.Text(http.StatusOK, req.Attribute("tenant", "none").(string)), nil
	}))

	original := handler.NewRequest(http.MethodGet, "/")
	resp, err := r.Resolve(original)
	require.NoError(t, err)
	assert.Equal(t, "acme", body(t, resp))
	assert.Equal(t, "none", original.Attribute("tenant", "none"), "caller's request is never modified")
}

func TestMiddlewareCanDecorateResponse(t *testing.T) {
	t.Parallel()

	stamp := handler.MiddlewareFunc(func(req handler.Request, next handler.Next) (handler.Response, error) {
		resp, err := next(req)
		if err != nil {
			return nil, err
		}
		if hc, ok := resp.(handler.HeaderCarrier); ok {
			hc.Header().Set("X-Stamp", "1")
		}
		return resp, nil
	})

	r := router.New(router.WithMiddleware(stamp))
	r.Get(`^/$`, textHandler("ok"))

	resp := resolve(t, r, http.MethodGet, "/")
	assert.Equal(t, "1", resp.(handler.HeaderCarrier).Header().Get("X-Stamp"))
}

func TestMiddlewareSeesHandlerErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	var seen error
	observe := handler.MiddlewareFunc(func(req handler.Request, next handler.Next) (handler.Response, error) {
		resp, err := next(req)
		seen = err
		return resp, err
	})

	r := router.New(router.WithMiddleware(observe))
	r.Get(`^/$`, router.RequestHandler(func(handler.Request) (handler.Response, error) {
		return nil, boom
	}))

	_, err := r.Resolve(handler.NewRequest(http.MethodGet, "/"))
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, seen, boom)
}

func TestMiddlewareNextIsRestartable(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	retry := handler.MiddlewareFunc(func(req handler.Request, next handler.Next) (handler.Response, error) {
		if _, err := next(req); err != nil {
			return nil, err
		}
		return next(req)
	})

	root := router.New(router.WithMiddleware(retry))
	inner := router.New(router.WithMiddleware(rec.middleware("inner")))
	inner.Get(`^$`, rec.endpoint("handler"))
	root.Mount("/x", inner)

	resolve(t, root, http.MethodGet, "/x")
	assert.Equal(t, []string{
		"inner", "handler", "inner-after",
		"inner", "handler", "inner-after",
	}, rec.get())
}

func TestMiddlewareQueueIsFreshPerRequest(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	r := router.New(router.WithMiddleware(rec.middleware("mw")))
	r.Get(`^/$`, rec.endpoint("handler"))

	for range 3 {
		resolve(t, r, http.MethodGet, "/")
	}
	assert.Equal(t, []string{
		"mw", "handler", "mw-after",
		"mw", "handler", "mw-after",
		"mw", "handler", "mw-after",
	}, rec.get())
}

func TestMatchedPatternVisibleToMiddleware(t *testing.T) {
	t.Parallel()

	var seen []string
	observe := handler.MiddlewareFunc(func(req handler.Request, next handler.Next) (handler.Response, error) {
		p, ok := router.MatchedPattern(req)
		require.True(t, ok)
		seen = append(seen, p)
		return next(req)
	})

	root := router.New(router.WithMiddleware(observe))
	root.Route("/api", func(api *router.Router) {
		api.Get(`^/posts/(?<postId>\d+)$`, textHandler("post"))
	})
	root.Get(`^/$`, textHandler("home"))

	resolve(t, root, http.MethodGet, "/api/posts/7")
	resolve(t, root, http.MethodGet, "/")

	assert.Equal(t, []string{`^/posts/(?<postId>\d+)$`, `^/$`}, seen)

	_, ok := router.MatchedPattern(handler.NewRequest(http.MethodGet, "/"))
	assert.False(t, ok)
}
