package router_test

import (
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pathway/core/handler"
	"github.com/dmitrymomot/pathway/core/response"
	"github.com/dmitrymomot/pathway/core/router"
)

// textHandler returns a handler that answers 200 with body.
func textHandler(body string) router.Handler {
	return router.RequestHandler(func(req handler.Request) (handler.Response, error) {
		return response.Text(http.StatusOK, body), nil
	})
}

// recorder collects execution steps from middleware and handlers.
type recorder struct {
	mu    sync.Mutex
	steps []string
}

func (r *recorder) add(step string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = append(r.steps, step)
}

func (r *recorder) get() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.steps...)
}

// middleware returns a middleware that records its name before and after next.
func (r *recorder) middleware(name string) handler.Middleware {
	return handler.MiddlewareFunc(func(req handler.Request, next handler.Next) (handler.Response, error) {
		r.add(name)
		resp, err := next(req)
		r.add(name + "-after")
		return resp, err
	})
}

// endpoint returns a handler that records name and answers 200 with name as body.
func (r *recorder) endpoint(name string) router.Handler {
	return router.RequestHandler(func(req handler.Request) (handler.Response, error) {
		r.add(name)
		return response.Text(http.StatusOK, name), nil
	})
}

// resolve dispatches method and path through r and requires no error.
func resolve(t *testing.T, r *router.Router, method, path string) handler.Response {
	t.Helper()

	resp, err := r.Resolve(handler.NewRequest(method, path))
	require.NoError(t, err)
	require.NotNil(t, resp)
	return resp
}

// body returns the body of a default response.
func body(t *testing.T, resp handler.Response) string {
	t.Helper()

	rr, ok := resp.(*response.Response)
	require.True(t, ok, "unexpected response type %T", resp)
	return string(rr.Body())
}
