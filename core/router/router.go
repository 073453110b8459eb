package router

import (
	"cmp"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/dmitrymomot/pathway/core/handler"
	"github.com/dmitrymomot/pathway/core/response"
)

// Router resolves requests against its sub-routers and routes.
//
// A router claims every path that starts with its fixed start. On dispatch it
// strips that prefix, appends its middleware to the inherited queue, and offers
// the remaining path first to its sub-routers (longest fixed start first), then
// to its routes (registration order). The first match takes ownership.
//
// Build the tree completely before serving: registration methods are not safe
// to call concurrently with Resolve. Resolve itself is safe for concurrent use.
type Router struct {
	fixedStart   string
	middleware   handler.Middleware
	subRouters   []*Router
	routes       []*Route
	parent       *Router
	logger       *slog.Logger
	errorHandler ErrorHandler
}

// RouteInfo describes a registered route for introspection.
type RouteInfo struct {
	Method  string
	Pattern string
	// Prefix is the concatenated fixed start of every router above the route.
	Prefix string
}

// routingContext is the per-request routing state passed down the tree.
type routingContext struct {
	path  string
	queue []handler.Middleware
}

// New creates a new router with the given options.
func New(opts ...Option) *Router {
	r := &Router{
		errorHandler: defaultErrorHandler,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)), // No-op logger by default
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// SetFixedStart sets the path prefix the router claims. One trailing slash is
// stripped, so "/users/" and "/users" are the same fixed start. The default ""
// matches every path.
//
// Changing the fixed start of a mounted router re-sorts its siblings and
// panics with ErrDuplicateRegistration on a collision.
func (r *Router) SetFixedStart(s string) {
	s = strings.TrimSuffix(s, "/")
	if r.parent == nil {
		r.fixedStart = s
		return
	}

	for _, sib := range r.parent.subRouters {
		if sib != r && sib.fixedStart == s {
			panic(fmt.Errorf("%w: fixed start '%s'", ErrDuplicateRegistration, s))
		}
	}
	r.fixedStart = s
	r.parent.sortSubRouters()
}

// FixedStart returns the normalized fixed start.
func (r *Router) FixedStart() string {
	return r.fixedStart
}

// SetMiddleware replaces the router's middleware. Nil removes it.
func (r *Router) SetMiddleware(m handler.Middleware) {
	r.middleware = m
}

// AddSubRouter mounts sub below r.
// It fails when a sibling already claims the same fixed start, when sub is
// already mounted elsewhere, or when mounting would create a cycle.
func (r *Router) AddSubRouter(sub *Router) error {
	if sub == nil {
		return ErrNilRouter
	}
	for p := r; p != nil; p = p.parent {
		if p == sub {
			return fmt.Errorf("%w: fixed start '%s'", ErrCyclicMount, sub.fixedStart)
		}
	}
	if sub.parent != nil {
		return fmt.Errorf("%w: fixed start '%s'", ErrAlreadyMounted, sub.fixedStart)
	}
	for _, existing := range r.subRouters {
		if existing.fixedStart == sub.fixedStart {
			return fmt.Errorf("%w: fixed start '%s'", ErrDuplicateRegistration, sub.fixedStart)
		}
	}

	sub.parent = r
	r.subRouters = append(r.subRouters, sub)
	r.sortSubRouters()
	return nil
}

// AddRoute registers a route. The optional middleware runs after every router
// middleware, immediately before the handler.
// Two routes with the same method and the same pattern source are rejected;
// patterns are compared literally, never by meaning.
func (r *Router) AddRoute(method, pattern string, h Handler, mw ...handler.Middleware) error {
	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		return fmt.Errorf("%w: empty method for '%s'", ErrInvalidMethod, pattern)
	}
	if len(mw) > 1 {
		return fmt.Errorf("%w: %s '%s' got %d", ErrTooManyMiddlewares, method, pattern, len(mw))
	}

	for _, existing := range r.routes {
		if existing.method == method && existing.pattern == pattern {
			return fmt.Errorf("%w: %s '%s'", ErrDuplicateRegistration, method, pattern)
		}
	}

	var m handler.Middleware
	if len(mw) == 1 {
		m = mw[0]
	}

	rt, err := newRoute(method, pattern, h, m)
	if err != nil {
		return err
	}

	r.routes = append(r.routes, rt)
	return nil
}

// Get registers a GET route. It panics on registration errors.
func (r *Router) Get(pattern string, h Handler, mw ...handler.Middleware) {
	r.mustAddRoute(http.MethodGet, pattern, h, mw...)
}

// Post registers a POST route. It panics on registration errors.
func (r *Router) Post(pattern string, h Handler, mw ...handler.Middleware) {
	r.mustAddRoute(http.MethodPost, pattern, h, mw...)
}

// Put registers a PUT route. It panics on registration errors.
func (r *Router) Put(pattern string, h Handler, mw ...handler.Middleware) {
	r.mustAddRoute(http.MethodPut, pattern, h, mw...)
}

// Patch registers a PATCH route. It panics on registration errors.
func (r *Router) Patch(pattern string, h Handler, mw ...handler.Middleware) {
	r.mustAddRoute(http.MethodPatch, pattern, h, mw...)
}

// Delete registers a DELETE route. It panics on registration errors.
func (r *Router) Delete(pattern string, h Handler, mw ...handler.Middleware) {
	r.mustAddRoute(http.MethodDelete, pattern, h, mw...)
}

// Head registers a HEAD route. It panics on registration errors.
func (r *Router) Head(pattern string, h Handler, mw ...handler.Middleware) {
	r.mustAddRoute(http.MethodHead, pattern, h, mw...)
}

// Options registers an OPTIONS route. It panics on registration errors.
func (r *Router) Options(pattern string, h Handler, mw ...handler.Middleware) {
	r.mustAddRoute(http.MethodOptions, pattern, h, mw...)
}

// Mount adds sub as a sub-router with the given fixed start.
// It panics on registration errors.
func (r *Router) Mount(fixedStart string, sub *Router) {
	if sub == nil {
		panic(fmt.Errorf("%w on '%s'", ErrNilRouter, fixedStart))
	}
	if sub.parent != nil {
		panic(fmt.Errorf("%w: fixed start '%s'", ErrAlreadyMounted, sub.fixedStart))
	}
	sub.SetFixedStart(fixedStart)
	if err := r.AddSubRouter(sub); err != nil {
		panic(err)
	}
}

// Route creates a sub-router with the given fixed start, configures it with fn
// and mounts it. It panics on registration errors.
func (r *Router) Route(fixedStart string, fn func(sub *Router)) *Router {
	sub := New(WithLogger(r.logger), WithErrorHandler(r.errorHandler))
	if fn != nil {
		fn(sub)
	}
	r.Mount(fixedStart, sub)
	return sub
}

// Matches reports whether path starts with the router's fixed start.
func (r *Router) Matches(path string) bool {
	return strings.HasPrefix(path, r.fixedStart)
}

// Resolve dispatches req through the router tree.
//
// When nothing matches, Resolve returns a 404 response with an empty body and
// a nil error, and no middleware runs. Errors are reserved for faults:
// binding failures, handler errors and contract violations.
func (r *Router) Resolve(req handler.Request) (handler.Response, error) {
	return r.resolve(req, routingContext{path: req.Path()})
}

func (r *Router) resolve(req handler.Request, rc routingContext) (handler.Response, error) {
	path, ok := strings.CutPrefix(rc.path, r.fixedStart)
	if !ok {
		return nil, fmt.Errorf("%w: '%s' on %q", ErrPrefixMismatch, r.fixedStart, rc.path)
	}

	queue := rc.queue
	if r.middleware != nil {
		queue = append(slices.Clone(rc.queue), r.middleware)
	}
	next := routingContext{path: path, queue: queue}

	for _, sub := range r.subRouters {
		if sub.Matches(path) {
			return sub.resolve(req, next)
		}
	}

	method := req.Method()
	for _, rt := range r.routes {
		if rt.Matches(method, path) {
			return dispatch(req, rt, next)
		}
	}

	return response.NotFound(), nil
}

// PatternAttribute is the request attribute holding the pattern source of the
// route that matched. It is set before any middleware runs.
const PatternAttribute = "route_pattern"

// MatchedPattern returns the pattern of the route serving req.
func MatchedPattern(req handler.Request) (string, bool) {
	p, ok := req.Attribute(PatternAttribute, nil).(string)
	return p, ok
}

// dispatch runs the accumulated middleware queue with rt as terminal handler.
func dispatch(req handler.Request, rt *Route, rc routingContext) (handler.Response, error) {
	req = req.WithAttribute(PatternAttribute, rt.pattern)

	queue := rc.queue
	if rt.middleware != nil {
		queue = append(slices.Clip(queue), rt.middleware)
	}

	c := chain{
		queue: queue,
		terminal: func(req handler.Request) (handler.Response, error) {
			return rt.Handle(req, rc.path)
		},
	}
	return c.run(req)
}

// Routes returns every registered route in resolution order.
func (r *Router) Routes() []RouteInfo {
	var out []RouteInfo
	r.collectRoutes("", &out)
	return out
}

func (r *Router) collectRoutes(prefix string, out *[]RouteInfo) {
	prefix += r.fixedStart
	for _, sub := range r.subRouters {
		sub.collectRoutes(prefix, out)
	}
	for _, rt := range r.routes {
		*out = append(*out, RouteInfo{
			Method:  rt.method,
			Pattern: rt.pattern,
			Prefix:  prefix,
		})
	}
}

func (r *Router) mustAddRoute(method, pattern string, h Handler, mw ...handler.Middleware) {
	if err := r.AddRoute(method, pattern, h, mw...); err != nil {
		panic(err)
	}
}

// sortSubRouters orders children by descending fixed start length.
// Equal lengths keep insertion order.
func (r *Router) sortSubRouters() {
	slices.SortStableFunc(r.subRouters, func(a, b *Router) int {
		return cmp.Compare(len(b.fixedStart), len(a.fixedStart))
	})
}
