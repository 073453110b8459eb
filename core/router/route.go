package router

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/dmitrymomot/pathway/core/binder"
	"github.com/dmitrymomot/pathway/core/handler"
)

// Handler describes a route handler: its declared parameters and its body.
// Params are bound from the route's named captures in declaration order.
type Handler struct {
	Params []binder.Param
	Func   func(args binder.Args) (handler.Response, error)
}

// NewHandler creates a handler descriptor from a body and its parameters.
func NewHandler(fn func(args binder.Args) (handler.Response, error), params ...binder.Param) Handler {
	return Handler{Params: params, Func: fn}
}

// RequestHandler creates a handler that only takes the request.
func RequestHandler(fn func(req handler.Request) (handler.Response, error)) Handler {
	if fn == nil {
		return Handler{Params: []binder.Param{binder.Request()}}
	}
	return Handler{
		Params: []binder.Param{binder.Request()},
		Func: func(args binder.Args) (handler.Response, error) {
			return fn(args.Request(0))
		},
	}
}

// Route binds an HTTP method and a path pattern to a handler.
// Routes are immutable once registered.
type Route struct {
	method     string
	pattern    string
	re         *regexp.Regexp
	handler    Handler
	middleware handler.Middleware
}

func newRoute(method, pattern string, h Handler, mw handler.Middleware) (*Route, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: '%s': %v", ErrInvalidPattern, pattern, err)
	}
	if h.Func == nil {
		return nil, fmt.Errorf("%w: nil handler for %s '%s'", ErrContractViolation, method, pattern)
	}
	if err := binder.Validate(h.Params); err != nil {
		return nil, fmt.Errorf("%s '%s': %w", method, pattern, err)
	}

	return &Route{
		method:     method,
		pattern:    pattern,
		re:         re,
		handler:    h,
		middleware: mw,
	}, nil
}

// Method returns the route's HTTP method.
func (rt *Route) Method() string {
	return rt.method
}

// Pattern returns the pattern source exactly as registered.
func (rt *Route) Pattern() string {
	return rt.pattern
}

// Matches reports whether the route accepts method and routing path.
// The pattern is searched, not anchored: use ^ and $ for whole-path matches.
func (rt *Route) Matches(method, path string) bool {
	return method == rt.method && rt.re.MatchString(path)
}

// Handle binds the captures of path to the handler parameters and invokes
// the handler. Callers must have checked Matches first.
func (rt *Route) Handle(req handler.Request, path string) (handler.Response, error) {
	captures, ok := rt.captures(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s '%s' against %q", ErrPatternMismatch, rt.method, rt.pattern, path)
	}

	args, err := binder.Bind(rt.handler.Params, req, captures)
	if err != nil {
		return nil, fmt.Errorf("%s '%s': %w", rt.method, rt.pattern, err)
	}

	resp, err := rt.handler.Func(args)
	if err != nil {
		return nil, err
	}
	if isNil(resp) {
		return nil, fmt.Errorf("%w: %s '%s' returned no response", ErrContractViolation, rt.method, rt.pattern)
	}
	return resp, nil
}

// captures returns the named groups that participated in the match.
func (rt *Route) captures(path string) (map[string]string, bool) {
	loc := rt.re.FindStringSubmatchIndex(path)
	if loc == nil {
		return nil, false
	}

	names := rt.re.SubexpNames()
	captures := make(map[string]string, len(names))
	for i := 1; i < len(names); i++ {
		if names[i] == "" || loc[2*i] < 0 {
			continue
		}
		if _, seen := captures[names[i]]; seen {
			continue
		}
		captures[names[i]] = path[loc[2*i]:loc[2*i+1]]
	}
	return captures, true
}

// isNil reports whether resp is nil or an interface holding a nil pointer.
func isNil(resp handler.Response) bool {
	if resp == nil {
		return true
	}
	v := reflect.ValueOf(resp)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	}
	return false
}
