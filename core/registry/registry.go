package registry

import (
	"fmt"

	"github.com/dmitrymomot/pathway/core/handler"
	"github.com/dmitrymomot/pathway/core/router"
)

// Route is one registration: a method and pattern bound to a handler, with
// an optional route-level middleware.
type Route struct {
	Method     string
	Pattern    string
	Handler    router.Handler
	Middleware handler.Middleware
}

// Controller groups related routes.
type Controller interface {
	Routes() []Route
}

// ControllerFunc adapts a function to Controller.
type ControllerFunc func() []Route

// Routes implements Controller.
func (f ControllerFunc) Routes() []Route {
	return f()
}

// Register adds the routes of every controller to r in order.
// It stops at the first registration fault. Routes added before the fault
// stay registered.
func Register(r *router.Router, controllers ...Controller) error {
	for _, c := range controllers {
		if c == nil {
			continue
		}
		for _, rt := range c.Routes() {
			if err := add(r, rt); err != nil {
				return err
			}
		}
	}
	return nil
}

func add(r *router.Router, rt Route) error {
	var mw []handler.Middleware
	if rt.Middleware != nil {
		mw = append(mw, rt.Middleware)
	}
	if err := r.AddRoute(rt.Method, rt.Pattern, rt.Handler, mw...); err != nil {
		return fmt.Errorf("register %s '%s': %w", rt.Method, rt.Pattern, err)
	}
	return nil
}
