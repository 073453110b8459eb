package router

import (
	"log/slog"

	"github.com/dmitrymomot/pathway/core/handler"
)

// Option configures a Router during creation.
type Option func(*Router)

// WithErrorHandler sets a custom error handler used by ServeHTTP.
func WithErrorHandler(h ErrorHandler) Option {
	return func(r *Router) {
		if h != nil {
			r.errorHandler = h
		}
	}
}

// WithLogger sets a custom logger for the router.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithFixedStart sets the router's fixed start.
func WithFixedStart(s string) Option {
	return func(r *Router) {
		r.SetFixedStart(s)
	}
}

// WithMiddleware sets the router's middleware.
func WithMiddleware(m handler.Middleware) Option {
	return func(r *Router) {
		r.middleware = m
	}
}
