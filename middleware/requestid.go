package middleware

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/pathway/core/handler"
	"github.com/dmitrymomot/pathway/core/logger"
)

// RequestIDAttribute is the request attribute holding the request ID.
const RequestIDAttribute = "request_id"

// requestIDContextKey is used as a key for storing the request ID in the request context.
type requestIDContextKey struct{}

// RequestIDConfig configures the request ID middleware.
type RequestIDConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(req handler.Request) bool
	// Generator creates new request IDs (default: UUID v4)
	Generator func() string
	// HeaderName specifies the header name for the request ID (default: "X-Request-ID")
	HeaderName string
	// UseExisting determines whether to use an existing request ID from the incoming request
	UseExisting bool
}

// RequestID creates a request ID middleware with default configuration.
// It generates a new UUID for each request and sets it on the response.
func RequestID() handler.Middleware {
	return RequestIDWithConfig(RequestIDConfig{})
}

// RequestIDWithConfig creates a request ID middleware with custom configuration.
// The ID is stored as a request attribute and in the request context, so
// loggers reading the context pick it up too.
func RequestIDWithConfig(cfg RequestIDConfig) handler.Middleware {
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-Request-ID"
	}

	if cfg.Generator == nil {
		cfg.Generator = func() string {
			return uuid.New().String()
		}
	}

	return handler.MiddlewareFunc(func(req handler.Request, next handler.Next) (handler.Response, error) {
		if cfg.Skip != nil && cfg.Skip(req) {
			return next(req)
		}

		var requestID string
		if cfg.UseExisting {
			requestID = req.Header(cfg.HeaderName)
		}
		if requestID == "" {
			requestID = cfg.Generator()
		}

		req = req.WithAttribute(RequestIDAttribute, requestID)
		req = req.WithContext(context.WithValue(req.Context(), requestIDContextKey{}, requestID))

		resp, err := next(req)
		if err != nil {
			return nil, err
		}

		if hc, ok := resp.(handler.HeaderCarrier); ok {
			hc.Header().Set(cfg.HeaderName, requestID)
		}
		return resp, nil
	})
}

// GetRequestID retrieves the request ID set by RequestID.
// Returns the request ID and a boolean indicating whether it was found.
func GetRequestID(req handler.Request) (string, bool) {
	id, ok := req.Attribute(RequestIDAttribute, nil).(string)
	return id, ok
}

// RequestIDFromContext retrieves the request ID from a context derived from
// a request that passed through RequestID.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDContextKey{}).(string)
	return id
}

// RequestIDExtractor returns a logger.ContextExtractor that adds request_id
// to records logged with a request context.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		id := RequestIDFromContext(ctx)
		return logger.RequestID(id), id != ""
	}
}
