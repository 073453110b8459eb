package middleware

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/pathway/core/handler"
	"github.com/dmitrymomot/pathway/core/logger"
)

// instrumentationName identifies spans and instruments created by this package.
const instrumentationName = "github.com/dmitrymomot/pathway/middleware"

// TracingConfig configures the tracing middleware.
type TracingConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(req handler.Request) bool
	// TracerProvider creates the tracer (default: otel.GetTracerProvider())
	TracerProvider trace.TracerProvider
	// Propagator extracts the parent span from incoming headers
	// (default: otel.GetTextMapPropagator())
	Propagator propagation.TextMapPropagator
	// SpanName names the span (default: "HTTP " + method)
	SpanName func(req handler.Request) string
}

// Tracing creates a tracing middleware with default configuration.
func Tracing() handler.Middleware {
	return TracingWithConfig(TracingConfig{})
}

// TracingWithConfig starts one server span per dispatched request. The span
// context travels down the chain in the request context, so handlers can
// start child spans from req.Context().
func TracingWithConfig(cfg TracingConfig) handler.Middleware {
	if cfg.TracerProvider == nil {
		cfg.TracerProvider = otel.GetTracerProvider()
	}
	if cfg.Propagator == nil {
		cfg.Propagator = otel.GetTextMapPropagator()
	}
	if cfg.SpanName == nil {
		cfg.SpanName = func(req handler.Request) string {
			return "HTTP " + req.Method()
		}
	}

	tracer := cfg.TracerProvider.Tracer(instrumentationName)

	return handler.MiddlewareFunc(func(req handler.Request, next handler.Next) (handler.Response, error) {
		if cfg.Skip != nil && cfg.Skip(req) {
			return next(req)
		}

		ctx := cfg.Propagator.Extract(req.Context(), requestCarrier{req})

		ctx, span := tracer.Start(ctx, cfg.SpanName(req),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", req.Method()),
				attribute.String("url.path", req.Path()),
			),
		)
		defer span.End()

		if id, ok := GetRequestID(req); ok {
			span.SetAttributes(attribute.String("request.id", id))
		}

		resp, err := next(req.WithContext(ctx))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return resp, err
		}

		status := statusOf(resp)
		span.SetAttributes(attribute.Int("http.response.status_code", status))
		if status >= 500 {
			span.SetStatus(codes.Error, "")
		}
		return resp, nil
	})
}

// requestCarrier adapts request headers to propagation.TextMapCarrier for
// extraction. Requests are immutable, so Set is a no-op.
type requestCarrier struct {
	req handler.Request
}

var _ propagation.TextMapCarrier = requestCarrier{}

func (c requestCarrier) Get(key string) string { return c.req.Header(key) }

func (c requestCarrier) Set(string, string) {}

// Keys is unknown for an abstract request. The W3C trace context and baggage
// propagators only call Get.
func (c requestCarrier) Keys() []string { return nil }

// TraceIDExtractor returns a logger.ContextExtractor that adds the trace_id of
// the active span, so records logged below Tracing carry it.
func TraceIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		sc := trace.SpanContextFromContext(ctx)
		if !sc.HasTraceID() {
			return slog.Attr{}, false
		}
		return logger.TraceID(sc.TraceID().String()), true
	}
}
