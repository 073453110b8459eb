package middleware

import (
	"errors"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/dmitrymomot/pathway/core/handler"
)

// MetricsConfig configures the metrics middleware.
type MetricsConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(req handler.Request) bool
	// MeterProvider creates the meter (default: otel.GetMeterProvider())
	MeterProvider metric.MeterProvider
	// Attributes adds extra attributes to every measurement, e.g. the
	// fixed start of the router the middleware is installed on
	Attributes []attribute.KeyValue
}

// Metrics creates a metrics middleware with default configuration.
// It panics if the instruments cannot be created.
func Metrics() handler.Middleware {
	mw, err := MetricsWithConfig(MetricsConfig{})
	if err != nil {
		panic(err)
	}
	return mw
}

// MetricsWithConfig records a request counter and a duration histogram for
// every dispatched request, labelled by method and status. Requests that end
// in an error are counted with status "error".
func MetricsWithConfig(cfg MetricsConfig) (handler.Middleware, error) {
	if cfg.MeterProvider == nil {
		cfg.MeterProvider = otel.GetMeterProvider()
	}

	meter := cfg.MeterProvider.Meter(instrumentationName)

	requests, err1 := meter.Int64Counter("http.server.requests",
		metric.WithDescription("Number of dispatched requests"),
		metric.WithUnit("{request}"))
	duration, err2 := meter.Float64Histogram("http.server.request.duration",
		metric.WithDescription("Duration of dispatched requests"),
		metric.WithUnit("s"))
	if err := errors.Join(err1, err2); err != nil {
		return nil, err
	}

	return handler.MiddlewareFunc(func(req handler.Request, next handler.Next) (handler.Response, error) {
		if cfg.Skip != nil && cfg.Skip(req) {
			return next(req)
		}

		start := time.Now()
		resp, err := next(req)
		elapsed := time.Since(start)

		status := "error"
		if err == nil {
			status = strconv.Itoa(statusOf(resp))
		}

		attrs := make([]attribute.KeyValue, 0, len(cfg.Attributes)+2)
		attrs = append(attrs,
			attribute.String("http.request.method", req.Method()),
			attribute.String("http.response.status_code", status),
		)
		attrs = append(attrs, cfg.Attributes...)
		opt := metric.WithAttributes(attrs...)

		ctx := req.Context()
		requests.Add(ctx, 1, opt)
		duration.Record(ctx, elapsed.Seconds(), opt)

		return resp, err
	}), nil
}
