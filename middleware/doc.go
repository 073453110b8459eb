// Package middleware provides router middleware for cross-cutting concerns:
// request IDs, client IPs, CORS, request logging, panic recovery, security
// headers, tracing and metrics.
//
// A router holds a single middleware, so several are combined with Chain.
// Middleware installed on a router runs only for requests that router (or one
// of its sub-routers) dispatches to a route; unmatched paths never reach it.
//
//	r := router.New(router.WithMiddleware(middleware.Chain(
//		middleware.RequestID(),
//		middleware.LoggingWithLogger(log),
//		middleware.Recover(),
//	)))
//
//	api := router.New(router.WithMiddleware(middleware.Chain(
//		middleware.Tracing(),
//		middleware.Metrics(),
//	)))
//	r.Mount("/api", api)
//
// All middleware follow the same shape: a default constructor, a WithConfig
// constructor taking a Config struct, and an optional Skip predicate.
//
// # Request ID
//
// RequestID assigns an ID to every request, stores it as a request attribute
// and in the request context, and echoes it in the X-Request-ID response header.
// Read it back with GetRequestID or RequestIDFromContext.
//
// # Client IP and CORS
//
// ClientIP resolves the real client address from proxy headers (see RealIP).
// CORS answers preflight requests itself, but only once a route matched, so
// give every router that owns paths an OPTIONS route:
//
//	posts.Options(`.*`, health.NoContent())
//
// # Observability
//
// Tracing starts one server span per request using the global OpenTelemetry
// tracer provider unless one is configured, and passes the span context down
// in the request context. Metrics records http.server.requests and
// http.server.request.duration. RequestIDExtractor and TraceIDExtractor add
// both IDs to records logged with a request context.
package middleware
