// Package health provides route handlers for service health monitoring.
//
// Handlers:
//   - Liveness: Process is running (no dependency checks)
//   - Readiness: All dependencies are available
//   - NoContent: Returns 204 for minimal overhead
//
// Usage:
//
//	r.Route("/health", func(h *router.Router) {
//		h.Get(`^/live$`, health.Liveness())
//		h.Get(`^/ready$`, health.Readiness(log, db.Ping, cache.Ping))
//	})
//	r.Get(`^/ping$`, health.NoContent())
//
// Dependency checks must follow func(context.Context) error signature:
//
//	func checkDB(ctx context.Context) error {
//		return db.PingContext(ctx)
//	}
package health
