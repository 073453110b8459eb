// Package router resolves requests through a tree of nested routers and runs
// the matching handler behind the middleware of every router on the way.
//
// # Routes
//
// A route pairs an HTTP method with a regular expression (Go RE2 syntax).
// Named groups become handler arguments:
//
//	r := router.New()
//
//	r.Get(`^/posts(?:/(?<postId>\d+))?$`, router.NewHandler(
//		func(args binder.Args) (handler.Response, error) {
//			return response.Text(http.StatusOK, strconv.Itoa(args.Int(0))), nil
//		},
//		binder.IntOr("postId", 1),
//	))
//
// Patterns are searched, not anchored. Routes are tried in registration
// order and the first match wins, so register specific patterns first.
//
// # Sub-routers
//
// A sub-router claims every path starting with its fixed start. The prefix is
// stripped before the sub-router sees the path. Sub-routers are tried before
// routes, longest fixed start first, and the first claimant owns the request
// even if it has no matching route:
//
//	api := router.New()
//	r.Mount("/api", api) // api sees "/posts/1" for "/api/posts/1"
//
//	r.Route("/health", func(h *router.Router) {
//		h.Get(`^$`, healthHandler)
//	})
//
// # Middleware
//
// Each router holds at most one middleware (SetMiddleware replaces it).
// During dispatch, each router on the path from the root to the matched route
// appends its middleware to a per-request queue, so ancestors always run
// before descendants and siblings never see each other's middleware. A route
// may add one more middleware that runs last. When nothing matches, no
// middleware runs at all.
//
// # Results and errors
//
// Resolve returns a 404 response with an empty body when nothing matches;
// that is a value, not an error. Errors signal faults: duplicate registrations
// at build time, and binding failures, handler errors or contract violations
// at dispatch time. ServeHTTP hands dispatch errors and recovered panics to
// the configured ErrorHandler.
//
// # Concurrency
//
// Build the tree first, then serve. Resolve never mutates the tree and keeps
// all routing state per request, so it is safe for concurrent use.
package router
