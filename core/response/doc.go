// Package response provides the default handler.Response implementation and
// helpers for turning handler errors into HTTP responses.
//
// # Basic Usage
//
//	func showPost(args binder.Args) (handler.Response, error) {
//		post, ok := posts[args.Int(0)]
//		if !ok {
//			return nil, response.ErrNotFound.WithMessage("post not found")
//		}
//		return response.JSON(http.StatusOK, post)
//	}
//
// NotFound is the canonical "no route matched" value returned by the router:
// a 404 with an empty body.
//
// # Errors
//
// HTTPError carries a status code and a machine-readable code. AsHTTPError maps
// any error to one: HTTPError values pass through, errors with a StatusCode()
// method are mapped by status, everything else becomes a 500.
// ErrorHandler and JSONErrorHandler plug straight into router.WithErrorHandler.
package response
