// Package handler defines the contracts shared by the router, its middleware
// and the handlers it dispatches to. It is deliberately small: a Request, a
// Response, a Next continuation and the Middleware interface.
//
// # Requests
//
// Request is immutable. Attributes are added with WithAttribute, which returns
// a new request and leaves the original untouched, so middleware can thread
// per-request values down the chain without affecting sibling dispatches:
//
//	req := handler.NewRequest(http.MethodGet, "/users/42")
//	req2 := req.WithAttribute("tenant", "acme")
//
//	req.Attribute("tenant", "")  // ""
//	req2.Attribute("tenant", "") // "acme"
//
// FromHTTP adapts a *http.Request, preserving its context and headers.
//
// # Responses
//
// Response only has to report a status code. Responses that implement
// Renderer write their own body; responses that implement HeaderCarrier
// expose headers that middleware may decorate.
//
// # Middleware
//
// A middleware receives the request and a Next continuation. Calling next runs
// the rest of the chain; returning without calling it short-circuits:
//
//	auth := handler.MiddlewareFunc(func(req handler.Request, next handler.Next) (handler.Response, error) {
//		if req.Header("Authorization") == "" {
//			return response.Text(http.StatusUnauthorized, "unauthorized"), nil
//		}
//		return next(req)
//	})
package handler
