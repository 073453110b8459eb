package handler

import "net/http"

// Response is the result of handling a request.
// A response must at least carry an HTTP status code.
type Response interface {
	StatusCode() int
}

// Renderer is implemented by responses that know how to write themselves
// to an http.ResponseWriter. Responses without it are written as a bare status.
type Renderer interface {
	Render(w http.ResponseWriter) error
}

// HeaderCarrier is implemented by responses with mutable headers.
// Middleware uses it to decorate a response produced further down the chain.
type HeaderCarrier interface {
	Header() http.Header
}

// Next continues request processing: it runs the rest of the middleware
// chain, or the terminal handler when the chain is exhausted.
type Next func(req Request) (Response, error)

// Middleware wraps request processing to add cross-cutting functionality.
// It may short-circuit by returning without calling next.
type Middleware interface {
	Process(req Request, next Next) (Response, error)
}

// MiddlewareFunc adapts an ordinary function to the Middleware interface.
type MiddlewareFunc func(req Request, next Next) (Response, error)

// Process calls f(req, next).
func (f MiddlewareFunc) Process(req Request, next Next) (Response, error) {
	return f(req, next)
}
