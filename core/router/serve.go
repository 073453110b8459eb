package router

import (
	"net/http"
	"runtime/debug"

	"github.com/dmitrymomot/pathway/core/handler"
	"github.com/dmitrymomot/pathway/core/logger"
	"github.com/dmitrymomot/pathway/core/response"
)

// ServeHTTP implements http.Handler by resolving the request through the
// router tree and rendering the result.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	ww := newResponseWriter(w)

	// Recover from panics to prevent server crashes
	defer func() {
		if p := recover(); p != nil {
			panicErr := &panicError{
				value: p,
				stack: debug.Stack(),
			}

			if ww.Written() {
				// Can't send error response, just log the panic
				r.logger.ErrorContext(req.Context(), "panic after response written",
					logger.Error(panicErr),
					logger.Method(req.Method),
					logger.Path(req.URL.Path),
					logger.StatusCode(ww.Status()),
					logger.BytesOut(int64(ww.Size())),
					logger.Stack(panicErr.stack),
				)
				return
			}
			r.errorHandler(ww, req, panicErr)
		}
	}()

	resp, err := r.Resolve(handler.FromHTTP(req))
	if err != nil {
		r.logger.ErrorContext(req.Context(), "request dispatch failed",
			logger.Error(err),
			logger.Method(req.Method),
			logger.Path(req.URL.Path),
			logger.FixedStart(r.fixedStart),
		)
		r.errorHandler(ww, req, err)
		return
	}

	if err := response.Write(ww, resp); err != nil {
		r.logger.ErrorContext(req.Context(), "failed to render response",
			logger.Error(err),
			logger.Method(req.Method),
			logger.Path(req.URL.Path),
			logger.StatusCode(resp.StatusCode()),
		)
		if !ww.Written() {
			r.errorHandler(ww, req, err)
		}
	}
}
