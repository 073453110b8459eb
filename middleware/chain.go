package middleware

import (
	"reflect"

	"github.com/dmitrymomot/pathway/core/handler"
)

// Chain composes middlewares into one, outermost first. Routers hold a
// single middleware; Chain is how several are installed on one router.
// Nil entries are skipped.
func Chain(mws ...handler.Middleware) handler.Middleware {
	list := make([]handler.Middleware, 0, len(mws))
	for _, m := range mws {
		if m != nil {
			list = append(list, m)
		}
	}

	return handler.MiddlewareFunc(func(req handler.Request, next handler.Next) (handler.Response, error) {
		return runChain(list, 0, next)(req)
	})
}

func runChain(list []handler.Middleware, i int, final handler.Next) handler.Next {
	if i >= len(list) {
		return final
	}
	return func(req handler.Request) (handler.Response, error) {
		return list[i].Process(req, runChain(list, i+1, final))
	}
}

// statusOf returns the status of resp, or 0 for a missing response.
func statusOf(resp handler.Response) int {
	if resp == nil {
		return 0
	}
	if v := reflect.ValueOf(resp); v.Kind() == reflect.Pointer && v.IsNil() {
		return 0
	}
	return resp.StatusCode()
}
