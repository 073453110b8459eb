package health

import (
	"net/http"

	"github.com/dmitrymomot/pathway/core/handler"
	"github.com/dmitrymomot/pathway/core/response"
	"github.com/dmitrymomot/pathway/core/router"
)

// Liveness indicates if the service process is running.
// Always returns "ALIVE" with 200 OK. No dependency checks.
func Liveness() router.Handler {
	return router.RequestHandler(func(handler.Request) (handler.Response, error) {
		return response.Text(http.StatusOK, "ALIVE"), nil
	})
}

// NoContent returns HTTP 204 without body. Ideal for high-frequency checks.
func NoContent() router.Handler {
	return router.RequestHandler(func(handler.Request) (handler.Response, error) {
		return response.NoContent(), nil
	})
}
