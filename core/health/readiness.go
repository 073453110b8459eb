package health

import (
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/pathway/core/handler"
	"github.com/dmitrymomot/pathway/core/logger"
	"github.com/dmitrymomot/pathway/core/response"
	"github.com/dmitrymomot/pathway/core/router"
)

// Readiness verifies all service dependencies are functioning.
// Checks run concurrently with the request context. Returns "READY" if all
// pass, or an ErrServiceUnavailable error for the router's error handler if
// any fails.
func Readiness(log *slog.Logger, checks ...func(context.Context) error) router.Handler {
	if log == nil {
		log = logger.NewNop()
	}

	return router.RequestHandler(func(req handler.Request) (handler.Response, error) {
		g, ctx := errgroup.WithContext(req.Context())
		for _, check := range checks {
			g.Go(func() error {
				return check(ctx)
			})
		}

		if err := g.Wait(); err != nil {
			log.ErrorContext(req.Context(), "Readiness check failed", logger.Component("health"), logger.Error(err))
			return nil, response.ErrServiceUnavailable.WithError(err)
		}

		return response.Text(http.StatusOK, "READY"), nil
	})
}
