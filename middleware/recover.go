package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/dmitrymomot/pathway/core/handler"
	"github.com/dmitrymomot/pathway/core/logger"
)

// ErrPanic wraps panics recovered by the Recover middleware.
var ErrPanic = errors.New("recovered panic")

// RecoverConfig configures the panic recovery middleware.
type RecoverConfig struct {
	// Logger receives the panic value and stack (default: slog.Default())
	Logger *slog.Logger
	// DisableStack skips capturing the stack trace
	DisableStack bool
}

// Recover creates a panic recovery middleware with default configuration.
func Recover() handler.Middleware {
	return RecoverWithConfig(RecoverConfig{})
}

// RecoverWithConfig converts a panic in the rest of the chain into an error
// wrapping ErrPanic, so middleware above it still sees a regular result.
// Panic values that are errors stay reachable with errors.Is and errors.As.
func RecoverWithConfig(cfg RecoverConfig) handler.Middleware {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return handler.MiddlewareFunc(func(req handler.Request, next handler.Next) (resp handler.Response, err error) {
		defer func() {
			p := recover()
			if p == nil {
				return
			}

			attrs := []slog.Attr{
				logger.Method(req.Method()),
				logger.Path(req.Path()),
				slog.Any("panic", p),
			}
			if !cfg.DisableStack {
				attrs = append(attrs, logger.Stack(debug.Stack()))
			}
			cfg.Logger.LogAttrs(req.Context(), slog.LevelError, "panic recovered", attrs...)

			resp = nil
			if cause, ok := p.(error); ok {
				err = fmt.Errorf("%w: %w", ErrPanic, cause)
			} else {
				err = fmt.Errorf("%w: %v", ErrPanic, p)
			}
		}()

		return next(req)
	})
}
