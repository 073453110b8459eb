package middleware

import (
	"log/slog"
	"slices"
	"time"

	"github.com/dmitrymomot/pathway/core/handler"
	"github.com/dmitrymomot/pathway/core/logger"
	"github.com/dmitrymomot/pathway/core/router"
)

// LoggingConfig configures the request logging middleware.
type LoggingConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(req handler.Request) bool

	// Logger is the slog logger to use (default: slog.Default())
	Logger *slog.Logger

	// LogLevel for successful requests (default: slog.LevelInfo)
	LogLevel slog.Level

	// LogHeaders enables logging of the request headers listed in Headers
	LogHeaders bool

	// Headers lists the request headers to log when LogHeaders is set
	Headers []string

	// SensitiveHeaders is a list of header names to redact (default: common auth headers)
	SensitiveHeaders []string

	// SlowRequestThreshold logs slow requests at warning level (default: 5s)
	SlowRequestThreshold time.Duration

	// Component name for structured logging
	Component string
}

// Logging creates a request logging middleware with default configuration.
func Logging() handler.Middleware {
	return LoggingWithConfig(LoggingConfig{})
}

// LoggingWithLogger creates a logging middleware with a custom logger.
func LoggingWithLogger(log *slog.Logger) handler.Middleware {
	return LoggingWithConfig(LoggingConfig{
		Logger: log,
	})
}

// LoggingWithConfig creates a request logging middleware with custom configuration.
// It logs one record per dispatched request after the rest of the chain returns.
// Requests that end in an error are logged at error level, 4xx responses and
// slow requests at warning level.
func LoggingWithConfig(cfg LoggingConfig) handler.Middleware {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	if cfg.LogLevel == 0 {
		cfg.LogLevel = slog.LevelInfo
	}

	if cfg.SensitiveHeaders == nil {
		cfg.SensitiveHeaders = []string{
			"Authorization",
			"Cookie",
			"X-Api-Key",
			"X-Auth-Token",
			"X-Csrf-Token",
		}
	}

	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}

	if cfg.Component == "" {
		cfg.Component = "http"
	}

	return handler.MiddlewareFunc(func(req handler.Request, next handler.Next) (handler.Response, error) {
		if cfg.Skip != nil && cfg.Skip(req) {
			return next(req)
		}

		start := time.Now()
		resp, err := next(req)
		duration := time.Since(start)

		attrs := []slog.Attr{
			logger.Component(cfg.Component),
			logger.Event("request"),
			logger.Method(req.Method()),
			logger.Path(req.Path()),
			logger.Duration(duration),
			logger.UserAgent(req.Header("User-Agent")),
		}

		if pattern, ok := router.MatchedPattern(req); ok {
			attrs = append(attrs, logger.Pattern(pattern))
		}
		if raw, ok := handler.HTTPRequest(req); ok {
			attrs = append(attrs, logger.BytesIn(raw.ContentLength))
		}

		// Only present when RequestID and ClientIP run before this middleware.
		if id, ok := GetRequestID(req); ok {
			attrs = append(attrs, logger.RequestID(id))
		}
		if ip, ok := GetClientIP(req); ok {
			attrs = append(attrs, logger.ClientIP(ip))
		}

		if cfg.LogHeaders && len(cfg.Headers) > 0 {
			headers := make([]slog.Attr, 0, len(cfg.Headers))
			for _, key := range cfg.Headers {
				v := req.Header(key)
				if v == "" {
					continue
				}
				if slices.Contains(cfg.SensitiveHeaders, key) {
					v = "[REDACTED]"
				}
				headers = append(headers, slog.String(key, v))
			}
			if len(headers) > 0 {
				attrs = append(attrs, logger.Group("headers", headers...))
			}
		}

		level := cfg.LogLevel
		status := statusOf(resp)
		switch {
		case err != nil:
			level = slog.LevelError
			attrs = append(attrs, logger.Error(err))
		case status >= 500:
			level = slog.LevelError
			attrs = append(attrs, logger.StatusCode(status))
		case status >= 400:
			level = slog.LevelWarn
			attrs = append(attrs, logger.StatusCode(status))
		default:
			attrs = append(attrs, logger.StatusCode(status))
			if duration > cfg.SlowRequestThreshold {
				level = slog.LevelWarn
				attrs = append(attrs, slog.Bool("slow_request", true))
			}
		}

		cfg.Logger.LogAttrs(req.Context(), level, "HTTP request completed", attrs...)
		return resp, err
	})
}
