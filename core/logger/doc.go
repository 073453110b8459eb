// Package logger provides structured logging built on the standard slog package:
// a factory with environment presets and a set of attribute helpers that keep
// key names consistent across the router, middleware and server.
//
// # Basic Usage
//
//	log := logger.New(
//		logger.WithDevelopment("blog"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//
//	log.Info("server starting",
//		logger.Component("server"),
//		logger.Event("startup"),
//	)
//
// Loggers can also be built from environment configuration:
//
//	var cfg logger.Config
//	config.MustLoad(&cfg)
//	log := logger.NewFromConfig(cfg)
//
// # Context-Aware Logging
//
// Extractors pull request-scoped values into every record logged with a context:
//
//	log := logger.New(
//		logger.WithProduction("blog"),
//		logger.WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
//			id := middleware.RequestIDFromContext(ctx)
//			return logger.RequestID(id), id != ""
//		}),
//	)
//
// The middleware package ships ready-made extractors for request and trace IDs:
//
//	log := logger.NewFromConfig(cfg, logger.WithContextExtractors(
//		middleware.RequestIDExtractor(),
//		middleware.TraceIDExtractor(),
//	))
//
// # Attribute Helpers
//
// Helpers returning an empty slog.Attr for nil or empty input are safe to pass
// unconditionally:
//
//	log.Error("dispatch failed",
//		logger.Error(err),
//		logger.Method(r.Method),
//		logger.Path(r.URL.Path),
//		logger.Route(http.MethodGet, `^/posts/(?<postId>\d+)$`),
//	)
//
// Use NewNop in tests and as a default when no logger is configured.
package logger
