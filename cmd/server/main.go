package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/pathway/core/config"
	"github.com/dmitrymomot/pathway/core/handler"
	"github.com/dmitrymomot/pathway/core/health"
	"github.com/dmitrymomot/pathway/core/logger"
	"github.com/dmitrymomot/pathway/core/registry"
	"github.com/dmitrymomot/pathway/core/response"
	"github.com/dmitrymomot/pathway/core/router"
	"github.com/dmitrymomot/pathway/core/server"
	"github.com/dmitrymomot/pathway/middleware"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg Config
	config.MustLoad(&cfg) // panic on error

	log := logger.NewFromConfig(cfg.Log, logger.WithContextExtractors(
		middleware.RequestIDExtractor(),
		middleware.TraceIDExtractor(),
	))
	logger.SetAsDefault(log)

	// Telemetry providers are global so Tracing and Metrics pick them up.
	tp := sdktrace.NewTracerProvider()
	mp := sdkmetric.NewMeterProvider()
	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	defer func() {
		shutdownCtx := context.WithoutCancel(ctx)
		if err := errors.Join(tp.Shutdown(shutdownCtx), mp.Shutdown(shutdownCtx)); err != nil {
			log.Error("Failed to shut down telemetry", logger.Component("otel"), logger.Error(err))
		}
	}()

	r, err := newRouter(cfg, log)
	if err != nil {
		log.Error("Failed to build router", logger.Component("router"), logger.Error(err))
		os.Exit(1)
	}

	routes := r.Routes()
	for _, rt := range routes {
		log.Debug("Route registered", logger.Route(rt.Method, rt.Pattern), logger.FixedStart(rt.Prefix))
	}
	log.Info("Router ready",
		logger.Component("router"),
		logger.Count("routes", len(routes)),
		logger.Version(buildVersion()),
	)

	s, err := server.NewFromConfig(cfg.Server, server.WithLogger(log))
	if err != nil {
		log.Error("Failed to create server", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(s.Run(ctx, r))

	if err := eg.Wait(); err != nil {
		log.Error("Server stopped with error", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}
}

// newRouter assembles the route tree:
//
//	/            health and ping
//	/api/posts   posts controller
//	/api/users   users controller
//
// plus the optional manifest router. Every router that owns paths answers
// OPTIONS so CORS preflight requests reach the root middleware.
func newRouter(cfg Config, log *slog.Logger) (*router.Router, error) {
	r := router.New(
		router.WithLogger(log),
		router.WithErrorHandler(response.JSONErrorHandler),
		router.WithMiddleware(middleware.Chain(
			middleware.RequestID(),
			middleware.ClientIP(),
			middleware.CORSWithConfig(middleware.CORSConfig{
				AllowOrigins:  cfg.CORSOrigins,
				ExposeHeaders: []string{"X-Request-ID"},
			}),
			middleware.LoggingWithLogger(log),
			middleware.RecoverWithConfig(middleware.RecoverConfig{Logger: log}),
			middleware.SecurityHeaders(),
		)),
	)

	r.Get(`^/$`, health.Liveness())
	r.Get(`^/ready$`, health.Readiness(log))
	r.Get(`^/ping$`, health.NoContent())
	r.Options(`.*`, health.NoContent())

	posts := postsController{store: newPostStore()}
	users := usersController{}

	api := router.New(router.WithMiddleware(middleware.Chain(
		middleware.Tracing(),
		middleware.Metrics(),
	)))

	postsRouter := router.New()
	if err := registry.Register(postsRouter, posts); err != nil {
		return nil, err
	}
	usersRouter := router.New()
	if err := registry.Register(usersRouter, users); err != nil {
		return nil, err
	}
	postsRouter.Options(`.*`, health.NoContent())
	usersRouter.Options(`.*`, health.NoContent())
	api.Mount("/posts", postsRouter)
	api.Mount("/users", usersRouter)
	r.Mount("/api", api)

	if cfg.RoutesFile != "" {
		ext, err := registry.LoadManifestFile(cfg.RoutesFile, catalog(posts, users))
		if err != nil {
			return nil, err
		}
		if err := r.AddSubRouter(ext); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// catalog exposes the built-in handlers and middlewares to route manifests.
func catalog(posts postsController, users usersController) registry.Catalog {
	postRoutes := posts.Routes()
	return registry.Catalog{
		Handlers: map[string]router.Handler{
			"health.live":  health.Liveness(),
			"health.ping":  health.NoContent(),
			"health.ready": health.Readiness(nil),
			"posts.list":   postRoutes[0].Handler,
			"posts.show":   postRoutes[1].Handler,
			"users.show":   users.Routes()[0].Handler,
		},
		Middlewares: map[string]handler.Middleware{
			"tracing":          middleware.Tracing(),
			"metrics":          middleware.Metrics(),
			"security_headers": middleware.SecurityHeaders(),
		},
	}
}

// buildVersion reports the main module version stamped by the Go toolchain.
func buildVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	return info.Main.Version
}
