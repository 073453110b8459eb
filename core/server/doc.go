// Package server runs an http.Handler, usually a router, with graceful
// shutdown and environment-driven configuration.
//
//	cfg := server.DefaultConfig()
//	config.MustLoad(&cfg)
//
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, r))
//	return g.Wait()
//
// Run returns a function suitable for errgroup: it serves until the context
// is canceled and then shuts down within the configured timeout.
//
// Header limits are configured in human-readable sizes (SERVER_MAX_HEADER_SIZE=512KB),
// parsed as binary units.
package server
