// Package server is the outer transport: it extracts the credential token
// from the request, forwards it into the resolution context, and writes the
// executor's {data, errors} result. The resolver layer never sees headers.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	appgraphql "github.com/shashiranjanraj/tavola/app/graphql"
	"github.com/shashiranjanraj/tavola/config"
	"github.com/shashiranjanraj/tavola/pkg/cache"
	"github.com/shashiranjanraj/tavola/pkg/logger"
	"github.com/shashiranjanraj/tavola/pkg/metrics"
	"github.com/shashiranjanraj/tavola/pkg/middleware"
	"github.com/shashiranjanraj/tavola/pkg/reqid"
	"github.com/shashiranjanraj/tavola/pkg/response"
	"github.com/shashiranjanraj/tavola/pkg/store"
)

// Start wires the store, schema, and HTTP carrier, then serves until
// SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	ctx := context.Background()

	st, err := store.Connect(ctx)
	if err != nil {
		return err
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("cache unavailable, serving without it", "error", err)
	}

	resolver := appgraphql.NewResolver(st)
	defer resolver.Close()

	schema, err := appgraphql.NewSchema(resolver)
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))

	r.With(middleware.RateLimit(config.RateLimitMax(), config.RateLimitWindow())).Post("/graphql", GraphQLHandler(schema))
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})
	r.Get("/metrics", metrics.Handler())

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("tavola listening", "addr", srv.Addr, "store", config.StoreDriver())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
