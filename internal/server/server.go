// Package server boots and runs the application: config, logging, Mongo,
// Redis, storage disks, the gRPC health endpoint, and the HTTP API with
// graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/huseynesedov/portfolio-backend/app/routes"
	"github.com/huseynesedov/portfolio-backend/config"
	"github.com/huseynesedov/portfolio-backend/pkg/cache"
	"github.com/huseynesedov/portfolio-backend/pkg/database"
	grpcserver "github.com/huseynesedov/portfolio-backend/pkg/grpc"
	"github.com/huseynesedov/portfolio-backend/pkg/logger"
	"github.com/huseynesedov/portfolio-backend/pkg/metrics"
	"github.com/huseynesedov/portfolio-backend/pkg/middleware"
	"github.com/huseynesedov/portfolio-backend/pkg/reqid"
	"github.com/huseynesedov/portfolio-backend/pkg/router"
	"github.com/huseynesedov/portfolio-backend/pkg/storage"
)

const shutdownTimeout = 10 * time.Second

// Start runs the application until SIGINT or SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	ctx := context.Background()
	if err := database.Connect(ctx); err != nil {
		return err
	}
	defer database.Disconnect(ctx)

	// The cache is an optimization; the API serves from Mongo without it.
	if err := cache.Connect(); err != nil {
		logger.L.Warn("redis unavailable, caching disabled", "error", err)
	}

	storage.Connect()

	var logHandler *logger.MongoHandler
	if col := config.MongoLogCollection(); col != "" {
		logHandler = logger.NewMongoHandler(database.DB.Collection(col))
		logger.SetHandler(logger.NewMultiHandler(logger.L.Handler(), logHandler))
		defer logHandler.Close()
	}

	grpcSrv, err := grpcserver.Start(config.GRPCPort(), func(ctx context.Context) error {
		return database.Client.Ping(ctx, nil)
	})
	if err != nil {
		return err
	}
	defer grpcserver.Stop(grpcSrv)

	limiter := middleware.NewRateLimiter(
		config.RateLimitMax(),
		config.RateLimitWindow(),
		config.RateLimitAllowList(),
	)
	defer limiter.Close()

	r := router.New()
	r.Use(
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		metrics.Middleware(),
		middleware.CORS(middleware.WhitelistCORSOptions(config.CORSOrigins())),
		limiter.Middleware(),
	)
	if err := routes.RegisterAPI(r); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.L.Info("http server starting", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.L.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
