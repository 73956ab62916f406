package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"p9e.in/tankinspect/config"
	"p9e.in/tankinspect/handlers"
	"p9e.in/tankinspect/pkg/inspection"
	"p9e.in/tankinspect/pkg/logging"
	"p9e.in/tankinspect/routes"
)

var (
	Version   = "dev"
	BuildTime = ""
)

const shutdownTimeout = 15 * time.Second

func main() {

	versionFlag := flag.Bool("version", false, "Print version info and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("Version:   %s\n", Version)
		fmt.Printf("BuildTime: %s\n", BuildTime)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	db, err := config.Connect(cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("could not connect to database")
	}

	// Run migrations
	if err := config.Migrations(db); err != nil {
		logging.Fatal().Err(err).Msg("could not run migrations")
	}

	// Seeding is idempotent and only restores missing system prompts
	if cfg.Seed.GoalTemplates {
		if err := config.SeedGoalTemplates(db); err != nil {
			logging.Warn().Err(err).Msg("goal template seeding encountered issues")
		}
	}

	h := handlers.New(inspection.NewService(db))
	handler := routes.RegisterRoutes(h, routes.Options{
		AllowedOrigins:    cfg.CORS.AllowedOrigins,
		RateLimitRequests: cfg.RateLimit.Requests,
		RateLimitWindow:   cfg.RateLimit.Window,
		RateLimitDisabled: cfg.RateLimit.Disabled,
		TrustProxy:        cfg.RateLimit.TrustProxy,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Server.Port),
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       2 * cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", srv.Addr).Str("version", Version).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logging.Fatal().Err(err).Msg("server failed")
		}
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("graceful shutdown failed")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logging.Info().Msg("Server stopped")
}
