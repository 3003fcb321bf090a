package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"teampulse/internal/platform/config"
	"teampulse/internal/platform/logger"
	"teampulse/internal/server"
)

const shutdownTimeout = 10 * time.Second

// main wires the backend and keeps the server lifecycle small. Business logic
// lives in the internal service packages.
func main() {
	if err := config.LoadDotEnv(); err != nil {
		logger.New().Error("failed to load .env", "error", err)
		os.Exit(1)
	}
	cfg := config.FromEnv()
	log := logger.New(logger.WithLevel(cfg.LogLevel))

	log.Info("initializing teampulse",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"seed", cfg.Seed,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := server.New(ctx, cfg, server.WithLogger(log))
	if err != nil {
		log.Error("failed to build backend", "error", err)
		os.Exit(1)
	}
	if backend.Demo != nil {
		log.Info("demo tenant ready", "tenant", backend.Demo.Tenant.Name, "admin", backend.Demo.Admin.Email)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           backend.Handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      35 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Info("starting http server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
