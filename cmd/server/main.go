package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MatyCastillo/cashdesk-webapp/internal/config"
	"github.com/MatyCastillo/cashdesk-webapp/internal/infra"
	"github.com/MatyCastillo/cashdesk-webapp/internal/router"
	"github.com/MatyCastillo/cashdesk-webapp/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Storage lifecycle: open → EnsureReady → serve → close.
	// Any schema or seed failure aborts before traffic is accepted.
	db, err := infra.NewDatabase(cfg.SQLitePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open sqlite store")
	}
	defer func() {
		if err := infra.CloseDatabase(db); err != nil {
			log.Warn().Err(err).Msg("error closing sqlite store")
		}
	}()

	if err := infra.EnsureReady(db, cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize schema")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb, err := infra.NewRedis(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	r, pagoSvc := router.New(cfg, db, rdb)

	// Totals-cache refresh workers. Handlers are wired here (composition
	// root) so the pool reaches the payment service without import cycles.
	worker.StartWorkerPool(ctx, rdb, &worker.Handlers{
		Totales: pagoSvc.RefreshTotales,
	}, cfg.WorkerPoolSize)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("cashdesk backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
