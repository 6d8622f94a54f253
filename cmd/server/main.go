package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/northpole-labs/reindeergames/internal/config"
	"github.com/northpole-labs/reindeergames/internal/database"
	"github.com/northpole-labs/reindeergames/internal/game"
	"github.com/northpole-labs/reindeergames/internal/handler"
	"github.com/northpole-labs/reindeergames/internal/logger"
	"github.com/northpole-labs/reindeergames/internal/router"
	"github.com/northpole-labs/reindeergames/internal/store"
	"github.com/northpole-labs/reindeergames/internal/validator"
	"github.com/northpole-labs/reindeergames/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Reindeer Games")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Load Question Catalog ─────────────────────────────────────────
	bank, err := game.LoadBank()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load question catalog")
	}
	log.Info().Int("questions", bank.Len()).Msg("Question catalog loaded")

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Engine and Stores ─────────────────────────────────
	engine := game.NewEngine(bank, game.NewSelector(bank, nil), log)
	sessions := store.NewRedisStore(rdb, cfg.SessionTTL)
	tokens := store.NewStateTokens(cfg.StateTokenSecret, cfg.SessionTTL)

	// ─── Start Archive Worker (optional) ──────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	archiveEnabled := cfg.DatabaseURL != ""
	if archiveEnabled {
		pool, err := database.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()

		archiveWorker := worker.NewArchiveWorker(pool, rdb, log)
		go archiveWorker.Start(workerCtx)
	} else {
		log.Info().Msg("DATABASE_URL not set, game archive disabled")
	}

	// ─── Initialize Handlers ──────────────────────────────────────────
	archiveQueue := rdb
	if !archiveEnabled {
		archiveQueue = nil
	}
	handlers := &router.Handlers{
		Game: handler.NewGameHandler(engine, sessions, tokens, archiveQueue, log),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the archive worker and wait for the queue to drain.
	workerCancel()
	if archiveEnabled {
		time.Sleep(2 * time.Second) // Allow the worker to drain.
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
