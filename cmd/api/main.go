package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/ttriggs/Connect-Four/internal/config"
	"github.com/ttriggs/Connect-Four/internal/logger"
	"github.com/ttriggs/Connect-Four/internal/service/analytics"
	"github.com/ttriggs/Connect-Four/internal/service/bot"
	"github.com/ttriggs/Connect-Four/internal/service/cleanup"
	"github.com/ttriggs/Connect-Four/internal/service/game"
	transportHttp "github.com/ttriggs/Connect-Four/internal/transport/http"
	"github.com/ttriggs/Connect-Four/internal/transport/websocket"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Info().Msg("no .env file found")
		}
	}

	cfg := config.LoadConfig()
	root := logger.New(cfg.LogLevel, cfg.LogPretty, os.Stderr)
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 1. Analytics (disabled without KAFKA_BROKERS)
	publisher := analytics.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger.For(root, "analytics"))
	defer func() {
		if err := publisher.Close(); err != nil {
			root.Warn().Err(err).Msg("closing analytics publisher")
		}
	}()

	// 2. Sessions and their websocket fan-out
	sessionManager := game.NewSessionManager(game.ManagerOptions{
		Publisher: publisher,
		Seed:      cfg.AISeed,
		Noise:     bot.Noise{Min: cfg.AINoiseMin, Max: cfg.AINoiseMax},
		Log:       logger.For(root, "session"),
	})
	hub := websocket.NewHub(logger.For(root, "ws"))
	sessionManager.SetNotifier(hub)

	// 3. Background workers
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cleanupWorker := cleanup.NewWorker(sessionManager, cfg.SessionTTL, cfg.CleanupInterval, logger.For(root, "cleanup"))
	cleanupDone := cleanupWorker.Start(ctx)

	// 4. Handlers and router
	matchHandler := transportHttp.NewMatchHandler(sessionManager, cfg.DefaultDifficulty, logger.For(root, "http"))
	wsHandler := websocket.NewHandler(hub, sessionManager, cfg.AllowedOrigins, cfg.DefaultDifficulty, logger.For(root, "ws"))
	router := transportHttp.NewRouter(matchHandler, wsHandler.ServeMatch, cfg.AllowedOrigins, logger.For(root, "http"))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		root.Info().Str("port", cfg.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			root.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	root.Info().Msg("server is shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		root.Error().Err(err).Msg("server forced to shutdown")
	}
	<-cleanupDone

	root.Info().Msg("server exited gracefully")
}
