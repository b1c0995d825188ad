package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"tingnect-api/internal/assistant"
	"tingnect-api/internal/config"
	"tingnect-api/internal/logger"
	"tingnect-api/internal/ratelimit"
	"tingnect-api/internal/server"
	"tingnect-api/internal/sheets"
	"tingnect-api/internal/telegram"
)

func main() {
	_ = godotenv.Load()
	logger.Init(logger.FromEnv())
	log := logger.Get()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	deps := server.Deps{
		Limiter:  ratelimit.New(cfg.RateLimitWindow, cfg.RateLimitMax),
		Notifier: telegram.New(cfg),
	}

	if cfg.SheetsConfigured() {
		store, err := sheets.New(context.Background(), cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("sheets")
		}
		deps.Store = store
	} else {
		log.Warn().Msg("spreadsheet credentials not configured, registrations will not persist")
	}

	provider, err := assistant.NewProvider(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("assistant")
	}
	deps.Assistant = provider

	httpSrv := server.New(cfg, deps)

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("http listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info().Msg("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(ctx)

	log.Info().Msg("bye")
}
