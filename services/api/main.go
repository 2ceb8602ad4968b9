package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jirapatw/powerview/services/api/config"
	"github.com/jirapatw/powerview/services/api/db"
	httpserver "github.com/jirapatw/powerview/services/api/http"
	"github.com/jirapatw/powerview/services/api/tariff"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	rates, err := tariff.Load(cfg.TariffPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.TariffPath).Msg("tariff load failed")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, err := db.New(ctx, cfg.DatabaseURL, cfg.Location)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}
	defer store.Close()

	srv := httpserver.New(cfg, store, rates)
	log.Info().Str("addr", cfg.ListenAddr()).Msg("REST API listening")

	if err := srv.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server exit")
	}
}
