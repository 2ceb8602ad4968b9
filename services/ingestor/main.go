package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jirapatw/powerview-ingestor/internal/config"
	"github.com/jirapatw/powerview-ingestor/internal/db"
	"github.com/jirapatw/powerview-ingestor/internal/models"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("ingestor failed")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.BrokerURL).
		SetClientID(cfg.ClientID).
		SetConnectTimeout(cfg.ConnectTimeout)
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	defer client.Disconnect(250)

	handler := func(_ mqtt.Client, msg mqtt.Message) {
		row, err := models.Decode(msg.Topic(), msg.Payload(), time.Now())
		if err != nil {
			log.Error().Err(err).Str("topic", msg.Topic()).Msg("frame rejected")
			return
		}

		insertCtx, insertCancel := context.WithTimeout(ctx, 10*time.Second)
		defer insertCancel()
		if err := db.InsertReadings(insertCtx, pool, []models.ReadingRow{row}); err != nil {
			log.Error().Err(err).Int("slave", row.SlaveID).Msg("insert failed")
			return
		}
		log.Debug().Int("slave", row.SlaveID).Time("ts", row.TS).Msg("reading stored")
	}

	if token := client.Subscribe(cfg.Topic, 0, handler); token.Wait() && token.Error() != nil {
		return token.Error()
	}

	log.Info().Str("broker", cfg.BrokerURL).Str("topic", cfg.Topic).Msg("ingestor running")
	<-ctx.Done()
	return nil
}
