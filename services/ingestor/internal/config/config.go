package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultBrokerURL   = "tcp://localhost:1883"
	defaultTopic       = "meters/+/readings"
	defaultConnTimeout = 30 * time.Second
)

// Config holds runtime configuration for the ingestor service.
type Config struct {
	DatabaseURL    string
	BrokerURL      string
	Topic          string
	ClientID       string
	ConnectTimeout time.Duration
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load(".env")

	cfg := Config{
		BrokerURL:      defaultBrokerURL,
		Topic:          defaultTopic,
		ClientID:       "powerview-ingestor",
		ConnectTimeout: defaultConnTimeout,
	}

	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if cfg.DatabaseURL == "" {
		return cfg, errors.New("DATABASE_URL is required")
	}

	if v := strings.TrimSpace(os.Getenv("MQTT_BROKER")); v != "" {
		cfg.BrokerURL = v
	}
	if v := strings.TrimSpace(os.Getenv("MQTT_TOPIC")); v != "" {
		cfg.Topic = v
	}
	if v := strings.TrimSpace(os.Getenv("MQTT_CLIENT_ID")); v != "" {
		cfg.ClientID = v
	}
	if v := strings.TrimSpace(os.Getenv("MQTT_CONNECT_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return cfg, fmt.Errorf("invalid MQTT_CONNECT_TIMEOUT: %s", v)
		}
		cfg.ConnectTimeout = d
	}

	return cfg, nil
}
