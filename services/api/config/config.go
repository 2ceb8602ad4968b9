package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds environment-driven settings for the REST API.
type Config struct {
	DatabaseURL  string
	Port         int
	BearerToken  string
	TariffPath   string
	Location     *time.Location
	QueryTimeout time.Duration
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Config{
		Port:         8080,
		QueryTimeout: 15 * time.Second,
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return cfg, errors.New("DATABASE_URL is required")
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid PORT: %s", portStr)
		}
	} else if portStr := os.Getenv("API_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid API_PORT: %s", portStr)
		}
	}

	// Meters stamp readings in site wall-clock time; hour-of-day aggregation
	// follows the site timezone, not the server's.
	tz := os.Getenv("METER_TIMEZONE")
	if tz == "" {
		tz = "Asia/Bangkok"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return cfg, fmt.Errorf("invalid METER_TIMEZONE: %s", tz)
	}
	cfg.Location = loc

	if timeoutStr := os.Getenv("API_QUERY_TIMEOUT"); timeoutStr != "" {
		d, err := time.ParseDuration(timeoutStr)
		if err != nil || d <= 0 {
			return cfg, fmt.Errorf("invalid API_QUERY_TIMEOUT: %s", timeoutStr)
		}
		cfg.QueryTimeout = d
	}

	cfg.TariffPath = os.Getenv("TARIFF_FILE")
	cfg.BearerToken = os.Getenv("API_BEARER_TOKEN")

	return cfg, nil
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
