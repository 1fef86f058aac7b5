package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	DataDir  string     `env:"DATA_DIR" envDefault:"data"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir   string     `env:"SPA_DIR" envDefault:"../web/dist"`

	// EventTimezone anchors the schedule's HH:MM times for the
	// auto-advance check.
	EventTimezone string `env:"EVENT_TIMEZONE" envDefault:"Europe/Berlin"`

	// ExternalStateAPI, when set, receives full state snapshots after
	// every change and serves them back on sync-from-external.
	ExternalStateAPI string `env:"EXTERNAL_STATE_API"`

	// StartupWebhookURL, when set, gets a one-shot announcement on
	// boot.
	StartupWebhookURL string `env:"STARTUP_WEBHOOK_URL"`

	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"*"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
