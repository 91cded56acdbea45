package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Server captures the process-level configuration. An empty DatabaseURL
// selects the in-memory stores, which is fine for development and tests.
type Server struct {
	Addr            string        `env:"BANK_ADDR" envDefault:":8080"`
	DatabaseURL     string        `env:"DATABASE_URL"`
	Locale          string        `env:"BANK_LOCALE" envDefault:"de"`
	LogLevel        string        `env:"BANK_LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"BANK_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
