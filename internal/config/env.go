package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ScoreServerConfig configures the score-server command.
type ScoreServerConfig struct {
	Addr            string        `env:"SCORE_ADDR" envDefault:":8888"`
	DBPath          string        `env:"SCORE_DB" envDefault:"~/.jigsaw/ledger.db"`
	App             string        `env:"SCORE_APP" envDefault:"irys-jigsaw"`
	AcceptZero      bool          `env:"SCORE_ACCEPT_ZERO" envDefault:"false"`
	MaxBodyBytes    int64         `env:"SCORE_MAX_BODY" envDefault:"65536"`
	ReadTimeout     time.Duration `env:"SCORE_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"SCORE_WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SCORE_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// ClientConfig configures score submission from the game.
type ClientConfig struct {
	URL     string        `env:"JIGSAW_SCORE_URL"`
	Timeout time.Duration `env:"JIGSAW_SCORE_TIMEOUT" envDefault:"5s"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadScoreServer reads ScoreServerConfig from the environment.
func LoadScoreServer() (ScoreServerConfig, error) {
	var cfg ScoreServerConfig
	err := ParseEnv(&cfg)
	return cfg, err
}

// LoadClient reads ClientConfig from the environment.
func LoadClient() (ClientConfig, error) {
	var cfg ClientConfig
	err := ParseEnv(&cfg)
	return cfg, err
}
