package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvConfig holds the environment overrides. Empty values are ignored.
type EnvConfig struct {
	DBPath      string `env:"QUIZBOARD_DB_PATH"`
	Storage     string `env:"QUIZBOARD_STORAGE"`
	RedisAddr   string `env:"QUIZBOARD_REDIS_ADDR"`
	RedisPrefix string `env:"QUIZBOARD_REDIS_PREFIX"`
	LogLevel    string `env:"QUIZBOARD_LOG_LEVEL"`
}

// LoadEnv reads the QUIZBOARD_* variables.
func LoadEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return EnvConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
