// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Game    GameConfig    `toml:"game"`
	History HistoryConfig `toml:"history"`
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
}

// GameConfig maps the default settings of new games.
type GameConfig struct {
	TimerEnabled        *bool `toml:"timer-enabled"`
	TimerSeconds        *int  `toml:"timer-seconds"`
	SoundEnabled        *bool `toml:"sound-enabled"`
	ShowAnswers         *bool `toml:"show-answers"`
	AllowNegativeScores *bool `toml:"allow-negative-scores"`
}

type HistoryConfig struct {
	Capacity *int `toml:"capacity"`
}

// StorageConfig selects and locates the game store.
type StorageConfig struct {
	Backend     *string `toml:"backend"`
	Path        *string `toml:"path"`
	RedisAddr   *string `toml:"redis-addr"`
	RedisPrefix *string `toml:"redis-prefix"`
}

type LogConfig struct {
	Level *string `toml:"level"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
