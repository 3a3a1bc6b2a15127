package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/verte-zerg/quizboard/internal/game"
	"github.com/verte-zerg/quizboard/internal/history"
	"github.com/verte-zerg/quizboard/internal/model"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"

	DefaultRedisAddr   = "localhost:6379"
	DefaultRedisPrefix = "quizboard:"
)

// Settings is the effective configuration after file and environment are merged.
type Settings struct {
	Game            model.Settings
	HistoryCapacity int
	Backend         string
	DBPath          string
	RedisAddr       string
	RedisPrefix     string
	LogLevel        slog.Level
}

// Load reads the config file at path and applies environment overrides.
// Overrides run after the environment is read, so CLI flags win over both.
func Load(path string, overrides ...func(*EnvConfig)) (Settings, error) {
	file, err := LoadConfig(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to load config: %w", err)
	}
	e, err := LoadEnv()
	if err != nil {
		return Settings{}, err
	}
	for _, override := range overrides {
		override(&e)
	}
	return Resolve(file, e)
}

// Resolve merges defaults, the file and the environment, in that order.
func Resolve(file FileConfig, e EnvConfig) (Settings, error) {
	s := Settings{
		Game:            game.DefaultSettings(),
		HistoryCapacity: history.DefaultCapacity,
		Backend:         BackendSQLite,
		DBPath:          DefaultDBPath(),
		RedisAddr:       DefaultRedisAddr,
		RedisPrefix:     DefaultRedisPrefix,
		LogLevel:        slog.LevelWarn,
	}

	g := file.Game
	setBool(&s.Game.TimerEnabled, g.TimerEnabled)
	setInt(&s.Game.TimerSeconds, g.TimerSeconds)
	setBool(&s.Game.SoundEnabled, g.SoundEnabled)
	setBool(&s.Game.ShowAnswers, g.ShowAnswers)
	setBool(&s.Game.AllowNegativeScores, g.AllowNegativeScores)
	setInt(&s.HistoryCapacity, file.History.Capacity)
	setString(&s.Backend, file.Storage.Backend)
	setString(&s.DBPath, file.Storage.Path)
	setString(&s.RedisAddr, file.Storage.RedisAddr)
	setString(&s.RedisPrefix, file.Storage.RedisPrefix)

	level := "warn"
	setString(&level, file.Log.Level)

	setString(&s.Backend, nonEmpty(e.Storage))
	setString(&s.DBPath, nonEmpty(e.DBPath))
	setString(&s.RedisAddr, nonEmpty(e.RedisAddr))
	setString(&s.RedisPrefix, nonEmpty(e.RedisPrefix))
	setString(&level, nonEmpty(e.LogLevel))

	if err := s.LogLevel.UnmarshalText([]byte(level)); err != nil {
		return Settings{}, fmt.Errorf("invalid log level %q", level)
	}
	s.Backend = strings.ToLower(strings.TrimSpace(s.Backend))
	if s.Backend != BackendSQLite && s.Backend != BackendRedis {
		return Settings{}, fmt.Errorf("unknown storage backend %q (want %s or %s)", s.Backend, BackendSQLite, BackendRedis)
	}
	if s.Game.TimerSeconds <= 0 {
		return Settings{}, fmt.Errorf("timer-seconds must be > 0")
	}
	if s.HistoryCapacity <= 0 {
		return Settings{}, fmt.Errorf("history capacity must be > 0")
	}
	return s, nil
}

func nonEmpty(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func setString(target, value *string) {
	if value != nil {
		*target = *value
	}
}

func setInt(target, value *int) {
	if value != nil {
		*target = *value
	}
}

func setBool(target, value *bool) {
	if value != nil {
		*target = *value
	}
}
