package config

import (
	"log/slog"
	"time"
)

const (
	ModeDemo  = "demo"
	ModeServe = "serve"
)

type LogLeveler string

func (l LogLeveler) Level() slog.Level {
	var level slog.Level

	_ = level.UnmarshalText([]byte(l))

	return level
}

// Config holds the application configuration.
type Config struct {
	LogLevel      LogLeveler    `mapstructure:"LOG_LEVEL"`
	Mode          string        `mapstructure:"APP_MODE"`
	HTTP          HTTP          `mapstructure:",squash"`
	AirportStatus AirportStatus `mapstructure:",squash"`
	Demo          Demo          `mapstructure:",squash"`
	Redis         Redis         `mapstructure:",squash"`
	RateLimitRPS  int           `mapstructure:"RATE_LIMIT_RPS"`
}

type HTTP struct {
	Port    int           `mapstructure:"HTTP_PORT"`
	Timeout time.Duration `mapstructure:"HTTP_TIMEOUT"`
}

type Redis struct {
	Addr     string `mapstructure:"REDIS_ADDR"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

// AirportStatus configures the status source. A non-empty FixtureDir
// replaces the remote API with local JSON files.
type AirportStatus struct {
	BaseURL         string        `mapstructure:"AIRPORT_STATUS_BASE_URL"`
	Timeout         time.Duration `mapstructure:"AIRPORT_STATUS_TIMEOUT"`
	FixtureDir      string        `mapstructure:"AIRPORT_STATUS_FIXTURE_DIR"`
	FixtureMinDelay time.Duration `mapstructure:"AIRPORT_STATUS_FIXTURE_MIN_DELAY"`
	FixtureMaxDelay time.Duration `mapstructure:"AIRPORT_STATUS_FIXTURE_MAX_DELAY"`
}

// Demo holds the code lists, comma separated in the environment.
type Demo struct {
	ValidCodes []string `mapstructure:"DEMO_VALID_CODES"`
	MixedCodes []string `mapstructure:"DEMO_MIXED_CODES"`
}
