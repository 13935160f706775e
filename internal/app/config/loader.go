package config

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// MustInitConfig initializes configuration from .env file or environment variables.
// If configFile exists, it loads from the file. Otherwise, it automatically binds
// environment variables based on the Config struct's mapstructure tags.
func MustInitConfig(configFile string) Config {
	cfg, err := InitConfig(configFile)
	if err != nil {
		slog.Error("cannot load config", slog.String("error", err.Error()))
		panic(err)
	}

	return cfg
}

// InitConfig is MustInitConfig returning the error instead of panicking.
func InitConfig(configFile string) (Config, error) {
	var (
		vpr = viper.New()
		cfg Config
	)

	setDefaults(vpr)

	vpr.AutomaticEnv()

	vpr.SetConfigFile(configFile)
	vpr.SetConfigType("env")

	if err := vpr.ReadInConfig(); err != nil {
		slog.Warn("config file not found or cannot be read, using environment variables",
			slog.String("file", configFile),
			slog.String("error", err.Error()))
	} else {
		slog.Info("config file loaded successfully", slog.String("file", configFile))
	}

	// Automatically bind all environment variables from Config struct
	bindEnvFromStruct(vpr)

	// Unmarshal configuration into struct
	if err := vpr.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate rejects settings the application cannot start with.
func (c Config) Validate() error {
	switch c.Mode {
	case ModeDemo, ModeServe:
	default:
		return fmt.Errorf("APP_MODE must be %q or %q, got %q", ModeDemo, ModeServe, c.Mode)
	}

	if c.AirportStatus.FixtureDir == "" && c.AirportStatus.BaseURL == "" {
		return fmt.Errorf("AIRPORT_STATUS_BASE_URL is required when no fixture dir is set")
	}

	if c.AirportStatus.FixtureMaxDelay < c.AirportStatus.FixtureMinDelay {
		return fmt.Errorf("AIRPORT_STATUS_FIXTURE_MAX_DELAY must not be below AIRPORT_STATUS_FIXTURE_MIN_DELAY")
	}

	return nil
}

func setDefaults(vpr *viper.Viper) {
	vpr.SetDefault("LOG_LEVEL", "info")
	vpr.SetDefault("APP_MODE", ModeDemo)
	vpr.SetDefault("HTTP_PORT", 8080)
	vpr.SetDefault("HTTP_TIMEOUT", 30*time.Second)
	vpr.SetDefault("AIRPORT_STATUS_BASE_URL", "https://soa.smext.faa.gov")
	vpr.SetDefault("AIRPORT_STATUS_TIMEOUT", time.Duration(0))
	vpr.SetDefault("AIRPORT_STATUS_FIXTURE_MIN_DELAY", 100*time.Millisecond)
	vpr.SetDefault("AIRPORT_STATUS_FIXTURE_MAX_DELAY", 300*time.Millisecond)
	vpr.SetDefault("DEMO_VALID_CODES", []string{"LAX", "SFO", "PDX", "SEA"})
	vpr.SetDefault("DEMO_MIXED_CODES", []string{"LAX", "SF-", "PD-", "SEA"})
	vpr.SetDefault("RATE_LIMIT_RPS", 0)
}

// bindEnvFromStruct automatically binds environment variables based on mapstructure tags using reflection
func bindEnvFromStruct(vpr *viper.Viper) {
	bindEnvFromType(vpr, reflect.TypeOf(Config{}))
}

func bindEnvFromType(vpr *viper.Viper, t reflect.Type) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" || tag == "-" {
			// If it's an embedded struct without a tag, recurse
			if field.Anonymous && field.Type.Kind() == reflect.Struct {
				bindEnvFromType(vpr, field.Type)
			}
			continue
		}

		parts := strings.Split(tag, ",")
		envVar := parts[0]
		isSquash := false
		for _, p := range parts {
			if strings.TrimSpace(p) == "squash" {
				isSquash = true
				break
			}
		}

		if isSquash && field.Type.Kind() == reflect.Struct {
			bindEnvFromType(vpr, field.Type)
			continue
		}

		if envVar != "" {
			_ = vpr.BindEnv(envVar)

			// string lists arrive comma separated, e.g. "LAX, SFO"
			if field.Type.Kind() == reflect.Slice && field.Type.Elem().Kind() == reflect.String {
				if s, ok := vpr.Get(envVar).(string); ok {
					vpr.Set(envVar, splitList(s))
				}
			}
		}
	}
}

func splitList(s string) []string {
	items := make([]string, 0)
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}

	return items
}
