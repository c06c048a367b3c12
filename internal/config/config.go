package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port                string        `envconfig:"PORT" default:"8080"`
	LogLevelName        string        `envconfig:"LOG_LEVEL" default:"info"`
	HTTPTimeoutSeconds  int           `envconfig:"HTTP_TIMEOUT_SECONDS" default:"15"`
	MaxUploadMB         int64         `envconfig:"MAX_UPLOAD_MB" default:"50"`
	FetchRetries        int           `envconfig:"FETCH_RETRIES" default:"3"`
	FetchBackoff        time.Duration `envconfig:"FETCH_BACKOFF" default:"200ms"`
	FetchAllowPrivate   bool          `envconfig:"FETCH_ALLOW_PRIVATE" default:"false"`
	RateLimitRPS        float64       `envconfig:"RATE_LIMIT_RPS" default:"5"`
	RateLimitBurst      int           `envconfig:"RATE_LIMIT_BURST" default:"10"`
	DefaultWindowMonths int           `envconfig:"DEFAULT_WINDOW_MONTHS" default:"3"`
	DecodeWorkers       int           `envconfig:"DECODE_WORKERS" default:"4"`
	SinkURL             string        `envconfig:"SINK_URL"`
	SinkSecret          string        `envconfig:"SINK_SECRET"`
}

// FromEnv loads an optional .env file and then reads the environment.
func FromEnv() (Config, error) {
	_ = godotenv.Load()

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, fmt.Errorf("load config from env: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	switch c.DefaultWindowMonths {
	case 3, 6, 12:
	default:
		return fmt.Errorf("DEFAULT_WINDOW_MONTHS must be 3, 6 or 12, got %d", c.DefaultWindowMonths)
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", c.MaxUploadMB)
	}
	return nil
}

func (c Config) HTTPTimeout() time.Duration { return time.Duration(c.HTTPTimeoutSeconds) * time.Second }

func (c Config) MaxUploadBytes() int64 { return c.MaxUploadMB << 20 }

func (c Config) LogLevel() slog.Level {
	switch strings.ToLower(c.LogLevelName) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
