package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Prefix is prepended to every environment variable name.
const Prefix = "PREORDER_"

// Config is the process configuration read from the environment at startup.
type Config struct {
	Addr          string `env:"ADDR" envDefault:":8080"`
	Env           string `env:"ENV" envDefault:"development"`
	DBPath        string `env:"DB_PATH" envDefault:"preorder.db"`
	CSRFKey       string `env:"CSRF_KEY"`
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
	ResendKey     string `env:"RESEND_KEY"`
	ResendFrom    string `env:"RESEND_FROM" envDefault:"Book Preorders <hello@example.com>"`
	ReplyTo       string `env:"REPLY_TO"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	SlowQueryMs   int    `env:"SLOW_QUERY_MS" envDefault:"50"`
	SlowRequestMs int    `env:"SLOW_REQUEST_MS" envDefault:"500"`
	RatePerSecond int    `env:"RATE_LIMIT_PER_SECOND" envDefault:"5"`
	StaticDir     string `env:"STATIC_DIR" envDefault:"static"`

	// TrustedOrigins are extra host[:port] values accepted on cross-origin form posts.
	TrustedOrigins []string `env:"TRUSTED_ORIGINS" envSeparator:","`
}

// Load parses PREORDER_* variables from the process environment.
// PRE: none
// POST: Returns a validated Config or an error naming the bad variable
func Load() (Config, error) {
	return LoadFrom(nil)
}

// LoadFrom parses configuration from vars instead of the process
// environment when vars is non-nil.
func LoadFrom(vars map[string]string) (Config, error) {
	var cfg Config
	opts := env.Options{Prefix: Prefix}
	if vars != nil {
		opts.Environment = vars
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// IsProduction reports whether the service runs with production settings.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// SlogLevel maps LogLevel to a slog level; unknown values mean info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// CSRFKeyBytes returns the 32-byte CSRF key. Outside production an empty key
// yields a random one, so tokens do not survive a restart.
func (c Config) CSRFKeyBytes() ([]byte, error) {
	if c.CSRFKey == "" {
		if c.IsProduction() {
			return nil, errors.New(Prefix + "CSRF_KEY is required in production")
		}
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, err
		}
		return key, nil
	}
	key, err := hex.DecodeString(c.CSRFKey)
	if err != nil || len(key) != 32 {
		return nil, errors.New(Prefix + "CSRF_KEY must be 64 hex characters")
	}
	return key, nil
}

func (c Config) validate() error {
	if c.RatePerSecond <= 0 {
		return fmt.Errorf("%sRATE_LIMIT_PER_SECOND must be positive", Prefix)
	}
	if (c.AdminEmail == "") != (c.AdminPassword == "") {
		return fmt.Errorf("%sADMIN_EMAIL and %sADMIN_PASSWORD must be set together", Prefix, Prefix)
	}
	if c.IsProduction() && c.CSRFKey == "" {
		return fmt.Errorf("%sCSRF_KEY is required in production", Prefix)
	}
	return nil
}
