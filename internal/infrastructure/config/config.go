package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
)

// Rate limit scopes
const (
	ScopeIP     = "ip"
	ScopeGlobal = "global"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	FunFact   FunFactConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8000"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"15s"`
	Compression     bool          `envconfig:"SERVER_COMPRESSION" default:"true"`
}

// FunFactConfig holds settings for the external trivia lookup.
type FunFactConfig struct {
	Enabled         bool          `envconfig:"FUNFACT_ENABLED" default:"true"`
	URL             string        `envconfig:"FUNFACT_URL" default:"http://numbersapi.com/{number}/math?json"`
	Timeout         time.Duration `envconfig:"FUNFACT_TIMEOUT" default:"3s"`
	Retries         int           `envconfig:"FUNFACT_RETRIES" default:"0"`
	AllowNegative   bool          `envconfig:"FUNFACT_ALLOW_NEGATIVE" default:"false"`
	BreakerFailures uint32        `envconfig:"FUNFACT_BREAKER_FAILURES" default:"5"`
	BreakerCooldown time.Duration `envconfig:"FUNFACT_BREAKER_COOLDOWN" default:"30s"`
	// PropagateTrace forwards trace headers to the trivia service. Leave off
	// for third-party hosts.
	PropagateTrace bool `envconfig:"FUNFACT_PROPAGATE_TRACE" default:"false"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	// Scope is "ip" for one bucket per client or "global" for a shared one.
	Scope string `envconfig:"RATE_LIMIT_SCOPE" default:"ip"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot express as tags.
func (c *Config) Validate() error {
	if c.FunFact.Timeout <= 0 {
		return fmt.Errorf("FUNFACT_TIMEOUT must be positive, got %s", c.FunFact.Timeout)
	}
	if c.FunFact.Retries < 0 {
		return fmt.Errorf("FUNFACT_RETRIES cannot be negative, got %d", c.FunFact.Retries)
	}
	if c.RateLimit.Enabled && c.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be positive when rate limiting is enabled")
	}
	if c.RateLimit.Scope != ScopeIP && c.RateLimit.Scope != ScopeGlobal {
		return fmt.Errorf("RATE_LIMIT_SCOPE must be %q or %q, got %q", ScopeIP, ScopeGlobal, c.RateLimit.Scope)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8000",
			Host:            "0.0.0.0",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			Compression:     true,
		},
		FunFact: FunFactConfig{
			Enabled:         true,
			URL:             "http://numbersapi.com/{number}/math?json",
			Timeout:         3 * time.Second,
			Retries:         0,
			AllowNegative:   false,
			BreakerFailures: 5,
			BreakerCooldown: 30 * time.Second,
			PropagateTrace:  false,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
			Scope:             ScopeIP,
		},
	}
}
