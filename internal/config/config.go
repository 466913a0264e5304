package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

type Config struct {
	API     APIConfig     `envPrefix:"API_"`
	Server  ServerConfig  `envPrefix:"SERVER_"`
	Session SessionConfig `envPrefix:"SESSION_"`
	Query   QueryConfig   `envPrefix:"QUERY_"`
	Log     LogConfig     `envPrefix:"LOG_"`
}

type APIConfig struct {
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8000"`
	// Zero disables the per-request timeout.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"0s"`
}

type ServerConfig struct {
	Addr         string `env:"ADDR" envDefault:":3000"`
	CookieName   string `env:"COOKIE_NAME" envDefault:"tab"`
	CookieSecure bool   `env:"COOKIE_SECURE" envDefault:"false"`
}

type SessionConfig struct {
	Backend       string        `env:"BACKEND" envDefault:"memory"`
	RedisURL      string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	TabTTL        time.Duration `env:"TAB_TTL" envDefault:"12h"`
	EncryptionKey string        `env:"ENCRYPTION_KEY"`
}

type QueryConfig struct {
	StaleTime time.Duration `env:"STALE_TIME" envDefault:"30s"`
}

type LogConfig struct {
	Level       string `env:"LEVEL" envDefault:"info"`
	Development bool   `env:"DEVELOPMENT" envDefault:"false"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("load config: %v", err))
	}
	return cfg
}

func (c *Config) validate() error {
	switch c.Session.Backend {
	case SessionBackendMemory, SessionBackendRedis:
	default:
		return fmt.Errorf("unknown session backend %q", c.Session.Backend)
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("api base url is required")
	}
	if c.Session.TabTTL <= 0 {
		return fmt.Errorf("session tab ttl must be positive")
	}
	return nil
}
