package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration loaded from the environment.
// Pricing constants and the tax table are compile-time data, not
// configuration; only infra concerns live here.
type Config struct {
	AppEnv           string
	Port             string
	DatabaseURL      string
	RedisURL         string
	SubmitRateLimit  string
	LogFormat        string
	LogLevel         string
	MetricsNamespace string
}

// Load reads configuration from environment variables and an optional
// .env file. DATABASE_URL and REDIS_URL are optional: without a
// database orders are kept in memory, without redis the submit rate
// limiter uses an in-memory store.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:           valueOrDefault(k.String("APP_ENV"), "development"),
		Port:             valueOrDefault(k.String("PORT"), "8080"),
		DatabaseURL:      strings.TrimSpace(k.String("DATABASE_URL")),
		RedisURL:         strings.TrimSpace(k.String("REDIS_URL")),
		SubmitRateLimit:  valueOrDefault(k.String("SUBMIT_RATE_LIMIT"), "30-M"),
		LogFormat:        valueOrDefault(k.String("OBS_LOG_FORMAT"), "json"),
		LogLevel:         valueOrDefault(k.String("OBS_LOG_LEVEL"), "info"),
		MetricsNamespace: valueOrDefault(k.String("OBS_METRICS_NAMESPACE"), "postershop"),
	}
	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}
