package config

import (
	"os"
	"time"

	platformstrings "deskwatch/pkg/platform/strings"
)

// Config captures everything the monitor needs from its environment.
type Config struct {
	// Addr is the listen address for the ops HTTP surface (health, metrics).
	Addr string

	// API is the remote kiosk data service the monitor polls.
	API APIConfig

	// RedisURL backs the shared operating-state store (reset marker, duty
	// session). Empty means in-memory, which is only useful for development.
	RedisURL string

	// PostgresDSN backs the local audit trail. Empty means in-memory.
	PostgresDSN string

	// KafkaBrokers enables the chat-channel mirror when non-empty.
	KafkaBrokers []string
	// KafkaTopic is the topic overdue alerts are mirrored to.
	KafkaTopic string

	// FastInterval drives the duty-session presence poll.
	FastInterval time.Duration
	// SlowInterval drives the overdue-scan pipeline.
	SlowInterval time.Duration
}

// APIConfig describes how to reach the kiosk data service.
type APIConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	cfg := Config{
		Addr:         envOr("DESKWATCH_ADDR", ":9090"),
		RedisURL:     os.Getenv("DESKWATCH_REDIS_URL"),
		PostgresDSN:  os.Getenv("DESKWATCH_POSTGRES_DSN"),
		KafkaTopic:   envOr("DESKWATCH_KAFKA_TOPIC", "deskwatch.overdue-alerts"),
		FastInterval: durationOr("DESKWATCH_FAST_INTERVAL", time.Second),
		SlowInterval: durationOr("DESKWATCH_SLOW_INTERVAL", time.Minute),
		API: APIConfig{
			BaseURL: envOr("DESKWATCH_API_BASE_URL", "http://localhost:8080"),
			APIKey:  os.Getenv("DESKWATCH_API_KEY"),
			Timeout: durationOr("DESKWATCH_API_TIMEOUT", 10*time.Second),
		},
	}

	cfg.KafkaBrokers = platformstrings.SplitList(os.Getenv("DESKWATCH_KAFKA_BROKERS"))

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
