// Package config loads service settings from environment variables.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	DBPath          string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Inference sidecar configuration. ModelEnabled defaults to "a URL is set".
	ModelURL     string
	ModelEnabled bool
	ModelTimeout time.Duration

	// Optional notification event stream. Enabled when brokers are set.
	KafkaBrokers     []string
	KafkaNotifyTopic string
	KafkaEnabled     bool

	// Default page size for notification listings.
	NotificationLimit int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	modelTimeout, err := parseDuration("MODEL_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	notificationLimit, err := parsePositiveInt("NOTIFICATION_DEFAULT_LIMIT", 50)
	if err != nil {
		return nil, err
	}

	modelURL := os.Getenv("MODEL_URL")
	modelEnabled := modelURL != ""
	if v := os.Getenv("MODEL_ENABLED"); v != "" {
		modelEnabled = v == "true"
	}

	brokers := parseBrokers(os.Getenv("KAFKA_BROKERS"))

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		DBPath:          envOrDefault("DB_PATH", "data/waterhealth.db"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		ModelURL:     modelURL,
		ModelEnabled: modelEnabled,
		ModelTimeout: modelTimeout,

		KafkaBrokers:     brokers,
		KafkaNotifyTopic: envOrDefault("KAFKA_NOTIFY_TOPIC", "water-health-notifications"),
		KafkaEnabled:     len(brokers) > 0,

		NotificationLimit: notificationLimit,
	}

	if cfg.DBPath == "" {
		return nil, errors.New("DB_PATH is required")
	}
	if cfg.ModelEnabled && cfg.ModelURL == "" {
		return nil, errors.New("MODEL_ENABLED is true but MODEL_URL is not set")
	}
	if cfg.KafkaEnabled && cfg.KafkaNotifyTopic == "" {
		return nil, errors.New("KAFKA_BROKERS is set but KAFKA_NOTIFY_TOPIC is empty")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	s := envOrDefault(key, fallback)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

func parsePositiveInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return n, nil
}

func parseBrokers(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}
