package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv    string
	Port      string
	LogLevel  string
	LogFormat string

	// Emulator connection
	AWSEndpoint        string
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string

	// Queue polling
	PollMaxMessages       int32
	PollWaitSeconds       int32
	PollVisibilityTimeout int32
	PollIdleDelay         time.Duration
	PollErrorBackoff      time.Duration

	// Streaming
	MaxClientsPerQueue int
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		Port:               getEnv("PORT", "8000"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
		AWSEndpoint:        getEnv("AWS_ENDPOINT", "http://localhost:4566"),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", "test"),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", "test"),
		MaxClientsPerQueue: 50,
	}

	var err error
	if cfg.PollMaxMessages, err = getEnvInt32("POLL_MAX_MESSAGES", 10); err != nil {
		return nil, err
	}
	if cfg.PollWaitSeconds, err = getEnvInt32("POLL_WAIT_SECONDS", 10); err != nil {
		return nil, err
	}
	if cfg.PollVisibilityTimeout, err = getEnvInt32("POLL_VISIBILITY_TIMEOUT", 1); err != nil {
		return nil, err
	}
	if cfg.PollIdleDelay, err = getEnvDuration("POLL_IDLE_DELAY", 100*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.PollErrorBackoff, err = getEnvDuration("POLL_ERROR_BACKOFF", 5*time.Second); err != nil {
		return nil, err
	}
	if v := os.Getenv("MAX_CLIENTS_PER_QUEUE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("MAX_CLIENTS_PER_QUEUE must be an integer: %w", err)
		}
		cfg.MaxClientsPerQueue = n
	}

	if cfg.AWSEndpoint == "" {
		return nil, fmt.Errorf("AWS_ENDPOINT is required")
	}
	if cfg.PollMaxMessages < 1 || cfg.PollMaxMessages > 10 {
		return nil, fmt.Errorf("POLL_MAX_MESSAGES must be between 1 and 10, got %d", cfg.PollMaxMessages)
	}
	if cfg.PollWaitSeconds < 0 || cfg.PollWaitSeconds > 20 {
		return nil, fmt.Errorf("POLL_WAIT_SECONDS must be between 0 and 20, got %d", cfg.PollWaitSeconds)
	}
	if cfg.MaxClientsPerQueue < 1 {
		return nil, fmt.Errorf("MAX_CLIENTS_PER_QUEUE must be positive, got %d", cfg.MaxClientsPerQueue)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt32(key string, defaultValue int32) (int32, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return int32(n), nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration (e.g. 500ms, 5s): %w", key, err)
	}
	return d, nil
}
