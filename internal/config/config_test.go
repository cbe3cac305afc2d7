package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "http://localhost:4566", cfg.AWSEndpoint)
	assert.Equal(t, "us-east-1", cfg.AWSRegion)
	assert.Equal(t, "test", cfg.AWSAccessKeyID)
	assert.Equal(t, "test", cfg.AWSSecretAccessKey)
	assert.Equal(t, int32(10), cfg.PollMaxMessages)
	assert.Equal(t, int32(10), cfg.PollWaitSeconds)
	assert.Equal(t, int32(1), cfg.PollVisibilityTimeout)
	assert.Equal(t, 100*time.Millisecond, cfg.PollIdleDelay)
	assert.Equal(t, 5*time.Second, cfg.PollErrorBackoff)
	assert.Equal(t, 50, cfg.MaxClientsPerQueue)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("AWS_ENDPOINT", "http://localstack:4566")
	t.Setenv("AWS_REGION", "eu-central-1")
	t.Setenv("POLL_MAX_MESSAGES", "5")
	t.Setenv("POLL_ERROR_BACKOFF", "500ms")
	t.Setenv("MAX_CLIENTS_PER_QUEUE", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "http://localstack:4566", cfg.AWSEndpoint)
	assert.Equal(t, "eu-central-1", cfg.AWSRegion)
	assert.Equal(t, int32(5), cfg.PollMaxMessages)
	assert.Equal(t, 500*time.Millisecond, cfg.PollErrorBackoff)
	assert.Equal(t, 10, cfg.MaxClientsPerQueue)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric max messages", "POLL_MAX_MESSAGES", "many"},
		{"max messages above SQS limit", "POLL_MAX_MESSAGES", "11"},
		{"max messages below one", "POLL_MAX_MESSAGES", "0"},
		{"wait seconds above SQS limit", "POLL_WAIT_SECONDS", "30"},
		{"malformed backoff duration", "POLL_ERROR_BACKOFF", "soon"},
		{"non-numeric client limit", "MAX_CLIENTS_PER_QUEUE", "lots"},
		{"zero client limit", "MAX_CLIENTS_PER_QUEUE", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
