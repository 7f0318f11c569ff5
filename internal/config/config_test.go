package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "0.0.0.0", cfg.ServerHost)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8, cfg.MinPasswordLength)
	assert.Equal(t, 30, cfg.AttemptCap)
	assert.Equal(t, 720*time.Hour, cfg.OneTimeRetention)
	assert.False(t, cfg.OneTimeBurnOnReveal)
	assert.Equal(t, time.Duration(0), cfg.SweepInterval)
	assert.True(t, cfg.CORSEnabled)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, "linkseal", cfg.MetricsNamespace)
	assert.Equal(t, 8081, cfg.MetricsPort)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ATTEMPT_CAP", "5")
	t.Setenv("MIN_PASSWORD_LENGTH", "12")
	t.Setenv("ONE_TIME_BURN_ON_REVEAL", "true")
	t.Setenv("SWEEP_INTERVAL_SECONDS", "60")

	cfg := Load()

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, 5, cfg.AttemptCap)
	assert.Equal(t, 12, cfg.MinPasswordLength)
	assert.True(t, cfg.OneTimeBurnOnReveal)
	assert.Equal(t, time.Minute, cfg.SweepInterval)
}

func TestGetGinMode(t *testing.T) {
	tests := []struct {
		logLevel string
		want     string
	}{
		{"debug", "debug"},
		{"info", "release"},
		{"warn", "release"},
		{"error", "release"},
		{"unknown", "release"},
	}

	for _, tt := range tests {
		t.Run(tt.logLevel, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.logLevel}
			assert.Equal(t, tt.want, cfg.GetGinMode())
		})
	}
}
