// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// MinPasswordLength is the minimum encryption password length.
	// Enforced on encryption only so envelopes created under a stricter
	// historical policy remain decryptable.
	MinPasswordLength int

	// AttemptCap is the number of decryption attempts allowed against a secret
	// before it is destroyed.
	AttemptCap int

	// OneTimeRetention is how long a one-time secret is retained before expiry
	// if never destroyed by its holder.
	OneTimeRetention time.Duration

	// OneTimeBurnOnReveal deletes a one-time secret on its first successful
	// reveal instead of waiting for an explicit destroy.
	OneTimeBurnOnReveal bool

	// SweepInterval is how often the store evicts expired records in the
	// background. Zero disables the sweep; expiry is still enforced lazily.
	SweepInterval time.Duration

	// RateLimitEnabled indicates whether per-IP rate limiting on secret
	// creation is enabled.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the number of create requests allowed per second per IP.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size for create rate limiting.
	RateLimitBurst int

	// CORSEnabled indicates whether the permissive cross-origin policy is applied.
	CORSEnabled bool

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost: env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort: env.GetInt("SERVER_PORT", 8080),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Cipher policy
		MinPasswordLength: env.GetInt("MIN_PASSWORD_LENGTH", 8),

		// Vault lifecycle
		AttemptCap:          env.GetInt("ATTEMPT_CAP", 30),
		OneTimeRetention:    env.GetDuration("ONE_TIME_RETENTION_HOURS", 720, time.Hour),
		OneTimeBurnOnReveal: env.GetBool("ONE_TIME_BURN_ON_REVEAL", false),
		SweepInterval:       env.GetDuration("SWEEP_INTERVAL_SECONDS", 0, time.Second),

		// Rate Limiting for secret creation (IP-based, unauthenticated)
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 5.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 10),

		// CORS
		CORSEnabled: env.GetBool("CORS_ENABLED", true),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "linkseal"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	default:
		return "release"
	}
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	// Search for .env file recursively up the directory tree
	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			// .env file found, load it
			_ = godotenv.Load(envPath)
			return
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}
}
