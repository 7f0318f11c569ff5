package app

import (
	"context"
	"testing"
	"time"

	"github.com/linkseal/linkseal/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		ServerHost:       "localhost",
		ServerPort:       8080,
		LogLevel:         "info",
		AttemptCap:       30,
		OneTimeRetention: 720 * time.Hour,
		MetricsEnabled:   false,
	}
}

// TestNewContainer verifies that a new container can be created with a valid configuration.
func TestNewContainer(t *testing.T) {
	cfg := testConfig()
	container := NewContainer(cfg)

	if container == nil {
		t.Fatal("expected non-nil container")
	}

	if container.Config() != cfg {
		t.Error("container config does not match provided config")
	}
}

// TestContainerLogger verifies that the logger can be retrieved from the container.
func TestContainerLogger(t *testing.T) {
	container := NewContainer(&config.Config{LogLevel: "debug"})
	logger := container.Logger()

	if logger == nil {
		t.Fatal("expected non-nil logger")
	}

	// Calling Logger() again should return the same instance (singleton)
	logger2 := container.Logger()
	if logger != logger2 {
		t.Error("expected same logger instance on multiple calls")
	}
}

// TestContainerSecretRepository verifies the store singleton.
func TestContainerSecretRepository(t *testing.T) {
	container := NewContainer(testConfig())
	defer func() {
		_ = container.Shutdown(context.Background())
	}()

	repo := container.SecretRepository()
	if repo == nil {
		t.Fatal("expected non-nil secret repository")
	}

	if repo != container.SecretRepository() {
		t.Error("expected same repository instance on multiple calls")
	}
}

// TestContainerVaultUseCase verifies the use case wiring without metrics.
func TestContainerVaultUseCase(t *testing.T) {
	container := NewContainer(testConfig())
	defer func() {
		_ = container.Shutdown(context.Background())
	}()

	useCase, err := container.VaultUseCase()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if useCase == nil {
		t.Fatal("expected non-nil vault use case")
	}
}

// TestContainerHTTPServer verifies the full server wiring.
func TestContainerHTTPServer(t *testing.T) {
	container := NewContainer(testConfig())
	defer func() {
		_ = container.Shutdown(context.Background())
	}()

	server, err := container.HTTPServer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if server == nil {
		t.Fatal("expected non-nil http server")
	}
}

// TestContainerMetricsDisabled verifies that disabled metrics yield nil components.
func TestContainerMetricsDisabled(t *testing.T) {
	container := NewContainer(testConfig())
	defer func() {
		_ = container.Shutdown(context.Background())
	}()

	provider, err := container.MetricsProvider()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider != nil {
		t.Error("expected nil metrics provider when metrics are disabled")
	}

	server, err := container.MetricsServer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if server != nil {
		t.Error("expected nil metrics server when metrics are disabled")
	}
}

// TestContainerMetricsEnabled verifies the metrics wiring end to end.
func TestContainerMetricsEnabled(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsEnabled = true
	cfg.MetricsNamespace = "linkseal_test"
	cfg.MetricsPort = 8081

	container := NewContainer(cfg)
	defer func() {
		_ = container.Shutdown(context.Background())
	}()

	provider, err := container.MetricsProvider()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider == nil {
		t.Fatal("expected non-nil metrics provider")
	}

	useCase, err := container.VaultUseCase()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if useCase == nil {
		t.Fatal("expected non-nil vault use case")
	}

	server, err := container.MetricsServer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if server == nil {
		t.Fatal("expected non-nil metrics server")
	}
}

// TestContainerShutdown verifies that shutdown succeeds with partial initialization.
func TestContainerShutdown(t *testing.T) {
	container := NewContainer(testConfig())
	container.SecretRepository()

	if err := container.Shutdown(context.Background()); err != nil {
		t.Errorf("unexpected shutdown error: %v", err)
	}
}
