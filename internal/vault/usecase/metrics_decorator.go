package usecase

import (
	"context"
	"time"

	"github.com/linkseal/linkseal/internal/cipher"
	"github.com/linkseal/linkseal/internal/metrics"
	"github.com/linkseal/linkseal/internal/vault/domain"
)

// vaultUseCaseWithMetrics decorates VaultUseCase with metrics instrumentation.
type vaultUseCaseWithMetrics struct {
	next    VaultUseCase
	metrics metrics.BusinessMetrics
}

// NewVaultUseCaseWithMetrics wraps a VaultUseCase with metrics recording.
func NewVaultUseCaseWithMetrics(useCase VaultUseCase, m metrics.BusinessMetrics) VaultUseCase {
	return &vaultUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// record emits the operation counter and duration with a success/error status.
func (v *vaultUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	v.metrics.RecordOperation(ctx, "vault", operation, status)
	v.metrics.RecordDuration(ctx, "vault", operation, time.Since(start), status)
}

// Create records metrics for secret creation.
func (v *vaultUseCaseWithMetrics) Create(
	ctx context.Context,
	env cipher.Envelope,
	expiryHint string,
) (*CreatedSecret, error) {
	start := time.Now()
	created, err := v.next.Create(ctx, env, expiryHint)
	v.record(ctx, "secret_create", start, err)
	return created, err
}

// ViewMetadata records metrics for metadata lookups.
func (v *vaultUseCaseWithMetrics) ViewMetadata(ctx context.Context, publicID string) (*domain.Metadata, error) {
	start := time.Now()
	metadata, err := v.next.ViewMetadata(ctx, publicID)
	v.record(ctx, "secret_view", start, err)
	return metadata, err
}

// Reveal records metrics for envelope reveals.
func (v *vaultUseCaseWithMetrics) Reveal(
	ctx context.Context,
	publicID, presentedToken string,
) (*cipher.Envelope, error) {
	start := time.Now()
	env, err := v.next.Reveal(ctx, publicID, presentedToken)
	v.record(ctx, "secret_reveal", start, err)
	return env, err
}

// RecordAttempt records metrics for attempt accounting.
func (v *vaultUseCaseWithMetrics) RecordAttempt(ctx context.Context, publicID string) (int, error) {
	start := time.Now()
	remaining, err := v.next.RecordAttempt(ctx, publicID)
	v.record(ctx, "secret_attempt", start, err)
	return remaining, err
}

// Destroy records metrics for secret destruction.
func (v *vaultUseCaseWithMetrics) Destroy(ctx context.Context, publicID, presentedToken string) error {
	start := time.Now()
	err := v.next.Destroy(ctx, publicID, presentedToken)
	v.record(ctx, "secret_destroy", start, err)
	return err
}
