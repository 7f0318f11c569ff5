// Package usecase implements business logic orchestration for the ephemeral
// secret vault: the lifecycle state machine that stores envelopes under
// capability identifiers and enforces expiry, one-time gating, attempt
// limiting, and authorized destruction.
package usecase

import (
	"context"
	"time"

	"github.com/linkseal/linkseal/internal/cipher"
	"github.com/linkseal/linkseal/internal/vault/domain"
)

// SecretRepository defines the interface for secret record storage. GetActive
// performs lazy eviction of expired records; IncrementAttempts is atomic with
// respect to the cap.
type SecretRepository interface {
	Insert(ctx context.Context, record *domain.SecretRecord) error
	GetActive(ctx context.Context, publicID string, now time.Time) (*domain.SecretRecord, error)
	Delete(ctx context.Context, publicID string) error
	IncrementAttempts(ctx context.Context, publicID string, cap int) (int, error)
	MarkViewed(ctx context.Context, publicID string) error
	DeleteExpired(ctx context.Context, now time.Time) int
}

// CreatedSecret is the creation result: the two capabilities the caller needs
// to build the share link. This is the only moment the destroy token is ever
// disclosed.
type CreatedSecret struct {
	ID           string
	DestroyToken string
}

// VaultUseCase defines the vault's five lifecycle operations.
type VaultUseCase interface {
	// Create stores an envelope under a freshly minted id with the policy
	// mapped from the expiry hint.
	Create(ctx context.Context, env cipher.Envelope, expiryHint string) (*CreatedSecret, error)

	// ViewMetadata returns policy and expiry for an active record without
	// touching its attempt counter.
	ViewMetadata(ctx context.Context, publicID string) (*domain.Metadata, error)

	// Reveal returns the stored envelope. One-time records additionally
	// require the destroy token.
	Reveal(ctx context.Context, publicID, presentedToken string) (*cipher.Envelope, error)

	// RecordAttempt increments the attempt counter and returns the remaining
	// budget, destroying the record when the cap is reached.
	RecordAttempt(ctx context.Context, publicID string) (int, error)

	// Destroy deletes the record if the presented token matches.
	Destroy(ctx context.Context, publicID, presentedToken string) error
}
