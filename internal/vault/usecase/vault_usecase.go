package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/linkseal/linkseal/internal/cipher"
	"github.com/linkseal/linkseal/internal/vault/domain"
	"github.com/linkseal/linkseal/internal/vault/service"
)

// Config holds the vault's lifecycle policy knobs.
type Config struct {
	// AttemptCap is the number of recorded attempts that destroys a record.
	AttemptCap int
	// OneTimeRetention is the retention window for one-time records.
	OneTimeRetention time.Duration
	// OneTimeBurnOnReveal deletes a one-time record after its first
	// successful reveal instead of waiting for an explicit destroy.
	OneTimeBurnOnReveal bool
}

// vaultUseCase implements VaultUseCase against a secret repository and the
// credential service. It never sees plaintext or passwords: the only payload
// it handles is the opaque envelope.
type vaultUseCase struct {
	config      Config
	secretRepo  SecretRepository
	credentials service.CredentialService
	now         func() time.Time
}

// NewVaultUseCase creates a vault use case instance with the provided dependencies.
func NewVaultUseCase(
	config Config,
	secretRepo SecretRepository,
	credentials service.CredentialService,
) VaultUseCase {
	return &vaultUseCase{
		config:      config,
		secretRepo:  secretRepo,
		credentials: credentials,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Create stores the envelope under freshly minted capabilities. Unrecognized
// expiry hints map to 24h so the default never grants a longer lifetime than
// requested. A failed create stores nothing.
func (v *vaultUseCase) Create(
	ctx context.Context,
	env cipher.Envelope,
	expiryHint string,
) (*CreatedSecret, error) {
	publicID, err := v.credentials.MintID()
	if err != nil {
		return nil, err
	}

	plainToken, tokenHash, err := v.credentials.MintDestroyToken()
	if err != nil {
		return nil, err
	}

	mode := domain.ParseExpiryMode(expiryHint)
	now := v.now()

	record := &domain.SecretRecord{
		ID:               uuid.Must(uuid.NewV7()),
		PublicID:         publicID,
		Envelope:         env,
		Mode:             mode,
		CreatedAt:        now,
		ExpiresAt:        now.Add(mode.Duration(v.config.OneTimeRetention)),
		DestroyTokenHash: tokenHash,
	}

	if err := v.secretRepo.Insert(ctx, record); err != nil {
		return nil, err
	}

	return &CreatedSecret{ID: publicID, DestroyToken: plainToken}, nil
}

// ViewMetadata returns policy and expiry for an active record. Read-only with
// respect to the attempt counter; expired records are evicted by the lookup.
func (v *vaultUseCase) ViewMetadata(ctx context.Context, publicID string) (*domain.Metadata, error) {
	record, err := v.secretRepo.GetActive(ctx, publicID, v.now())
	if err != nil {
		return nil, err
	}

	return &domain.Metadata{Mode: record.Mode, ExpiresAt: record.ExpiresAt}, nil
}

// Reveal returns the stored envelope. For one-time records the presented token
// must match the stored digest; TTL records need no token. Revealing is not
// itself destructive — destruction is a separate caller action — unless
// burn-on-reveal is enabled for one-time records.
func (v *vaultUseCase) Reveal(ctx context.Context, publicID, presentedToken string) (*cipher.Envelope, error) {
	record, err := v.secretRepo.GetActive(ctx, publicID, v.now())
	if err != nil {
		return nil, err
	}

	if record.Mode == domain.ExpiryOneTime {
		if !v.credentials.VerifyToken(presentedToken, record.DestroyTokenHash) {
			return nil, domain.ErrInvalidDestroyToken
		}

		if v.config.OneTimeBurnOnReveal {
			// The reveal already passed its token check; a racing destroy
			// winning here is benign.
			_ = v.secretRepo.Delete(ctx, publicID)
		} else {
			_ = v.secretRepo.MarkViewed(ctx, publicID)
		}
	}

	env := record.Envelope
	return &env, nil
}

// RecordAttempt increments the attempt counter regardless of whether the
// caller's decryption succeeded: it is a blunt anti-brute-force measure. At
// the cap the record is destroyed and ErrSecretDestroyed is returned.
func (v *vaultUseCase) RecordAttempt(ctx context.Context, publicID string) (int, error) {
	// Expired records are evicted by the lookup before attempts are counted.
	if _, err := v.secretRepo.GetActive(ctx, publicID, v.now()); err != nil {
		return 0, err
	}

	return v.secretRepo.IncrementAttempts(ctx, publicID, v.config.AttemptCap)
}

// Destroy deletes the record if the presented token matches the stored
// digest. Absence of the id is reported distinctly from a token mismatch so
// callers can treat "already gone" as a benign outcome.
func (v *vaultUseCase) Destroy(ctx context.Context, publicID, presentedToken string) error {
	record, err := v.secretRepo.GetActive(ctx, publicID, v.now())
	if err != nil {
		return err
	}

	if !v.credentials.VerifyToken(presentedToken, record.DestroyTokenHash) {
		return domain.ErrInvalidDestroyToken
	}

	if err := v.secretRepo.Delete(ctx, publicID); err != nil {
		// A concurrent destroy or cap breach got there first; the caller's
		// intent is satisfied either way, but report absence faithfully.
		return err
	}

	return nil
}
