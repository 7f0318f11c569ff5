// Package domain defines the core domain models for the ephemeral secret
// vault: stored envelope records, their expiry policies, and lifecycle
// predicates. Records hold only opaque ciphertext envelopes; the vault never
// sees plaintext or passwords.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/linkseal/linkseal/internal/cipher"
)

// ExpiryMode selects the retention policy fixed at secret creation.
type ExpiryMode string

// Supported expiry modes. The values are the wire strings accepted by the API.
const (
	// ExpiryOneTime gates reveal behind the destroy token. The record is
	// retained for a long stop-gap window so an unused link does not linger
	// forever.
	ExpiryOneTime ExpiryMode = "one-time"
	// Expiry24h retains the record for 24 hours.
	Expiry24h ExpiryMode = "24h"
	// Expiry7d retains the record for 7 days.
	Expiry7d ExpiryMode = "7d"
)

// ParseExpiryMode maps a client-provided expiry hint to a mode. Unrecognized
// or absent hints fall back to 24h: the default must never grant a longer
// lifetime than the caller asked for.
func ParseExpiryMode(hint string) ExpiryMode {
	switch ExpiryMode(hint) {
	case ExpiryOneTime, Expiry24h, Expiry7d:
		return ExpiryMode(hint)
	default:
		return Expiry24h
	}
}

// Duration returns the retention window for the mode. One-time secrets use the
// configured retention window since their intended end of life is an explicit
// destroy, not the clock.
func (m ExpiryMode) Duration(oneTimeRetention time.Duration) time.Duration {
	switch m {
	case ExpiryOneTime:
		return oneTimeRetention
	case Expiry7d:
		return 7 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

// SecretRecord is the server-owned state for one stored envelope.
type SecretRecord struct {
	// ID is the internal surrogate identifier for the record.
	ID uuid.UUID
	// PublicID is the unguessable capability string the record is addressed
	// by. Knowledge of it is required for any access.
	PublicID string
	// Envelope is the stored ciphertext triple, opaque to the vault.
	Envelope cipher.Envelope
	// Mode is the expiry policy fixed at creation.
	Mode ExpiryMode
	// CreatedAt is the UTC timestamp when the record was created.
	CreatedAt time.Time
	// ExpiresAt is CreatedAt plus the mode's retention window. The record is
	// invisible from this instant and evicted on next access.
	ExpiresAt time.Time
	// DestroyTokenHash is the SHA-256 digest of the destroy token. The plain
	// token is returned once at creation and never stored.
	DestroyTokenHash string
	// Attempts counts recorded decryption attempts. It only increases;
	// reaching the cap destroys the record.
	Attempts int
	// Viewed marks that a one-time record was successfully revealed at least
	// once. Enforcement of one-time semantics rests on token possession, not
	// on this flag, unless burn-on-reveal is enabled.
	Viewed bool
}

// Expired reports whether the record is past its retention window at the
// given instant.
func (r *SecretRecord) Expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

// Metadata is the subset of record state a recipient may inspect before
// attempting decryption.
type Metadata struct {
	// Mode is the record's expiry policy.
	Mode ExpiryMode
	// ExpiresAt is when the record becomes inaccessible.
	ExpiresAt time.Time
}
