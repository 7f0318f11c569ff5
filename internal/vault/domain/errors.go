// Package domain defines core domain models and errors for the secret vault.
package domain

import (
	"github.com/linkseal/linkseal/internal/errors"
)

// Vault-specific error definitions.
var (
	// ErrSecretNotFound indicates no active record under the id: it never
	// existed, was destroyed, or expired and was already purged. Those causes
	// are deliberately indistinguishable to callers.
	ErrSecretNotFound = errors.Wrap(errors.ErrNotFound, "secret not found")

	// ErrSecretExpired indicates the record was present but past its expiry
	// at access time. Returned only by the access that evicts the record;
	// afterwards the id reports ErrSecretNotFound like any other absence.
	ErrSecretExpired = errors.Wrap(errors.ErrExpired, "secret expired")

	// ErrInvalidDestroyToken indicates a missing or mismatched destroy token
	// on a reveal or destroy. The record is left untouched.
	ErrInvalidDestroyToken = errors.Wrap(errors.ErrForbidden, "invalid destroy token")

	// ErrSecretDestroyed indicates the record was just deleted because the
	// attempt cap was reached.
	ErrSecretDestroyed = errors.Wrap(errors.ErrGone, "secret destroyed after excessive attempts")
)
