// Package service provides the capability credential service for the vault:
// minting the public id and destroy token pair and verifying presented tokens.
package service

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"

	apperrors "github.com/linkseal/linkseal/internal/errors"
)

// credentialByteLength is the raw entropy per credential. 16 bytes gives 128
// bits, enough that guessing an id or token is infeasible.
const credentialByteLength = 16

// CredentialService mints and verifies the vault's bearer credentials. Both
// the public id and the destroy token are independent random values: neither
// is derivable from the other or from record content.
type CredentialService interface {
	// MintID generates a new public secret identifier.
	MintID() (string, error)
	// MintDestroyToken generates a destroy token, returning the plain token
	// (handed to the creator exactly once) and its digest for at-rest storage.
	MintDestroyToken() (plainToken string, tokenHash string, err error)
	// HashToken computes the at-rest digest of a plain token.
	HashToken(plainToken string) string
	// VerifyToken compares a presented token against a stored digest in
	// constant time.
	VerifyToken(presentedToken, storedHash string) bool
}

// credentialService implements CredentialService using crypto/rand for
// generation and SHA-256 digests for at-rest storage.
type credentialService struct{}

// NewCredentialService creates a new CredentialService instance.
func NewCredentialService() CredentialService {
	return &credentialService{}
}

// MintID generates a cryptographically secure random identifier, URL-safe
// base64 encoded so it can be carried in a path segment.
func (s *credentialService) MintID() (string, error) {
	return randomCredential()
}

// MintDestroyToken generates a destroy token and its SHA-256 digest. Only the
// digest is stored, so a read of the store's memory does not disclose live
// capabilities.
func (s *credentialService) MintDestroyToken() (string, string, error) {
	plainToken, err := randomCredential()
	if err != nil {
		return "", "", err
	}
	return plainToken, s.HashToken(plainToken), nil
}

// HashToken hashes a plain token using SHA-256.
// Returns the digest as a hexadecimal string.
func (s *credentialService) HashToken(plainToken string) string {
	hash := sha256.Sum256([]byte(plainToken))
	return hex.EncodeToString(hash[:])
}

// VerifyToken reports whether the presented token matches the stored digest.
// The comparison is constant-time: this check gates reveal and destroy, so its
// timing must not leak how close a guess was.
func (s *credentialService) VerifyToken(presentedToken, storedHash string) bool {
	presentedHash := s.HashToken(presentedToken)
	return subtle.ConstantTimeCompare([]byte(presentedHash), []byte(storedHash)) == 1
}

// randomCredential returns a fresh URL-safe random credential string.
func randomCredential() (string, error) {
	raw := make([]byte, credentialByteLength)
	if _, err := rand.Read(raw); err != nil {
		return "", apperrors.Wrap(err, "failed to generate credential")
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
