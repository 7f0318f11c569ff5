// Package errors provides standardized domain errors that express business intent
// rather than infrastructure details. These errors should be used by use cases
// and mapped to appropriate HTTP status codes by handlers.
package errors

import (
	"errors"
	"fmt"
)

// Standard domain errors that can be used across all domain modules.
var (
	// ErrNotFound indicates the requested resource does not exist: the id
	// never existed, was destroyed, or expired and was already purged.
	ErrNotFound = errors.New("not found")

	// ErrExpired indicates the record existed but its expiry instant has
	// passed, observed on the access that evicts it. It wraps ErrNotFound so
	// the resource stays absent status-wise; only the reported reason differs,
	// and only on that first access — later lookups are plain ErrNotFound.
	ErrExpired = fmt.Errorf("expired: %w", ErrNotFound)

	// ErrForbidden indicates a capability token mismatch on reveal or destroy.
	ErrForbidden = errors.New("forbidden")

	// ErrGone indicates the resource existed but was consumed by the attempt
	// cap. Distinct from ErrNotFound so clients can report abuse-driven
	// destruction differently from plain absence.
	ErrGone = errors.New("gone")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrWeakPassword indicates an encryption password below the configured
	// minimum length. Raised on encryption only, never on decryption.
	ErrWeakPassword = errors.New("weak password")

	// ErrMalformedInput indicates envelope fields that fail to decode.
	ErrMalformedInput = errors.New("malformed input")

	// ErrDecryptionFailed indicates an AEAD authentication failure. Wrong
	// password and tampered data are intentionally indistinguishable.
	ErrDecryptionFailed = errors.New("decryption failed")
)

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New for consistency.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error type.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
