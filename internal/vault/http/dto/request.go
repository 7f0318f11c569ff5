// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/linkseal/linkseal/internal/cipher"
	customValidation "github.com/linkseal/linkseal/internal/validation"
)

// CreateSecretRequest contains the parameters for storing an envelope.
// All three cipher fields arrive base64-encoded from the client-side cipher.
type CreateSecretRequest struct {
	Ciphertext string `json:"ciphertext"`
	IV         string `json:"iv"`
	Salt       string `json:"salt"`
	ExpiryType string `json:"expiryType"`
}

// Validate checks if the create secret request is valid. ExpiryType is not
// validated here: unrecognized or absent hints are legal and default to the
// 24h policy downstream.
func (r *CreateSecretRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Ciphertext, validation.Required, customValidation.Base64),
		validation.Field(&r.IV, validation.Required, customValidation.Base64),
		validation.Field(&r.Salt, validation.Required, customValidation.Base64),
	)
}

// Envelope returns the request's cipher fields as a stored envelope.
func (r *CreateSecretRequest) Envelope() cipher.Envelope {
	return cipher.Envelope{
		Ciphertext: r.Ciphertext,
		IV:         r.IV,
		Salt:       r.Salt,
	}
}

// DestroySecretRequest carries the capability required to delete a secret.
// An absent or blank token is not a validation failure: it flows through to
// the constant-time verify where it fails like any other mismatch (403).
type DestroySecretRequest struct {
	DestroyToken string `json:"destroyToken"`
}
