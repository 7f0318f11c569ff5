// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"github.com/linkseal/linkseal/internal/cipher"
	"github.com/linkseal/linkseal/internal/vault/domain"
	"github.com/linkseal/linkseal/internal/vault/usecase"
)

// CreateSecretResponse returns the two capabilities minted at creation. This
// is the only response that ever carries the destroy token.
type CreateSecretResponse struct {
	ID           string `json:"id"`
	DestroyToken string `json:"destroyToken"`
}

// MapCreatedSecret converts a creation result to its API response.
func MapCreatedSecret(created *usecase.CreatedSecret) CreateSecretResponse {
	return CreateSecretResponse{
		ID:           created.ID,
		DestroyToken: created.DestroyToken,
	}
}

// MetadataResponse describes a secret without exposing its envelope.
// ExpiresAt is a Unix timestamp in seconds, matching the TTL arithmetic
// resolution of the wire contract. HasDestroyToken is always true: every
// secret is minted with one.
type MetadataResponse struct {
	TTLMode         string `json:"ttlMode"`
	ExpiresAt       int64  `json:"expiresAt"`
	HasDestroyToken bool   `json:"hasDestroyToken"`
}

// MapMetadata converts domain metadata to its API response.
func MapMetadata(metadata *domain.Metadata) MetadataResponse {
	return MetadataResponse{
		TTLMode:         string(metadata.Mode),
		ExpiresAt:       metadata.ExpiresAt.Unix(),
		HasDestroyToken: true,
	}
}

// RevealSecretResponse returns the stored envelope for local decryption.
type RevealSecretResponse struct {
	Ciphertext string `json:"ciphertext"`
	IV         string `json:"iv"`
	Salt       string `json:"salt"`
}

// MapEnvelope converts a stored envelope to its API response.
func MapEnvelope(env *cipher.Envelope) RevealSecretResponse {
	return RevealSecretResponse{
		Ciphertext: env.Ciphertext,
		IV:         env.IV,
		Salt:       env.Salt,
	}
}

// AttemptResponse reports the remaining attempt budget.
type AttemptResponse struct {
	Remaining int `json:"remaining"`
}

// DestroySecretResponse acknowledges a completed destroy.
type DestroySecretResponse struct {
	Success bool `json:"success"`
}
