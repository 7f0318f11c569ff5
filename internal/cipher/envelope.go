// Package cipher implements the envelope cipher protocol: password-based key
// derivation plus authenticated encryption, producing the ciphertext/iv/salt
// triple the vault stores. The vault never calls into this package; it runs on
// the sender's and recipient's side only.
package cipher

import (
	"encoding/base64"

	apperrors "github.com/linkseal/linkseal/internal/errors"
)

// Envelope is the (ciphertext, iv, salt) triple that, together with the
// password, is necessary and sufficient to recover plaintext. All fields are
// standard base64. The AEAD authentication tag is carried inside Ciphertext,
// not transmitted separately. Envelopes are immutable once created and opaque
// to the vault.
type Envelope struct {
	Ciphertext string `json:"ciphertext"`
	IV         string `json:"iv"`
	Salt       string `json:"salt"`
}

// decodedEnvelope holds the raw bytes of a decoded envelope.
type decodedEnvelope struct {
	ciphertext []byte
	iv         []byte
	salt       []byte
}

// decode validates and decodes all envelope fields. Any decode or length
// failure maps to ErrMalformedInput, before any key derivation happens.
func (e Envelope) decode() (decodedEnvelope, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(e.Ciphertext)
	if err != nil {
		return decodedEnvelope{}, apperrors.Wrap(apperrors.ErrMalformedInput, "invalid ciphertext encoding")
	}
	// GCM output is at least the 16-byte tag even for empty plaintext.
	if len(ciphertext) < TagLength {
		return decodedEnvelope{}, apperrors.Wrap(apperrors.ErrMalformedInput, "ciphertext too short")
	}

	iv, err := base64.StdEncoding.DecodeString(e.IV)
	if err != nil {
		return decodedEnvelope{}, apperrors.Wrap(apperrors.ErrMalformedInput, "invalid iv encoding")
	}
	if len(iv) != IVLength {
		return decodedEnvelope{}, apperrors.Wrap(apperrors.ErrMalformedInput, "invalid iv length")
	}

	salt, err := base64.StdEncoding.DecodeString(e.Salt)
	if err != nil {
		return decodedEnvelope{}, apperrors.Wrap(apperrors.ErrMalformedInput, "invalid salt encoding")
	}
	if len(salt) != SaltLength {
		return decodedEnvelope{}, apperrors.Wrap(apperrors.ErrMalformedInput, "invalid salt length")
	}

	return decodedEnvelope{ciphertext: ciphertext, iv: iv, salt: salt}, nil
}

// encodeEnvelope packs raw cipher output into the wire representation.
func encodeEnvelope(ciphertext, iv, salt []byte) Envelope {
	return Envelope{
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
		IV:         base64.StdEncoding.EncodeToString(iv),
		Salt:       base64.StdEncoding.EncodeToString(salt),
	}
}
