package cipher

import (
	"crypto/aes"
	aescipher "crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	apperrors "github.com/linkseal/linkseal/internal/errors"
)

// Wire-contract constants. These are shared with every client that has ever
// issued a link: changing any of them breaks decryption of existing envelopes.
// Treat them as a versioned protocol, not as tunables.
const (
	// PBKDF2Iterations is the fixed key derivation iteration count.
	PBKDF2Iterations = 250000
	// SaltLength is the KDF salt size in bytes.
	SaltLength = 16
	// IVLength is the AES-GCM nonce size in bytes.
	IVLength = 12
	// KeyLength is the derived AES key size in bytes (AES-256).
	KeyLength = 32
	// TagLength is the GCM authentication tag size in bytes, appended to the
	// ciphertext by Seal.
	TagLength = 16
)

// Encryptor derives per-envelope keys from passwords and seals/opens plaintext
// with AES-256-GCM. It holds no shared mutable state and is safe for
// concurrent use; the only cost is the deliberately expensive key derivation.
type Encryptor struct {
	minPasswordLength int
}

// NewEncryptor creates an Encryptor enforcing the given minimum password
// length on encryption. The minimum is not enforced on decryption so that
// envelopes created under a stricter historical policy remain decryptable.
func NewEncryptor(minPasswordLength int) *Encryptor {
	return &Encryptor{minPasswordLength: minPasswordLength}
}

// Encrypt seals plaintext under a password-derived key and returns the
// envelope. A fresh random salt and nonce are generated for every call, so two
// encryptions of identical input never share a (salt, iv) pair.
func (e *Encryptor) Encrypt(plaintext, password string) (Envelope, error) {
	if len(password) < e.minPasswordLength {
		return Envelope{}, apperrors.Wrap(
			apperrors.ErrWeakPassword,
			fmt.Sprintf("password must be at least %d characters", e.minPasswordLength),
		)
	}

	salt := make([]byte, SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return Envelope{}, fmt.Errorf("failed to generate salt: %w", err)
	}

	iv := make([]byte, IVLength)
	if _, err := rand.Read(iv); err != nil {
		return Envelope{}, fmt.Errorf("failed to generate iv: %w", err)
	}

	aead, err := deriveAEAD(password, salt)
	if err != nil {
		return Envelope{}, err
	}

	ciphertext := aead.Seal(nil, iv, []byte(plaintext), nil)
	return encodeEnvelope(ciphertext, iv, salt), nil
}

// Decrypt opens an envelope with a password-derived key and returns the
// plaintext. Fields that fail to decode map to ErrMalformedInput. A failed
// authentication tag maps to ErrDecryptionFailed whether the cause is a wrong
// password or tampered data; the two are indistinguishable by design so the
// error cannot be used as an oracle.
func (e *Encryptor) Decrypt(env Envelope, password string) (string, error) {
	decoded, err := env.decode()
	if err != nil {
		return "", err
	}

	aead, err := deriveAEAD(password, decoded.salt)
	if err != nil {
		return "", err
	}

	plaintext, err := aead.Open(nil, decoded.iv, decoded.ciphertext, nil)
	if err != nil {
		return "", apperrors.ErrDecryptionFailed
	}

	return string(plaintext), nil
}

// deriveAEAD stretches a password and salt into an AES-256-GCM instance.
func deriveAEAD(password string, salt []byte) (aescipher.AEAD, error) {
	key := pbkdf2.Key([]byte(password), salt, PBKDF2Iterations, KeyLength, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := aescipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return aead, nil
}
