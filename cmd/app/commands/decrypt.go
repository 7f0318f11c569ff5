package commands

import (
	"encoding/json"
	"fmt"

	"github.com/linkseal/linkseal/internal/app"
	"github.com/linkseal/linkseal/internal/cipher"
	"github.com/linkseal/linkseal/internal/config"
)

// RunDecrypt reads an envelope as JSON from the reader and writes the
// recovered plaintext. Tampered envelopes and wrong passwords fail the same
// way, so the output never reveals which part was rejected.
func RunDecrypt(password string, ioTuple IOTuple) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)

	var envelope cipher.Envelope
	if err := json.NewDecoder(ioTuple.Reader).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to read envelope: %w", err)
	}

	plaintext, err := container.Encryptor().Decrypt(envelope, password)
	if err != nil {
		return fmt.Errorf("failed to decrypt: %w", err)
	}

	if _, err := fmt.Fprintln(ioTuple.Writer, plaintext); err != nil {
		return fmt.Errorf("failed to write plaintext: %w", err)
	}

	return nil
}
