package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/linkseal/linkseal/internal/app"
	"github.com/linkseal/linkseal/internal/config"
)

// RunEncrypt seals a plaintext under a password and writes the envelope as
// JSON. The plaintext is taken from the message argument, or read from the
// reader when the argument is empty. The envelope is what the create endpoint
// accepts, so the output can be posted to a vault directly.
func RunEncrypt(message, password string, ioTuple IOTuple) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)

	if message == "" {
		raw, err := io.ReadAll(ioTuple.Reader)
		if err != nil {
			return fmt.Errorf("failed to read plaintext: %w", err)
		}
		message = strings.TrimRight(string(raw), "\n")
	}

	envelope, err := container.Encryptor().Encrypt(message, password)
	if err != nil {
		return fmt.Errorf("failed to encrypt: %w", err)
	}

	encoder := json.NewEncoder(ioTuple.Writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(envelope); err != nil {
		return fmt.Errorf("failed to write envelope: %w", err)
	}

	return nil
}
