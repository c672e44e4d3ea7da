package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// HS256 secrets are 256-bit.
	secretLength = 32
	// Hex-encoded length on disk.
	secretHexLength = 64
)

// LoadOrGenerateSecret loads or generates the JWT signing secret.
// The secret is stored in <dataDir>/auth.key as a hex-encoded string; if the
// file doesn't exist, a new secret is generated and saved with restricted
// permissions. Returns the decoded 32-byte secret.
func LoadOrGenerateSecret(dataDir string) ([]byte, error) {
	keyPath := filepath.Join(dataDir, "auth.key")

	if keyBytes, err := os.ReadFile(keyPath); err == nil {
		keyHex := strings.TrimSpace(string(keyBytes))
		if len(keyHex) != secretHexLength {
			return nil, fmt.Errorf("invalid auth key length: expected %d hex chars, got %d", secretHexLength, len(keyHex))
		}
		secret, err := hex.DecodeString(keyHex)
		if err != nil {
			return nil, fmt.Errorf("invalid auth key format: not valid hex: %w", err)
		}
		return secret, nil
	}

	secret := make([]byte, secretLength)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("failed to generate auth key: %w", err)
	}

	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.WriteFile(keyPath, []byte(hex.EncodeToString(secret)), 0o600); err != nil {
		return nil, fmt.Errorf("failed to save auth key: %w", err)
	}

	return secret, nil
}
