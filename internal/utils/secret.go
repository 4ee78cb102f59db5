package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateSecret returns n random bytes encoded as hex, for signing session cookies.
func GenerateSecret(n int) (string, error) {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
