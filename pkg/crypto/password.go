package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the default bcrypt cost
	DefaultCost = 12

	// KeyPrefix marks raw API keys issued by this service
	KeyPrefix = "sk_shop_"
)

var (
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	randomRead                 = rand.Read
)

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcryptGenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// CheckPassword compares a password with a hash
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateRawKey generates a new high-entropy raw API key. The raw value is
// shown to the creator exactly once; only its digest is ever stored.
func GenerateRawKey() (string, error) {
	bytes := make([]byte, 24)
	if _, err := randomRead(bytes); err != nil {
		return "", fmt.Errorf("failed to generate api key: %w", err)
	}
	return KeyPrefix + hex.EncodeToString(bytes), nil
}

// DigestKey returns the SHA-256 hex digest used to index an API key by
// exact match. Surrounding whitespace is stripped before hashing so a
// copy-pasted key with a trailing newline still resolves.
func DigestKey(rawKey string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(rawKey)))
	return hex.EncodeToString(sum[:])
}
