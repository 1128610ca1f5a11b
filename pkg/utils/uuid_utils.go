package utils

import (
	"github.com/google/uuid"
)

// GenerateUUIDv7 generates a new UUID v7
func GenerateUUIDv7() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails (highly unlikely)
		return uuid.New()
	}
	return id
}

// GeneratePublicID returns the externally visible identifier for a new
// record. Internal row ids never leave the service; this one does.
func GeneratePublicID() string {
	return GenerateUUIDv7().String()
}
