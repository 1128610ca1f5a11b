package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ApiKey represents a static credential owned by a user. The raw key is
// never stored; KeyHash is its SHA-256 digest and is the lookup index.
// Permissions is always a concrete list, never the wildcard marker.
type ApiKey struct {
	ID          uuid.UUID    `json:"-"`
	PublicID    string       `json:"publicId"`
	UserID      uuid.UUID    `json:"-"`
	Name        string       `json:"name"`
	KeyHash     string       `json:"-"`
	Permissions []Permission `json:"permissions"`
	Disabled    bool         `json:"disabled"`
	LastUsedAt  null.Time    `json:"lastUsedAt,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// CreateApiKeySpec is one requested key in an issuance batch. Permissions
// are raw strings here: validation and wildcard expansion happen in the
// issuance protocol, not at bind time.
type CreateApiKeySpec struct {
	Name        string   `json:"name" binding:"required,min=1,max=100"`
	Permissions []string `json:"permissions"`
}

// IssuedKey is the one-time response for a freshly created key. RawKey is
// the only place the secret ever appears.
type IssuedKey struct {
	PublicID    string       `json:"public_id"`
	Name        string       `json:"name"`
	Permissions []Permission `json:"permissions"`
	CreatedAt   time.Time    `json:"created_at"`
	RawKey      string       `json:"raw_key"`
	Message     string       `json:"message"`
}
