package entities

import (
	"fmt"

	"github.com/google/uuid"
)

// Principal is the resolved identity attached to a request after
// authentication. It is a sealed sum type with exactly two variants:
// UserPrincipal (bearer token) and KeyPrincipal (API key). Consumers
// type-switch over the variants; the unexported method keeps the set closed.
type Principal interface {
	// OwnerID is the internal id of the user the request acts as: the
	// user themselves, or the key's owner.
	OwnerID() uuid.UUID
	// DisplayName is a human-readable label for logs and responses.
	DisplayName() string

	isPrincipal()
}

// UserPrincipal is an identity resolved from a bearer token. RoleID and
// TokenVersion reflect the stored row at resolution time, not the token's
// snapshot, so a same-session role edit is already visible.
type UserPrincipal struct {
	ID           uuid.UUID
	PublicID     string
	Username     string
	RoleID       int64
	TokenVersion int
}

func (p UserPrincipal) OwnerID() uuid.UUID  { return p.ID }
func (p UserPrincipal) DisplayName() string { return p.Username }
func (UserPrincipal) isPrincipal()          {}

// KeyPrincipal is an identity resolved from an API key. It carries the key's
// explicit permission list; role checks never match this variant.
type KeyPrincipal struct {
	KeyID       uuid.UUID
	KeyPublicID string
	UserID      uuid.UUID
	Permissions []Permission
}

func (p KeyPrincipal) OwnerID() uuid.UUID { return p.UserID }

func (p KeyPrincipal) DisplayName() string {
	return fmt.Sprintf("api-key:%s", p.KeyPublicID)
}

func (KeyPrincipal) isPrincipal() {}
