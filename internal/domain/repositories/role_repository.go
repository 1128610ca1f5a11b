package repositories

import (
	"context"

	"shopgate.backend/internal/domain/entities"
)

// RoleRepository defines role lookups. Roles are seeded at provisioning time
// and never mutated by request handling, but the evaluator still reads them
// fresh per request so administrative migrations take effect immediately.
type RoleRepository interface {
	GetByID(ctx context.Context, id int64) (*entities.Role, error)
	GetByName(ctx context.Context, name string) (*entities.Role, error)
}
