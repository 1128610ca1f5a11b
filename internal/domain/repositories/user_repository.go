package repositories

import (
	"context"

	"github.com/google/uuid"
	"shopgate.backend/internal/domain/entities"
)

// UserRepository defines user data operations. UpdatePassword and UpdateRole
// increment token_version in the same statement as the field change, so
// every previously issued bearer token dies atomically with the update.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByPublicID(ctx context.Context, publicID string) (*entities.User, error)
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateRole(ctx context.Context, id uuid.UUID, roleID int64) error
	List(ctx context.Context, search string) ([]*entities.User, error)
}
