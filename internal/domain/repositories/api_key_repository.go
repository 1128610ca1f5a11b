package repositories

import (
	"context"

	"github.com/google/uuid"
	"shopgate.backend/internal/domain/entities"
)

// ApiKeyRepository defines API key data operations. Lookup is by the raw
// key's SHA-256 digest; the raw value is never stored.
type ApiKeyRepository interface {
	Create(ctx context.Context, apiKey *entities.ApiKey) error
	FindByKeyHash(ctx context.Context, keyHash string) (*entities.ApiKey, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.ApiKey, error)
	FindByPublicID(ctx context.Context, publicID string) (*entities.ApiKey, error)
	SetDisabled(ctx context.Context, id uuid.UUID, disabled bool) error
	TouchLastUsed(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}
