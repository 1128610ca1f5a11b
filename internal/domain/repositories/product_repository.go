package repositories

import (
	"context"

	"github.com/google/uuid"
	"shopgate.backend/internal/domain/entities"
)

// ProductRepository defines product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entities.Product) error
	List(ctx context.Context, limit, offset int) ([]*entities.Product, int64, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*entities.Product, error)
	ListBestsellers(ctx context.Context) ([]*entities.Product, error)
}
