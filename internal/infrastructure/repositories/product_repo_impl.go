package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"shopgate.backend/internal/domain/entities"
	"shopgate.backend/internal/infrastructure/models"
	"shopgate.backend/pkg/utils"
)

// ProductRepository implements product data operations
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create creates a new product
func (r *ProductRepository) Create(ctx context.Context, product *entities.Product) error {
	if product.ID == uuid.Nil {
		product.ID = utils.GenerateUUIDv7()
	}
	if product.PublicID == "" {
		product.PublicID = utils.GeneratePublicID()
	}

	m := &models.Product{
		ID:         product.ID,
		PublicID:   product.PublicID,
		Title:      product.Title,
		PriceCents: product.PriceCents,
		ImageURL:   product.ImageURL,
		Bestseller: product.Bestseller,
		CreatorID:  product.CreatorID,
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	product.CreatedAt = m.CreatedAt
	product.UpdatedAt = m.UpdatedAt
	return nil
}

// List lists products with pagination, newest first
func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]*entities.Product, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var productModels []models.Product
	if err := query.Find(&productModels).Error; err != nil {
		return nil, 0, err
	}

	return productsToEntities(productModels), total, nil
}

// ListByCreator lists products created by one user
func (r *ProductRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*entities.Product, error) {
	var productModels []models.Product
	if err := r.db.WithContext(ctx).Where("creator_id = ?", creatorID).Order("created_at DESC").Find(&productModels).Error; err != nil {
		return nil, err
	}
	return productsToEntities(productModels), nil
}

// ListBestsellers lists products flagged as bestsellers
func (r *ProductRepository) ListBestsellers(ctx context.Context) ([]*entities.Product, error) {
	var productModels []models.Product
	if err := r.db.WithContext(ctx).Where("bestseller = ?", true).Order("created_at DESC").Find(&productModels).Error; err != nil {
		return nil, err
	}
	return productsToEntities(productModels), nil
}

func productsToEntities(productModels []models.Product) []*entities.Product {
	products := make([]*entities.Product, 0, len(productModels))
	for i := range productModels {
		m := &productModels[i]
		products = append(products, &entities.Product{
			ID:         m.ID,
			PublicID:   m.PublicID,
			Title:      m.Title,
			PriceCents: m.PriceCents,
			ImageURL:   m.ImageURL,
			Bestseller: m.Bestseller,
			CreatorID:  m.CreatorID,
			CreatedAt:  m.CreatedAt,
			UpdatedAt:  m.UpdatedAt,
		})
	}
	return products
}
