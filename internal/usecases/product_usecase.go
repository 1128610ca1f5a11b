package usecases

import (
	"context"

	"shopgate.backend/internal/domain/entities"
	"shopgate.backend/internal/domain/repositories"
	"shopgate.backend/pkg/utils"
)

// ProductUsecase handles the minimal product surface the permission gates
// protect.
type ProductUsecase struct {
	productRepo repositories.ProductRepository
}

// NewProductUsecase creates a new product usecase
func NewProductUsecase(productRepo repositories.ProductRepository) *ProductUsecase {
	return &ProductUsecase{productRepo: productRepo}
}

// Create creates a product owned by the calling principal's user
func (u *ProductUsecase) Create(ctx context.Context, creator entities.Principal, input *entities.CreateProductInput) (*entities.Product, error) {
	product := &entities.Product{
		Title:      input.Title,
		PriceCents: input.PriceCents,
		CreatorID:  creator.OwnerID(),
	}
	if len(input.Images) > 0 {
		product.ImageURL = input.Images[0]
	}

	if err := u.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// List lists products with pagination
func (u *ProductUsecase) List(ctx context.Context, page, limit int) ([]*entities.Product, utils.PaginationMeta, error) {
	params := utils.GetPaginationParams(page, limit)
	products, total, err := u.productRepo.List(ctx, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return products, utils.CalculateMeta(total, params.Page, params.Limit), nil
}

// ListMine lists the caller's own products
func (u *ProductUsecase) ListMine(ctx context.Context, owner entities.Principal) ([]*entities.Product, error) {
	return u.productRepo.ListByCreator(ctx, owner.OwnerID())
}

// ListBestsellers lists products flagged as bestsellers
func (u *ProductUsecase) ListBestsellers(ctx context.Context) ([]*entities.Product, error) {
	return u.productRepo.ListBestsellers(ctx)
}
