package entities

import (
	"time"

	"github.com/google/uuid"
)

// Product is a minimal catalog entry. It exists as the resource the product
// permission gates protect; there is no catalog business logic here.
type Product struct {
	ID         uuid.UUID `json:"-"`
	PublicID   string    `json:"publicId"`
	Title      string    `json:"title"`
	PriceCents int64     `json:"priceCents"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	Bestseller bool      `json:"bestseller"`
	CreatorID  uuid.UUID `json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// CreateProductInput represents input for creating a product
type CreateProductInput struct {
	Title      string   `json:"title" binding:"required,min=1,max=200"`
	PriceCents int64    `json:"priceCents" binding:"required,gt=0"`
	Images     []string `json:"images"`
}
