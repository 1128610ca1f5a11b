package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	PublicID   string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	Title      string    `gorm:"type:varchar(200);not null"`
	PriceCents int64     `gorm:"not null"`
	ImageURL   string    `gorm:"type:text"`
	Bestseller bool      `gorm:"not null;default:false"`
	CreatorID  uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}
