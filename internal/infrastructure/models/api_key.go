package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApiKey struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	PublicID    string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(100);not null"`
	KeyHash     string    `gorm:"type:varchar(64);uniqueIndex;not null"` // SHA256 of raw key
	Permissions string    `gorm:"type:text;not null"`                    // JSON array of names
	Disabled    bool      `gorm:"not null;default:false"`
	LastUsedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
	User        User           `gorm:"foreignKey:UserID"`
}

func (ApiKey) TableName() string {
	return "api_keys"
}
