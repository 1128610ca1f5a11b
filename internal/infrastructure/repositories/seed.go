package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"shopgate.backend/internal/domain/entities"
	"shopgate.backend/internal/infrastructure/models"
)

// defaultGrants is the seed flag set for the default "user" role: create and
// manage content of your own, no catalog-wide or user-administration reads.
func defaultGrants() entities.RoleGrants {
	return entities.RoleGrants{
		GetMyUser:      true,
		PostLogin:      true,
		PostProducts:   true,
		GetMyProducts:  true,
		GetBestsellers: true,
		UploadMedia:    true,
		CreateAPIKeys:  true,
		ReadAPIKeys:    true,
		DeleteAPIKeys:  true,
	}
}

// SeedRoles provisions the built-in roles if they do not exist yet. It is
// idempotent: existing rows are left untouched, so administrative flag edits
// survive restarts.
func SeedRoles(ctx context.Context, db *gorm.DB) error {
	seeds := []*models.Role{
		roleFromGrants(entities.RoleAdmin, entities.GrantAll()),
		roleFromGrants(entities.RoleDefault, defaultGrants()),
		roleFromGrants(entities.RoleBan, entities.RoleGrants{}),
	}

	for _, seed := range seeds {
		var existing models.Role
		err := db.WithContext(ctx).Where("name = ?", seed.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.WithContext(ctx).Create(seed).Error; err != nil {
			return err
		}
	}
	return nil
}
