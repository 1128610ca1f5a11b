package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"shopgate.backend/internal/domain/entities"
	domainerrors "shopgate.backend/internal/domain/errors"
	"shopgate.backend/internal/infrastructure/models"
)

// RoleRepository implements role lookups over gorm
type RoleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// GetByID gets a role by id
func (r *RoleRepository) GetByID(ctx context.Context, id int64) (*entities.Role, error) {
	var m models.Role
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return roleToEntity(&m), nil
}

// GetByName gets a role by its unique name
func (r *RoleRepository) GetByName(ctx context.Context, name string) (*entities.Role, error) {
	var m models.Role
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return roleToEntity(&m), nil
}

func roleToEntity(m *models.Role) *entities.Role {
	return &entities.Role{
		ID:   m.ID,
		Name: m.Name,
		Grants: entities.RoleGrants{
			GetMyUser:      m.CanGetMyUser,
			GetUsers:       m.CanGetUsers,
			PostLogin:      m.CanPostLogin,
			PostProducts:   m.CanPostProducts,
			GetProducts:    m.CanGetProducts,
			GetMyProducts:  m.CanGetMyProducts,
			GetBestsellers: m.CanGetBestsellers,
			UploadMedia:    m.CanUploadMedia,
			CreateAPIKeys:  m.CanCreateAPIKeys,
			ReadAPIKeys:    m.CanReadAPIKeys,
			DeleteAPIKeys:  m.CanDeleteAPIKeys,
		},
	}
}

func roleFromGrants(name string, g entities.RoleGrants) *models.Role {
	return &models.Role{
		Name:              name,
		CanGetMyUser:      g.GetMyUser,
		CanGetUsers:       g.GetUsers,
		CanPostLogin:      g.PostLogin,
		CanPostProducts:   g.PostProducts,
		CanGetProducts:    g.GetProducts,
		CanGetMyProducts:  g.GetMyProducts,
		CanGetBestsellers: g.GetBestsellers,
		CanUploadMedia:    g.UploadMedia,
		CanCreateAPIKeys:  g.CreateAPIKeys,
		CanReadAPIKeys:    g.ReadAPIKeys,
		CanDeleteAPIKeys:  g.DeleteAPIKeys,
	}
}
