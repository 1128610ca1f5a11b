package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"shopgate.backend/internal/domain/entities"
	domainerrors "shopgate.backend/internal/domain/errors"
	"shopgate.backend/internal/infrastructure/models"
	"shopgate.backend/pkg/utils"
)

// ApiKeyRepository implements API key data operations
type ApiKeyRepository struct {
	db *gorm.DB
}

// NewApiKeyRepository creates a new api key repository
func NewApiKeyRepository(db *gorm.DB) *ApiKeyRepository {
	return &ApiKeyRepository{db: db}
}

// Create creates a new api key
func (r *ApiKeyRepository) Create(ctx context.Context, apiKey *entities.ApiKey) error {
	if apiKey.ID == uuid.Nil {
		apiKey.ID = utils.GenerateUUIDv7()
	}
	if apiKey.PublicID == "" {
		apiKey.PublicID = utils.GeneratePublicID()
	}

	perms, err := json.Marshal(apiKey.Permissions)
	if err != nil {
		return err
	}

	m := &models.ApiKey{
		ID:          apiKey.ID,
		PublicID:    apiKey.PublicID,
		UserID:      apiKey.UserID,
		Name:        apiKey.Name,
		KeyHash:     apiKey.KeyHash,
		Permissions: string(perms),
		Disabled:    apiKey.Disabled,
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	apiKey.CreatedAt = m.CreatedAt
	apiKey.UpdatedAt = m.UpdatedAt
	return nil
}

// FindByKeyHash finds an api key by the digest of its raw value
func (r *ApiKeyRepository) FindByKeyHash(ctx context.Context, keyHash string) (*entities.ApiKey, error) {
	var m models.ApiKey
	if err := r.db.WithContext(ctx).Where("key_hash = ?", keyHash).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return apiKeyToEntity(&m), nil
}

// FindByUserID lists a user's keys, newest first
func (r *ApiKeyRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.ApiKey, error) {
	var keyModels []models.ApiKey
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&keyModels).Error; err != nil {
		return nil, err
	}

	keys := make([]*entities.ApiKey, 0, len(keyModels))
	for i := range keyModels {
		keys = append(keys, apiKeyToEntity(&keyModels[i]))
	}
	return keys, nil
}

// FindByPublicID finds an api key by its external identifier
func (r *ApiKeyRepository) FindByPublicID(ctx context.Context, publicID string) (*entities.ApiKey, error) {
	var m models.ApiKey
	if err := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return apiKeyToEntity(&m), nil
}

// SetDisabled flips the disabled flag
func (r *ApiKeyRepository) SetDisabled(ctx context.Context, id uuid.UUID, disabled bool) error {
	result := r.db.WithContext(ctx).Model(&models.ApiKey{}).Where("id = ?", id).Updates(map[string]interface{}{
		"disabled":   disabled,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// TouchLastUsed records a successful authentication with this key
func (r *ApiKeyRepository) TouchLastUsed(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.ApiKey{}).Where("id = ?", id).
		Update("last_used_at", time.Now()).Error
}

// Delete soft deletes an api key
func (r *ApiKeyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ApiKey{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func apiKeyToEntity(m *models.ApiKey) *entities.ApiKey {
	// A row with a malformed or absent permission list resolves to an empty
	// set rather than an error: the key keeps authenticating, it just
	// authorizes nothing.
	var perms []entities.Permission
	if err := json.Unmarshal([]byte(m.Permissions), &perms); err != nil {
		perms = nil
	}

	return &entities.ApiKey{
		ID:          m.ID,
		PublicID:    m.PublicID,
		UserID:      m.UserID,
		Name:        m.Name,
		KeyHash:     m.KeyHash,
		Permissions: perms,
		Disabled:    m.Disabled,
		LastUsedAt:  null.TimeFromPtr(m.LastUsedAt),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
