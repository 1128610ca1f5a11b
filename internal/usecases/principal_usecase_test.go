package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"shopgate.backend/internal/domain/entities"
	domainerrors "shopgate.backend/internal/domain/errors"
	"shopgate.backend/internal/usecases"
	"shopgate.backend/pkg/crypto"
	"shopgate.backend/pkg/jwt"
)

func newResolver(userRepo *MockUserRepository, keyRepo *MockApiKeyRepository) (*usecases.PrincipalUsecase, *jwt.Service) {
	svc := jwt.NewService("test-secret", time.Hour, 24*time.Hour)
	return usecases.NewPrincipalUsecase(userRepo, keyRepo, svc), svc
}

func TestResolve_APIKeySuccess(t *testing.T) {
	userRepo := new(MockUserRepository)
	keyRepo := new(MockApiKeyRepository)
	resolver, _ := newResolver(userRepo, keyRepo)

	rawKey, err := crypto.GenerateRawKey()
	require.NoError(t, err)

	stored := &entities.ApiKey{
		ID:          uuid.New(),
		PublicID:    "key_pub",
		UserID:      uuid.New(),
		Name:        "ci-bot",
		KeyHash:     crypto.DigestKey(rawKey),
		Permissions: []entities.Permission{entities.PermPostProducts},
	}
	keyRepo.On("FindByKeyHash", mock.Anything, crypto.DigestKey(rawKey)).Return(stored, nil)
	keyRepo.On("TouchLastUsed", mock.Anything, stored.ID).Return(nil)

	principal, err := resolver.Resolve(context.Background(), rawKey, "")
	require.NoError(t, err)

	kp, ok := principal.(entities.KeyPrincipal)
	require.True(t, ok)
	assert.Equal(t, stored.UserID, kp.UserID)
	assert.Equal(t, stored.Permissions, kp.Permissions)
	keyRepo.AssertExpectations(t)
}

func TestResolve_APIKeyWinsOverBearer(t *testing.T) {
	userRepo := new(MockUserRepository)
	keyRepo := new(MockApiKeyRepository)
	resolver, svc := newResolver(userRepo, keyRepo)

	rawKey, err := crypto.GenerateRawKey()
	require.NoError(t, err)
	stored := &entities.ApiKey{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		KeyHash:     crypto.DigestKey(rawKey),
		Permissions: []entities.Permission{entities.PermGetProducts},
	}
	keyRepo.On("FindByKeyHash", mock.Anything, stored.KeyHash).Return(stored, nil)
	keyRepo.On("TouchLastUsed", mock.Anything, stored.ID).Return(nil)

	pair, err := svc.GenerateTokenPair("user_pub", "alice", 1, 0)
	require.NoError(t, err)

	// Both credentials present: must resolve as the key, never touch users.
	principal, err := resolver.Resolve(context.Background(), rawKey, pair.AccessToken)
	require.NoError(t, err)
	_, ok := principal.(entities.KeyPrincipal)
	assert.True(t, ok)
	userRepo.AssertNotCalled(t, "GetByPublicID", mock.Anything, mock.Anything)
}

func TestResolve_APIKeyUnknown(t *testing.T) {
	userRepo := new(MockUserRepository)
	keyRepo := new(MockApiKeyRepository)
	resolver, _ := newResolver(userRepo, keyRepo)

	keyRepo.On("FindByKeyHash", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrNotFound)

	_, err := resolver.Resolve(context.Background(), "sk_shop_deadbeef", "")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredential)
}

func TestResolve_APIKeyDisabled(t *testing.T) {
	userRepo := new(MockUserRepository)
	keyRepo := new(MockApiKeyRepository)
	resolver, _ := newResolver(userRepo, keyRepo)

	rawKey, err := crypto.GenerateRawKey()
	require.NoError(t, err)
	stored := &entities.ApiKey{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		KeyHash:  crypto.DigestKey(rawKey),
		Disabled: true,
	}
	keyRepo.On("FindByKeyHash", mock.Anything, stored.KeyHash).Return(stored, nil)

	_, err = resolver.Resolve(context.Background(), rawKey, "")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredential)
	keyRepo.AssertNotCalled(t, "TouchLastUsed", mock.Anything, mock.Anything)
}

func TestResolve_MissingCredential(t *testing.T) {
	userRepo := new(MockUserRepository)
	keyRepo := new(MockApiKeyRepository)
	resolver, _ := newResolver(userRepo, keyRepo)

	_, err := resolver.Resolve(context.Background(), "", "")
	assert.ErrorIs(t, err, domainerrors.ErrMissingCredential)

	// A whitespace-only key header is treated as absent.
	_, err = resolver.Resolve(context.Background(), "   ", "")
	assert.ErrorIs(t, err, domainerrors.ErrMissingCredential)
}

func TestResolve_BearerInvalid(t *testing.T) {
	userRepo := new(MockUserRepository)
	keyRepo := new(MockApiKeyRepository)
	resolver, _ := newResolver(userRepo, keyRepo)

	_, err := resolver.Resolve(context.Background(), "", "not.a.token")
	assert.ErrorIs(t, err, domainerrors.ErrCredentialExpired)
}

func TestResolve_BearerSuccessUsesStoredRow(t *testing.T) {
	userRepo := new(MockUserRepository)
	keyRepo := new(MockApiKeyRepository)
	resolver, svc := newResolver(userRepo, keyRepo)

	pair, err := svc.GenerateTokenPair("user_pub", "alice", 1, 2)
	require.NoError(t, err)

	// Stored role differs from the token's claim; the principal must carry
	// the stored role.
	stored := &entities.User{
		ID:           uuid.New(),
		PublicID:     "user_pub",
		Username:     "alice",
		RoleID:       7,
		TokenVersion: 2,
	}
	userRepo.On("GetByPublicID", mock.Anything, "user_pub").Return(stored, nil)

	principal, err := resolver.Resolve(context.Background(), "", pair.AccessToken)
	require.NoError(t, err)

	up, ok := principal.(entities.UserPrincipal)
	require.True(t, ok)
	assert.Equal(t, int64(7), up.RoleID)
	assert.Equal(t, stored.ID, up.ID)
}

func TestResolve_BearerRevokedVersion(t *testing.T) {
	userRepo := new(MockUserRepository)
	keyRepo := new(MockApiKeyRepository)
	resolver, svc := newResolver(userRepo, keyRepo)

	pair, err := svc.GenerateTokenPair("user_pub", "alice", 1, 1)
	require.NoError(t, err)

	stored := &entities.User{
		ID:           uuid.New(),
		PublicID:     "user_pub",
		Username:     "alice",
		RoleID:       1,
		TokenVersion: 2,
	}
	userRepo.On("GetByPublicID", mock.Anything, "user_pub").Return(stored, nil)

	_, err = resolver.Resolve(context.Background(), "", pair.AccessToken)
	assert.ErrorIs(t, err, domainerrors.ErrCredentialRevoked)
}

func TestResolve_BearerPrincipalGone(t *testing.T) {
	userRepo := new(MockUserRepository)
	keyRepo := new(MockApiKeyRepository)
	resolver, svc := newResolver(userRepo, keyRepo)

	pair, err := svc.GenerateTokenPair("ghost", "casper", 1, 0)
	require.NoError(t, err)

	userRepo.On("GetByPublicID", mock.Anything, "ghost").Return(nil, domainerrors.ErrNotFound)

	_, err = resolver.Resolve(context.Background(), "", pair.AccessToken)
	assert.ErrorIs(t, err, domainerrors.ErrPrincipalNotFound)
}
