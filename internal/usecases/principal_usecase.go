package usecases

import (
	"context"
	"strings"

	"shopgate.backend/internal/domain/entities"
	domainerrors "shopgate.backend/internal/domain/errors"
	"shopgate.backend/internal/domain/repositories"
	"shopgate.backend/pkg/crypto"
	"shopgate.backend/pkg/jwt"
)

// PrincipalUsecase resolves inbound credential material into a Principal.
// Two mutually exclusive channels: an API key takes precedence over a bearer
// token, so a request presenting both is resolved as the key and the token
// is ignored.
type PrincipalUsecase struct {
	userRepo   repositories.UserRepository
	apiKeyRepo repositories.ApiKeyRepository
	jwtService *jwt.Service
}

// NewPrincipalUsecase creates a new principal resolver
func NewPrincipalUsecase(
	userRepo repositories.UserRepository,
	apiKeyRepo repositories.ApiKeyRepository,
	jwtService *jwt.Service,
) *PrincipalUsecase {
	return &PrincipalUsecase{
		userRepo:   userRepo,
		apiKeyRepo: apiKeyRepo,
		jwtService: jwtService,
	}
}

// Resolve turns the request's credential material into a Principal or a
// typed authentication failure. rawKey is the x-api-key header value,
// bearerToken the token stripped of its Bearer prefix; either may be empty.
func (u *PrincipalUsecase) Resolve(ctx context.Context, rawKey, bearerToken string) (entities.Principal, error) {
	if strings.TrimSpace(rawKey) != "" {
		return u.resolveKey(ctx, rawKey)
	}
	return u.resolveToken(ctx, bearerToken)
}

func (u *PrincipalUsecase) resolveKey(ctx context.Context, rawKey string) (entities.Principal, error) {
	digest := crypto.DigestKey(rawKey)

	key, err := u.apiKeyRepo.FindByKeyHash(ctx, digest)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return nil, domainerrors.ErrInvalidCredential
		}
		return nil, err
	}
	if key.Disabled {
		return nil, domainerrors.ErrInvalidCredential
	}

	// Best effort; a failed timestamp write must not fail authentication.
	_ = u.apiKeyRepo.TouchLastUsed(ctx, key.ID)

	return entities.KeyPrincipal{
		KeyID:       key.ID,
		KeyPublicID: key.PublicID,
		UserID:      key.UserID,
		Permissions: key.Permissions,
	}, nil
}

func (u *PrincipalUsecase) resolveToken(ctx context.Context, bearerToken string) (entities.Principal, error) {
	if bearerToken == "" {
		return nil, domainerrors.ErrMissingCredential
	}

	claims, err := u.jwtService.ValidateToken(bearerToken)
	if err != nil {
		return nil, domainerrors.ErrCredentialExpired
	}

	if claims.PublicID == "" || claims.Username == "" {
		return nil, domainerrors.ErrMalformedCredential
	}

	user, err := u.userRepo.GetByPublicID(ctx, claims.PublicID)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return nil, domainerrors.ErrPrincipalNotFound
		}
		return nil, err
	}

	// A token with no version claim normalizes to 0, so it only matches a
	// counter that was never bumped.
	snapshot := 0
	if claims.TokenVersion != nil {
		snapshot = *claims.TokenVersion
	}
	if snapshot != user.TokenVersion {
		return nil, domainerrors.ErrCredentialRevoked
	}

	// The principal carries the stored row's role and version, not the
	// token's: role evaluation must see the current role even mid-session.
	return entities.UserPrincipal{
		ID:           user.ID,
		PublicID:     user.PublicID,
		Username:     user.Username,
		RoleID:       user.RoleID,
		TokenVersion: user.TokenVersion,
	}, nil
}
