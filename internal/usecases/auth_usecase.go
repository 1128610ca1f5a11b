package usecases

import (
	"context"
	"errors"

	"shopgate.backend/internal/domain/entities"
	domainerrors "shopgate.backend/internal/domain/errors"
	"shopgate.backend/internal/domain/repositories"
	"shopgate.backend/pkg/crypto"
	"shopgate.backend/pkg/jwt"
)

// AuthUsecase handles registration, login, token refresh and password
// changes. Password and role changes invalidate all outstanding bearer
// tokens through the user's token_version counter.
type AuthUsecase struct {
	userRepo   repositories.UserRepository
	roleRepo   repositories.RoleRepository
	jwtService *jwt.Service
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	roleRepo repositories.RoleRepository,
	jwtService *jwt.Service,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		roleRepo:   roleRepo,
		jwtService: jwtService,
	}
}

// Register creates a new user in the default role. Username and email
// collisions degrade to one generic already-exists error so the response
// does not reveal which field collided.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.User, error) {
	if _, err := u.userRepo.GetByUsername(ctx, input.Username); err == nil {
		return nil, domainerrors.ErrAlreadyExists
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}
	if _, err := u.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, domainerrors.ErrAlreadyExists
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	defaultRole, err := u.roleRepo.GetByName(ctx, entities.RoleDefault)
	if err != nil {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
		RoleID:       defaultRole.ID,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		// A constraint race between the lookups and the insert lands here;
		// same generic error either way.
		return nil, domainerrors.ErrAlreadyExists
	}

	return user, nil
}

// Login authenticates a user and returns a token pair with the current
// token_version snapshot. User-not-found and bad-password remain distinct
// errors, matching the observed product behavior.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidPassword
	}

	pair, err := u.jwtService.GenerateTokenPair(user.PublicID, user.Username, user.RoleID, user.TokenVersion)
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         user,
	}, nil
}

// Refresh reissues a token pair. The refresh token's version snapshot is
// checked against the stored counter, so a password or role change kills
// refresh tokens the same way it kills access tokens.
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := u.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, domainerrors.ErrCredentialExpired
	}
	if claims.PublicID == "" || claims.Username == "" {
		return nil, domainerrors.ErrMalformedCredential
	}

	user, err := u.userRepo.GetByPublicID(ctx, claims.PublicID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrPrincipalNotFound
		}
		return nil, err
	}

	snapshot := 0
	if claims.TokenVersion != nil {
		snapshot = *claims.TokenVersion
	}
	if snapshot != user.TokenVersion {
		return nil, domainerrors.ErrCredentialRevoked
	}

	return u.jwtService.GenerateTokenPair(user.PublicID, user.Username, user.RoleID, user.TokenVersion)
}

// ChangePassword verifies the current password, stores the new hash and
// bumps token_version in the same statement. Every outstanding token for
// the user is dead once this returns.
func (u *AuthUsecase) ChangePassword(ctx context.Context, principal entities.UserPrincipal, input *entities.ChangePasswordInput) error {
	user, err := u.userRepo.GetByID(ctx, principal.ID)
	if err != nil {
		return err
	}

	if !crypto.CheckPassword(input.CurrentPassword, user.PasswordHash) {
		return domainerrors.ErrInvalidPassword
	}

	newHash, err := crypto.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	return u.userRepo.UpdatePassword(ctx, user.ID, newHash)
}

// GetMe returns the caller's own user row
func (u *AuthUsecase) GetMe(ctx context.Context, principal entities.Principal) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, principal.OwnerID())
}
