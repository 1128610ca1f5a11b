package usecases

import (
	"context"

	"shopgate.backend/internal/domain/entities"
	domainerrors "shopgate.backend/internal/domain/errors"
	"shopgate.backend/internal/domain/repositories"
)

// UserUsecase handles user administration
type UserUsecase struct {
	userRepo repositories.UserRepository
	roleRepo repositories.RoleRepository
}

// NewUserUsecase creates a new user usecase
func NewUserUsecase(userRepo repositories.UserRepository, roleRepo repositories.RoleRepository) *UserUsecase {
	return &UserUsecase{
		userRepo: userRepo,
		roleRepo: roleRepo,
	}
}

// List lists users with an optional search filter
func (u *UserUsecase) List(ctx context.Context, search string) ([]*entities.User, error) {
	return u.userRepo.List(ctx, search)
}

// ChangeRole moves a user to the named role. The repository increments
// token_version with the role change, revoking every outstanding token.
func (u *UserUsecase) ChangeRole(ctx context.Context, targetPublicID, roleName string) error {
	role, err := u.roleRepo.GetByName(ctx, roleName)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return domainerrors.BadRequest("unknown role")
		}
		return err
	}

	user, err := u.userRepo.GetByPublicID(ctx, targetPublicID)
	if err != nil {
		return err
	}

	return u.userRepo.UpdateRole(ctx, user.ID, role.ID)
}
