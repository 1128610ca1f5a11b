package usecases

import (
	"context"
	"strings"

	"shopgate.backend/internal/domain/entities"
	domainerrors "shopgate.backend/internal/domain/errors"
	"shopgate.backend/internal/domain/repositories"
)

// RoleGatePrefix marks a requirement that names a role instead of a
// permission, e.g. "role:admin".
const RoleGatePrefix = "role:"

// AuthzUsecase decides whether a resolved principal may perform a protected
// operation. A gate is an ordered requirement list; any single matching
// entry grants access (logical OR), first match wins.
type AuthzUsecase struct {
	roleRepo repositories.RoleRepository
}

// NewAuthzUsecase creates a new permission evaluator
func NewAuthzUsecase(roleRepo repositories.RoleRepository) *AuthzUsecase {
	return &AuthzUsecase{roleRepo: roleRepo}
}

// Authorize returns nil if any requirement matches the principal, otherwise
// a generic forbidden error that never names the missing grant.
func (u *AuthzUsecase) Authorize(ctx context.Context, principal entities.Principal, requirements []string) error {
	switch p := principal.(type) {
	case entities.KeyPrincipal:
		return u.authorizeKey(p, requirements)
	case entities.UserPrincipal:
		return u.authorizeUser(ctx, p, requirements)
	default:
		return domainerrors.Forbidden()
	}
}

// authorizeKey matches against the key's explicit permission list. Role
// gates never match a key, even if the key's owner holds the role. A stored
// wildcard marker grants everything; issuance never writes one, but rows
// inserted outside the issuance path may carry it.
func (u *AuthzUsecase) authorizeKey(p entities.KeyPrincipal, requirements []string) error {
	for _, req := range requirements {
		if strings.HasPrefix(req, RoleGatePrefix) {
			continue
		}
		if entities.ContainsPermission(p.Permissions, entities.Permission(req)) ||
			entities.ContainsPermission(p.Permissions, entities.PermWildcard) {
			return nil
		}
	}
	return domainerrors.Forbidden()
}

// authorizeUser re-reads the role row per request so a role edit takes
// effect on the very next call without reissuing tokens.
func (u *AuthzUsecase) authorizeUser(ctx context.Context, p entities.UserPrincipal, requirements []string) error {
	role, err := u.roleRepo.GetByID(ctx, p.RoleID)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			// Dangling role reference authorizes nothing.
			return domainerrors.Forbidden()
		}
		return err
	}

	// The ban role denies unconditionally, including a "role:ban" gate.
	if strings.EqualFold(role.Name, entities.RoleBan) {
		return domainerrors.Forbidden()
	}

	for _, req := range requirements {
		if target, ok := strings.CutPrefix(req, RoleGatePrefix); ok {
			if strings.EqualFold(role.Name, target) {
				return nil
			}
			continue
		}
		if role.Grants.Has(entities.Permission(req)) {
			return nil
		}
	}
	return domainerrors.Forbidden()
}
