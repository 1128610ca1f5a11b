package usecases

import (
	"context"
	"fmt"

	"shopgate.backend/internal/domain/entities"
	domainerrors "shopgate.backend/internal/domain/errors"
	"shopgate.backend/internal/domain/repositories"
	"shopgate.backend/pkg/crypto"
)

// rawKeyWarning accompanies every freshly issued key exactly once.
const rawKeyWarning = "Store this key now. The raw value is not recoverable after this response."

// ApiKeyUsecase implements the key issuance protocol and key management.
// The issuance invariant: a stored permission list is always a concrete
// subset of what the creator held at issuance time, and never contains the
// wildcard marker.
type ApiKeyUsecase struct {
	apiKeyRepo repositories.ApiKeyRepository
	roleRepo   repositories.RoleRepository
}

// NewApiKeyUsecase creates a new api key usecase
func NewApiKeyUsecase(apiKeyRepo repositories.ApiKeyRepository, roleRepo repositories.RoleRepository) *ApiKeyUsecase {
	return &ApiKeyUsecase{
		apiKeyRepo: apiKeyRepo,
		roleRepo:   roleRepo,
	}
}

// IssueKeys creates one key per spec, in input order. Escalation is checked
// for the whole batch before anything persists: if any requested permission
// exceeds the creator's grants, no key is created and the offending names
// are returned. A storage fault mid-batch returns the keys created so far
// together with the error, so the caller knows which secrets were minted.
func (u *ApiKeyUsecase) IssueKeys(ctx context.Context, creator entities.Principal, specs []entities.CreateApiKeySpec) ([]entities.IssuedKey, error) {
	if len(specs) == 0 {
		return nil, domainerrors.BadRequest("at least one key spec is required")
	}

	effective, isAdmin, err := u.effectivePermissions(ctx, creator)
	if err != nil {
		return nil, err
	}

	// Phase 1: finalize and validate every permission list before any
	// persistence, so a denied batch creates nothing.
	finalized := make([][]entities.Permission, len(specs))
	var offending []string
	for i, spec := range specs {
		perms := expandWildcard(spec.Permissions, effective, isAdmin)
		for _, p := range perms {
			if isAdmin {
				if !p.IsKnown() {
					offending = append(offending, string(p))
				}
			} else if !entities.ContainsPermission(effective, p) {
				offending = append(offending, string(p))
			}
		}
		finalized[i] = perms
	}
	if len(offending) > 0 {
		return nil, &domainerrors.EscalationError{InvalidPermissions: dedupeStrings(offending)}
	}

	// Phase 2: mint and persist in input order.
	issued := make([]entities.IssuedKey, 0, len(specs))
	for i, spec := range specs {
		rawKey, err := crypto.GenerateRawKey()
		if err != nil {
			return issued, domainerrors.InternalError(err)
		}

		key := &entities.ApiKey{
			UserID:      creator.OwnerID(),
			Name:        spec.Name,
			KeyHash:     crypto.DigestKey(rawKey),
			Permissions: finalized[i],
		}
		if err := u.apiKeyRepo.Create(ctx, key); err != nil {
			return issued, fmt.Errorf("creating key %q: %w", spec.Name, err)
		}

		issued = append(issued, entities.IssuedKey{
			PublicID:    key.PublicID,
			Name:        key.Name,
			Permissions: key.Permissions,
			CreatedAt:   key.CreatedAt,
			RawKey:      rawKey,
			Message:     rawKeyWarning,
		})
	}
	return issued, nil
}

// effectivePermissions computes the creator's grant set and admin status.
// A key-derived creator is never an administrator, whoever owns it.
func (u *ApiKeyUsecase) effectivePermissions(ctx context.Context, creator entities.Principal) ([]entities.Permission, bool, error) {
	switch p := creator.(type) {
	case entities.KeyPrincipal:
		return p.Permissions, false, nil
	case entities.UserPrincipal:
		role, err := u.roleRepo.GetByID(ctx, p.RoleID)
		if err != nil {
			return nil, false, err
		}
		return role.Grants.Granted(), role.Name == entities.RoleAdmin, nil
	default:
		return nil, false, domainerrors.Forbidden()
	}
}

// expandWildcard resolves the "all" marker: admins get the full universe,
// everyone else gets their own effective set. The returned list is
// duplicate-free and never contains the marker itself.
func expandWildcard(requested []string, effective []entities.Permission, isAdmin bool) []entities.Permission {
	out := make([]entities.Permission, 0, len(requested))
	seen := make(map[entities.Permission]bool)

	add := func(p entities.Permission) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, name := range requested {
		p := entities.Permission(name)
		if p != entities.PermWildcard {
			add(p)
			continue
		}
		if isAdmin {
			for _, known := range entities.AllPermissions {
				add(known)
			}
		} else {
			for _, granted := range effective {
				add(granted)
			}
		}
	}
	return out
}

// ListKeys lists the owner's keys
func (u *ApiKeyUsecase) ListKeys(ctx context.Context, owner entities.Principal) ([]*entities.ApiKey, error) {
	return u.apiKeyRepo.FindByUserID(ctx, owner.OwnerID())
}

// DisableKey disables one of the owner's keys
func (u *ApiKeyUsecase) DisableKey(ctx context.Context, owner entities.Principal, publicID string) error {
	key, err := u.ownedKey(ctx, owner, publicID)
	if err != nil {
		return err
	}
	return u.apiKeyRepo.SetDisabled(ctx, key.ID, true)
}

// DeleteKey deletes one of the owner's keys
func (u *ApiKeyUsecase) DeleteKey(ctx context.Context, owner entities.Principal, publicID string) error {
	key, err := u.ownedKey(ctx, owner, publicID)
	if err != nil {
		return err
	}
	return u.apiKeyRepo.Delete(ctx, key.ID)
}

func (u *ApiKeyUsecase) ownedKey(ctx context.Context, owner entities.Principal, publicID string) (*entities.ApiKey, error) {
	key, err := u.apiKeyRepo.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if key.UserID != owner.OwnerID() {
		// Foreign keys do not exist as far as the caller can tell.
		return nil, domainerrors.ErrNotFound
	}
	return key, nil
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
