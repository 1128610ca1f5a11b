package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleGrants_HasCoversEveryPermission(t *testing.T) {
	all := GrantAll()
	for _, p := range AllPermissions {
		assert.True(t, all.Has(p), "GrantAll should grant %s", p)
	}

	none := RoleGrants{}
	for _, p := range AllPermissions {
		assert.False(t, none.Has(p), "empty grants should deny %s", p)
	}
}

func TestRoleGrants_HasUnknownName(t *testing.T) {
	all := GrantAll()
	assert.False(t, all.Has(Permission("made_up")))
	// The wildcard marker is not a grantable flag.
	assert.False(t, all.Has(PermWildcard))
}

func TestRoleGrants_Granted(t *testing.T) {
	g := RoleGrants{PostProducts: true, GetBestsellers: true}
	granted := g.Granted()

	assert.ElementsMatch(t, []Permission{PermPostProducts, PermGetBestsellers}, granted)
	assert.Len(t, GrantAll().Granted(), len(AllPermissions))
}

func TestPermission_IsKnown(t *testing.T) {
	for _, p := range AllPermissions {
		assert.True(t, p.IsKnown(), "%s should be known", p)
	}
	assert.False(t, PermWildcard.IsKnown())
	assert.False(t, Permission("get_everything").IsKnown())
}

func TestContainsPermission(t *testing.T) {
	list := []Permission{PermPostProducts, PermGetProducts}
	assert.True(t, ContainsPermission(list, PermGetProducts))
	assert.False(t, ContainsPermission(list, PermGetUsers))
	assert.False(t, ContainsPermission(nil, PermGetUsers))
}
