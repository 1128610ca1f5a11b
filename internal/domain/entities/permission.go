package entities

// Permission names one grantable capability. The set is fixed: adding a
// permission means adding a constant here, a flag field on RoleGrants, and a
// column on the roles table.
type Permission string

const (
	PermGetMyUser     Permission = "get_my_user"
	PermGetUsers      Permission = "get_users"
	PermPostLogin     Permission = "post_login"
	PermPostProducts  Permission = "post_products"
	PermGetProducts   Permission = "get_products"
	PermGetMyProducts Permission = "get_my_products"
	PermGetBestsellers Permission = "get_bestsellers"
	PermUploadMedia   Permission = "upload_media"
	PermCreateAPIKeys Permission = "create_api_keys"
	PermReadAPIKeys   Permission = "read_api_keys"
	PermDeleteAPIKeys Permission = "delete_api_keys"

	// PermWildcard is the reserved "grant everything" marker accepted in
	// key-issuance requests. It is expanded to an explicit list before
	// storage and never persisted.
	PermWildcard Permission = "all"
)

// AllPermissions is the full universe of grantable permission names, in the
// order of the roles table columns.
var AllPermissions = []Permission{
	PermGetMyUser,
	PermGetUsers,
	PermPostLogin,
	PermPostProducts,
	PermGetProducts,
	PermGetMyProducts,
	PermGetBestsellers,
	PermUploadMedia,
	PermCreateAPIKeys,
	PermReadAPIKeys,
	PermDeleteAPIKeys,
}

// IsKnown reports whether p names a real permission. The wildcard marker is
// not a permission.
func (p Permission) IsKnown() bool {
	for _, known := range AllPermissions {
		if p == known {
			return true
		}
	}
	return false
}

// ContainsPermission reports whether list holds p literally.
func ContainsPermission(list []Permission, p Permission) bool {
	for _, entry := range list {
		if entry == p {
			return true
		}
	}
	return false
}
