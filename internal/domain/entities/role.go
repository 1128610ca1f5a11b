package entities

// Well-known role names. RoleBan denies every request regardless of flags.
const (
	RoleAdmin   = "admin"
	RoleDefault = "user"
	RoleBan     = "ban"
)

// RoleGrants is the fixed-shape flag set for a role: one boolean per known
// permission. Keeping the shape static means a new permission cannot be
// granted anywhere without the compiler seeing it.
type RoleGrants struct {
	GetMyUser      bool `json:"get_my_user"`
	GetUsers       bool `json:"get_users"`
	PostLogin      bool `json:"post_login"`
	PostProducts   bool `json:"post_products"`
	GetProducts    bool `json:"get_products"`
	GetMyProducts  bool `json:"get_my_products"`
	GetBestsellers bool `json:"get_bestsellers"`
	UploadMedia    bool `json:"upload_media"`
	CreateAPIKeys  bool `json:"create_api_keys"`
	ReadAPIKeys    bool `json:"read_api_keys"`
	DeleteAPIKeys  bool `json:"delete_api_keys"`
}

// Role represents a named permission set
type Role struct {
	ID     int64      `json:"id"`
	Name   string     `json:"name"`
	Grants RoleGrants `json:"grants"`
}

// Has reports whether the role grants the named permission. The switch is
// the single name-to-flag mapping; unknown names grant nothing.
func (g RoleGrants) Has(p Permission) bool {
	switch p {
	case PermGetMyUser:
		return g.GetMyUser
	case PermGetUsers:
		return g.GetUsers
	case PermPostLogin:
		return g.PostLogin
	case PermPostProducts:
		return g.PostProducts
	case PermGetProducts:
		return g.GetProducts
	case PermGetMyProducts:
		return g.GetMyProducts
	case PermGetBestsellers:
		return g.GetBestsellers
	case PermUploadMedia:
		return g.UploadMedia
	case PermCreateAPIKeys:
		return g.CreateAPIKeys
	case PermReadAPIKeys:
		return g.ReadAPIKeys
	case PermDeleteAPIKeys:
		return g.DeleteAPIKeys
	default:
		return false
	}
}

// Granted returns the names of all permissions the role currently holds, in
// AllPermissions order.
func (g RoleGrants) Granted() []Permission {
	var granted []Permission
	for _, p := range AllPermissions {
		if g.Has(p) {
			granted = append(granted, p)
		}
	}
	return granted
}

// GrantAll returns a grant set holding every known permission.
func GrantAll() RoleGrants {
	return RoleGrants{
		GetMyUser:      true,
		GetUsers:       true,
		PostLogin:      true,
		PostProducts:   true,
		GetProducts:    true,
		GetMyProducts:  true,
		GetBestsellers: true,
		UploadMedia:    true,
		CreateAPIKeys:  true,
		ReadAPIKeys:    true,
		DeleteAPIKeys:  true,
	}
}
