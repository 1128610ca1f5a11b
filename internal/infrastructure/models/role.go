package models

// Role is the persisted permission-flag row. One can_<permission> column per
// known permission; the mapping to entities.RoleGrants is spelled out in the
// repository so the compiler checks both directions.
type Role struct {
	ID                int64  `gorm:"primaryKey;autoIncrement"`
	Name              string `gorm:"type:varchar(50);uniqueIndex;not null"`
	CanGetMyUser      bool   `gorm:"column:can_get_my_user;not null;default:false"`
	CanGetUsers       bool   `gorm:"column:can_get_users;not null;default:false"`
	CanPostLogin      bool   `gorm:"column:can_post_login;not null;default:false"`
	CanPostProducts   bool   `gorm:"column:can_post_products;not null;default:false"`
	CanGetProducts    bool   `gorm:"column:can_get_products;not null;default:false"`
	CanGetMyProducts  bool   `gorm:"column:can_get_my_products;not null;default:false"`
	CanGetBestsellers bool   `gorm:"column:can_get_bestsellers;not null;default:false"`
	CanUploadMedia    bool   `gorm:"column:can_upload_media;not null;default:false"`
	CanCreateAPIKeys  bool   `gorm:"column:can_create_api_keys;not null;default:false"`
	CanReadAPIKeys    bool   `gorm:"column:can_read_api_keys;not null;default:false"`
	CanDeleteAPIKeys  bool   `gorm:"column:can_delete_api_keys;not null;default:false"`
}

func (Role) TableName() string {
	return "roles"
}
