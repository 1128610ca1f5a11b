package entities

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. ID is internal and never leaves the
// service; PublicID is the externally visible identifier embedded in tokens.
// TokenVersion invalidates every previously issued bearer token when it is
// incremented (password change, role change).
type User struct {
	ID           uuid.UUID `json:"-"`
	PublicID     string    `json:"publicId"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	RoleID       int64     `json:"roleId"`
	TokenVersion int       `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// RegisterInput represents input for creating a user
type RegisterInput struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordInput represents input for changing the caller's password
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// ChangeRoleInput represents input for an admin changing a user's role
type ChangeRoleInput struct {
	Role string `json:"role" binding:"required"`
}

// AuthResponse represents a successful login or refresh
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user"`
}
