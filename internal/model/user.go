package model

import "time"

// UserRole represents the role of a user in the system
type UserRole string

const (
	UserRoleUser     UserRole = "user" // Default role
	UserRoleEmployer UserRole = "employer"
)

const (
	// MinPasswordLength is the shortest accepted plaintext password, in characters
	MinPasswordLength = 8
	// MaxPasswordBytes is the bcrypt input limit
	MaxPasswordBytes = 72
)

// User represents a user account
type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name" validate:"required,max=100"`
	Email     string    `json:"email" validate:"required,email"`
	Password  string    `json:"-" validate:"required"` // bcrypt hash, never exposed
	Role      UserRole  `json:"role" validate:"oneof=user employer"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate checks the stored shape of the user
func (u *User) Validate() error {
	return validate.Struct(u)
}

// RegisterRequest is the body of POST /api/v1/register
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/v1/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries a freshly issued identity token
type TokenResponse struct {
	Token string `json:"token"`
}
