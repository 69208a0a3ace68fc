package domain

import (
	"errors"
	"time"
)

const (
	RoleUser      = "user"
	RoleSemiAdmin = "semiadmin"
	RoleAdmin     = "admin"
)

var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrTooManyAttempts = errors.New("too many login attempts")
var ErrForbidden = errors.New("access forbidden")
var ErrInvalidID = errors.New("invalid id")

// User models an account in the credential store. The bcrypt hash never
// leaves the server: json:"-" keeps it out of every API response.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
