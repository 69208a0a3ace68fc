package ports

import (
	"context"

	"github.com/galleryblog/blog-api/internal/core/domain"
)

// AuthService issues signed session tokens for valid credentials.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// LoginThrottle limits repeated failed login attempts per account.
type LoginThrottle interface {
	// Allow reports whether another attempt is permitted for the email.
	Allow(ctx context.Context, email string) (bool, error)
	// Fail records a failed attempt.
	Fail(ctx context.Context, email string) error
	// Reset clears the failure counter after a successful login.
	Reset(ctx context.Context, email string) error
}
