package ports

import (
	"context"

	"github.com/galleryblog/blog-api/internal/core/domain"
)

// RegisterInput carries the fields required to create an account.
type RegisterInput struct {
	Name     string
	Surname  string
	Email    string
	Password string
}

// UpdateUserInput carries the mutable account fields. An empty Password
// leaves the stored hash untouched.
type UpdateUserInput struct {
	Name     string
	Surname  string
	Email    string
	Password string
}

type UserService interface {
	// Register creates a self-service account with the "user" role.
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// CreateWithRole creates an account with an explicit role. Reserved
	// for admin-gated routes.
	CreateWithRole(ctx context.Context, input RegisterInput, role string) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	// Update mutates the target account; fails with ErrForbidden unless
	// actorID equals targetID, regardless of role.
	Update(ctx context.Context, actorID, targetID string, input UpdateUserInput) (*domain.User, error)
	// Delete removes the target account under the same ownership rule.
	Delete(ctx context.Context, actorID, targetID string) error
}
