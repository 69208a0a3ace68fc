package service

import (
	"context"
	"html"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/galleryblog/blog-api/internal/core/domain"
	"github.com/galleryblog/blog-api/internal/core/ports"
)

// bcryptCost matches the cost factor the credential store has always used;
// changing it only affects newly written hashes.
const bcryptCost = 10

// UserService implements account management over the credential store.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// Register creates a self-service account. The role is always "user";
// privileged roles are only minted through CreateWithRole.
func (s *UserService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	return s.CreateWithRole(ctx, input, domain.RoleUser)
}

func (s *UserService) CreateWithRole(ctx context.Context, input ports.RegisterInput, role string) (*domain.User, error) {
	if role != domain.RoleUser && role != domain.RoleSemiAdmin && role != domain.RoleAdmin {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         cleanInput(input.Name),
		Surname:      cleanInput(input.Surname),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user created")
	return created, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

// Update mutates the target account. Ownership rule: only the account
// holder may update it, whatever their role.
func (s *UserService) Update(ctx context.Context, actorID, targetID string, input ports.UpdateUserInput) (*domain.User, error) {
	if actorID != targetID {
		return nil, domain.ErrForbidden
	}

	user, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	user.Name = cleanInput(input.Name)
	user.Surname = cleanInput(input.Surname)
	user.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, user)
}

// Delete removes the target account under the same ownership rule as Update.
func (s *UserService) Delete(ctx context.Context, actorID, targetID string) error {
	if actorID != targetID {
		return domain.ErrForbidden
	}
	if err := s.repo.Delete(ctx, targetID); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", targetID).Msg("user deleted")
	return nil
}

// cleanInput trims and HTML-escapes free-text fields before they reach the
// document store, so stored values are safe to echo back into markup.
func cleanInput(field string) string {
	return html.EscapeString(strings.TrimSpace(field))
}
