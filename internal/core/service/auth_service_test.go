package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/galleryblog/blog-api/internal/core/domain"
)

type stubThrottle struct {
	allowed bool
	fails   int
	resets  int
}

func (s *stubThrottle) Allow(context.Context, string) (bool, error) { return s.allowed, nil }
func (s *stubThrottle) Fail(context.Context, string) error          { s.fails++; return nil }
func (s *stubThrottle) Reset(context.Context, string) error         { s.resets++; return nil }

func seedUser(t *testing.T, repo *stubUserRepo, email, password, role string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user, err := repo.Create(context.Background(), &domain.User{
		Name:         "carol",
		Surname:      "jones",
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	throttle := &stubThrottle{allowed: true}
	svc := NewAuthService(repo, throttle, "secret", time.Hour, zerolog.Nop())

	seeded := seedUser(t, repo, "carol@example.com", "s3cret", domain.RoleAdmin)

	token, user, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Email != "carol@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if throttle.resets != 1 {
		t.Fatalf("expected throttle reset, got %d", throttle.resets)
	}

	claims := &domain.SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.Role != domain.RoleAdmin {
		t.Fatalf("expected role %s, got %s", domain.RoleAdmin, claims.Role)
	}
	if claims.Subject != seeded.ID {
		t.Fatalf("expected subject %s, got %s", seeded.ID, claims.Subject)
	}
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) > time.Hour {
		t.Fatalf("unexpected expiry: %v", claims.ExpiresAt)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	repo := newStubUserRepo()
	throttle := &stubThrottle{allowed: true}
	svc := NewAuthService(repo, throttle, "secret", time.Hour, zerolog.Nop())

	seedUser(t, repo, "dave@example.com", "goodpass", domain.RoleUser)

	if _, _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if throttle.fails != 1 {
		t.Fatalf("expected failed attempt recorded, got %d", throttle.fails)
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, &stubThrottle{allowed: true}, "secret", time.Hour, zerolog.Nop())

	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, &stubThrottle{allowed: false}, "secret", time.Hour, zerolog.Nop())

	seedUser(t, repo, "eve@example.com", "pass", domain.RoleUser)

	if _, _, err := svc.Login(context.Background(), "eve@example.com", "pass"); err != domain.ErrTooManyAttempts {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, &stubThrottle{allowed: true}, "secret", time.Hour, zerolog.Nop())

	if _, _, err := svc.Login(context.Background(), "", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
