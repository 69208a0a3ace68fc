package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/galleryblog/blog-api/internal/core/domain"
	"github.com/galleryblog/blog-api/internal/core/ports"
)

type stubUserRepo struct {
	users map[string]*domain.User
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.seq++
	created := cloneUser(user)
	created.ID = "user_" + strconv.Itoa(r.seq)
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func TestUserService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "  alice ",
		Surname:  "smith",
		Email:    "Alice@Example.com",
		Password: "pass123",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("self-registration must force the user role, got %s", user.Role)
	}
	if user.Name != "alice" {
		t.Fatalf("expected trimmed name, got %q", user.Name)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalised email, got %q", user.Email)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestUserService_Register_EscapesMarkup(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "<b>bob</b>",
		Surname:  "jones",
		Email:    "bob@example.com",
		Password: "pass123",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Name != "&lt;b&gt;bob&lt;/b&gt;" {
		t.Fatalf("expected escaped name, got %q", user.Name)
	}
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	input := ports.RegisterInput{Name: "bob", Surname: "jones", Email: "bob@example.com", Password: "pass"}
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), input); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserService_CreateWithRole_RejectsUnknownRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	input := ports.RegisterInput{Name: "bob", Surname: "jones", Email: "bob@example.com", Password: "pass"}
	if _, err := svc.CreateWithRole(context.Background(), input, "superadmin"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown role, got %v", err)
	}
}

func TestUserService_Update_OwnAccount(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	user, _ := svc.Register(context.Background(), ports.RegisterInput{
		Name: "carol", Surname: "jones", Email: "carol@example.com", Password: "oldpass",
	})
	oldHash := user.PasswordHash

	updated, err := svc.Update(context.Background(), user.ID, user.ID, ports.UpdateUserInput{
		Name: "caroline", Surname: "jones", Email: "carol@example.com", Password: "newpass",
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != "caroline" {
		t.Fatalf("expected updated name, got %q", updated.Name)
	}
	if updated.PasswordHash == oldHash {
		t.Fatalf("expected password hash to change")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("newpass")); err != nil {
		t.Fatalf("new hash does not match new password: %v", err)
	}
}

func TestUserService_Update_KeepsHashWithoutPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	user, _ := svc.Register(context.Background(), ports.RegisterInput{
		Name: "carol", Surname: "jones", Email: "carol@example.com", Password: "oldpass",
	})

	updated, err := svc.Update(context.Background(), user.ID, user.ID, ports.UpdateUserInput{
		Name: "caroline", Surname: "jones", Email: "carol@example.com",
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.PasswordHash != user.PasswordHash {
		t.Fatalf("hash must not change when no password supplied")
	}
}

func TestUserService_Update_OtherAccountForbidden(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	victim, _ := svc.Register(context.Background(), ports.RegisterInput{
		Name: "victim", Surname: "v", Email: "victim@example.com", Password: "pass",
	})
	// even an admin may not touch someone else's account
	admin, _ := svc.CreateWithRole(context.Background(), ports.RegisterInput{
		Name: "admin", Surname: "a", Email: "admin@example.com", Password: "pass",
	}, domain.RoleAdmin)

	_, err := svc.Update(context.Background(), admin.ID, victim.ID, ports.UpdateUserInput{
		Name: "hacked", Surname: "v", Email: "victim@example.com",
	})
	if err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUserService_Delete_OtherAccountForbidden(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	victim, _ := svc.Register(context.Background(), ports.RegisterInput{
		Name: "victim", Surname: "v", Email: "victim@example.com", Password: "pass",
	})

	if err := svc.Delete(context.Background(), "someone_else", victim.ID); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := repo.FindByID(context.Background(), victim.ID); err != nil {
		t.Fatalf("victim should still exist: %v", err)
	}
}

func TestUserService_Delete_OwnAccount(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	user, _ := svc.Register(context.Background(), ports.RegisterInput{
		Name: "dave", Surname: "d", Email: "dave@example.com", Password: "pass",
	})

	if err := svc.Delete(context.Background(), user.ID, user.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), user.ID); err != domain.ErrUserNotFound {
		t.Fatalf("expected user gone, got %v", err)
	}
}
