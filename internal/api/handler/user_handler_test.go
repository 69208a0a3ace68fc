package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/galleryblog/blog-api/internal/api/middleware"
	"github.com/galleryblog/blog-api/internal/core/domain"
	"github.com/galleryblog/blog-api/internal/core/ports"
)

type stubUserService struct {
	createdRole string
	updateActor string
	deleteActor string
	user        *domain.User
	err         error
}

func (s *stubUserService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	return s.CreateWithRole(ctx, input, domain.RoleUser)
}

func (s *stubUserService) CreateWithRole(_ context.Context, input ports.RegisterInput, role string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.createdRole = role
	return &domain.User{ID: "user_1", Name: input.Name, Email: input.Email, Role: role}, nil
}

func (s *stubUserService) Get(_ context.Context, id string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s *stubUserService) List(_ context.Context) ([]domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []domain.User{*s.user}, nil
}

func (s *stubUserService) Update(_ context.Context, actorID, targetID string, input ports.UpdateUserInput) (*domain.User, error) {
	s.updateActor = actorID
	if actorID != targetID {
		return nil, domain.ErrForbidden
	}
	if s.err != nil {
		return nil, s.err
	}
	return &domain.User{ID: targetID, Name: input.Name, Email: input.Email}, nil
}

func (s *stubUserService) Delete(_ context.Context, actorID, targetID string) error {
	s.deleteActor = actorID
	if actorID != targetID {
		return domain.ErrForbidden
	}
	return s.err
}

const validUserBody = `{"name":"alice","surname":"smith","email":"alice@example.com","password":"pass123"}`

func TestUserHandler_Create_AssignsUserRole(t *testing.T) {
	svc := &stubUserService{}
	h := NewUserHandler(svc)

	c, rec := newTestContext(t, http.MethodPost, "/users/create-user", validUserBody)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.createdRole != domain.RoleUser {
		t.Fatalf("self-registration must use the user role, got %q", svc.createdRole)
	}
}

func TestUserHandler_CreateAdmin_AssignsAdminRole(t *testing.T) {
	svc := &stubUserService{}
	h := NewUserHandler(svc)

	c, _ := newTestContext(t, http.MethodPost, "/users/create-admin", validUserBody)

	if err := h.CreateAdmin(c); err != nil {
		t.Fatalf("CreateAdmin returned error: %v", err)
	}
	if svc.createdRole != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %q", svc.createdRole)
	}
}

func TestUserHandler_CreateSemiAdmin_AssignsRole(t *testing.T) {
	svc := &stubUserService{}
	h := NewUserHandler(svc)

	c, _ := newTestContext(t, http.MethodPost, "/users/create-semiadmin", validUserBody)

	if err := h.CreateSemiAdmin(c); err != nil {
		t.Fatalf("CreateSemiAdmin returned error: %v", err)
	}
	if svc.createdRole != domain.RoleSemiAdmin {
		t.Fatalf("expected semiadmin role, got %q", svc.createdRole)
	}
}

func TestUserHandler_Create_ShortPassword(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	c, _ := newTestContext(t, http.MethodPost, "/users/create-user",
		`{"name":"alice","surname":"smith","email":"alice@example.com","password":"abc"}`)

	err := h.Create(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestUserHandler_Create_DuplicateEmail(t *testing.T) {
	h := NewUserHandler(&stubUserService{err: domain.ErrEmailTaken})

	c, _ := newTestContext(t, http.MethodPost, "/users/create-user", validUserBody)

	if err := h.Create(c); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserHandler_Get_OmitsPasswordHash(t *testing.T) {
	h := NewUserHandler(&stubUserService{user: &domain.User{
		ID: "user_1", Name: "alice", Email: "alice@example.com",
		PasswordHash: "$2a$10$secret", Role: domain.RoleUser,
	}})

	c, rec := newTestContext(t, http.MethodGet, "/users/get-user/user_1", "")
	c.SetParamNames("id")
	c.SetParamValues("user_1")

	if err := h.Get(c); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	data, _ := raw["data"].(map[string]any)
	if data == nil {
		t.Fatalf("missing data envelope: %s", rec.Body.String())
	}
	for key := range data {
		if key == "password" || key == "password_hash" {
			t.Fatalf("response leaks credential field %q", key)
		}
	}
}

func TestUserHandler_Update_UsesSessionIdentity(t *testing.T) {
	svc := &stubUserService{}
	h := NewUserHandler(svc)

	c, rec := newTestContext(t, http.MethodPut, "/users/update-user/user_1", validUserBody)
	c.SetParamNames("id")
	c.SetParamValues("user_1")
	c.Set(middleware.IdentityKey, domain.Identity{ID: "user_1", Role: domain.RoleUser})

	if err := h.Update(c); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.updateActor != "user_1" {
		t.Fatalf("actor must come from the session, got %q", svc.updateActor)
	}
}

func TestUserHandler_Update_OtherAccount(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	c, _ := newTestContext(t, http.MethodPut, "/users/update-user/user_2", validUserBody)
	c.SetParamNames("id")
	c.SetParamValues("user_2")
	c.Set(middleware.IdentityKey, domain.Identity{ID: "user_1", Role: domain.RoleAdmin})

	if err := h.Update(c); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUserHandler_Delete_OwnAccount(t *testing.T) {
	svc := &stubUserService{}
	h := NewUserHandler(svc)

	c, rec := newTestContext(t, http.MethodDelete, "/users/delete-user/user_1", "")
	c.SetParamNames("id")
	c.SetParamValues("user_1")
	c.Set(middleware.IdentityKey, domain.Identity{ID: "user_1", Role: domain.RoleUser})

	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.deleteActor != "user_1" {
		t.Fatalf("actor must come from the session, got %q", svc.deleteActor)
	}
}

func TestUserHandler_Delete_Unauthenticated(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	c, _ := newTestContext(t, http.MethodDelete, "/users/delete-user/user_1", "")
	c.SetParamNames("id")
	c.SetParamValues("user_1")

	err := h.Delete(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
