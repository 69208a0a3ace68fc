package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/galleryblog/blog-api/internal/core/domain"
	"github.com/galleryblog/blog-api/internal/core/ports"
)

// UserHandler handles account management routes.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create handles POST /users/create-user — open self-registration, always
// with the "user" role.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "Account details"
// @Success      201   {object}  statusResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /users/create-user [post]
func (h *UserHandler) Create(c echo.Context) error {
	return h.create(c, domain.RoleUser)
}

// CreateAdmin handles POST /users/create-admin (admin only).
//
// @Summary      Create an admin account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "Account details"
// @Success      201   {object}  statusResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /users/create-admin [post]
func (h *UserHandler) CreateAdmin(c echo.Context) error {
	return h.create(c, domain.RoleAdmin)
}

// CreateSemiAdmin handles POST /users/create-semiadmin (admin only).
//
// @Summary      Create a semiadmin account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "Account details"
// @Success      201   {object}  statusResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /users/create-semiadmin [post]
func (h *UserHandler) CreateSemiAdmin(c echo.Context) error {
	return h.create(c, domain.RoleSemiAdmin)
}

func (h *UserHandler) create(c echo.Context, role string) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.RegisterInput{
		Name:     req.Name,
		Surname:  req.Surname,
		Email:    req.Email,
		Password: req.Password,
	}

	user, err := h.userService.CreateWithRole(c.Request().Context(), input, role)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, okResponse(user))
}

// Get handles GET /users/get-user/:id — public profile read, password hash
// excluded by serialization.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  statusResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/get-user/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.userService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse(user))
}

// List handles GET /users/get-users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {object}  statusResponse
// @Router       /users/get-users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse(users))
}

// Update handles PUT /users/update-user/:id. Only the account holder may
// update their own account, whatever their role.
//
// @Summary      Update own account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "User ID"
// @Param        body  body      updateUserRequest  true  "Account details"
// @Success      200   {object}  statusResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /users/update-user/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.Update(c.Request().Context(), ident.ID, c.Param("id"), ports.UpdateUserInput{
		Name:     req.Name,
		Surname:  req.Surname,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, okResponse(user))
}

// Delete handles DELETE /users/delete-user/:id under the same ownership
// rule as Update.
//
// @Summary      Delete own account
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  statusResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/delete-user/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.userService.Delete(c.Request().Context(), ident.ID, c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, okMessage("user deleted"))
}
