package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/galleryblog/blog-api/internal/api/metrics"
	"github.com/galleryblog/blog-api/internal/core/domain"
	"github.com/galleryblog/blog-api/internal/core/ports"
)

// AuthHandler handles login, logout and session introspection. The session
// cookie's Max-Age always equals the token TTL so both expire together.
type AuthHandler struct {
	authService ports.AuthService
	sessionTTL  time.Duration
	// secureCookie is false only in local development, where the SPA is
	// served over plain http.
	secureCookie bool
}

func NewAuthHandler(authService ports.AuthService, sessionTTL time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		sessionTTL:   sessionTTL,
		secureCookie: secureCookie,
	}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginData struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Login authenticates a user and issues the session cookie.
//
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  statusResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /users/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	c.SetCookie(h.sessionCookie(token, h.sessionTTL))

	return c.JSON(http.StatusOK, okResponse(loginData{Token: token, User: user}))
}

// Logout clears the session cookie. The token itself stays valid until its
// expiry; nothing is tracked server-side to revoke.
//
// @Summary      Logout
// @Tags         users
// @Produce      json
// @Success      200  {object}  statusResponse
// @Failure      401  {object}  errorResponse
// @Router       /users/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}

	cookie := h.sessionCookie("", 0)
	cookie.Expires = time.Unix(0, 0)
	cookie.MaxAge = -1
	c.SetCookie(cookie)

	return c.JSON(http.StatusOK, okMessage("logged out"))
}

// GetSession returns the identity decoded from the verified session token.
//
// @Summary      Current session
// @Tags         users
// @Produce      json
// @Success      200  {object}  statusResponse
// @Failure      401  {object}  errorResponse
// @Router       /users/get-session [get]
func (h *AuthHandler) GetSession(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse(ident))
}

func (h *AuthHandler) sessionCookie(token string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     domain.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	}
}
