package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/galleryblog/blog-api/internal/api/middleware"
	"github.com/galleryblog/blog-api/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware. An
// absent or empty identity means the middleware never ran on this route,
// which is an authentication failure.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	ident, ok := c.Get(middleware.IdentityKey).(domain.Identity)
	if !ok || ident.ID == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return ident, nil
}
