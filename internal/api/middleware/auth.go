package middleware

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/galleryblog/blog-api/internal/core/domain"
)

// Context keys populated by Auth for downstream middleware and handlers.
const (
	IdentityKey = "identity"
	RoleKey     = "role"
)

// Auth reads the session cookie, verifies the token's signature and expiry,
// and injects the decoded identity into the request context. Verification is
// purely local: no session record is looked up.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(domain.CookieName)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "no token provided")
			}

			claims := &domain.SessionClaims{}
			tkn, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(IdentityKey, claims.Identity())
			c.Set(RoleKey, claims.Role)

			return next(c)
		}
	}
}
