package domain

import "github.com/golang-jwt/jwt/v5"

// CookieName is the session cookie carrying the signed token.
const CookieName = "token"

// SessionClaims is the self-contained session credential embedded in the
// cookie. Validity depends solely on signature and expiry; nothing is
// stored server-side.
type SessionClaims struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the per-request view of a verified session. It lives only
// for the duration of one request.
type Identity struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
	Role    string `json:"role"`
}

// Identity converts verified claims into the request identity.
func (c *SessionClaims) Identity() Identity {
	return Identity{
		ID:      c.Subject,
		Name:    c.Name,
		Surname: c.Surname,
		Email:   c.Email,
		Role:    c.Role,
	}
}
