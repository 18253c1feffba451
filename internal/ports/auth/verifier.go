package auth

import (
	"context"
	"strings"
)

// AuthVerifier valida un bearer token y devuelve sus claims.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenIssuer emite tokens (lo implementa el mismo adapter que verifica).
type TokenIssuer interface {
	Sign(c Claims) (string, error)
}

// ParseRole normaliza el rol del token o del header de dev.
// Cualquier valor que no sea "admin" queda como RoleUser.
func ParseRole(s string) Role {
	if Role(strings.ToLower(strings.TrimSpace(s))) == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}
