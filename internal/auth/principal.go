package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-service/internal/domain"
)

const (
	principalKey = "auth_principal"
	rawTokenKey  = "auth_raw_token"
)

// Principal represents the authenticated caller. It is rebuilt from the
// session token on every request and never persisted.
type Principal struct {
	Email     string
	Role      domain.Role
	SubjectID string
}

// PrincipalFromContext retrieves the authenticated principal.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// TokenFromContext retrieves the raw session token attached by the
// middleware, for handlers that forward it to downstream services.
func TokenFromContext(c *fiber.Ctx) (string, bool) {
	val := c.Locals(rawTokenKey)
	if val == nil {
		return "", false
	}
	token, ok := val.(string)
	return token, ok
}
