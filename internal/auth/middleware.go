package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/identity"
	apperrors "github.com/spec-kit/user-service/pkg/util"
)

// SuspensionChecker answers whether a subject is suspended right now.
// Implemented by the suspension repository.
type SuspensionChecker interface {
	IsSuspended(ctx context.Context, userID string) (bool, error)
}

// Middleware is the single chokepoint for protected routes: it verifies the
// session token, normalizes the role claim, re-checks suspension on every
// request and attaches the principal. It never writes a response itself;
// failures propagate to the centralized error handler.
type Middleware struct {
	tokens      *TokenManager
	suspensions SuspensionChecker
	logger      *zap.Logger
}

// NewMiddleware constructs the authentication middleware.
func NewMiddleware(tokens *TokenManager, suspensions SuspensionChecker, logger *zap.Logger) *Middleware {
	return &Middleware{tokens: tokens, suspensions: suspensions, logger: logger}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthorized("No token provided")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return apperrors.NewUnauthorized("Invalid token format")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		m.logger.Debug("session token rejected", zap.Error(err))
		return apperrors.NewUnauthorized(err.Error())
	}

	if claims.Email == "" {
		return apperrors.NewUnauthorized("Not registered user")
	}

	// Any role other than the literal "admin" collapses to "user".
	role := domain.NormalizeRole(claims.Role)

	// Suspension is re-checked per request so a suspension applied after
	// token issuance takes effect before the token expires. An oracle
	// failure rejects the request; the gate never fails open.
	suspended, err := m.suspensions.IsSuspended(c.UserContext(), claims.SubjectID)
	if err != nil {
		m.logger.Error("suspension check failed", zap.Error(err), zap.String("subject_id", claims.SubjectID))
		return apperrors.NewInternalError(err)
	}
	if suspended && !role.IsAdmin() {
		return apperrors.NewForbidden("User suspended")
	}

	c.Locals(principalKey, &Principal{
		Email:     claims.Email,
		Role:      role,
		SubjectID: claims.SubjectID,
	})
	c.Locals(rawTokenKey, parts[1])
	return c.Next()
}

// IdentityGate validates a raw third-party identity token for flows where no
// session token exists yet (registration, login). No claims are attached;
// downstream handlers re-derive what they need.
type IdentityGate struct {
	verifier identity.Verifier
	logger   *zap.Logger
}

// NewIdentityGate constructs the pre-session validation middleware.
func NewIdentityGate(verifier identity.Verifier, logger *zap.Logger) *IdentityGate {
	return &IdentityGate{verifier: verifier, logger: logger}
}

type identityTokenBody struct {
	AuthToken string `json:"auth_token"`
}

// Handle rejects requests whose identity token is absent or invalid.
func (g *IdentityGate) Handle(c *fiber.Ctx) error {
	var body identityTokenBody
	if err := c.BodyParser(&body); err != nil || body.AuthToken == "" {
		return apperrors.NewUnauthorized("No auth token provided")
	}

	if _, err := g.verifier.Verify(c.UserContext(), body.AuthToken); err != nil {
		g.logger.Debug("identity token rejected", zap.Error(err))
		return apperrors.NewUnauthorized("Invalid auth token")
	}

	return c.Next()
}
