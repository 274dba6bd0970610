package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-service/internal/api/dto"
	"github.com/spec-kit/user-service/internal/auth"
	"github.com/spec-kit/user-service/internal/service"
	apperrors "github.com/spec-kit/user-service/pkg/util"
)

// AuthHandler exposes login and registration endpoints.
type AuthHandler struct {
	auth     *service.AuthService
	register *service.RegisterService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, registerService *service.RegisterService) *AuthHandler {
	return &AuthHandler{auth: authService, register: registerService}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil || req.AuthToken == "" {
		return apperrors.NewValidationError("auth_token required")
	}

	result, err := h.auth.LoginUser(c.UserContext(), req.AuthToken)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthResponse{AccessToken: result.AccessToken})
}

// LoginAdmin handles POST /api/auth/admin/login.
func (h *AuthHandler) LoginAdmin(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil || req.AuthToken == "" {
		return apperrors.NewValidationError("auth_token required")
	}

	result, err := h.auth.LoginAdmin(c.UserContext(), req.AuthToken)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthResponse{AccessToken: result.AccessToken})
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Email == "" || req.FullName == "" {
		return apperrors.NewValidationError("email and full_name required")
	}

	if _, err := h.register.RegisterUser(c.UserContext(), req.Email, req.FullName, req.AuthID); err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully.",
	})
}

// RegisterAdmin handles POST /api/auth/admin/register. The route is behind
// the session gate; only an admin principal may create admins.
func (h *AuthHandler) RegisterAdmin(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("No token provided")
	}

	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Email == "" || req.FullName == "" {
		return apperrors.NewValidationError("email and full_name required")
	}

	if _, err := h.register.RegisterAdmin(c.UserContext(), req.Email, req.FullName, req.AuthID, principal.Role); err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Admin registered successfully.",
	})
}
