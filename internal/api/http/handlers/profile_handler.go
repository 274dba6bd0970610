package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-service/internal/api/dto"
	"github.com/spec-kit/user-service/internal/auth"
	"github.com/spec-kit/user-service/internal/repository"
	"github.com/spec-kit/user-service/internal/service"
	apperrors "github.com/spec-kit/user-service/pkg/util"
)

// ProfileHandler exposes profile read/update endpoints. The subject email
// always comes from the authenticated principal, never from the request.
type ProfileHandler struct {
	profiles *service.ProfileService
}

// NewProfileHandler constructs handler.
func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// GetUserProfile handles GET /api/user/auth/profile.
func (h *ProfileHandler) GetUserProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("No token provided")
	}

	user, err := h.profiles.GetUserProfile(c.UserContext(), principal.Email)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "User profile retrieved successfully",
		"data": dto.UserProfileResponse{
			Email:          user.Email,
			Username:       user.Username,
			FullName:       user.FullName,
			ProfilePicture: user.ProfilePicture,
		},
	})
}

// GetAdminProfile handles GET /api/admin/auth/profile.
func (h *ProfileHandler) GetAdminProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("No token provided")
	}

	admin, err := h.profiles.GetAdminProfile(c.UserContext(), principal.Email)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Admin profile retrieved successfully",
		"data": dto.AdminProfileResponse{
			Email:          admin.Email,
			FullName:       admin.FullName,
			ProfilePicture: admin.ProfilePicture,
		},
	})
}

// UpdateUserProfile handles PUT /api/user/auth/profile.
func (h *ProfileHandler) UpdateUserProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("No token provided")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	updates := repository.ProfileUpdates{
		Username:       req.Username,
		FullName:       req.FullName,
		ProfilePicture: req.ProfilePicture,
	}

	user, err := h.profiles.UpdateUserProfile(c.UserContext(), principal.Email, updates, principal.Email)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "User profile updated successfully",
		"data": dto.UserProfileResponse{
			Email:          user.Email,
			Username:       user.Username,
			FullName:       user.FullName,
			ProfilePicture: user.ProfilePicture,
		},
	})
}

// UpdateAdminProfile handles PUT /api/admin/auth/profile.
func (h *ProfileHandler) UpdateAdminProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("No token provided")
	}
	if !principal.Role.IsAdmin() {
		return apperrors.NewForbidden("Admin role required")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	updates := repository.ProfileUpdates{
		FullName:       req.FullName,
		ProfilePicture: req.ProfilePicture,
	}

	admin, err := h.profiles.UpdateAdminProfile(c.UserContext(), principal.Email, updates, principal.Email)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Admin profile updated successfully",
		"data": dto.AdminProfileResponse{
			Email:          admin.Email,
			FullName:       admin.FullName,
			ProfilePicture: admin.ProfilePicture,
		},
	})
}
