package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-service/internal/api/dto"
	"github.com/spec-kit/user-service/internal/auth"
	"github.com/spec-kit/user-service/internal/service"
	apperrors "github.com/spec-kit/user-service/pkg/util"
)

// SuspensionHandler exposes the admin suspension endpoint.
type SuspensionHandler struct {
	suspensions *service.SuspensionService
}

// NewSuspensionHandler constructs handler.
func NewSuspensionHandler(suspensions *service.SuspensionService) *SuspensionHandler {
	return &SuspensionHandler{suspensions: suspensions}
}

// SuspendUser handles POST /api/user/suspend. The gate authenticates; the
// admin role check happens here.
func (h *SuspensionHandler) SuspendUser(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("No token provided")
	}
	if !principal.Role.IsAdmin() {
		return apperrors.NewUnauthorized("Unauthorized", "Only admins can suspend users")
	}

	var req dto.CreateSuspensionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	suspension, err := h.suspensions.SuspendUser(c.UserContext(), principal.Email, req.UserID, req.Days, req.Description)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "User suspended successfully",
		"suspension": dto.SuspensionResponse{
			ID:          suspension.ID,
			UserID:      suspension.UserID,
			StartDate:   suspension.StartDate,
			EndDate:     suspension.EndDate,
			Description: suspension.Description,
		},
	})
}
