package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-service/internal/api/dto"
	"github.com/spec-kit/user-service/internal/service"
	apperrors "github.com/spec-kit/user-service/pkg/util"
)

// RecoveryHandler exposes password recovery endpoints.
type RecoveryHandler struct {
	recovery *service.RecoveryService
}

// NewRecoveryHandler constructs handler.
func NewRecoveryHandler(recovery *service.RecoveryService) *RecoveryHandler {
	return &RecoveryHandler{recovery: recovery}
}

// SendRecoveryLink handles POST /api/auth/forgot-password.
func (h *RecoveryHandler) SendRecoveryLink(c *fiber.Ctx) error {
	var req dto.SendRecoveryLinkRequest
	if err := c.BodyParser(&req); err != nil || req.Email == "" {
		return apperrors.NewValidationError("email required")
	}

	message, err := h.recovery.SendRecoveryLink(c.UserContext(), req.Email)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": message})
}

// ConfirmRecovery handles POST /api/auth/recovery/confirm.
func (h *RecoveryHandler) ConfirmRecovery(c *fiber.Ctx) error {
	var req dto.ConfirmRecoveryRequest
	if err := c.BodyParser(&req); err != nil || req.ID == "" || req.Token == "" {
		return apperrors.NewValidationError("id and token required")
	}

	email, err := h.recovery.ConfirmRecoveryToken(c.UserContext(), req.ID, req.Token)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Recovery token accepted",
		"email":   email,
	})
}
