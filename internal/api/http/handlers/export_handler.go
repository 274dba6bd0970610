package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-service/internal/auth"
	"github.com/spec-kit/user-service/internal/service"
	apperrors "github.com/spec-kit/user-service/pkg/util"
)

// ExportHandler exposes the admin PDF export.
type ExportHandler struct {
	export *service.ExportService
}

// NewExportHandler constructs handler.
func NewExportHandler(export *service.ExportService) *ExportHandler {
	return &ExportHandler{export: export}
}

// ExportUsersPDF handles GET /api/admin/exportUsersPDF.
func (h *ExportHandler) ExportUsersPDF(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("No token provided")
	}
	if !principal.Role.IsAdmin() {
		return apperrors.NewForbidden("Access denied")
	}

	report, err := h.export.ExportUsersPDF(c.UserContext())
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="users.pdf"`)
	return c.Send(report)
}
