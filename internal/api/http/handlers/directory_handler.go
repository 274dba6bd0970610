package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-service/internal/api/dto"
	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/service"
	apperrors "github.com/spec-kit/user-service/pkg/util"
)

// DirectoryHandler exposes the paginated user directory and name search.
type DirectoryHandler struct {
	directory *service.DirectoryService
}

// NewDirectoryHandler constructs handler.
func NewDirectoryHandler(directory *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

// ListActive handles GET /api/users/active. limit and created_after are a
// pair: both present or both absent.
func (h *DirectoryHandler) ListActive(c *fiber.Ctx) error {
	createdAfterRaw := c.Query("created_after")
	limitRaw := c.Query("limit")

	if (limitRaw == "") != (createdAfterRaw == "") {
		return apperrors.NewValidationError("Invalid query parameters.",
			"limit and created_after must be provided together or omitted together")
	}

	query := service.DirectoryQuery{
		Limit:    20,
		Username: c.Query("username"),
	}

	if limitRaw != "" {
		limit, err := strconv.Atoi(limitRaw)
		if err != nil || limit < 1 {
			return apperrors.NewValidationError("Invalid query parameters.", "limit must be a positive integer")
		}
		createdAfter, err := time.Parse(time.RFC3339, createdAfterRaw)
		if err != nil {
			return apperrors.NewValidationError("Invalid query parameters.", "created_after must be an ISO 8601 timestamp")
		}
		query.Limit = limit
		query.CreatedAfter = createdAfter
	}

	page, err := h.directory.ListActive(c.UserContext(), query)
	if err != nil {
		return err
	}

	data := make([]dto.DirectoryUser, 0, len(page.Users))
	for _, user := range page.Users {
		data = append(data, toDirectoryUser(user))
	}

	return c.JSON(dto.DirectoryResponse{
		Message: "All users fetched successfully",
		Data:    data,
		Metadata: dto.DirectoryMetadata{
			LastTime:       page.Metadata.LastTime,
			RemainingItems: page.Metadata.RemainingItems,
			RemainingPages: page.Metadata.RemainingPages,
		},
	})
}

// Search handles GET /api/users/search.
func (h *DirectoryHandler) Search(c *fiber.Ctx) error {
	users, err := h.directory.Search(c.UserContext(), c.Query("name"))
	if err != nil {
		return err
	}

	results := make([]dto.SearchResult, 0, len(users))
	for _, user := range users {
		results = append(results, dto.SearchResult{
			ID:             user.ID,
			Username:       user.Username,
			UserFullname:   user.FullName,
			ProfilePicture: user.ProfilePicture,
		})
	}

	return c.JSON(fiber.Map{"data": results})
}

func toDirectoryUser(user domain.User) dto.DirectoryUser {
	return dto.DirectoryUser{
		ID:             user.ID,
		Email:          user.Email,
		FullName:       user.FullName,
		Username:       user.Username,
		ProfilePicture: user.ProfilePicture,
		IsActive:       user.IsActive,
		CreatedAt:      user.CreatedAt,
	}
}
