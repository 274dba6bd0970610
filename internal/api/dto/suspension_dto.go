package dto

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/spec-kit/user-service/pkg/util"
)

const maxSuspensionDescription = 500

// CreateSuspensionRequest payload for suspending a user.
type CreateSuspensionRequest struct {
	UserID      string `json:"user_id"`
	Days        int    `json:"days"`
	Description string `json:"description,omitempty"`
}

// Validate checks the suspension request fields.
func (r CreateSuspensionRequest) Validate() error {
	var details []string
	if r.UserID == "" {
		details = append(details, "user_id is required")
	} else if _, err := uuid.Parse(r.UserID); err != nil {
		details = append(details, "user_id must be a valid UUID")
	}
	if r.Days < 1 {
		details = append(details, "days must be at least 1")
	}
	if len(r.Description) > maxSuspensionDescription {
		details = append(details, "description must not exceed 500 characters")
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("Validation error", details...)
	}
	return nil
}

// SuspensionResponse echoes the created suspension window.
type SuspensionResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Description string    `json:"description,omitempty"`
}
