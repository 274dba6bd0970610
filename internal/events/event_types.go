package events

import (
	"time"

	"github.com/spec-kit/user-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered    EventType = "user_registered"
	EventAdminRegistered   EventType = "admin_registered"
	EventProfileUpdated    EventType = "profile_updated"
	EventUserSuspended     EventType = "user_suspended"
	EventRecoveryRequested EventType = "recovery_requested"
)

// Actor identifies who triggered an event.
type Actor struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// RegisteredPayload payload.
type RegisteredPayload struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	// ClientType distinguishes the registration surface: mobile for users,
	// web for admins.
	ClientType string `json:"client_type"`
}

// ProfileUpdatedPayload payload. Carries the audit trail for the change.
type ProfileUpdatedPayload struct {
	RoleType      domain.Role       `json:"role_type"`
	ChangedBy     string            `json:"changed_by"`
	ChangedFields []string          `json:"changed_fields"`
	OldValues     map[string]string `json:"old_values"`
	NewValues     map[string]string `json:"new_values"`
}

// UserSuspendedPayload payload.
type UserSuspendedPayload struct {
	SuspensionID string    `json:"suspension_id"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Description  string    `json:"description,omitempty"`
}

// RecoveryRequestedPayload payload.
type RecoveryRequestedPayload struct {
	Email        string `json:"email"`
	RecoveryLink string `json:"recovery_link"`
}
