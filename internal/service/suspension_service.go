package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/events"
	"github.com/spec-kit/user-service/internal/repository"
	apperrors "github.com/spec-kit/user-service/pkg/util"
)

// SuspensionService applies admin-initiated suspensions. Role enforcement
// happens in the handler; the service enforces account-state invariants.
type SuspensionService struct {
	users       repository.UserRepository
	suspensions repository.SuspensionRepository
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// NewSuspensionService builds the service.
func NewSuspensionService(users repository.UserRepository, suspensions repository.SuspensionRepository, dispatcher events.Dispatcher, logger *zap.Logger) *SuspensionService {
	return &SuspensionService{users: users, suspensions: suspensions, dispatcher: dispatcher, logger: logger}
}

// SuspendUser opens a suspension window of the given number of days starting
// now. A user with a window that has not yet ended cannot be suspended again.
func (s *SuspensionService) SuspendUser(ctx context.Context, actorEmail, userID string, days int, description string) (*domain.Suspension, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("User not found")
		}
		return nil, apperrors.NewInternalError(err)
	}

	existing, err := s.suspensions.FindActiveByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if existing != nil {
		return nil, apperrors.NewValidationError("User is already suspended")
	}

	start, end := repository.Window(days)
	suspension := &domain.Suspension{
		ID:          uuid.NewString(),
		UserID:      userID,
		StartDate:   start,
		EndDate:     end,
		Description: description,
	}
	if err := s.suspensions.Create(ctx, suspension); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	if s.dispatcher != nil {
		err := s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventUserSuspended,
			SubjectID: userID,
			Actor:     events.Actor{Email: actorEmail, Role: domain.RoleAdmin},
			Timestamp: time.Now(),
			Payload: events.UserSuspendedPayload{
				SuspensionID: suspension.ID,
				StartDate:    suspension.StartDate,
				EndDate:      suspension.EndDate,
				Description:  suspension.Description,
			},
		})
		if err != nil {
			s.logger.Warn("failed to publish suspension event", zap.Error(err), zap.String("user_id", userID))
		}
	}

	return suspension, nil
}
