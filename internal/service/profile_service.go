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

// ProfileService reads and updates account profiles and records an audit
// event for every change.
type ProfileService struct {
	users      repository.UserRepository
	admins     repository.AdminRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewProfileService builds the service.
func NewProfileService(users repository.UserRepository, admins repository.AdminRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ProfileService {
	return &ProfileService{users: users, admins: admins, dispatcher: dispatcher, logger: logger}
}

// GetUserProfile returns the profile for the given user email.
func (s *ProfileService) GetUserProfile(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("User not found")
		}
		return nil, apperrors.NewInternalError(err)
	}
	return user, nil
}

// GetAdminProfile returns the profile for the given admin email.
func (s *ProfileService) GetAdminProfile(ctx context.Context, email string) (*domain.Admin, error) {
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Admin user not found")
		}
		return nil, apperrors.NewInternalError(err)
	}
	return admin, nil
}

// UpdateUserProfile applies partial profile updates and emits an audit event
// listing the changed fields with old and new values.
func (s *ProfileService) UpdateUserProfile(ctx context.Context, email string, updates repository.ProfileUpdates, changedBy string) (*domain.User, error) {
	before, err := s.GetUserProfile(ctx, email)
	if err != nil {
		return nil, err
	}

	after, err := s.users.UpdateProfile(ctx, email, updates)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("User not found")
		}
		return nil, apperrors.NewInternalError(err)
	}

	old := map[string]string{"username": before.Username, "full_name": before.FullName, "profile_picture": before.ProfilePicture}
	now := map[string]string{"username": after.Username, "full_name": after.FullName, "profile_picture": after.ProfilePicture}
	s.publishProfileUpdated(ctx, domain.RoleUser, after.ID, changedBy, old, now)

	return after, nil
}

// UpdateAdminProfile applies partial profile updates to an admin account.
func (s *ProfileService) UpdateAdminProfile(ctx context.Context, email string, updates repository.ProfileUpdates, changedBy string) (*domain.Admin, error) {
	before, err := s.GetAdminProfile(ctx, email)
	if err != nil {
		return nil, err
	}

	after, err := s.admins.UpdateProfile(ctx, email, updates)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Admin user not found")
		}
		return nil, apperrors.NewInternalError(err)
	}

	old := map[string]string{"full_name": before.FullName, "profile_picture": before.ProfilePicture}
	now := map[string]string{"full_name": after.FullName, "profile_picture": after.ProfilePicture}
	s.publishProfileUpdated(ctx, domain.RoleAdmin, after.ID, changedBy, old, now)

	return after, nil
}

func (s *ProfileService) publishProfileUpdated(ctx context.Context, roleType domain.Role, subjectID, changedBy string, old, now map[string]string) {
	if s.dispatcher == nil {
		return
	}

	var changed []string
	for field, oldValue := range old {
		if now[field] != oldValue {
			changed = append(changed, field)
		}
	}
	if len(changed) == 0 {
		return
	}

	err := s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventProfileUpdated,
		SubjectID: subjectID,
		Actor:     events.Actor{Email: changedBy, Role: roleType},
		Timestamp: time.Now(),
		Payload: events.ProfileUpdatedPayload{
			RoleType:      roleType,
			ChangedBy:     changedBy,
			ChangedFields: changed,
			OldValues:     old,
			NewValues:     now,
		},
	})
	if err != nil {
		s.logger.Warn("failed to publish profile update event", zap.Error(err), zap.String("subject_id", subjectID))
	}
}
