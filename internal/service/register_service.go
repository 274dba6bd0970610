package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/events"
	"github.com/spec-kit/user-service/internal/repository"
	apperrors "github.com/spec-kit/user-service/pkg/util"
)

// RegisterService creates user and admin accounts. Callers must already have
// passed the identity-token validation gate.
type RegisterService struct {
	users      repository.UserRepository
	admins     repository.AdminRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewRegisterService builds the service.
func NewRegisterService(users repository.UserRepository, admins repository.AdminRepository, dispatcher events.Dispatcher, logger *zap.Logger) *RegisterService {
	return &RegisterService{users: users, admins: admins, dispatcher: dispatcher, logger: logger}
}

// RegisterUser creates an end-user account. The username defaults to the
// local part of the email.
func (s *RegisterService) RegisterUser(ctx context.Context, email, fullName, authID string) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("Email already registered")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		ID:             uuid.NewString(),
		Email:          email,
		Username:       strings.SplitN(email, "@", 2)[0],
		FullName:       fullName,
		ProfilePicture: domain.DefaultProfilePicture,
		AuthID:         authID,
		IsActive:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.publishRegistered(ctx, events.EventUserRegistered, user.ID, user.Email, user.FullName, "mobile")
	return user, nil
}

// RegisterAdmin creates an administrator account. Only an admin principal
// may call this.
func (s *RegisterService) RegisterAdmin(ctx context.Context, email, fullName, authID string, actorRole domain.Role) (*domain.Admin, error) {
	if !actorRole.IsAdmin() {
		return nil, apperrors.NewUnauthorized("Unauthorized action")
	}

	if _, err := s.admins.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("Email already registered as admin")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewInternalError(err)
	}

	admin := &domain.Admin{
		ID:             uuid.NewString(),
		Email:          email,
		FullName:       fullName,
		ProfilePicture: domain.DefaultProfilePicture,
		AuthID:         authID,
		IsActive:       true,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.publishRegistered(ctx, events.EventAdminRegistered, admin.ID, admin.Email, admin.FullName, "web")
	return admin, nil
}

// publishRegistered emits the registration event. Delivery failures never
// fail the registration itself.
func (s *RegisterService) publishRegistered(ctx context.Context, eventType events.EventType, subjectID, email, fullName, clientType string) {
	if s.dispatcher == nil {
		return
	}
	err := s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Timestamp: time.Now(),
		Payload: events.RegisteredPayload{
			Email:      email,
			FullName:   fullName,
			ClientType: clientType,
		},
	})
	if err != nil {
		s.logger.Warn("failed to publish registration event", zap.Error(err), zap.String("email", email))
	}
}
