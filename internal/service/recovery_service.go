package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/user-service/internal/config"
	"github.com/spec-kit/user-service/internal/events"
	"github.com/spec-kit/user-service/internal/repository"
	apperrors "github.com/spec-kit/user-service/pkg/util"
)

// RecoveryService issues password recovery links. Tokens live in Redis with
// a TTL; only their bcrypt hash is stored.
type RecoveryService struct {
	users      repository.UserRepository
	tokens     repository.RecoveryTokenRepository
	dispatcher events.Dispatcher
	ttl        time.Duration
	baseURL    string
	logger     *zap.Logger
}

// NewRecoveryService builds the service.
func NewRecoveryService(cfg config.AuthConfig, users repository.UserRepository, tokens repository.RecoveryTokenRepository, dispatcher events.Dispatcher, logger *zap.Logger) *RecoveryService {
	return &RecoveryService{
		users:      users,
		tokens:     tokens,
		dispatcher: dispatcher,
		ttl:        cfg.RecoveryTokenTTL(),
		baseURL:    cfg.RecoveryLinkBaseURL,
		logger:     logger,
	}
}

// SendRecoveryLink creates a single-use recovery token for the account and
// hands the link to the notification pipeline.
func (s *RecoveryService) SendRecoveryLink(ctx context.Context, email string) (string, error) {
	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewValidationError("Email is not valid or not registered")
		}
		return "", apperrors.NewInternalError(err)
	}

	tokenID := uuid.NewString()
	secret := uuid.NewString()
	if err := s.tokens.Save(ctx, tokenID, email, secret, s.ttl); err != nil {
		return "", apperrors.NewInternalError(err)
	}

	link := fmt.Sprintf("%s?id=%s&token=%s", s.baseURL, tokenID, secret)

	if s.dispatcher != nil {
		err := s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventRecoveryRequested,
			Timestamp: time.Now(),
			Payload: events.RecoveryRequestedPayload{
				Email:        email,
				RecoveryLink: link,
			},
		})
		if err != nil {
			s.logger.Warn("failed to publish recovery event", zap.Error(err), zap.String("email", email))
		}
	}

	return fmt.Sprintf("Recovery email sent to %s. Follow the instructions in the email to reset your password.", email), nil
}

// ConfirmRecoveryToken validates and consumes a recovery token, returning
// the email it was issued for.
func (s *RecoveryService) ConfirmRecoveryToken(ctx context.Context, tokenID, secret string) (string, error) {
	token, err := s.tokens.Consume(ctx, tokenID, secret)
	if err != nil {
		if errors.Is(err, repository.ErrRecoveryTokenNotFound) {
			return "", apperrors.NewUnauthorized("Invalid or expired recovery token")
		}
		return "", apperrors.NewInternalError(err)
	}
	return token.Email, nil
}
