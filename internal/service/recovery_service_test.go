package service

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/user-service/internal/config"
	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/events"
	"github.com/spec-kit/user-service/internal/repository"
)

func recoveryAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		RecoveryTokenTTLMinutes: 15,
		RecoveryLinkBaseURL:     "https://example.com/recovery",
	}
}

func TestRecoveryService_SendRecoveryLink(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown email", func(t *testing.T) {
		svc := NewRecoveryService(recoveryAuthConfig(), &userRepoStub{}, &recoveryRepoStub{}, nil, zap.NewNop())

		_, err := svc.SendRecoveryLink(ctx, "ghost@example.com")
		requireDomainError(t, err, http.StatusBadRequest, "Email is not valid or not registered")
	})

	t.Run("stores token and emits link", func(t *testing.T) {
		user := activeUser()
		users := &userRepoStub{getByEmailFn: func(context.Context, string) (*domain.User, error) {
			return user, nil
		}}
		tokens := &recoveryRepoStub{}
		dispatcher := &dispatcherStub{}
		svc := NewRecoveryService(recoveryAuthConfig(), users, tokens, dispatcher, zap.NewNop())

		message, err := svc.SendRecoveryLink(ctx, user.Email)
		require.NoError(t, err)
		assert.Contains(t, message, user.Email)

		assert.NotEmpty(t, tokens.savedID)
		assert.NotEmpty(t, tokens.savedSecret)
		assert.Equal(t, user.Email, tokens.savedEmail)
		assert.Equal(t, 15*time.Minute, tokens.savedTTL)

		require.Len(t, dispatcher.published, 1)
		event := dispatcher.published[0]
		assert.Equal(t, events.EventRecoveryRequested, event.Type)
		payload, ok := event.Payload.(events.RecoveryRequestedPayload)
		require.True(t, ok)
		assert.Equal(t, user.Email, payload.Email)
		expectedLink := fmt.Sprintf("https://example.com/recovery?id=%s&token=%s", tokens.savedID, tokens.savedSecret)
		assert.Equal(t, expectedLink, payload.RecoveryLink)
	})
}

func TestRecoveryService_ConfirmRecoveryToken(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown or expired token", func(t *testing.T) {
		svc := NewRecoveryService(recoveryAuthConfig(), &userRepoStub{}, &recoveryRepoStub{}, nil, zap.NewNop())

		_, err := svc.ConfirmRecoveryToken(ctx, "token-id", "secret")
		requireDomainError(t, err, http.StatusUnauthorized, "Invalid or expired recovery token")
	})

	t.Run("valid token returns email", func(t *testing.T) {
		tokens := &recoveryRepoStub{consumeFn: func(_ context.Context, id, secret string) (*repository.RecoveryToken, error) {
			return &repository.RecoveryToken{ID: id, Email: "user@example.com"}, nil
		}}
		svc := NewRecoveryService(recoveryAuthConfig(), &userRepoStub{}, tokens, nil, zap.NewNop())

		email, err := svc.ConfirmRecoveryToken(ctx, "token-id", "secret")
		require.NoError(t, err)
		assert.Equal(t, "user@example.com", email)
	})
}
