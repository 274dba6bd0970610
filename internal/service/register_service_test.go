package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/events"
)

func TestRegisterService_RegisterUser(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate email", func(t *testing.T) {
		users := &userRepoStub{getByEmailFn: func(context.Context, string) (*domain.User, error) {
			return activeUser(), nil
		}}
		svc := NewRegisterService(users, &adminRepoStub{}, nil, zap.NewNop())

		_, err := svc.RegisterUser(ctx, "user@example.com", "Test User", "auth-1")
		requireDomainError(t, err, http.StatusConflict, "Email already registered")
	})

	t.Run("creates account with defaults", func(t *testing.T) {
		users := &userRepoStub{}
		dispatcher := &dispatcherStub{}
		svc := NewRegisterService(users, &adminRepoStub{}, dispatcher, zap.NewNop())

		user, err := svc.RegisterUser(ctx, "new.person@example.com", "New Person", "auth-2")
		require.NoError(t, err)

		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "new.person", user.Username)
		assert.Equal(t, domain.DefaultProfilePicture, user.ProfilePicture)
		assert.True(t, user.IsActive)
		require.Len(t, users.created, 1)

		require.Len(t, dispatcher.published, 1)
		event := dispatcher.published[0]
		assert.Equal(t, events.EventUserRegistered, event.Type)
		payload, ok := event.Payload.(events.RegisteredPayload)
		require.True(t, ok)
		assert.Equal(t, "mobile", payload.ClientType)
	})
}

func TestRegisterService_RegisterAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("non-admin actor", func(t *testing.T) {
		svc := NewRegisterService(&userRepoStub{}, &adminRepoStub{}, nil, zap.NewNop())

		_, err := svc.RegisterAdmin(ctx, "new@example.com", "New Admin", "auth-3", domain.RoleUser)
		requireDomainError(t, err, http.StatusUnauthorized, "Unauthorized action")
	})

	t.Run("duplicate admin email", func(t *testing.T) {
		admins := &adminRepoStub{getByEmailFn: func(context.Context, string) (*domain.Admin, error) {
			return &domain.Admin{ID: "admin-1", Email: "new@example.com"}, nil
		}}
		svc := NewRegisterService(&userRepoStub{}, admins, nil, zap.NewNop())

		_, err := svc.RegisterAdmin(ctx, "new@example.com", "New Admin", "auth-3", domain.RoleAdmin)
		requireDomainError(t, err, http.StatusConflict, "Email already registered as admin")
	})

	t.Run("admin actor creates account", func(t *testing.T) {
		admins := &adminRepoStub{}
		dispatcher := &dispatcherStub{}
		svc := NewRegisterService(&userRepoStub{}, admins, dispatcher, zap.NewNop())

		admin, err := svc.RegisterAdmin(ctx, "new@example.com", "New Admin", "auth-3", domain.RoleAdmin)
		require.NoError(t, err)
		assert.True(t, admin.IsActive)
		require.Len(t, admins.created, 1)

		require.Len(t, dispatcher.published, 1)
		assert.Equal(t, events.EventAdminRegistered, dispatcher.published[0].Type)
		payload, ok := dispatcher.published[0].Payload.(events.RegisteredPayload)
		require.True(t, ok)
		assert.Equal(t, "web", payload.ClientType)
	})
}
