package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/events"
)

func TestSuspensionService_SuspendUser(t *testing.T) {
	ctx := context.Background()
	user := activeUser()
	foundUser := &userRepoStub{getByIDFn: func(context.Context, string) (*domain.User, error) {
		return user, nil
	}}

	t.Run("unknown user", func(t *testing.T) {
		svc := NewSuspensionService(&userRepoStub{}, &suspensionRepoStub{}, nil, zap.NewNop())
		_, err := svc.SuspendUser(ctx, "admin@example.com", "ghost", 7, "")
		requireDomainError(t, err, http.StatusNotFound, "User not found")
	})

	t.Run("already suspended", func(t *testing.T) {
		suspensions := &suspensionRepoStub{findActiveFn: func(context.Context, string) (*domain.Suspension, error) {
			return &domain.Suspension{ID: "susp-1", UserID: user.ID}, nil
		}}
		svc := NewSuspensionService(foundUser, suspensions, nil, zap.NewNop())

		_, err := svc.SuspendUser(ctx, "admin@example.com", user.ID, 7, "")
		requireDomainError(t, err, http.StatusBadRequest, "User is already suspended")
		assert.Empty(t, suspensions.created)
	})

	t.Run("opens window and emits event", func(t *testing.T) {
		suspensions := &suspensionRepoStub{}
		dispatcher := &dispatcherStub{}
		svc := NewSuspensionService(foundUser, suspensions, dispatcher, zap.NewNop())

		suspension, err := svc.SuspendUser(ctx, "admin@example.com", user.ID, 7, "repeated abuse")
		require.NoError(t, err)

		require.Len(t, suspensions.created, 1)
		assert.Equal(t, user.ID, suspension.UserID)
		assert.Equal(t, "repeated abuse", suspension.Description)
		assert.WithinDuration(t, time.Now(), suspension.StartDate, 5*time.Second)
		assert.WithinDuration(t, time.Now().AddDate(0, 0, 7), suspension.EndDate, 5*time.Second)

		require.Len(t, dispatcher.published, 1)
		event := dispatcher.published[0]
		assert.Equal(t, events.EventUserSuspended, event.Type)
		assert.Equal(t, user.ID, event.SubjectID)
		assert.Equal(t, "admin@example.com", event.Actor.Email)
		payload, ok := event.Payload.(events.UserSuspendedPayload)
		require.True(t, ok)
		assert.Equal(t, suspension.ID, payload.SuspensionID)
	})
}
