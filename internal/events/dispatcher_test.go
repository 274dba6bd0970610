package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryDispatcher_DeliversToSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var received []Event
	dispatcher.Subscribe(EventUserRegistered, func(_ context.Context, event Event) error {
		received = append(received, event)
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{ID: "event-1", Type: EventUserRegistered})
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "event-1", received[0].ID)
}

func TestInMemoryDispatcher_TypeIsolation(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	called := false
	dispatcher.Subscribe(EventUserSuspended, func(context.Context, Event) error {
		called = true
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventProfileUpdated})
	require.NoError(t, err)
	assert.False(t, called)
}

func TestInMemoryDispatcher_HandlerErrorsDoNotAbort(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var order []string
	dispatcher.Subscribe(EventRecoveryRequested, func(context.Context, Event) error {
		order = append(order, "first")
		return errors.New("handler failed")
	})
	dispatcher.Subscribe(EventRecoveryRequested, func(context.Context, Event) error {
		order = append(order, "second")
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventRecoveryRequested})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)
}
