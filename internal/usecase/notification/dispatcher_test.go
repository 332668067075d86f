package notification

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/gdugdh24/roommate-backend/internal/domain"
	"github.com/gdugdh24/roommate-backend/internal/repository"
	"github.com/gdugdh24/roommate-backend/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emitted struct {
	userID  string
	event   string
	payload any
}

type fakeChannel struct {
	mu        sync.Mutex
	available bool
	connected map[string]bool
	err       error
	events    []emitted
}

func (f *fakeChannel) Available() bool { return f.available }

func (f *fakeChannel) IsConnected(userID string) bool { return f.connected[userID] }

func (f *fakeChannel) EmitToUser(ctx context.Context, userID, event string, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	f.events = append(f.events, emitted{userID: userID, event: event, payload: payload})
	return f.err
}

func (f *fakeChannel) eventNames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, 0, len(f.events))
	for _, e := range f.events {
		names = append(names, e.event)
	}
	return names
}

type failingNotifications struct {
	repository.NotificationRepository
}

func (failingNotifications) Create(context.Context, *domain.Notification) error {
	return errors.New("insert failed")
}

func input() DispatchInput {
	return DispatchInput{
		Type:       domain.NotificationTypeMatchRequest,
		Message:    "Asha sent you a match request.",
		SenderID:   "a",
		ReceiverID: "b",
		SenderName: "Asha",
	}
}

func TestDispatchToConnectedReceiver(t *testing.T) {
	repos := memory.NewRepositories()
	hub := &fakeChannel{available: true, connected: map[string]bool{"b": true}}
	fallback := &fakeChannel{}
	d := NewDispatcher(repos.Notifications, hub, fallback, nil)

	n, err := d.Dispatch(context.Background(), input())
	require.NoError(t, err)
	assert.NotEmpty(t, n.ID)
	assert.False(t, n.Read)
	assert.Equal(t, 1, repos.NotificationCount())

	assert.Equal(t, []string{domain.EventNewNotification, domain.EventRefreshRequests}, hub.eventNames())
	payload, ok := hub.events[0].payload.(domain.NotificationPayload)
	require.True(t, ok)
	assert.Equal(t, n.ID, payload.ID)
	assert.Equal(t, "Asha", payload.Sender.Name)
	assert.Empty(t, fallback.eventNames())
}

func TestDispatchToOfflineReceiver(t *testing.T) {
	repos := memory.NewRepositories()
	hub := &fakeChannel{available: true, connected: map[string]bool{}}
	fallback := &fakeChannel{}
	d := NewDispatcher(repos.Notifications, hub, fallback, nil)

	_, err := d.Dispatch(context.Background(), input())
	require.NoError(t, err)
	assert.Equal(t, 1, repos.NotificationCount())
	assert.Empty(t, hub.eventNames())
	assert.Empty(t, fallback.eventNames())
}

func TestDispatchWithoutHubUsesFallback(t *testing.T) {
	repos := memory.NewRepositories()
	fallback := &fakeChannel{}
	d := NewDispatcher(repos.Notifications, &fakeChannel{available: false}, fallback, nil)

	_, err := d.Dispatch(context.Background(), input())
	require.NoError(t, err)
	assert.Equal(t, []string{domain.EventNewNotification, domain.EventRefreshRequests}, fallback.eventNames())
	assert.Equal(t, "b", fallback.events[0].userID)
}

func TestDispatchDeliveryFailuresAreSwallowed(t *testing.T) {
	repos := memory.NewRepositories()
	fallback := &fakeChannel{err: errors.New("broker down")}
	d := NewDispatcher(repos.Notifications, &fakeChannel{}, fallback, nil)

	n, err := d.Dispatch(context.Background(), input())
	require.NoError(t, err)
	assert.NotNil(t, n)
	// The refresh signal is not attempted after the first emit fails.
	assert.Equal(t, []string{domain.EventNewNotification}, fallback.eventNames())

	hub := &fakeChannel{available: true, connected: map[string]bool{"b": true}, err: errors.New("write: broken pipe")}
	_, err = NewDispatcher(repos.Notifications, hub, nil, nil).Dispatch(context.Background(), input())
	require.NoError(t, err)
	assert.Equal(t, 2, repos.NotificationCount())
}

func TestDispatchWithNoDeliveryPaths(t *testing.T) {
	repos := memory.NewRepositories()
	_, err := NewDispatcher(repos.Notifications, nil, nil, nil).Dispatch(context.Background(), input())
	require.NoError(t, err)
	assert.Equal(t, 1, repos.NotificationCount())
}

func TestDispatchDeliversAfterCallerCancels(t *testing.T) {
	repos := memory.NewRepositories()
	fallback := &fakeChannel{}
	d := NewDispatcher(repos.Notifications, &fakeChannel{}, fallback, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Dispatch(ctx, input())
	require.NoError(t, err)
	assert.Len(t, fallback.eventNames(), 2)
}

func TestDispatchPersistFailure(t *testing.T) {
	repos := memory.NewRepositories()
	hub := &fakeChannel{available: true, connected: map[string]bool{"b": true}}
	d := NewDispatcher(failingNotifications{repos.Notifications}, hub, nil, nil)

	n, err := d.Dispatch(context.Background(), input())
	assert.Nil(t, n)
	assert.ErrorIs(t, err, domain.ErrDependencyUnavailable)
	assert.Empty(t, hub.eventNames())
}
