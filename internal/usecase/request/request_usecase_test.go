package request

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/gdugdh24/roommate-backend/internal/domain"
	"github.com/gdugdh24/roommate-backend/internal/repository"
	"github.com/gdugdh24/roommate-backend/internal/repository/memory"
	"github.com/gdugdh24/roommate-backend/internal/usecase/notification"
	"github.com/gdugdh24/roommate-backend/internal/usecase/quota"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)

type recordingNotifier struct {
	mu     sync.Mutex
	inputs []notification.DispatchInput
	err    error
}

func (n *recordingNotifier) Dispatch(_ context.Context, in notification.DispatchInput) (*domain.Notification, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.inputs = append(n.inputs, in)
	if n.err != nil {
		return nil, n.err
	}
	return &domain.Notification{ID: "n1", ReceiverID: in.ReceiverID}, nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.inputs)
}

type failingMessages struct{}

func (failingMessages) Create(context.Context, *domain.Message) error {
	return errors.New("messages table locked")
}

type failingFind struct {
	repository.MatchRepository
}

func (failingFind) FindOne(context.Context, string, string) (*domain.MatchRequest, error) {
	return nil, errors.New("connection refused")
}

type failingCreate struct {
	repository.MatchRepository
}

func (failingCreate) Create(context.Context, *domain.MatchRequest) error {
	return errors.New("disk full")
}

// barrierMatches holds every FindOne caller until n of them have arrived.
type barrierMatches struct {
	repository.MatchRepository
	arrive sync.WaitGroup
}

func newBarrierMatches(inner repository.MatchRepository, n int) *barrierMatches {
	b := &barrierMatches{MatchRepository: inner}
	b.arrive.Add(n)
	return b
}

func (b *barrierMatches) FindOne(ctx context.Context, senderID, receiverID string) (*domain.MatchRequest, error) {
	found, err := b.MatchRepository.FindOne(ctx, senderID, receiverID)
	b.arrive.Done()
	b.arrive.Wait()
	return found, err
}

// countBarrier holds every CountSince caller until n of them have arrived.
type countBarrier struct {
	repository.MatchRepository
	arrive sync.WaitGroup
}

func newCountBarrier(inner repository.MatchRepository, n int) *countBarrier {
	b := &countBarrier{MatchRepository: inner}
	b.arrive.Add(n)
	return b
}

func (b *countBarrier) CountSince(ctx context.Context, senderID string, from, to time.Time) (int, error) {
	count, err := b.MatchRepository.CountSince(ctx, senderID, from, to)
	b.arrive.Done()
	b.arrive.Wait()
	return count, err
}

type missingReceiverOnCreate struct {
	repository.MatchRepository
}

func (missingReceiverOnCreate) Create(context.Context, *domain.MatchRequest) error {
	return fmt.Errorf("%w: match_requests_receiver_id_fkey", domain.ErrUserNotFound)
}

// vanishingUser resolves id once and reports it missing afterwards.
type vanishingUser struct {
	repository.UserRepository
	id    string
	mu    sync.Mutex
	calls int
}

func (v *vanishingUser) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if id == v.id {
		v.mu.Lock()
		v.calls++
		calls := v.calls
		v.mu.Unlock()
		if calls > 1 {
			return nil, domain.ErrUserNotFound
		}
	}
	return v.UserRepository.GetByID(ctx, id)
}

type fixture struct {
	repos    *memory.Repositories
	notifier *recordingNotifier
	uc       *RequestUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos := memory.NewRepositories()
	repos.SetClock(func() time.Time { return now })
	img := "https://img.example/asha.png"
	repos.AddUser(&domain.User{ID: "a", Name: "Asha", Image: &img})
	repos.AddUser(&domain.User{ID: "b", Name: "Bo"})
	repos.AddUser(&domain.User{ID: "p", Name: "Pat", IsPremium: true})

	f := &fixture{repos: repos, notifier: &recordingNotifier{}}
	f.uc = f.build(repos.Matches, repos.Messages)
	return f
}

func (f *fixture) build(matches repository.MatchRepository, messages repository.MessageRepository) *RequestUseCase {
	return f.buildWithUsers(matches, messages, f.repos.Users)
}

func (f *fixture) buildWithUsers(matches repository.MatchRepository, messages repository.MessageRepository, users repository.UserRepository) *RequestUseCase {
	uc := NewRequestUseCase(matches, messages, users, quota.NewGuard(quota.DefaultDailyLimit, time.UTC), f.notifier, nil)
	uc.now = func() time.Time { return now }
	return uc
}

func strPtr(s string) *string { return &s }

func TestCreateRequestHappyPath(t *testing.T) {
	f := newFixture(t)

	match, err := f.uc.CreateRequest(context.Background(), "a", &CreateMatchRequest{MatchID: "b", Message: strPtr("hey, still looking?")})
	require.NoError(t, err)
	assert.Equal(t, "a", match.SenderID)
	assert.Equal(t, "b", match.ReceiverID)
	assert.Equal(t, domain.MatchStatusPending, match.Status)
	assert.NotEmpty(t, match.ID)

	assert.Equal(t, 1, f.repos.MatchCount())
	assert.Equal(t, 1, f.repos.MessageCount())
	require.Equal(t, 1, f.notifier.count())
	in := f.notifier.inputs[0]
	assert.Equal(t, domain.NotificationTypeMatchRequest, in.Type)
	assert.Equal(t, "Asha sent you a match request.", in.Message)
	assert.Equal(t, "b", in.ReceiverID)
	assert.Equal(t, "Asha", in.SenderName)
	require.NotNil(t, in.SenderImage)
}

func TestCreateRequestValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.CreateRequest(ctx, "", &CreateMatchRequest{MatchID: "b"})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = f.uc.CreateRequest(ctx, "a", &CreateMatchRequest{MatchID: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	_, err = f.uc.CreateRequest(ctx, "a", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	_, err = f.uc.CreateRequest(ctx, "a", &CreateMatchRequest{MatchID: "a"})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	_, err = f.uc.CreateRequest(ctx, "ghost", &CreateMatchRequest{MatchID: "b"})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	assert.Zero(t, f.repos.MatchCount())
}

func TestCreateRequestDuplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.CreateRequest(ctx, "a", &CreateMatchRequest{MatchID: "b"})
	require.NoError(t, err)

	_, err = f.uc.CreateRequest(ctx, "a", &CreateMatchRequest{MatchID: "b"})
	assert.ErrorIs(t, err, domain.ErrDuplicateRequest)
	assert.Equal(t, 1, f.repos.MatchCount())

	// The reverse direction is a different pair.
	_, err = f.uc.CreateRequest(ctx, "b", &CreateMatchRequest{MatchID: "a"})
	require.NoError(t, err)
	assert.Equal(t, 2, f.repos.MatchCount())
}

func TestCreateRequestQuotaExceeded(t *testing.T) {
	f := newFixture(t)
	for i, receiver := range []string{"x1", "x2", "x3"} {
		f.repos.AddMatch(domain.MatchRequest{
			SenderID:   "a",
			ReceiverID: receiver,
			Status:     domain.MatchStatusPending,
			CreatedAt:  now.Add(-time.Duration(i+1) * time.Hour),
		})
	}

	_, err := f.uc.CreateRequest(context.Background(), "a", &CreateMatchRequest{MatchID: "b", Message: strPtr("hi")})
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
	assert.Equal(t, domain.KindQuotaExceeded, domain.KindOf(err))
	assert.Equal(t, 3, f.repos.MatchCount())
	assert.Zero(t, f.repos.MessageCount())
	assert.Zero(t, f.notifier.count())
}

func TestCreateRequestQuotaIgnoresEarlierDays(t *testing.T) {
	f := newFixture(t)
	yesterday := now.Add(-24 * time.Hour)
	for _, receiver := range []string{"x1", "x2", "x3", "x4"} {
		f.repos.AddMatch(domain.MatchRequest{SenderID: "a", ReceiverID: receiver, CreatedAt: yesterday})
	}

	_, err := f.uc.CreateRequest(context.Background(), "a", &CreateMatchRequest{MatchID: "b"})
	require.NoError(t, err)
}

func TestCreateRequestPremiumBypassesQuota(t *testing.T) {
	f := newFixture(t)
	for _, receiver := range []string{"x1", "x2", "x3", "x4", "x5"} {
		f.repos.AddMatch(domain.MatchRequest{SenderID: "p", ReceiverID: receiver, CreatedAt: now.Add(-time.Minute)})
	}

	_, err := f.uc.CreateRequest(context.Background(), "p", &CreateMatchRequest{MatchID: "b"})
	require.NoError(t, err)
	assert.Equal(t, 6, f.repos.MatchCount())
}

func TestCreateRequestWhitespaceMessage(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CreateRequest(context.Background(), "a", &CreateMatchRequest{MatchID: "b", Message: strPtr(" \t\n ")})
	require.NoError(t, err)
	assert.Equal(t, 1, f.repos.MatchCount())
	assert.Zero(t, f.repos.MessageCount())
}

func TestCreateRequestMessageFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	uc := f.build(f.repos.Matches, failingMessages{})

	match, err := uc.CreateRequest(context.Background(), "a", &CreateMatchRequest{MatchID: "b", Message: strPtr("hello")})
	require.NoError(t, err)
	assert.NotNil(t, match)
	assert.Equal(t, 1, f.notifier.count())
}

func TestCreateRequestUnknownReceiver(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CreateRequest(context.Background(), "a", &CreateMatchRequest{MatchID: "deleted-user"})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	assert.Equal(t, domain.KindInvalidRequest, domain.KindOf(err))
	assert.Zero(t, f.repos.MatchCount())
	assert.Zero(t, f.notifier.count())
}

func TestCreateRequestReceiverRejectedByStore(t *testing.T) {
	f := newFixture(t)
	uc := f.build(missingReceiverOnCreate{f.repos.Matches}, f.repos.Messages)

	_, err := uc.CreateRequest(context.Background(), "a", &CreateMatchRequest{MatchID: "b"})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	assert.NotErrorIs(t, err, domain.ErrDependencyUnavailable)
	assert.Equal(t, domain.KindInvalidRequest, domain.KindOf(err))
	assert.Zero(t, f.notifier.count())
}

func TestCreateRequestSkipsNotificationWhenReceiverVanishes(t *testing.T) {
	f := newFixture(t)
	uc := f.buildWithUsers(f.repos.Matches, f.repos.Messages, &vanishingUser{UserRepository: f.repos.Users, id: "b"})

	match, err := uc.CreateRequest(context.Background(), "a", &CreateMatchRequest{MatchID: "b"})
	require.NoError(t, err)
	assert.NotNil(t, match)
	assert.Equal(t, 1, f.repos.MatchCount())
	assert.Zero(t, f.notifier.count())
}

func TestCreateRequestNotificationFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = domain.Unavailable("create notification", errors.New("timeout"))

	_, err := f.uc.CreateRequest(context.Background(), "a", &CreateMatchRequest{MatchID: "b"})
	require.NoError(t, err)
	assert.Equal(t, 1, f.repos.MatchCount())
}

func TestCreateRequestDependencyFailures(t *testing.T) {
	f := newFixture(t)

	_, err := f.build(failingFind{f.repos.Matches}, f.repos.Messages).
		CreateRequest(context.Background(), "a", &CreateMatchRequest{MatchID: "b"})
	assert.ErrorIs(t, err, domain.ErrDependencyUnavailable)
	assert.Equal(t, domain.KindDependencyUnavailable, domain.KindOf(err))

	_, err = f.build(failingCreate{f.repos.Matches}, f.repos.Messages).
		CreateRequest(context.Background(), "a", &CreateMatchRequest{MatchID: "b"})
	assert.ErrorIs(t, err, domain.ErrDependencyUnavailable)
	assert.Zero(t, f.notifier.count())
}

// Both calls pass the duplicate check before either persists, so both rows
// are stored. The workflow has no guard against this.
func TestCreateRequestConcurrentDuplicatesBothPersist(t *testing.T) {
	f := newFixture(t)
	uc := f.build(newBarrierMatches(f.repos.Matches, 2), f.repos.Messages)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.CreateRequest(context.Background(), "a", &CreateMatchRequest{MatchID: "b"})
		}(i)
	}
	wg.Wait()

	assert.NoError(t, errs[0])
	assert.NoError(t, errs[1])
	assert.Equal(t, 2, f.repos.MatchCount())
}

// Both calls read a count below the limit before either persists, so the
// sender ends the day one request over the quota.
func TestCreateRequestConcurrentQuotaChecksBothPersist(t *testing.T) {
	f := newFixture(t)
	for _, receiver := range []string{"x1", "x2"} {
		f.repos.AddMatch(domain.MatchRequest{SenderID: "a", ReceiverID: receiver, CreatedAt: now.Add(-time.Hour)})
	}
	uc := f.build(newCountBarrier(f.repos.Matches, 2), f.repos.Messages)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, receiver := range []string{"b", "p"} {
		wg.Add(1)
		go func(i int, receiver string) {
			defer wg.Done()
			_, errs[i] = uc.CreateRequest(context.Background(), "a", &CreateMatchRequest{MatchID: receiver})
		}(i, receiver)
	}
	wg.Wait()

	assert.NoError(t, errs[0])
	assert.NoError(t, errs[1])
	assert.Equal(t, 4, f.repos.MatchCount())
}

func TestListPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.uc.CreateRequest(ctx, "a", &CreateMatchRequest{MatchID: "b"})
	require.NoError(t, err)
	_, err = f.uc.CreateRequest(ctx, "p", &CreateMatchRequest{MatchID: "b"})
	require.NoError(t, err)
	f.repos.AddMatch(domain.MatchRequest{SenderID: "gone", ReceiverID: "b", Status: domain.MatchStatusPending})
	f.repos.AddMatch(domain.MatchRequest{SenderID: "a", ReceiverID: "p", Status: domain.MatchStatusPending})

	resp, err := f.uc.ListPending(ctx, "b")
	require.NoError(t, err)
	require.Len(t, resp.Requests, 2)
	senders := []string{resp.Requests[0].Sender.Name, resp.Requests[1].Sender.Name}
	assert.ElementsMatch(t, []string{"Asha", "Pat"}, senders)

	_, err = f.uc.ListPending(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
