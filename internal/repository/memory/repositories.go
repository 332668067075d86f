// Package memory holds in-process repository implementations used for local
// runs (STORAGE_TYPE=memory) and as fakes in tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gdugdh24/roommate-backend/internal/domain"
	"github.com/gdugdh24/roommate-backend/internal/repository"
	"github.com/google/uuid"
)

type state struct {
	mu            sync.RWMutex
	now           func() time.Time
	users         map[string]domain.User
	preferences   map[string]domain.Preferences
	matches       []domain.MatchRequest
	messages      []domain.Message
	notifications []domain.Notification
}

type Repositories struct {
	Users         repository.UserRepository
	Preferences   repository.PreferencesRepository
	Matches       repository.MatchRepository
	Messages      repository.MessageRepository
	Notifications repository.NotificationRepository
	Accounts      repository.AccountRepository

	state *state
}

func NewRepositories() *Repositories {
	s := &state{
		now:         time.Now,
		users:       make(map[string]domain.User),
		preferences: make(map[string]domain.Preferences),
	}
	return &Repositories{
		Users:         &userRepository{s},
		Preferences:   &preferencesRepository{s},
		Matches:       &matchRepository{s},
		Messages:      &messageRepository{s},
		Notifications: &notificationRepository{s},
		Accounts:      &accountRepository{s},
		state:         s,
	}
}

// SetClock replaces the clock used for created_at timestamps.
func (r *Repositories) SetClock(now func() time.Time) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	r.state.now = now
}

// AddUser stores u and, when present, its preferences.
func (r *Repositories) AddUser(u *domain.User) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = r.state.now()
	}
	stored := *u
	stored.Preferences = nil
	r.state.users[u.ID] = stored
	if u.Preferences != nil {
		p := *u.Preferences
		p.UserID = u.ID
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		r.state.preferences[u.ID] = p
	}
}

// AddMatch stores m as-is, keeping its CreatedAt when set.
func (r *Repositories) AddMatch(m domain.MatchRequest) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = r.state.now()
	}
	r.state.matches = append(r.state.matches, m)
}

func (r *Repositories) MatchCount() int {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()
	return len(r.state.matches)
}

func (r *Repositories) MessageCount() int {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()
	return len(r.state.messages)
}

func (r *Repositories) NotificationCount() int {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()
	return len(r.state.notifications)
}

func (s *state) userWithPreferences(id string) (*domain.User, bool) {
	u, ok := s.users[id]
	if !ok {
		return nil, false
	}
	if p, ok := s.preferences[id]; ok {
		u.Preferences = &p
	}
	return &u, true
}

type userRepository struct{ s *state }

func (r *userRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.userWithPreferences(id)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *userRepository) ListWithPreferences(_ context.Context, excludeIDs []string) ([]*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	excluded := make(map[string]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}
	users := make([]*domain.User, 0, len(r.s.users))
	for id := range r.s.users {
		if _, skip := excluded[id]; skip {
			continue
		}
		u, _ := r.s.userWithPreferences(id)
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

type preferencesRepository struct{ s *state }

func (r *preferencesRepository) GetByUserID(_ context.Context, userID string) (*domain.Preferences, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.preferences[userID]
	if !ok {
		return nil, domain.ErrPreferencesNotFound
	}
	return &p, nil
}

func (r *preferencesRepository) Upsert(_ context.Context, prefs *domain.Preferences) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if existing, ok := r.s.preferences[prefs.UserID]; ok {
		prefs.ID = existing.ID
	}
	if prefs.ID == "" {
		prefs.ID = uuid.NewString()
	}
	prefs.UpdatedAt = r.s.now()
	r.s.preferences[prefs.UserID] = *prefs
	return nil
}

type matchRepository struct{ s *state }

// Create rejects unknown users the way the postgres foreign keys do.
func (r *matchRepository) Create(_ context.Context, match *domain.MatchRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[match.SenderID]; !ok {
		return domain.ErrUserNotFound
	}
	if _, ok := r.s.users[match.ReceiverID]; !ok {
		return domain.ErrUserNotFound
	}
	if match.ID == "" {
		match.ID = uuid.NewString()
	}
	if match.Status == "" {
		match.Status = domain.MatchStatusPending
	}
	match.CreatedAt = r.s.now()
	r.s.matches = append(r.s.matches, *match)
	return nil
}

func (r *matchRepository) FindOne(_ context.Context, senderID, receiverID string) (*domain.MatchRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, m := range r.s.matches {
		if m.SenderID == senderID && m.ReceiverID == receiverID {
			return &m, nil
		}
	}
	return nil, domain.ErrMatchNotFound
}

func (r *matchRepository) CountSince(_ context.Context, senderID string, from, to time.Time) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	count := 0
	for _, m := range r.s.matches {
		if m.SenderID == senderID && !m.CreatedAt.Before(from) && !m.CreatedAt.After(to) {
			count++
		}
	}
	return count, nil
}

func (r *matchRepository) ListPendingForReceiver(_ context.Context, receiverID string) ([]*domain.MatchRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*domain.MatchRequest{}
	for _, m := range r.s.matches {
		if m.ReceiverID == receiverID && m.Status == domain.MatchStatusPending {
			m := m
			out = append(out, &m)
		}
	}
	return out, nil
}

func (r *matchRepository) ListCounterpartIDs(_ context.Context, userID string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	seen := make(map[string]struct{})
	ids := []string{}
	for _, m := range r.s.matches {
		other, ok := m.GetOtherUserID(userID)
		if !ok {
			continue
		}
		if _, dup := seen[other]; dup {
			continue
		}
		seen[other] = struct{}{}
		ids = append(ids, other)
	}
	return ids, nil
}

type messageRepository struct{ s *state }

func (r *messageRepository) Create(_ context.Context, msg *domain.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	r.s.messages = append(r.s.messages, *msg)
	return nil
}

type notificationRepository struct{ s *state }

func (r *notificationRepository) Create(_ context.Context, n *domain.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n.ID = uuid.NewString()
	n.CreatedAt = r.s.now()
	n.Read = false
	r.s.notifications = append(r.s.notifications, *n)
	return nil
}

func (r *notificationRepository) ListByReceiver(_ context.Context, receiverID string, limit, offset int) ([]*domain.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := []*domain.Notification{}
	for i := len(r.s.notifications) - 1; i >= 0; i-- {
		n := r.s.notifications[i]
		if n.ReceiverID == receiverID {
			all = append(all, &n)
		}
	}
	if offset >= len(all) {
		return []*domain.Notification{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *notificationRepository) CountUnread(_ context.Context, receiverID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	count := 0
	for _, n := range r.s.notifications {
		if n.ReceiverID == receiverID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *notificationRepository) MarkRead(_ context.Context, id, receiverID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.notifications {
		if r.s.notifications[i].ID == id && r.s.notifications[i].ReceiverID == receiverID {
			r.s.notifications[i].Read = true
			return nil
		}
	}
	return domain.ErrNotificationNotFound
}

type accountRepository struct{ s *state }

func (r *accountRepository) DeleteAccount(_ context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[userID]; !ok {
		return domain.ErrUserNotFound
	}

	notifications := r.s.notifications[:0]
	for _, n := range r.s.notifications {
		if n.SenderID != userID && n.ReceiverID != userID {
			notifications = append(notifications, n)
		}
	}
	r.s.notifications = notifications

	messages := r.s.messages[:0]
	for _, m := range r.s.messages {
		if m.SenderID != userID && m.ReceiverID != userID {
			messages = append(messages, m)
		}
	}
	r.s.messages = messages

	matches := r.s.matches[:0]
	for _, m := range r.s.matches {
		if !m.HasUser(userID) {
			matches = append(matches, m)
		}
	}
	r.s.matches = matches

	delete(r.s.preferences, userID)
	delete(r.s.users, userID)
	return nil
}
