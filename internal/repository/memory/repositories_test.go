package memory

import (
	"context"
	"testing"
	"time"

	"github.com/gdugdh24/roommate-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountSinceIsInclusive(t *testing.T) {
	repos := NewRepositories()
	from := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(24*time.Hour - time.Nanosecond)
	for _, at := range []time.Time{from.Add(-time.Nanosecond), from, to, to.Add(time.Nanosecond)} {
		repos.AddMatch(domain.MatchRequest{SenderID: "a", ReceiverID: "b", CreatedAt: at})
	}

	count, err := repos.Matches.CountSince(context.Background(), "a", from, to)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestListWithPreferencesExcludesAndSorts(t *testing.T) {
	repos := NewRepositories()
	for _, id := range []string{"c", "a", "b"} {
		repos.AddUser(&domain.User{ID: id, Preferences: &domain.Preferences{Cooking: domain.CookingVegan}})
	}
	repos.AddUser(&domain.User{ID: "d"})

	users, err := repos.Users.ListWithPreferences(context.Background(), []string{"b"})
	require.NoError(t, err)
	ids := []string{}
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	assert.Equal(t, []string{"a", "c", "d"}, ids)
	assert.Equal(t, "a", users[0].Preferences.UserID)
	assert.Nil(t, users[2].Preferences)
}

func TestListCounterpartIDsBothDirections(t *testing.T) {
	repos := NewRepositories()
	repos.AddMatch(domain.MatchRequest{SenderID: "a", ReceiverID: "b"})
	repos.AddMatch(domain.MatchRequest{SenderID: "b", ReceiverID: "a"})
	repos.AddMatch(domain.MatchRequest{SenderID: "c", ReceiverID: "a"})
	repos.AddMatch(domain.MatchRequest{SenderID: "c", ReceiverID: "d"})

	ids, err := repos.Matches.ListCounterpartIDs(context.Background(), "a")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"b", "c"}, ids)
}
