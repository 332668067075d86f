package repository

import (
	"context"

	"github.com/gdugdh24/roommate-backend/internal/domain"
)

type UserRepository interface {
	// GetByID returns the user with preferences attached when present.
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// ListWithPreferences returns every user except those in excludeIDs,
	// each with preferences attached when present.
	ListWithPreferences(ctx context.Context, excludeIDs []string) ([]*domain.User, error)
}

type PreferencesRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.Preferences, error)
	Upsert(ctx context.Context, prefs *domain.Preferences) error
}

// AccountRepository removes a user and everything that references them.
type AccountRepository interface {
	DeleteAccount(ctx context.Context, userID string) error
}
