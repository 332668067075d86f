package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gdugdh24/roommate-backend/internal/domain"
	"github.com/gdugdh24/roommate-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type preferencesRepository struct {
	db *sqlx.DB
}

func NewPreferencesRepository(db *sqlx.DB) repository.PreferencesRepository {
	return &preferencesRepository{db: db}
}

func (r *preferencesRepository) GetByUserID(ctx context.Context, userID string) (*domain.Preferences, error) {
	var prefs domain.Preferences
	query := `
		SELECT id, user_id, preferred_location, min_budget, max_budget, min_age, max_age,
		       occupation, gender_preference, smoking, drinking, cooking,
		       communication_style, social_energy_level, updated_at
		FROM preferences WHERE user_id = $1
	`
	err := r.db.GetContext(ctx, &prefs, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPreferencesNotFound
		}
		return nil, err
	}
	return &prefs, nil
}

func (r *preferencesRepository) Upsert(ctx context.Context, prefs *domain.Preferences) error {
	if prefs.ID == "" {
		prefs.ID = uuid.NewString()
	}
	query := `
		INSERT INTO preferences (
			id, user_id, preferred_location, min_budget, max_budget, min_age, max_age,
			occupation, gender_preference, smoking, drinking, cooking,
			communication_style, social_energy_level
		)
		VALUES (:id, :user_id, :preferred_location, :min_budget, :max_budget, :min_age, :max_age,
			:occupation, :gender_preference, :smoking, :drinking, :cooking,
			:communication_style, :social_energy_level)
		ON CONFLICT (user_id) DO UPDATE SET
			preferred_location = EXCLUDED.preferred_location,
			min_budget = EXCLUDED.min_budget, max_budget = EXCLUDED.max_budget,
			min_age = EXCLUDED.min_age, max_age = EXCLUDED.max_age,
			occupation = EXCLUDED.occupation, gender_preference = EXCLUDED.gender_preference,
			smoking = EXCLUDED.smoking, drinking = EXCLUDED.drinking, cooking = EXCLUDED.cooking,
			communication_style = EXCLUDED.communication_style,
			social_energy_level = EXCLUDED.social_energy_level,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id, updated_at
	`
	rows, err := r.db.NamedQueryContext(ctx, query, prefs)
	if err != nil {
		return err
	}
	defer rows.Close()
	if rows.Next() {
		return rows.Scan(&prefs.ID, &prefs.UpdatedAt)
	}
	return rows.Err()
}
