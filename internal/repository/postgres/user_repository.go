package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gdugdh24/roommate-backend/internal/domain"
	"github.com/gdugdh24/roommate-backend/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// userRow is a user left-joined with its preferences. Preference columns are
// nullable because the join may not match.
type userRow struct {
	domain.User
	PrefID             sql.NullString `db:"pref_id"`
	PreferredLocation  sql.NullString `db:"preferred_location"`
	MinBudget          sql.NullInt64  `db:"min_budget"`
	MaxBudget          sql.NullInt64  `db:"max_budget"`
	MinAge             sql.NullInt64  `db:"min_age"`
	MaxAge             sql.NullInt64  `db:"max_age"`
	Occupation         sql.NullString `db:"occupation"`
	GenderPreference   sql.NullString `db:"gender_preference"`
	Smoking            sql.NullBool   `db:"smoking"`
	Drinking           sql.NullBool   `db:"drinking"`
	Cooking            sql.NullString `db:"cooking"`
	CommunicationStyle sql.NullString `db:"communication_style"`
	SocialEnergyLevel  sql.NullString `db:"social_energy_level"`
	PrefUpdatedAt      sql.NullTime   `db:"pref_updated_at"`
}

func (row *userRow) toDomain() *domain.User {
	user := row.User
	if row.PrefID.Valid {
		user.Preferences = &domain.Preferences{
			ID:                 row.PrefID.String,
			UserID:             user.ID,
			PreferredLocation:  row.PreferredLocation.String,
			MinBudget:          int(row.MinBudget.Int64),
			MaxBudget:          int(row.MaxBudget.Int64),
			MinAge:             int(row.MinAge.Int64),
			MaxAge:             int(row.MaxAge.Int64),
			Occupation:         row.Occupation.String,
			GenderPreference:   row.GenderPreference.String,
			Smoking:            row.Smoking.Bool,
			Drinking:           row.Drinking.Bool,
			Cooking:            row.Cooking.String,
			CommunicationStyle: row.CommunicationStyle.String,
			SocialEnergyLevel:  row.SocialEnergyLevel.String,
			UpdatedAt:          row.PrefUpdatedAt.Time,
		}
	}
	return &user
}

const userWithPreferencesQuery = `
	SELECT u.id, u.name, u.email, u.image, u.bio, u.sex, u.role, u.is_premium, u.created_at,
	       p.id AS pref_id, p.preferred_location, p.min_budget, p.max_budget,
	       p.min_age, p.max_age, p.occupation, p.gender_preference,
	       p.smoking, p.drinking, p.cooking, p.communication_style,
	       p.social_energy_level, p.updated_at AS pref_updated_at
	FROM users u
	LEFT JOIN preferences p ON p.user_id = u.id
`

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row, userWithPreferencesQuery+` WHERE u.id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *userRepository) ListWithPreferences(ctx context.Context, excludeIDs []string) ([]*domain.User, error) {
	if excludeIDs == nil {
		excludeIDs = []string{}
	}
	var rows []userRow
	query := userWithPreferencesQuery + ` WHERE NOT (u.id = ANY($1)) ORDER BY u.id`
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(excludeIDs)); err != nil {
		return nil, err
	}

	users := make([]*domain.User, 0, len(rows))
	for i := range rows {
		users = append(users, rows[i].toDomain())
	}
	return users, nil
}
