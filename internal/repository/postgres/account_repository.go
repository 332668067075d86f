package postgres

import (
	"context"
	"fmt"

	"github.com/gdugdh24/roommate-backend/internal/domain"
	"github.com/gdugdh24/roommate-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

type accountRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// DeleteAccount removes dependents before the user row, in one transaction.
func (r *accountRepository) DeleteAccount(ctx context.Context, userID string) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	steps := []struct {
		name  string
		query string
	}{
		{"notifications", `DELETE FROM notifications WHERE sender_id = $1 OR receiver_id = $1`},
		{"messages", `DELETE FROM messages WHERE sender_id = $1 OR receiver_id = $1`},
		{"match requests", `DELETE FROM match_requests WHERE sender_id = $1 OR receiver_id = $1`},
		{"preferences", `DELETE FROM preferences WHERE user_id = $1`},
	}
	for _, step := range steps {
		if _, err = tx.ExecContext(ctx, step.query, userID); err != nil {
			return fmt.Errorf("failed to delete %s: %w", step.name, err)
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		err = domain.ErrUserNotFound
		return err
	}

	return tx.Commit()
}
