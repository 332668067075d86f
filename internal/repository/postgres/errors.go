package postgres

import (
	"errors"
	"fmt"

	"github.com/gdugdh24/roommate-backend/internal/domain"
	"github.com/lib/pq"
)

const foreignKeyViolation = pq.ErrorCode("23503")

// translateWriteError turns a foreign key violation on a user reference into
// domain.ErrUserNotFound. Other errors are returned unchanged.
func translateWriteError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, pqErr.Constraint)
	}
	return err
}
