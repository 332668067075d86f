package domain

import "errors"

var (
	ErrUnauthenticated       = errors.New("unauthenticated")
	ErrInvalidRequest        = errors.New("invalid request")
	ErrDuplicateRequest      = errors.New("request already sent")
	ErrQuotaExceeded         = errors.New("daily request limit reached")
	ErrMissingPreferences    = errors.New("preferences not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	ErrUserNotFound         = errors.New("user not found")
	ErrMatchNotFound        = errors.New("match request not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrPreferencesNotFound  = errors.New("preferences record not found")
	ErrInvalidToken         = errors.New("invalid token")
)

type Kind string

const (
	KindUnauthenticated       Kind = "Unauthenticated"
	KindInvalidRequest        Kind = "InvalidRequest"
	KindDuplicateRequest      Kind = "DuplicateRequest"
	KindQuotaExceeded         Kind = "QuotaExceeded"
	KindMissingPreferences    Kind = "MissingPreferences"
	KindNotFound              Kind = "NotFound"
	KindDependencyUnavailable Kind = "DependencyUnavailable"
)

// KindOf classifies err. Anything unrecognized is treated as a dependency
// failure so callers never see raw store errors.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrUnauthenticated), errors.Is(err, ErrInvalidToken):
		return KindUnauthenticated
	case errors.Is(err, ErrInvalidRequest):
		return KindInvalidRequest
	case errors.Is(err, ErrDuplicateRequest):
		return KindDuplicateRequest
	case errors.Is(err, ErrQuotaExceeded):
		return KindQuotaExceeded
	case errors.Is(err, ErrMissingPreferences):
		return KindMissingPreferences
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrMatchNotFound),
		errors.Is(err, ErrNotificationNotFound), errors.Is(err, ErrPreferencesNotFound):
		return KindNotFound
	default:
		return KindDependencyUnavailable
	}
}

// Unavailable marks err as a dependency failure while keeping the cause.
func Unavailable(op string, err error) error {
	return &DependencyError{Op: op, Err: err}
}

type DependencyError struct {
	Op  string
	Err error
}

func (e *DependencyError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *DependencyError) Unwrap() []error {
	return []error{ErrDependencyUnavailable, e.Err}
}
