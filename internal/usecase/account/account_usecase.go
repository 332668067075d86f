package account

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gdugdh24/roommate-backend/internal/domain"
	"github.com/gdugdh24/roommate-backend/internal/repository"
)

type AccountUseCase struct {
	accountRepo repository.AccountRepository
	logger      *slog.Logger
}

func NewAccountUseCase(accountRepo repository.AccountRepository, logger *slog.Logger) *AccountUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountUseCase{accountRepo: accountRepo, logger: logger}
}

// DeleteAccount removes the user together with every notification, message,
// match request and preference record that references them.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, userID string) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}
	if err := uc.accountRepo.DeleteAccount(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUnauthenticated
		}
		return domain.Unavailable("delete account", err)
	}
	uc.logger.InfoContext(ctx, "account deleted", "user_id", userID)
	return nil
}
