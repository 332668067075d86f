package matching

import (
	"context"
	"errors"

	"github.com/gdugdh24/roommate-backend/internal/domain"
	"github.com/gdugdh24/roommate-backend/internal/repository"
)

type MatchingUseCase struct {
	userRepo  repository.UserRepository
	matchRepo repository.MatchRepository
	describer *Describer
}

func NewMatchingUseCase(
	userRepo repository.UserRepository,
	matchRepo repository.MatchRepository,
	describer *Describer,
) *MatchingUseCase {
	return &MatchingUseCase{
		userRepo:  userRepo,
		matchRepo: matchRepo,
		describer: describer,
	}
}

// MatchesResponse is the discovery result for a seeker
type MatchesResponse struct {
	Matches       []Candidate `json:"matches"`
	AIDescription string      `json:"aiDescription"`
}

// FindMatches returns the ranked candidates for userID. Anyone with a prior
// request in either direction is excluded from the pool.
func (uc *MatchingUseCase) FindMatches(ctx context.Context, userID string) (*MatchesResponse, error) {
	seeker, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrMissingPreferences
		}
		return nil, domain.Unavailable("get seeker", err)
	}
	if !seeker.HasPreferences() {
		return nil, domain.ErrMissingPreferences
	}

	excluded, err := uc.matchRepo.ListCounterpartIDs(ctx, userID)
	if err != nil {
		return nil, domain.Unavailable("list counterparts", err)
	}
	excluded = append(excluded, userID)

	pool, err := uc.userRepo.ListWithPreferences(ctx, excluded)
	if err != nil {
		return nil, domain.Unavailable("list candidate pool", err)
	}

	candidates, err := FindCandidates(seeker, pool)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, c.User.Name)
	}

	return &MatchesResponse{
		Matches:       candidates,
		AIDescription: uc.describer.Describe(ctx, seeker.Preferences, names),
	}, nil
}

// GetMatchDetails returns a user with preferences for a match detail view.
func (uc *MatchingUseCase) GetMatchDetails(ctx context.Context, userID string) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, domain.Unavailable("get user", err)
	}
	return user, nil
}
