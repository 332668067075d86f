package preferences

import (
	"context"
	"errors"
	"strings"

	"github.com/gdugdh24/roommate-backend/internal/domain"
	"github.com/gdugdh24/roommate-backend/internal/repository"
)

type PreferencesUseCase struct {
	prefsRepo repository.PreferencesRepository
	userRepo  repository.UserRepository
}

func NewPreferencesUseCase(
	prefsRepo repository.PreferencesRepository,
	userRepo repository.UserRepository,
) *PreferencesUseCase {
	return &PreferencesUseCase{
		prefsRepo: prefsRepo,
		userRepo:  userRepo,
	}
}

// UpdatePreferencesRequest is the full preference record of the caller.
// cooking_style and gender_preference are validators registered by the HTTP
// layer.
type UpdatePreferencesRequest struct {
	PreferredLocation  string `json:"preferredLocation" binding:"required,max=120"`
	MinBudget          int    `json:"minBudget" binding:"gte=0"`
	MaxBudget          int    `json:"maxBudget" binding:"gtefield=MinBudget"`
	MinAge             int    `json:"minAge" binding:"gte=18,lte=120"`
	MaxAge             int    `json:"maxAge" binding:"gtefield=MinAge,lte=120"`
	Occupation         string `json:"occupation" binding:"required,max=80"`
	GenderPreference   string `json:"genderPreference" binding:"required,gender_preference"`
	Smoking            bool   `json:"smoking"`
	Drinking           bool   `json:"drinking"`
	Cooking            string `json:"cooking" binding:"required,cooking_style"`
	CommunicationStyle string `json:"communicationStyle" binding:"required,max=40"`
	SocialEnergyLevel  string `json:"socialEnergyLevel" binding:"required,max=40"`
}

func (uc *PreferencesUseCase) GetMine(ctx context.Context, userID string) (*domain.Preferences, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	prefs, err := uc.prefsRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrPreferencesNotFound) {
			return nil, domain.ErrMissingPreferences
		}
		return nil, domain.Unavailable("get preferences", err)
	}
	return prefs, nil
}

// Upsert replaces the caller's preferences. Only the owner can reach this.
func (uc *PreferencesUseCase) Upsert(ctx context.Context, userID string, req *UpdatePreferencesRequest) (*domain.Preferences, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if req.MaxBudget < req.MinBudget || req.MaxAge < req.MinAge {
		return nil, domain.ErrInvalidRequest
	}
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, domain.Unavailable("get user", err)
	}

	prefs := &domain.Preferences{
		UserID:             userID,
		PreferredLocation:  strings.TrimSpace(req.PreferredLocation),
		MinBudget:          req.MinBudget,
		MaxBudget:          req.MaxBudget,
		MinAge:             req.MinAge,
		MaxAge:             req.MaxAge,
		Occupation:         strings.TrimSpace(req.Occupation),
		GenderPreference:   req.GenderPreference,
		Smoking:            req.Smoking,
		Drinking:           req.Drinking,
		Cooking:            req.Cooking,
		CommunicationStyle: strings.TrimSpace(req.CommunicationStyle),
		SocialEnergyLevel:  strings.TrimSpace(req.SocialEnergyLevel),
	}
	if err := uc.prefsRepo.Upsert(ctx, prefs); err != nil {
		return nil, domain.Unavailable("upsert preferences", err)
	}
	return prefs, nil
}
