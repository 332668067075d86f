package matching

import (
	"sort"

	"github.com/gdugdh24/roommate-backend/internal/domain"
)

// MatchThreshold is the minimum score for a candidate to count as a match.
const MatchThreshold = 6

// CriteriaCount is the number of independent, equally weighted checks.
const CriteriaCount = 10

// Candidate is a scored user from the candidate pool.
type Candidate struct {
	User  *domain.User `json:"user"`
	Score int          `json:"score"`
}

// Score counts the criteria the candidate satisfies against the seeker's
// preferences. Each check is evaluated independently.
func Score(me *domain.Preferences, candidate *domain.User) int {
	them := candidate.Preferences
	checks := [CriteriaCount]bool{
		them.PreferredLocation == me.PreferredLocation,
		me.BudgetOverlaps(them),
		them.Occupation == me.Occupation,
		them.Smoking == me.Smoking,
		them.Drinking == me.Drinking,
		me.AcceptsSex(candidate.Sex),
		them.CommunicationStyle == me.CommunicationStyle,
		them.SocialEnergyLevel == me.SocialEnergyLevel,
		me.AgeOverlaps(them),
		me.CookingCompatible(them),
	}

	score := 0
	for _, ok := range checks {
		if ok {
			score++
		}
	}
	return score
}

// FindCandidates scores the pool against seeker and returns the candidates at
// or above MatchThreshold, best first. Ties are ordered by user ID so the
// result is stable for unchanged input. The seeker and users without
// preferences are never scored.
func FindCandidates(seeker *domain.User, pool []*domain.User) ([]Candidate, error) {
	if !seeker.HasPreferences() {
		return nil, domain.ErrMissingPreferences
	}

	candidates := []Candidate{}
	for _, user := range pool {
		if user.ID == seeker.ID || !user.HasPreferences() {
			continue
		}
		score := Score(seeker.Preferences, user)
		if score < MatchThreshold {
			continue
		}
		candidates = append(candidates, Candidate{User: user, Score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].User.ID < candidates[j].User.ID
	})

	return candidates, nil
}
