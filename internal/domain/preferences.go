package domain

import "time"

const (
	CookingFlexible    = "Flexible"
	CookingVegetarian  = "Vegetarian"
	CookingVegan       = "Vegan"
	CookingNonVeg      = "Non-Vegetarian"
	GenderNoPreference = "No Preference"
)

// CookingStyles lists the accepted cooking styles. Flexible is compatible with
// every other style.
var CookingStyles = []string{CookingFlexible, CookingVegetarian, CookingVegan, CookingNonVeg}

// Preferences holds the normalized matching attributes of one user.
type Preferences struct {
	ID                 string    `json:"id" db:"id"`
	UserID             string    `json:"userId" db:"user_id"`
	PreferredLocation  string    `json:"preferredLocation" db:"preferred_location"`
	MinBudget          int       `json:"minBudget" db:"min_budget"`
	MaxBudget          int       `json:"maxBudget" db:"max_budget"`
	MinAge             int       `json:"minAge" db:"min_age"`
	MaxAge             int       `json:"maxAge" db:"max_age"`
	Occupation         string    `json:"occupation" db:"occupation"`
	GenderPreference   string    `json:"genderPreference" db:"gender_preference"`
	Smoking            bool      `json:"smoking" db:"smoking"`
	Drinking           bool      `json:"drinking" db:"drinking"`
	Cooking            string    `json:"cooking" db:"cooking"`
	CommunicationStyle string    `json:"communicationStyle" db:"communication_style"`
	SocialEnergyLevel  string    `json:"socialEnergyLevel" db:"social_energy_level"`
	UpdatedAt          time.Time `json:"updatedAt" db:"updated_at"`
}

func (p *Preferences) BudgetOverlaps(other *Preferences) bool {
	return other.MinBudget <= p.MaxBudget && other.MaxBudget >= p.MinBudget
}

func (p *Preferences) AgeOverlaps(other *Preferences) bool {
	return other.MinAge <= p.MaxAge && other.MaxAge >= p.MinAge
}

func (p *Preferences) CookingCompatible(other *Preferences) bool {
	return p.Cooking == other.Cooking || p.Cooking == CookingFlexible || other.Cooking == CookingFlexible
}

// AcceptsSex reports whether a candidate of the given sex satisfies the
// gender preference.
func (p *Preferences) AcceptsSex(sex string) bool {
	return p.GenderPreference == GenderNoPreference || sex == p.GenderPreference
}
