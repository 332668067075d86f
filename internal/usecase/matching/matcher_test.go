package matching

import (
	"testing"

	"github.com/gdugdh24/roommate-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basePrefs() *domain.Preferences {
	return &domain.Preferences{
		PreferredLocation:  "Pune",
		MinBudget:          800,
		MaxBudget:          1200,
		MinAge:             22,
		MaxAge:             30,
		Occupation:         "Engineer",
		GenderPreference:   domain.GenderNoPreference,
		Smoking:            false,
		Drinking:           true,
		Cooking:            domain.CookingVegetarian,
		CommunicationStyle: "Direct",
		SocialEnergyLevel:  "Ambivert",
	}
}

func newUser(id, sex string, prefs *domain.Preferences) *domain.User {
	return &domain.User{ID: id, Name: "user-" + id, Sex: sex, Preferences: prefs}
}

// withMismatches returns preferences that fail exactly n criteria against
// basePrefs, gender aside.
func withMismatches(n int) *domain.Preferences {
	p := basePrefs()
	mutations := []func(*domain.Preferences){
		func(p *domain.Preferences) { p.PreferredLocation = "Mumbai" },
		func(p *domain.Preferences) { p.MinBudget, p.MaxBudget = 5000, 6000 },
		func(p *domain.Preferences) { p.Occupation = "Designer" },
		func(p *domain.Preferences) { p.Smoking = true },
		func(p *domain.Preferences) { p.Drinking = false },
		func(p *domain.Preferences) { p.CommunicationStyle = "Reserved" },
		func(p *domain.Preferences) { p.SocialEnergyLevel = "Introvert" },
		func(p *domain.Preferences) { p.MinAge, p.MaxAge = 40, 50 },
		func(p *domain.Preferences) { p.Cooking = domain.CookingNonVeg },
	}
	for i := 0; i < n; i++ {
		mutations[i](p)
	}
	return p
}

func TestScoreIdenticalPreferences(t *testing.T) {
	assert.Equal(t, CriteriaCount, Score(basePrefs(), newUser("b", domain.SexFemale, basePrefs())))
}

func TestScoreBudgetOverlap(t *testing.T) {
	me := basePrefs()
	them := basePrefs()
	them.MinBudget, them.MaxBudget = 1000, 1500
	assert.True(t, me.BudgetOverlaps(them))
	assert.Equal(t, CriteriaCount, Score(me, newUser("b", domain.SexMale, them)))

	them.MinBudget, them.MaxBudget = 1201, 1500
	assert.Equal(t, CriteriaCount-1, Score(me, newUser("b", domain.SexMale, them)))

	// Touching ranges overlap.
	them.MinBudget = 1200
	assert.Equal(t, CriteriaCount, Score(me, newUser("b", domain.SexMale, them)))
}

func TestScoreFlexibleCooking(t *testing.T) {
	me := basePrefs()
	me.Cooking = domain.CookingFlexible
	them := basePrefs()
	them.Cooking = domain.CookingVegetarian
	assert.True(t, me.CookingCompatible(them))
	assert.True(t, them.CookingCompatible(me))

	them.Cooking = domain.CookingVegan
	me.Cooking = domain.CookingNonVeg
	assert.False(t, me.CookingCompatible(them))
}

func TestScoreGenderPreference(t *testing.T) {
	me := basePrefs()
	me.GenderPreference = domain.SexFemale
	assert.Equal(t, CriteriaCount, Score(me, newUser("b", domain.SexFemale, basePrefs())))
	assert.Equal(t, CriteriaCount-1, Score(me, newUser("c", domain.SexMale, basePrefs())))
}

func TestScoreSingleAttributeChangesByAtMostOne(t *testing.T) {
	me := basePrefs()
	for n := 0; n < 9; n++ {
		before := Score(me, newUser("b", domain.SexMale, withMismatches(n)))
		after := Score(me, newUser("b", domain.SexMale, withMismatches(n+1)))
		assert.Equal(t, 1, before-after, "mutation %d", n)
	}
}

func TestFindCandidatesThreshold(t *testing.T) {
	seeker := newUser("a", domain.SexMale, basePrefs())
	six := newUser("six", domain.SexMale, withMismatches(4))
	five := newUser("five", domain.SexMale, withMismatches(5))
	require.Equal(t, 6, Score(seeker.Preferences, six))
	require.Equal(t, 5, Score(seeker.Preferences, five))

	got, err := FindCandidates(seeker, []*domain.User{six, five})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "six", got[0].User.ID)
	assert.Equal(t, MatchThreshold, got[0].Score)
}

func TestFindCandidatesOrderingAndExclusions(t *testing.T) {
	seeker := newUser("a", domain.SexMale, basePrefs())
	pool := []*domain.User{
		newUser("d", domain.SexMale, withMismatches(2)),
		seeker,
		newUser("c", domain.SexMale, withMismatches(0)),
		newUser("b", domain.SexMale, withMismatches(2)),
		newUser("no-prefs", domain.SexMale, nil),
	}

	first, err := FindCandidates(seeker, pool)
	require.NoError(t, err)
	ids := make([]string, 0, len(first))
	for _, c := range first {
		ids = append(ids, c.User.ID)
	}
	assert.Equal(t, []string{"c", "b", "d"}, ids)

	second, err := FindCandidates(seeker, pool)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFindCandidatesRequiresPreferences(t *testing.T) {
	_, err := FindCandidates(newUser("a", domain.SexMale, nil), nil)
	assert.ErrorIs(t, err, domain.ErrMissingPreferences)
}
