// Package quota decides whether a sender may issue another match request
// today.
package quota

import "time"

// DefaultDailyLimit is the number of requests a non-premium sender may
// issue per calendar day.
const DefaultDailyLimit = 3

// Guard is advisory: it answers from a count taken by the caller and does
// not reserve a slot.
type Guard struct {
	limit    int
	location *time.Location
}

func NewGuard(limit int, location *time.Location) *Guard {
	if limit <= 0 {
		limit = DefaultDailyLimit
	}
	if location == nil {
		location = time.UTC
	}
	return &Guard{limit: limit, location: location}
}

func (g *Guard) Limit() int {
	return g.limit
}

// MayRequest reports whether a sender who already issued requestsIssuedToday
// requests may issue one more. Premium senders are unrestricted.
func (g *Guard) MayRequest(isPremium bool, requestsIssuedToday int) bool {
	if isPremium {
		return true
	}
	return requestsIssuedToday < g.limit
}

// Window returns the calendar day containing at, as [start, end] inclusive,
// in the guard's reference time zone.
func (g *Guard) Window(at time.Time) (time.Time, time.Time) {
	local := at.In(g.location)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, g.location)
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return start, end
}
