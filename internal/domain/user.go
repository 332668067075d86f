package domain

import "time"

const (
	SexMale   = "Male"
	SexFemale = "Female"
)

type User struct {
	ID          string       `json:"id" db:"id"`
	Name        string       `json:"name" db:"name"`
	Email       string       `json:"email,omitempty" db:"email"`
	Image       *string      `json:"image" db:"image"`
	Bio         *string      `json:"bio,omitempty" db:"bio"`
	Sex         string       `json:"sex" db:"sex"`
	Role        string       `json:"role,omitempty" db:"role"`
	IsPremium   bool         `json:"isPremium" db:"is_premium"`
	CreatedAt   time.Time    `json:"createdAt" db:"created_at"`
	Preferences *Preferences `json:"preferences" db:"-"`
}

func (u *User) HasPreferences() bool {
	return u != nil && u.Preferences != nil
}
