package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// DefaultCurrency is the currency code of a freshly created profile.
	DefaultCurrency = "LKR"
	// MemberSinceLayout formats Profile.MemberSince ("March 2024").
	MemberSinceLayout = "January 2006"

	ThemeLight = "light"
	ThemeDark  = "dark"
)

// DefaultBudget is the monthly budget used when none has been set.
var DefaultBudget = decimal.NewFromInt(100000)

// Profile holds the per-user display and budget configuration.
type Profile struct {
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	MemberSince   string          `json:"memberSince"`
	MonthlyBudget decimal.Decimal `json:"monthlyBudget"`
	Currency      string          `json:"currency"`
}

// MarshalJSON writes the budget as a JSON number.
func (p Profile) MarshalJSON() ([]byte, error) {
	type plain Profile
	return json.Marshal(struct {
		plain
		MonthlyBudget json.Number `json:"monthlyBudget"`
	}{plain(p), number(p.MonthlyBudget)})
}

// NewProfile returns the default profile for the given identity.
func NewProfile(name, email string, since time.Time) Profile {
	return Profile{
		Name:          name,
		Email:         email,
		MemberSince:   since.Format(MemberSinceLayout),
		MonthlyBudget: DefaultBudget,
		Currency:      DefaultCurrency,
	}
}

// Settings holds per-user preferences.
type Settings struct {
	Theme         string `json:"theme"`
	Notifications bool   `json:"notifications"`
	Reminders     bool   `json:"reminders"`
}

// DefaultSettings returns the settings of a user who never saved any.
func DefaultSettings() Settings {
	return Settings{Theme: ThemeLight, Notifications: true, Reminders: true}
}
