package models

import (
	"strings"
	"time"
)

// User represents a registered account.
//
// Password is kept in plain text: this is the stored format of existing data
// and changing it would break logins against it. Do not copy this elsewhere.
type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Password      string    `json:"password,omitempty"`
	Provider      string    `json:"provider,omitempty"`
	MonthlyBudget float64   `json:"monthlyBudget,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FirstName returns the first word of the user's display name.
func (u User) FirstName() string {
	first, _, _ := strings.Cut(u.Name, " ")
	return first
}
