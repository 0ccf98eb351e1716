package domain

import (
	"strings"
	"time"
)

// UnusablePasswordPrefix marks a stored password hash that no password can match.
// Accounts created through social login carry such a hash.
const UnusablePasswordPrefix = "!"

// Gender, language and currency choices for user profiles.
const (
	GenderMale   = "male"
	GenderFemale = "female"

	LanguageKorean  = "kr"
	LanguageEnglish = "en"

	CurrencyWon    = "won"
	CurrencyDollar = "usd"
)

// User represents a registered user of the marketplace, either a guest or a host.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Avatar         string    `json:"avatar"`
	IsHost         bool      `json:"is_host"`
	Gender         string    `json:"gender"`
	Language       string    `json:"language"`
	Currency       string    `json:"currency"`
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// HasUsablePassword reports whether the user can log in with a password.
func (u *User) HasUsablePassword() bool {
	return u.HashedPassword != "" && !strings.HasPrefix(u.HashedPassword, UnusablePasswordPrefix)
}

// Summary returns the compact representation embedded in rooms and reviews.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Avatar:   u.Avatar,
	}
}

// UserSummary is the subset of user fields shown alongside other entities.
type UserSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
}

// NormalizeEmail trims and lower-cases an email address so lookups by email
// are stable across providers and signups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
