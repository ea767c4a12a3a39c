package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// PasswordHash is a bcrypt digest and is empty for OAuth-only accounts.
// Email is stored lowercased and is globally unique.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	ImageURL     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPassword reports whether the account can sign in with local credentials.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}
