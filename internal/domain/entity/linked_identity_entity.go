package entity

import (
	"time"
)

// LinkedIdentity binds one external provider account to a User.
// The pair (Provider, ProviderAccountID) is unique across all rows.
type LinkedIdentity struct {
	ID                string
	UserID            string
	Provider          string
	ProviderAccountID string
	AccessToken       string
	RefreshToken      string
	TokenType         string
	Scope             string
	ExpiresAt         time.Time
	CreatedAt         time.Time
}
