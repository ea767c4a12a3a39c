package entity

import (
	"time"
)

// CreditCard is a user-owned record. Number and CVV are write-only:
// they are accepted on create and never serialized back to clients,
// which only ever see NumberMasked.
type CreditCard struct {
	ID           string
	UserID       string
	Number       string
	CVV          string
	NumberMasked string
	HolderName   string
	ExpiryDate   string
	TotalLimit   int64
	AvailLimit   int64
	Outstanding  int64
	MinimumDue   int64
	DueDate      string
	IsBlocked    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
