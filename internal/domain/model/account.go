package model

import "time"

// AccountStatus describes whether an account may request payouts.
type AccountStatus string

const (
	AccountStatusActive AccountStatus = "active"
	AccountStatusBanned AccountStatus = "banned"
)

// Account represents a mini-app user identified by a stable Telegram ID.
type Account struct {
	ID           int64
	TgID         int64
	Username     string
	PasswordHash string
	Balance      float64
	Status       AccountStatus
	Email        string
	CreatedAt    time.Time
}
