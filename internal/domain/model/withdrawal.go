package model

import "time"

// WithdrawalStatus describes payout request lifecycle.
type WithdrawalStatus string

const (
	WithdrawalStatusPending WithdrawalStatus = "Pending"
	// Submitting marks rows claimed by a payout dispatcher. The poll query
	// skips them, so an in-flight submission can never be claimed twice.
	WithdrawalStatusSubmitting WithdrawalStatus = "Submitting"
	WithdrawalStatusApproved   WithdrawalStatus = "Approved"
	WithdrawalStatusRejected   WithdrawalStatus = "Rejected"
)

// DefaultPayoutPlatform is the payout platform withdrawals are routed to.
const DefaultPayoutPlatform = "FaucetPay"

// Withdrawal represents a single payout request debited from an account.
type Withdrawal struct {
	ID           int64
	TgID         int64
	Coin         string
	Amount       float64
	Platform     string
	Email        string
	Status       WithdrawalStatus
	ProviderRef  string
	RejectReason string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
