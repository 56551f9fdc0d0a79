package repository

import (
	"context"

	"github.com/minegram/minegram/internal/domain/model"
)

// WithdrawalRepository manages payout requests and the balance debit that
// accompanies their creation.
type WithdrawalRepository interface {
	// Create debits amount from the account and appends a Pending withdrawal
	// inside a single transaction. The balance and status checks are performed
	// under a row lock, so concurrent requests against the same account cannot
	// overdraw it.
	Create(ctx context.Context, tgID int64, coin string, amount float64, email string) (*model.Withdrawal, error)
	ListByTgID(ctx context.Context, tgID int64, limit int) ([]model.Withdrawal, error)
	// SelectBatchForSubmission claims Pending withdrawals for payout
	// submission by moving them to Submitting inside the claim transaction.
	// Claimed rows are invisible to later polls until MarkSubmitted,
	// MarkRejected or Release moves them on, so the same withdrawal is
	// never handed to two submissions.
	SelectBatchForSubmission(ctx context.Context, limit int) ([]model.Withdrawal, error)
	MarkSubmitted(ctx context.Context, id int64, providerRef string) error
	MarkRejected(ctx context.Context, id int64, reason string) error
	// Release returns a claimed withdrawal to Pending so a later poll can
	// retry it, used when the payout provider is temporarily unavailable.
	Release(ctx context.Context, id int64) error
}
