package repository

import (
	"context"

	"github.com/minegram/minegram/internal/domain/model"
)

// AccountRepository describes persistence operations for accounts.
type AccountRepository interface {
	// GetOrCreate returns existing account for tgID or provisions a fresh one
	// with zero balance. Safe under concurrent first contact: the tg_id unique
	// constraint guarantees at most one account per identity. The boolean
	// reports whether the account was created by this call.
	GetOrCreate(ctx context.Context, tgID int64, username string) (*model.Account, bool, error)
	GetByTgID(ctx context.Context, tgID int64) (*model.Account, error)
	// Credit atomically increases the balance and returns the new value.
	Credit(ctx context.Context, tgID int64, amount float64) (float64, error)
}
