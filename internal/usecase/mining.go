package usecase

import (
	"context"
	"log/slog"

	"github.com/minegram/minegram/internal/cache"
	"github.com/minegram/minegram/internal/domain/repository"
)

// Fixed rewards credited for mining actions.
const (
	CollectReward = 10
	AdReward      = 50
)

// MiningUseCase manages point accrual operations.
type MiningUseCase struct {
	accounts repository.AccountRepository
	cache    cache.Invalidator
	logger   *slog.Logger
}

// NewMiningUseCase constructs MiningUseCase.
func NewMiningUseCase(accounts repository.AccountRepository, inv cache.Invalidator, logger *slog.Logger) *MiningUseCase {
	return &MiningUseCase{accounts: accounts, cache: inv, logger: logger}
}

// Status returns the current point balance for the account.
func (u *MiningUseCase) Status(ctx context.Context, tgID int64) (float64, error) {
	acct, err := u.accounts.GetByTgID(ctx, tgID)
	if err != nil {
		return 0, err
	}
	return acct.Balance, nil
}

// Collect credits the fixed collection reward and returns the new balance.
func (u *MiningUseCase) Collect(ctx context.Context, tgID int64) (float64, error) {
	return u.credit(ctx, tgID, CollectReward)
}

// WatchAd credits the fixed ad reward and returns the new balance.
func (u *MiningUseCase) WatchAd(ctx context.Context, tgID int64) (float64, error) {
	return u.credit(ctx, tgID, AdReward)
}

func (u *MiningUseCase) credit(ctx context.Context, tgID int64, reward float64) (float64, error) {
	newBalance, err := u.accounts.Credit(ctx, tgID, reward)
	if err != nil {
		return 0, err
	}
	u.invalidate(ctx, tgID)
	return newBalance, nil
}

// invalidate drops cached account state. Failures are logged, never surfaced:
// the balance mutation has already committed.
func (u *MiningUseCase) invalidate(ctx context.Context, tgID int64) {
	if err := u.cache.InvalidateAccount(ctx, tgID); err != nil {
		u.logger.Warn("cache invalidation failed",
			slog.Int64("tg_id", tgID),
			slog.String("error", err.Error()),
		)
	}
}
