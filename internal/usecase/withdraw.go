package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/minegram/minegram/internal/cache"
	domainErrors "github.com/minegram/minegram/internal/domain/errors"
	"github.com/minegram/minegram/internal/domain/model"
	"github.com/minegram/minegram/internal/domain/repository"
)

// History pagination bounds.
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// WithdrawUseCase validates and executes payout requests.
type WithdrawUseCase struct {
	accounts    repository.AccountRepository
	coins       repository.CoinRepository
	withdrawals repository.WithdrawalRepository
	cache       cache.Invalidator
	logger      *slog.Logger
}

// NewWithdrawUseCase constructs WithdrawUseCase.
func NewWithdrawUseCase(
	accounts repository.AccountRepository,
	coins repository.CoinRepository,
	withdrawals repository.WithdrawalRepository,
	inv cache.Invalidator,
	logger *slog.Logger,
) *WithdrawUseCase {
	return &WithdrawUseCase{
		accounts:    accounts,
		coins:       coins,
		withdrawals: withdrawals,
		cache:       inv,
		logger:      logger,
	}
}

// Coins lists withdrawable currencies.
func (u *WithdrawUseCase) Coins(ctx context.Context) ([]model.Coin, error) {
	return u.coins.ListActive(ctx)
}

// Request validates a withdrawal against catalog bounds and account balance,
// then debits the account and appends a Pending record. The debit, email
// update and record insert happen in one storage transaction; the eager
// balance check here is re-validated under a row lock, so concurrent requests
// cannot overdraw the account.
func (u *WithdrawUseCase) Request(ctx context.Context, tgID int64, symbol string, amount float64, email string) (*model.Withdrawal, error) {
	acct, err := u.accounts.GetByTgID(ctx, tgID)
	if err != nil {
		return nil, err
	}

	if acct.Status != model.AccountStatusActive {
		return nil, domainErrors.ErrAccountBanned
	}

	coin, err := u.coins.Get(ctx, symbol)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrCoinUnavailable
		}
		return nil, err
	}
	if !coin.IsActive {
		return nil, domainErrors.ErrCoinUnavailable
	}

	if !ValidateAmount(amount) {
		return nil, domainErrors.ErrInvalidAmount
	}
	if !ValidateEmail(email) {
		return nil, domainErrors.ErrInvalidEmail
	}
	if amount < coin.MinWithdrawal || amount > coin.MaxWithdrawal {
		return nil, domainErrors.ErrAmountOutOfRange
	}
	if amount > acct.Balance {
		return nil, domainErrors.ErrInsufficientBalance
	}

	w, err := u.withdrawals.Create(ctx, tgID, coin.Symbol, amount, email)
	if err != nil {
		return nil, err
	}

	u.invalidate(ctx, tgID)

	u.logger.Info("withdrawal created",
		slog.Int64("id", w.ID),
		slog.Int64("tg_id", tgID),
		slog.Float64("amount", amount),
		slog.String("coin", coin.Symbol),
	)

	return w, nil
}

// History returns most recent withdrawals first. limit is clamped to
// [1, MaxHistoryLimit] with DefaultHistoryLimit for non-positive values.
func (u *WithdrawUseCase) History(ctx context.Context, tgID int64, limit int) ([]model.Withdrawal, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	return u.withdrawals.ListByTgID(ctx, tgID, limit)
}

func (u *WithdrawUseCase) invalidate(ctx context.Context, tgID int64) {
	if err := u.cache.InvalidateAccount(ctx, tgID); err != nil {
		u.logger.Warn("cache invalidation failed",
			slog.Int64("tg_id", tgID),
			slog.String("error", err.Error()),
		)
	}
}
