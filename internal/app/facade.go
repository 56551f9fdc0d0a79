package app

import (
	"context"

	"github.com/minegram/minegram/internal/adapter/payout"
	"github.com/minegram/minegram/internal/domain/model"
	"github.com/minegram/minegram/internal/domain/repository"
	"github.com/minegram/minegram/internal/usecase"
)

// MiningFacade aggregates use cases behind the HTTP and worker surfaces.
type MiningFacade struct {
	auth     *usecase.AuthUseCase
	mining   *usecase.MiningUseCase
	withdraw *usecase.WithdrawUseCase

	coins       repository.CoinRepository
	withdrawals repository.WithdrawalRepository
	payouts     payout.Provider
}

// NewMiningFacade constructs the application facade.
func NewMiningFacade(
	auth *usecase.AuthUseCase,
	mining *usecase.MiningUseCase,
	withdraw *usecase.WithdrawUseCase,
	coins repository.CoinRepository,
	withdrawals repository.WithdrawalRepository,
	payouts payout.Provider,
) *MiningFacade {
	return &MiningFacade{
		auth:        auth,
		mining:      mining,
		withdraw:    withdraw,
		coins:       coins,
		withdrawals: withdrawals,
		payouts:     payouts,
	}
}

func (f *MiningFacade) Login(ctx context.Context, tgID int64, username, password string) (*model.Account, string, error) {
	return f.auth.Login(ctx, tgID, username, password)
}

func (f *MiningFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *MiningFacade) MiningStatus(ctx context.Context, tgID int64) (float64, error) {
	return f.mining.Status(ctx, tgID)
}

func (f *MiningFacade) Collect(ctx context.Context, tgID int64) (float64, error) {
	return f.mining.Collect(ctx, tgID)
}

func (f *MiningFacade) WatchAd(ctx context.Context, tgID int64) (float64, error) {
	return f.mining.WatchAd(ctx, tgID)
}

func (f *MiningFacade) Coins(ctx context.Context) ([]model.Coin, error) {
	return f.withdraw.Coins(ctx)
}

func (f *MiningFacade) RequestWithdrawal(ctx context.Context, tgID int64, coin string, amount float64, email string) (*model.Withdrawal, error) {
	return f.withdraw.Request(ctx, tgID, coin, amount, email)
}

func (f *MiningFacade) WithdrawalHistory(ctx context.Context, tgID int64, limit int) ([]model.Withdrawal, error) {
	return f.withdraw.History(ctx, tgID, limit)
}

// SeedCoins populates the coin catalogue on first start.
func (f *MiningFacade) SeedCoins(ctx context.Context) error {
	return f.coins.SeedIfEmpty(ctx, model.DefaultCoins())
}

// PendingWithdrawals claims a batch of withdrawals for payout submission.
func (f *MiningFacade) PendingWithdrawals(ctx context.Context, limit int) ([]model.Withdrawal, error) {
	return f.withdrawals.SelectBatchForSubmission(ctx, limit)
}

// SubmitPayout forwards a withdrawal to the payout platform.
func (f *MiningFacade) SubmitPayout(ctx context.Context, w model.Withdrawal) (string, error) {
	return f.payouts.Submit(ctx, w)
}

func (f *MiningFacade) MarkWithdrawalSubmitted(ctx context.Context, id int64, providerRef string) error {
	return f.withdrawals.MarkSubmitted(ctx, id, providerRef)
}

func (f *MiningFacade) MarkWithdrawalRejected(ctx context.Context, id int64, reason string) error {
	return f.withdrawals.MarkRejected(ctx, id, reason)
}

// ReleaseWithdrawal returns a claimed withdrawal to the pending queue.
func (f *MiningFacade) ReleaseWithdrawal(ctx context.Context, id int64) error {
	return f.withdrawals.Release(ctx, id)
}
