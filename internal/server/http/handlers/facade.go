package handlers

import (
	"context"

	"github.com/minegram/minegram/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Login(ctx context.Context, tgID int64, username, password string) (*model.Account, string, error)
	ParseToken(token string) (int64, error)
}

// MiningFacade encapsulates reward operations exposed via HTTP.
type MiningFacade interface {
	MiningStatus(ctx context.Context, tgID int64) (float64, error)
	Collect(ctx context.Context, tgID int64) (float64, error)
	WatchAd(ctx context.Context, tgID int64) (float64, error)
}

// WithdrawFacade provides payout related operations.
type WithdrawFacade interface {
	Coins(ctx context.Context) ([]model.Coin, error)
	RequestWithdrawal(ctx context.Context, tgID int64, coin string, amount float64, email string) (*model.Withdrawal, error)
	WithdrawalHistory(ctx context.Context, tgID int64, limit int) ([]model.Withdrawal, error)
}

// AppFacade aggregates the full set of operations used across handlers.
type AppFacade interface {
	AuthFacade
	MiningFacade
	WithdrawFacade
}
