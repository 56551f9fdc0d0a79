package repository

import (
	"context"

	"github.com/minegram/minegram/internal/domain/model"
)

// CoinRepository provides access to the static coin catalog.
type CoinRepository interface {
	ListActive(ctx context.Context) ([]model.Coin, error)
	Get(ctx context.Context, symbol string) (*model.Coin, error)
	// SeedIfEmpty inserts defaults only when the catalog has no rows.
	SeedIfEmpty(ctx context.Context, defaults []model.Coin) error
}
