package payout

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/minegram/minegram/internal/config"
)

// Module exposes the payout provider implementation to fx graph.
var Module = fx.Provide(newProvider)

type providerParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newProvider(p providerParams) (Provider, error) {
	if p.Config.PayoutAPIAddress == "" {
		p.Logger.Warn("payout API not configured, withdrawals stay pending")
		return Disabled{}, nil
	}
	return NewHTTPClient(p.Config.PayoutAPIAddress, p.Config.PayoutAPIKey, p.Logger)
}
