package cache

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/minegram/minegram/internal/config"
)

// Module provides the cache invalidator for fx graphs.
var Module = fx.Provide(newInvalidator)

type invalidatorParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newInvalidator(p invalidatorParams) Invalidator {
	return New(p.Ctx, p.Config.RedisURL, p.Logger)
}
