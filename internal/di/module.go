package di

import (
	"github.com/minegram/minegram/internal/adapter/payout"
	"github.com/minegram/minegram/internal/app"
	"github.com/minegram/minegram/internal/cache"
	"github.com/minegram/minegram/internal/config"
	"github.com/minegram/minegram/internal/logger"
	"github.com/minegram/minegram/internal/pkg/auth"
	"github.com/minegram/minegram/internal/server/http/router"
	"github.com/minegram/minegram/internal/storage/postgres"
	"github.com/minegram/minegram/internal/usecase"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		cache.Module,
		payout.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
