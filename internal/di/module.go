package di

import (
	"github.com/mkowalik/copydesk/internal/adapter/checkout"
	"github.com/mkowalik/copydesk/internal/app"
	"github.com/mkowalik/copydesk/internal/config"
	"github.com/mkowalik/copydesk/internal/logger"
	"github.com/mkowalik/copydesk/internal/pkg/auth"
	"github.com/mkowalik/copydesk/internal/server/http/handlers"
	"github.com/mkowalik/copydesk/internal/server/http/router"
	"github.com/mkowalik/copydesk/internal/storage/postgres"
	"github.com/mkowalik/copydesk/internal/usecase"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		checkout.Module,
		usecase.Module,
		fx.Provide(func(client checkout.Client) app.CheckoutProvider { return client }),
		fx.Provide(func(facade *app.CopydeskFacade) handlers.CopydeskFacade { return facade }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
