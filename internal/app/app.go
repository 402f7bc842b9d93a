package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/mkowalik/copydesk/internal/config"
	"github.com/mkowalik/copydesk/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewCopydeskFacade,
		newHTTPServer,
		newPaymentReconciler,
	),
	fx.Invoke(bootstrapAdmin),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type workerParams struct {
	fx.In

	Facade *CopydeskFacade
	Config *config.Config
	Logger *slog.Logger
}

func newPaymentReconciler(p workerParams) *worker.PaymentReconciler {
	return worker.NewPaymentReconciler(
		p.Facade,
		p.Config.PaymentPollInterval,
		p.Config.MaxPaymentsBatch,
		p.Config.WorkerPoolSize,
		p.Logger,
	)
}

type bootstrapParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Facade    *CopydeskFacade
	Config    *config.Config
	Logger    *slog.Logger
}

func bootstrapAdmin(p bootstrapParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return p.Facade.BootstrapAdmin(ctx, p.Logger, p.Config.AdminEmail, p.Config.AdminPassword)
		},
	})
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Worker     *worker.PaymentReconciler
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting copydesk", slog.String("addr", p.Server.Addr))
			p.Worker.Start(ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Worker.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("copydesk stopped")
			return nil
		},
	})
}
