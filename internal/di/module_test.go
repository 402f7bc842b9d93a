package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mkowalik/copydesk/internal/adapter/checkout"
	"github.com/mkowalik/copydesk/internal/app"
	"github.com/mkowalik/copydesk/internal/config"
	"github.com/mkowalik/copydesk/internal/domain/repository"
	"github.com/mkowalik/copydesk/internal/storage/postgres"
	"github.com/mkowalik/copydesk/internal/test"
	"go.uber.org/fx"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:          ":0",
		DatabaseURI:         "postgres://stub",
		CheckoutAddress:     "http://localhost",
		TokenSecret:         "secret",
		PaymentPollInterval: time.Millisecond,
		WorkerPoolSize:      1,
		ShutdownTimeout:     time.Millisecond,
		MaxPaymentsBatch:    1,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	userRepo := test.NewUserRepositoryStub()
	orderRepo := &test.OrderRepositoryStub{}
	attachmentRepo := &test.AttachmentRepositoryStub{}
	paymentRepo := &test.PaymentRepositoryStub{}
	checkoutStub := test.CheckoutProviderStub{}

	var facade *app.CopydeskFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.UserRepository(userRepo)),
			fx.Replace(repository.OrderRepository(orderRepo)),
			fx.Replace(repository.AttachmentRepository(attachmentRepo)),
			fx.Replace(repository.PaymentRepository(paymentRepo)),
			fx.Replace(checkout.Client(checkoutStub)),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected application facade instance")
	}
}
