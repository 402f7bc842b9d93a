package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkowalik/copydesk/internal/adapter/checkout"
	domainErrors "github.com/mkowalik/copydesk/internal/domain/errors"
	"github.com/mkowalik/copydesk/internal/domain/model"
	"github.com/mkowalik/copydesk/internal/usecase"
)

// CheckoutProvider is the processor-facing dependency of the facade.
type CheckoutProvider interface {
	CreateSession(ctx context.Context, amount decimal.Decimal, description string) (*checkout.CreatedSession, error)
	FetchSession(ctx context.Context, sessionID string) (*model.CheckoutSession, error)
}

// CopydeskFacade is the single application entry point used by the HTTP
// layer and the background reconciler.
type CopydeskFacade struct {
	auth     *usecase.AuthUseCase
	orders   *usecase.OrderUseCase
	payments *usecase.PaymentUseCase
	checkout CheckoutProvider
}

func NewCopydeskFacade(auth *usecase.AuthUseCase, orders *usecase.OrderUseCase, payments *usecase.PaymentUseCase, provider CheckoutProvider) *CopydeskFacade {
	return &CopydeskFacade{auth: auth, orders: orders, payments: payments, checkout: provider}
}

func (f *CopydeskFacade) Register(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, email, password)
	return token, err
}

func (f *CopydeskFacade) Authenticate(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, email, password)
	return token, err
}

func (f *CopydeskFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *CopydeskFacade) User(ctx context.Context, userID int64) (*model.User, error) {
	return f.auth.GetByID(ctx, userID)
}

func (f *CopydeskFacade) BootstrapAdmin(ctx context.Context, log *slog.Logger, email, password string) error {
	return f.auth.BootstrapAdmin(ctx, log, email, password)
}

func (f *CopydeskFacade) UpdateBillingProfile(ctx context.Context, userID int64, profile model.BillingProfile) error {
	return f.auth.UpdateBillingProfile(ctx, userID, profile)
}

func (f *CopydeskFacade) UpdateNotificationPrefs(ctx context.Context, userID int64, prefs model.NotificationPrefs) error {
	return f.auth.UpdateNotificationPrefs(ctx, userID, prefs)
}

func (f *CopydeskFacade) CreateOrder(ctx context.Context, userID int64, items []model.OrderItem, declaredDeliveryDate time.Time) (*model.Order, error) {
	return f.orders.Create(ctx, userID, items, declaredDeliveryDate)
}

func (f *CopydeskFacade) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID)
}

func (f *CopydeskFacade) AllOrders(ctx context.Context) ([]model.Order, error) {
	return f.orders.ListAll(ctx)
}

func (f *CopydeskFacade) OrderByNumber(ctx context.Context, number int64) (*model.Order, error) {
	return f.orders.GetByNumber(ctx, number)
}

// OrderForUser fetches an order only when it belongs to the user; foreign
// orders look absent.
func (f *CopydeskFacade) OrderForUser(ctx context.Context, userID, number int64) (*model.Order, error) {
	order, err := f.orders.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrNotFound
	}
	return order, nil
}

// CancelOrder cancels the user's own order.
func (f *CopydeskFacade) CancelOrder(ctx context.Context, userID, number int64) error {
	if _, err := f.OrderForUser(ctx, userID, number); err != nil {
		return err
	}
	return f.orders.Cancel(ctx, number)
}

// CancelOrderByStaff cancels any order, skipping the ownership check.
func (f *CopydeskFacade) CancelOrderByStaff(ctx context.Context, number int64) error {
	return f.orders.Cancel(ctx, number)
}

func (f *CopydeskFacade) MarkOrderInProgress(ctx context.Context, number int64) error {
	return f.orders.MarkInProgress(ctx, number)
}

func (f *CopydeskFacade) MarkOrderCompleted(ctx context.Context, number int64, actualDeliveryDate time.Time) error {
	return f.orders.MarkCompleted(ctx, number, actualDeliveryDate)
}

func (f *CopydeskFacade) RecordDelivery(ctx context.Context, number int64, kind model.AttachmentKind, filename, url string) (*model.Attachment, error) {
	return f.orders.RecordDelivery(ctx, number, kind, filename, url)
}

func (f *CopydeskFacade) RecordCustomerUpload(ctx context.Context, userID, number int64, filename, url string) (*model.Attachment, error) {
	return f.orders.RecordCustomerUpload(ctx, userID, number, filename, url)
}

func (f *CopydeskFacade) OrderAttachments(ctx context.Context, userID, number int64) ([]model.Attachment, error) {
	if _, err := f.OrderForUser(ctx, userID, number); err != nil {
		return nil, err
	}
	return f.orders.Attachments(ctx, number)
}

// StartPayment opens a checkout session at the processor and records a
// pending payment bound to it. Returns the payment together with the
// processor redirect URL.
func (f *CopydeskFacade) StartPayment(ctx context.Context, userID int64, kind model.PaymentKind, amount decimal.Decimal, orderNumber *int64) (*model.Payment, string, error) {
	description := "balance top-up"
	if orderNumber != nil {
		description = fmt.Sprintf("order %d", *orderNumber)
	}

	session, err := f.checkout.CreateSession(ctx, amount, description)
	if err != nil {
		return nil, "", err
	}

	payment, err := f.payments.Start(ctx, userID, kind, amount, orderNumber, session.ID)
	if err != nil {
		return nil, "", err
	}
	return payment, session.RedirectURL, nil
}

func (f *CopydeskFacade) Payments(ctx context.Context, userID int64) ([]model.Payment, error) {
	return f.payments.ListByUser(ctx, userID)
}

func (f *CopydeskFacade) PaymentsForReconciliation(ctx context.Context, limit int) ([]model.Payment, error) {
	return f.payments.ListPending(ctx, limit)
}

func (f *CopydeskFacade) CheckSession(ctx context.Context, sessionID string) (*model.CheckoutSession, error) {
	return f.checkout.FetchSession(ctx, sessionID)
}

func (f *CopydeskFacade) ResolveSession(ctx context.Context, session model.CheckoutSession) error {
	return f.payments.ResolveSession(ctx, session)
}
