package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkowalik/copydesk/internal/adapter/checkout"
	"github.com/mkowalik/copydesk/internal/domain/model"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string) (string, error)
	AuthenticateFn func(context.Context, string, string) (string, error)
	ParseFn        func(string) (int64, error)
}

// Register returns token for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, email, password string) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, email, password)
	}
	return "token", nil
}

// Authenticate returns token for successful authentication scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return "token", nil
}

// ParseToken returns stored identifier for authenticated user.
func (s AuthFacadeStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

// AccountFacadeStub simulates profile and preference operations.
type AccountFacadeStub struct {
	UserFn                func(context.Context, int64) (*model.User, error)
	UpdateBillingFn       func(context.Context, int64, model.BillingProfile) error
	UpdateNotificationsFn func(context.Context, int64, model.NotificationPrefs) error
}

// User returns stub account data.
func (s AccountFacadeStub) User(ctx context.Context, userID int64) (*model.User, error) {
	if s.UserFn != nil {
		return s.UserFn(ctx, userID)
	}
	return &model.User{ID: userID, Email: "user@example.com", Role: model.RoleCustomer}, nil
}

// UpdateBillingProfile applies configured override.
func (s AccountFacadeStub) UpdateBillingProfile(ctx context.Context, userID int64, profile model.BillingProfile) error {
	if s.UpdateBillingFn != nil {
		return s.UpdateBillingFn(ctx, userID, profile)
	}
	return nil
}

// UpdateNotificationPrefs applies configured override.
func (s AccountFacadeStub) UpdateNotificationPrefs(ctx context.Context, userID int64, prefs model.NotificationPrefs) error {
	if s.UpdateNotificationsFn != nil {
		return s.UpdateNotificationsFn(ctx, userID, prefs)
	}
	return nil
}

// OrderFacadeStub provides controllable behaviour for customer order endpoints.
type OrderFacadeStub struct {
	CreateFn       func(context.Context, int64, []model.OrderItem, time.Time) (*model.Order, error)
	OrdersFn       func(context.Context, int64) ([]model.Order, error)
	OrderForUserFn func(context.Context, int64, int64) (*model.Order, error)
	CancelFn       func(context.Context, int64, int64) error
	UploadFn       func(context.Context, int64, int64, string, string) (*model.Attachment, error)
	AttachmentsFn  func(context.Context, int64, int64) ([]model.Attachment, error)
}

// CreateOrder delegates to override or returns a minimal pending order.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, userID int64, items []model.OrderItem, declaredDeliveryDate time.Time) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, userID, items, declaredDeliveryDate)
	}
	return &model.Order{Number: 1001, UserID: userID, Items: items, Status: model.OrderStatusPending, DeclaredDeliveryDate: declaredDeliveryDate}, nil
}

// Orders returns predefined orders for given user.
func (s OrderFacadeStub) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return []model.Order{{Number: 1001, UserID: userID}}, nil
}

// OrderForUser returns the configured order.
func (s OrderFacadeStub) OrderForUser(ctx context.Context, userID, number int64) (*model.Order, error) {
	if s.OrderForUserFn != nil {
		return s.OrderForUserFn(ctx, userID, number)
	}
	return &model.Order{Number: number, UserID: userID}, nil
}

// CancelOrder applies configured override.
func (s OrderFacadeStub) CancelOrder(ctx context.Context, userID, number int64) error {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, userID, number)
	}
	return nil
}

// RecordCustomerUpload applies configured override.
func (s OrderFacadeStub) RecordCustomerUpload(ctx context.Context, userID, number int64, filename, url string) (*model.Attachment, error) {
	if s.UploadFn != nil {
		return s.UploadFn(ctx, userID, number, filename, url)
	}
	return &model.Attachment{ID: 1, Kind: model.AttachmentKindOther, Source: model.AttachmentSourceCustomer, Filename: filename, URL: url}, nil
}

// OrderAttachments returns configured attachments.
func (s OrderFacadeStub) OrderAttachments(ctx context.Context, userID, number int64) ([]model.Attachment, error) {
	if s.AttachmentsFn != nil {
		return s.AttachmentsFn(ctx, userID, number)
	}
	return nil, nil
}

// AdminFacadeStub covers staff order management endpoints.
type AdminFacadeStub struct {
	AllOrdersFn     func(context.Context) ([]model.Order, error)
	OrderByNumberFn func(context.Context, int64) (*model.Order, error)
	ProgressFn      func(context.Context, int64) error
	CompleteFn      func(context.Context, int64, time.Time) error
	CancelStaffFn   func(context.Context, int64) error
	DeliverFn       func(context.Context, int64, model.AttachmentKind, string, string) (*model.Attachment, error)
}

// AllOrders returns every configured order.
func (s AdminFacadeStub) AllOrders(ctx context.Context) ([]model.Order, error) {
	if s.AllOrdersFn != nil {
		return s.AllOrdersFn(ctx)
	}
	return []model.Order{{Number: 1001}}, nil
}

// OrderByNumber returns the configured order.
func (s AdminFacadeStub) OrderByNumber(ctx context.Context, number int64) (*model.Order, error) {
	if s.OrderByNumberFn != nil {
		return s.OrderByNumberFn(ctx, number)
	}
	return &model.Order{Number: number}, nil
}

// MarkOrderInProgress applies configured override.
func (s AdminFacadeStub) MarkOrderInProgress(ctx context.Context, number int64) error {
	if s.ProgressFn != nil {
		return s.ProgressFn(ctx, number)
	}
	return nil
}

// MarkOrderCompleted applies configured override.
func (s AdminFacadeStub) MarkOrderCompleted(ctx context.Context, number int64, actualDeliveryDate time.Time) error {
	if s.CompleteFn != nil {
		return s.CompleteFn(ctx, number, actualDeliveryDate)
	}
	return nil
}

// CancelOrderByStaff applies configured override.
func (s AdminFacadeStub) CancelOrderByStaff(ctx context.Context, number int64) error {
	if s.CancelStaffFn != nil {
		return s.CancelStaffFn(ctx, number)
	}
	return nil
}

// RecordDelivery applies configured override.
func (s AdminFacadeStub) RecordDelivery(ctx context.Context, number int64, kind model.AttachmentKind, filename, url string) (*model.Attachment, error) {
	if s.DeliverFn != nil {
		return s.DeliverFn(ctx, number, kind, filename, url)
	}
	return &model.Attachment{ID: 1, Kind: kind, Source: model.AttachmentSourceStaff, Filename: filename, URL: url}, nil
}

// PaymentFacadeStub simulates payment endpoints.
type PaymentFacadeStub struct {
	StartFn    func(context.Context, int64, model.PaymentKind, decimal.Decimal, *int64) (*model.Payment, string, error)
	PaymentsFn func(context.Context, int64) ([]model.Payment, error)
}

// StartPayment applies configured override.
func (s PaymentFacadeStub) StartPayment(ctx context.Context, userID int64, kind model.PaymentKind, amount decimal.Decimal, orderNumber *int64) (*model.Payment, string, error) {
	if s.StartFn != nil {
		return s.StartFn(ctx, userID, kind, amount, orderNumber)
	}
	return &model.Payment{ID: 1, UserID: userID, Kind: kind, Status: model.PaymentStatePending, Amount: amount, SessionID: "cs_stub"}, "https://pay.example/cs_stub", nil
}

// Payments returns configured history.
func (s PaymentFacadeStub) Payments(ctx context.Context, userID int64) ([]model.Payment, error) {
	if s.PaymentsFn != nil {
		return s.PaymentsFn(ctx, userID)
	}
	return []model.Payment{{ID: 1, UserID: userID, Kind: model.PaymentKindTopUp, Status: model.PaymentStateCompleted}}, nil
}

// WebhookFacadeStub simulates webhook processing.
type WebhookFacadeStub struct {
	ResolveFn func(context.Context, model.CheckoutSession) error
}

// ResolveSession applies configured override.
func (s WebhookFacadeStub) ResolveSession(ctx context.Context, session model.CheckoutSession) error {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, session)
	}
	return nil
}

// CopydeskFacadeStub aggregates facade dependencies for HTTP layer tests.
type CopydeskFacadeStub struct {
	AuthFacadeStub
	AccountFacadeStub
	OrderFacadeStub
	AdminFacadeStub
	PaymentFacadeStub
	WebhookFacadeStub
}

// WorkerFacadeStub mimics reconciler interactions with the application facade.
type WorkerFacadeStub struct {
	Batches           [][]model.Payment
	PaymentsFn        func(context.Context, int) ([]model.Payment, error)
	CheckFn           func(context.Context, string) (*model.CheckoutSession, error)
	ResolveFn         func(context.Context, model.CheckoutSession) error
	Resolved          []model.CheckoutSession
	mu                sync.Mutex
	paymentsCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *WorkerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *WorkerFacadeStub) Unlock() { s.mu.Unlock() }

// PaymentsForReconciliation returns batches from configured queue.
func (s *WorkerFacadeStub) PaymentsForReconciliation(ctx context.Context, limit int) ([]model.Payment, error) {
	if s.PaymentsFn != nil {
		return s.PaymentsFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.paymentsCallCount, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// CheckSession returns configured session state.
func (s *WorkerFacadeStub) CheckSession(ctx context.Context, sessionID string) (*model.CheckoutSession, error) {
	if s.CheckFn != nil {
		return s.CheckFn(ctx, sessionID)
	}
	return &model.CheckoutSession{ID: sessionID, Status: model.CheckoutSessionPaid}, nil
}

// ResolveSession records resolved sessions.
func (s *WorkerFacadeStub) ResolveSession(ctx context.Context, session model.CheckoutSession) error {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, session)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Resolved = append(s.Resolved, session)
	return nil
}

// CheckoutProviderStub fetches checkout session state for tests.
type CheckoutProviderStub struct {
	CreateFn func(context.Context, decimal.Decimal, string) (*checkout.CreatedSession, error)
	FetchFn  func(context.Context, string) (*model.CheckoutSession, error)
	Session  *model.CheckoutSession
	Err      error
}

// CreateSession returns configured response or a deterministic session.
func (s CheckoutProviderStub) CreateSession(ctx context.Context, amount decimal.Decimal, description string) (*checkout.CreatedSession, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, amount, description)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return &checkout.CreatedSession{ID: "cs_stub", RedirectURL: "https://pay.example/cs_stub"}, nil
}

// FetchSession returns configured response or a paid session.
func (s CheckoutProviderStub) FetchSession(ctx context.Context, sessionID string) (*model.CheckoutSession, error) {
	if s.FetchFn != nil {
		return s.FetchFn(ctx, sessionID)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Session != nil {
		return s.Session, nil
	}
	return &model.CheckoutSession{ID: sessionID, Status: model.CheckoutSessionPaid}, nil
}
