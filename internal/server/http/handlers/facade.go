package handlers

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkowalik/copydesk/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, email, password string) (string, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	ParseToken(token string) (int64, error)
}

// AccountFacade provides profile and preference operations.
type AccountFacade interface {
	User(ctx context.Context, userID int64) (*model.User, error)
	UpdateBillingProfile(ctx context.Context, userID int64, profile model.BillingProfile) error
	UpdateNotificationPrefs(ctx context.Context, userID int64, prefs model.NotificationPrefs) error
}

// OrderFacade encapsulates customer order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, userID int64, items []model.OrderItem, declaredDeliveryDate time.Time) (*model.Order, error)
	Orders(ctx context.Context, userID int64) ([]model.Order, error)
	OrderForUser(ctx context.Context, userID, number int64) (*model.Order, error)
	CancelOrder(ctx context.Context, userID, number int64) error
	RecordCustomerUpload(ctx context.Context, userID, number int64, filename, url string) (*model.Attachment, error)
	OrderAttachments(ctx context.Context, userID, number int64) ([]model.Attachment, error)
}

// AdminFacade covers staff-only order management.
type AdminFacade interface {
	AllOrders(ctx context.Context) ([]model.Order, error)
	OrderByNumber(ctx context.Context, number int64) (*model.Order, error)
	MarkOrderInProgress(ctx context.Context, number int64) error
	MarkOrderCompleted(ctx context.Context, number int64, actualDeliveryDate time.Time) error
	CancelOrderByStaff(ctx context.Context, number int64) error
	RecordDelivery(ctx context.Context, number int64, kind model.AttachmentKind, filename, url string) (*model.Attachment, error)
}

// PaymentFacade provides payment operations.
type PaymentFacade interface {
	StartPayment(ctx context.Context, userID int64, kind model.PaymentKind, amount decimal.Decimal, orderNumber *int64) (*model.Payment, string, error)
	Payments(ctx context.Context, userID int64) ([]model.Payment, error)
}

// WebhookFacade applies processor callbacks.
type WebhookFacade interface {
	ResolveSession(ctx context.Context, session model.CheckoutSession) error
}

// CopydeskFacade aggregates the full set of operations used across handlers.
type CopydeskFacade interface {
	AuthFacade
	AccountFacade
	OrderFacade
	AdminFacade
	PaymentFacade
	WebhookFacade
}
