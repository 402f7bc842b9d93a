package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkowalik/copydesk/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
// Order and item numbers are assigned from database sequences during Create
// and are never reused, including for later cancelled orders.
type OrderRepository interface {
	Create(ctx context.Context, userID int64, items []model.OrderItem, total decimal.Decimal, declaredDeliveryDate time.Time) (*model.Order, error)
	GetByNumber(ctx context.Context, number int64) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	// Transition moves the order to the target status only when its current
	// status is one of from; otherwise ErrInvalidState. The check and the
	// update run atomically.
	Transition(ctx context.Context, orderID int64, from []model.OrderStatus, to model.OrderStatus, actualDeliveryDate *time.Time) error
	SetInvoiceRef(ctx context.Context, orderID int64, invoiceRef string) error
}
