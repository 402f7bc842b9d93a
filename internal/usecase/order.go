package usecase

import (
	"context"
	"time"

	domainErrors "github.com/mkowalik/copydesk/internal/domain/errors"
	"github.com/mkowalik/copydesk/internal/domain/model"
	"github.com/mkowalik/copydesk/internal/domain/repository"
)

// OrderUseCase encapsulates the order lifecycle.
type OrderUseCase struct {
	orders      repository.OrderRepository
	attachments repository.AttachmentRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, attachments repository.AttachmentRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders, attachments: attachments}
}

// Create registers a new order. The order number and per-item numbers are
// assigned by the storage layer from global sequences; the total price is
// the sum of item prices.
func (u *OrderUseCase) Create(ctx context.Context, userID int64, items []model.OrderItem, declaredDeliveryDate time.Time) (*model.Order, error) {
	if err := ValidateItems(items); err != nil {
		return nil, err
	}
	if err := ValidateDeliveryDate(declaredDeliveryDate, time.Now()); err != nil {
		return nil, err
	}
	return u.orders.Create(ctx, userID, items, TotalPrice(items), declaredDeliveryDate)
}

// GetByNumber returns the order with its items.
func (u *OrderUseCase) GetByNumber(ctx context.Context, number int64) (*model.Order, error) {
	return u.orders.GetByNumber(ctx, number)
}

// ListByUser returns orders of one customer, newest first.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// ListAll returns all orders for administrative views.
func (u *OrderUseCase) ListAll(ctx context.Context) ([]model.Order, error) {
	return u.orders.ListAll(ctx)
}

// Cancel moves the order to cancelled. Allowed from pending and in_progress
// only; the order keeps its number.
func (u *OrderUseCase) Cancel(ctx context.Context, number int64) error {
	order, err := u.orders.GetByNumber(ctx, number)
	if err != nil {
		return err
	}
	return u.orders.Transition(ctx, order.ID,
		[]model.OrderStatus{model.OrderStatusPending, model.OrderStatusInProgress},
		model.OrderStatusCancelled, nil)
}

// MarkInProgress moves a pending order into processing.
func (u *OrderUseCase) MarkInProgress(ctx context.Context, number int64) error {
	order, err := u.orders.GetByNumber(ctx, number)
	if err != nil {
		return err
	}
	return u.orders.Transition(ctx, order.ID,
		[]model.OrderStatus{model.OrderStatusPending},
		model.OrderStatusInProgress, nil)
}

// MarkCompleted finishes the order and records the actual delivery date.
// Completion does not require the order to be paid; settlement is tracked
// on its own axis.
func (u *OrderUseCase) MarkCompleted(ctx context.Context, number int64, actualDeliveryDate time.Time) error {
	order, err := u.orders.GetByNumber(ctx, number)
	if err != nil {
		return err
	}
	return u.orders.Transition(ctx, order.ID,
		[]model.OrderStatus{model.OrderStatusPending, model.OrderStatusInProgress},
		model.OrderStatusCompleted, &actualDeliveryDate)
}

// RecordDelivery stores a staff attachment for the order. The order status
// is not changed; completing remains an explicit transition.
func (u *OrderUseCase) RecordDelivery(ctx context.Context, number int64, kind model.AttachmentKind, filename, url string) (*model.Attachment, error) {
	if !ValidAttachmentKind(kind) || filename == "" || url == "" {
		return nil, domainErrors.ErrInvalidAttachment
	}
	order, err := u.orders.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	return u.attachments.RecordDelivery(ctx, order.ID, kind, filename, url)
}

// RecordCustomerUpload appends a customer file to their own order. Works in
// any order status and never triggers a transition.
func (u *OrderUseCase) RecordCustomerUpload(ctx context.Context, userID, number int64, filename, url string) (*model.Attachment, error) {
	if filename == "" || url == "" {
		return nil, domainErrors.ErrInvalidAttachment
	}
	order, err := u.orders.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrNotFound
	}
	return u.attachments.RecordCustomerUpload(ctx, order.ID, filename, url)
}

// Attachments lists all file references of the order.
func (u *OrderUseCase) Attachments(ctx context.Context, number int64) ([]model.Attachment, error) {
	order, err := u.orders.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	return u.attachments.ListByOrder(ctx, order.ID)
}
