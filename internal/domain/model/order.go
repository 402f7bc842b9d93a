package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes the order lifecycle.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Terminal reports whether no further status transition is permitted.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// PaymentStatus tracks order settlement independently from OrderStatus.
// An order may be completed while its payment is still pending.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// OrderItem is one billable unit of content within an order.
// Number is unique across all items of all orders and is never reused.
type OrderItem struct {
	ID          int64
	OrderID     int64
	Number      int64
	Topic       string
	Length      int
	Price       decimal.Decimal
	ContentType string
	Language    string
	Guidelines  string
}

// Order is a content request placed by a customer.
type Order struct {
	ID                   int64
	UserID               int64
	Number               int64
	Items                []OrderItem
	TotalPrice           decimal.Decimal
	Status               OrderStatus
	PaymentStatus        PaymentStatus
	DeclaredDeliveryDate time.Time
	ActualDeliveryDate   *time.Time
	InvoiceRef           *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
