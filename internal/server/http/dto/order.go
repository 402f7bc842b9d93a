package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest describes one line item of a new order.
type OrderItemRequest struct {
	Topic       string          `json:"topic"`
	Length      int             `json:"length"`
	Price       decimal.Decimal `json:"price"`
	ContentType string          `json:"content_type"`
	Language    string          `json:"language"`
	Guidelines  string          `json:"guidelines,omitempty"`
}

// CreateOrderRequest describes the order creation payload.
type CreateOrderRequest struct {
	Items                []OrderItemRequest `json:"items"`
	DeclaredDeliveryDate time.Time          `json:"declared_delivery_date"`
}

// OrderItemResponse describes one line item of a stored order.
type OrderItemResponse struct {
	Number      int64           `json:"number"`
	Topic       string          `json:"topic"`
	Length      int             `json:"length"`
	Price       decimal.Decimal `json:"price"`
	ContentType string          `json:"content_type"`
	Language    string          `json:"language"`
	Guidelines  string          `json:"guidelines,omitempty"`
}

// OrderResponse describes a stored order.
type OrderResponse struct {
	Number               int64               `json:"number"`
	Status               string              `json:"status"`
	PaymentStatus        string              `json:"payment_status"`
	TotalPrice           decimal.Decimal     `json:"total_price"`
	DeclaredDeliveryDate time.Time           `json:"declared_delivery_date"`
	ActualDeliveryDate   *time.Time          `json:"actual_delivery_date,omitempty"`
	InvoiceRef           *string             `json:"invoice_ref,omitempty"`
	CreatedAt            time.Time           `json:"created_at"`
	Items                []OrderItemResponse `json:"items,omitempty"`
}

// CompleteOrderRequest carries the actual delivery date for completion.
type CompleteOrderRequest struct {
	ActualDeliveryDate time.Time `json:"actual_delivery_date"`
}

// DeliveryRequest describes a staff file delivery payload.
type DeliveryRequest struct {
	Kind     string `json:"kind"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// CustomerUploadRequest describes a customer file reference payload.
type CustomerUploadRequest struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// AttachmentResponse describes a stored file reference.
type AttachmentResponse struct {
	ID           int64     `json:"id"`
	Kind         string    `json:"kind"`
	Source       string    `json:"source"`
	Filename     string    `json:"filename"`
	URL          string    `json:"url"`
	OnCompletion bool      `json:"on_completion"`
	UploadedAt   time.Time `json:"uploaded_at"`
}
