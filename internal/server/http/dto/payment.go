package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StartPaymentRequest describes a payment start payload.
type StartPaymentRequest struct {
	Kind   string          `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
	Order  *int64          `json:"order,omitempty"`
}

// StartPaymentResponse returns the created payment and a processor redirect.
type StartPaymentResponse struct {
	PaymentID   int64  `json:"payment_id"`
	SessionID   string `json:"session_id"`
	RedirectURL string `json:"redirect_url"`
}

// PaymentResponse describes a payment history entry.
type PaymentResponse struct {
	ID         int64           `json:"id"`
	Kind       string          `json:"kind"`
	Status     string          `json:"status"`
	Amount     decimal.Decimal `json:"amount"`
	PaidAmount decimal.Decimal `json:"paid_amount"`
	Discount   decimal.Decimal `json:"discount"`
	OrderID    *int64          `json:"order_id,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}
