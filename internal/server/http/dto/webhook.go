package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutWebhookRequest mirrors the processor callback payload.
type CheckoutWebhookRequest struct {
	SessionID  string           `json:"session_id"`
	Status     string           `json:"status"`
	ChargeRef  string           `json:"charge_ref,omitempty"`
	AmountPaid *decimal.Decimal `json:"amount_paid,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
}
