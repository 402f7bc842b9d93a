package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentKind distinguishes balance top-ups from order settlements.
type PaymentKind string

const (
	PaymentKindTopUp        PaymentKind = "top_up"
	PaymentKindOrderPayment PaymentKind = "order_payment"
)

// PaymentState describes the lifecycle of a single payment attempt.
// Completed and failed are both terminal.
type PaymentState string

const (
	PaymentStatePending   PaymentState = "pending"
	PaymentStateCompleted PaymentState = "completed"
	PaymentStateFailed    PaymentState = "failed"
)

// Payment is a monetary transaction created when a checkout session starts.
// Amount is what was requested; PaidAmount may diverge when a discount
// applies and Discount records the difference explicitly.
type Payment struct {
	ID           int64
	UserID       int64
	OrderID      *int64
	Kind         PaymentKind
	Status       PaymentState
	Amount       decimal.Decimal
	PaidAmount   decimal.Decimal
	Discount     decimal.Decimal
	SessionID    string
	ProcessorRef *string
	InvoiceID    *string
	FailReason   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CheckoutSessionStatus is the state reported by the external payment
// processor for a checkout session.
type CheckoutSessionStatus string

const (
	CheckoutSessionPending CheckoutSessionStatus = "PENDING"
	CheckoutSessionPaid    CheckoutSessionStatus = "PAID"
	CheckoutSessionFailed  CheckoutSessionStatus = "FAILED"
	CheckoutSessionExpired CheckoutSessionStatus = "EXPIRED"
)

// CheckoutSession carries processor callback data mapped into the core.
// ChargeRef is the processor's charge identifier when the session was paid;
// it may be empty for processors that only expose the session ID.
type CheckoutSession struct {
	ID         string
	Status     CheckoutSessionStatus
	ChargeRef  string
	AmountPaid *decimal.Decimal
	CreatedAt  time.Time
}
