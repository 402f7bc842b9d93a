package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mkowalik/copydesk/internal/domain/model"
)

// PaymentRepository describes persistence operations with payments.
type PaymentRepository interface {
	Create(ctx context.Context, userID int64, orderID *int64, kind model.PaymentKind, amount decimal.Decimal, sessionID string) (*model.Payment, error)
	GetByID(ctx context.Context, id int64) (*model.Payment, error)
	GetBySession(ctx context.Context, sessionID string) (*model.Payment, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Payment, error)
	ListPending(ctx context.Context, limit int) ([]model.Payment, error)
	// Complete settles a pending payment atomically with its side effects:
	// top-ups increase the account balance by paidAmount, order payments set
	// the related order's payment status to paid and increase the account's
	// total spent. Completing an already-completed payment with the same
	// processor reference is a no-op; a different reference returns
	// ErrDuplicateSettlement.
	Complete(ctx context.Context, paymentID int64, paidAmount decimal.Decimal, processorRef string) (*model.Payment, error)
	// Fail marks a pending payment failed without side effects. Failing an
	// already-failed payment is a no-op; failing a completed payment returns
	// ErrInvalidState.
	Fail(ctx context.Context, paymentID int64, reason string) error
}
