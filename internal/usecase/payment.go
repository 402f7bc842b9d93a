package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	domainErrors "github.com/mkowalik/copydesk/internal/domain/errors"
	"github.com/mkowalik/copydesk/internal/domain/model"
	"github.com/mkowalik/copydesk/internal/domain/repository"
)

// PaymentUseCase manages payment attempts and settlement.
type PaymentUseCase struct {
	payments repository.PaymentRepository
	orders   repository.OrderRepository
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(payments repository.PaymentRepository, orders repository.OrderRepository) *PaymentUseCase {
	return &PaymentUseCase{payments: payments, orders: orders}
}

// Start records a pending payment for an already-created checkout session.
// For order payments the order reference is mandatory and must point to an
// unpaid order of the same user; top-ups must not reference an order.
func (u *PaymentUseCase) Start(ctx context.Context, userID int64, kind model.PaymentKind, amount decimal.Decimal, orderNumber *int64, sessionID string) (*model.Payment, error) {
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}

	switch kind {
	case model.PaymentKindTopUp:
		if orderNumber != nil {
			return nil, domainErrors.ErrOrderNotAllowed
		}
		return u.payments.Create(ctx, userID, nil, kind, amount, sessionID)
	case model.PaymentKindOrderPayment:
		if orderNumber == nil {
			return nil, domainErrors.ErrOrderRequired
		}
		order, err := u.orders.GetByNumber(ctx, *orderNumber)
		if err != nil {
			return nil, err
		}
		if order.UserID != userID {
			return nil, domainErrors.ErrNotFound
		}
		if order.PaymentStatus == model.PaymentStatusPaid {
			return nil, domainErrors.ErrInvalidState
		}
		return u.payments.Create(ctx, userID, &order.ID, kind, amount, sessionID)
	default:
		return nil, domainErrors.ErrInvalidAmount
	}
}

// Complete settles a payment idempotently; side effects are applied by the
// storage layer in the same transaction.
func (u *PaymentUseCase) Complete(ctx context.Context, paymentID int64, paidAmount decimal.Decimal, processorRef string) (*model.Payment, error) {
	if err := ValidateAmount(paidAmount); err != nil {
		return nil, err
	}
	return u.payments.Complete(ctx, paymentID, paidAmount, processorRef)
}

// Fail terminates a pending payment without side effects.
func (u *PaymentUseCase) Fail(ctx context.Context, paymentID int64, reason string) error {
	return u.payments.Fail(ctx, paymentID, reason)
}

// ResolveSession applies a processor session state to the matching payment.
// Pending sessions are left untouched; paid sessions settle, failed or
// expired sessions terminate the payment. Used by both the webhook endpoint
// and the background reconciler, relying on settlement idempotency when the
// two race.
func (u *PaymentUseCase) ResolveSession(ctx context.Context, session model.CheckoutSession) error {
	payment, err := u.payments.GetBySession(ctx, session.ID)
	if err != nil {
		return err
	}

	switch session.Status {
	case model.CheckoutSessionPaid:
		paid := payment.Amount
		if session.AmountPaid != nil {
			paid = *session.AmountPaid
		}
		ref := session.ChargeRef
		if ref == "" {
			ref = session.ID
		}
		_, err := u.payments.Complete(ctx, payment.ID, paid, ref)
		return err
	case model.CheckoutSessionFailed, model.CheckoutSessionExpired:
		return u.payments.Fail(ctx, payment.ID, string(session.Status))
	}
	return nil
}

// GetByID fetches a payment by identifier.
func (u *PaymentUseCase) GetByID(ctx context.Context, id int64) (*model.Payment, error) {
	return u.payments.GetByID(ctx, id)
}

// ListByUser returns payment history, newest first.
func (u *PaymentUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Payment, error) {
	return u.payments.ListByUser(ctx, userID)
}

// ListPending returns payments awaiting a terminal processor state.
func (u *PaymentUseCase) ListPending(ctx context.Context, limit int) ([]model.Payment, error) {
	return u.payments.ListPending(ctx, limit)
}
