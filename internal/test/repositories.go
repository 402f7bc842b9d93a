package test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/mkowalik/copydesk/internal/domain/errors"
	"github.com/mkowalik/copydesk/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, email, passwordHash string, role model.Role) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Email: email, PasswordHash: passwordHash, Role: role}
	s.Next++
	s.Users[email] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// UpdateBillingProfile replaces the stored billing profile.
func (s *UserRepositoryStub) UpdateBillingProfile(ctx context.Context, userID int64, profile model.BillingProfile) error {
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[userID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.Billing = profile
	return nil
}

// UpdateNotificationPrefs replaces the stored notification preferences.
func (s *UserRepositoryStub) UpdateNotificationPrefs(ctx context.Context, userID int64, prefs model.NotificationPrefs) error {
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[userID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.Notifications = prefs
	return nil
}

// OrderTransitionCall captures a Transition invocation.
type OrderTransitionCall struct {
	OrderID int64
	From    []model.OrderStatus
	To      model.OrderStatus
	Actual  *time.Time
}

// OrderRepositoryStub allows tests to customize behaviour.
type OrderRepositoryStub struct {
	CreateFn        func(context.Context, int64, []model.OrderItem, decimal.Decimal, time.Time) (*model.Order, error)
	GetByNumberFn   func(context.Context, int64) (*model.Order, error)
	ListByUserFn    func(context.Context, int64) ([]model.Order, error)
	ListAllFn       func(context.Context) ([]model.Order, error)
	TransitionFn    func(context.Context, int64, []model.OrderStatus, model.OrderStatus, *time.Time) error
	SetInvoiceRefFn func(context.Context, int64, string) error

	Orders          []model.Order
	TransitionCalls []OrderTransitionCall
}

// Create returns configured response or assembles a minimal order.
func (s *OrderRepositoryStub) Create(ctx context.Context, userID int64, items []model.OrderItem, total decimal.Decimal, declaredDeliveryDate time.Time) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, userID, items, total, declaredDeliveryDate)
	}
	order := &model.Order{
		ID:                   1,
		Number:               1001,
		UserID:               userID,
		Items:                items,
		TotalPrice:           total,
		Status:               model.OrderStatusPending,
		PaymentStatus:        model.PaymentStatusPending,
		DeclaredDeliveryDate: declaredDeliveryDate,
	}
	return order, nil
}

// GetByNumber returns matched order either via override or stored slice.
func (s *OrderRepositoryStub) GetByNumber(ctx context.Context, number int64) (*model.Order, error) {
	if s.GetByNumberFn != nil {
		return s.GetByNumberFn(ctx, number)
	}
	for _, o := range s.Orders {
		if o.Number == number {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns orders from configured slice.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	return s.Orders, nil
}

// ListAll returns every configured order.
func (s *OrderRepositoryStub) ListAll(ctx context.Context) ([]model.Order, error) {
	if s.ListAllFn != nil {
		return s.ListAllFn(ctx)
	}
	return s.Orders, nil
}

// Transition records the invocation and applies overrides when provided.
func (s *OrderRepositoryStub) Transition(ctx context.Context, orderID int64, from []model.OrderStatus, to model.OrderStatus, actualDeliveryDate *time.Time) error {
	s.TransitionCalls = append(s.TransitionCalls, OrderTransitionCall{OrderID: orderID, From: from, To: to, Actual: actualDeliveryDate})
	if s.TransitionFn != nil {
		return s.TransitionFn(ctx, orderID, from, to, actualDeliveryDate)
	}
	return nil
}

// SetInvoiceRef applies the override when provided.
func (s *OrderRepositoryStub) SetInvoiceRef(ctx context.Context, orderID int64, invoiceRef string) error {
	if s.SetInvoiceRefFn != nil {
		return s.SetInvoiceRefFn(ctx, orderID, invoiceRef)
	}
	return nil
}

// AttachmentRepositoryStub lets tests control attachment data.
type AttachmentRepositoryStub struct {
	RecordDeliveryFn       func(context.Context, int64, model.AttachmentKind, string, string) (*model.Attachment, error)
	RecordCustomerUploadFn func(context.Context, int64, string, string) (*model.Attachment, error)
	ListByOrderFn          func(context.Context, int64) ([]model.Attachment, error)
	Items                  []model.Attachment
}

// RecordDelivery returns configured response or a minimal attachment.
func (s *AttachmentRepositoryStub) RecordDelivery(ctx context.Context, orderID int64, kind model.AttachmentKind, filename, url string) (*model.Attachment, error) {
	if s.RecordDeliveryFn != nil {
		return s.RecordDeliveryFn(ctx, orderID, kind, filename, url)
	}
	return &model.Attachment{ID: 1, OrderID: orderID, Kind: kind, Source: model.AttachmentSourceStaff, Filename: filename, URL: url}, nil
}

// RecordCustomerUpload returns configured response or a minimal attachment.
func (s *AttachmentRepositoryStub) RecordCustomerUpload(ctx context.Context, orderID int64, filename, url string) (*model.Attachment, error) {
	if s.RecordCustomerUploadFn != nil {
		return s.RecordCustomerUploadFn(ctx, orderID, filename, url)
	}
	return &model.Attachment{ID: 1, OrderID: orderID, Kind: model.AttachmentKindOther, Source: model.AttachmentSourceCustomer, Filename: filename, URL: url}, nil
}

// ListByOrder returns configured attachments.
func (s *AttachmentRepositoryStub) ListByOrder(ctx context.Context, orderID int64) ([]model.Attachment, error) {
	if s.ListByOrderFn != nil {
		return s.ListByOrderFn(ctx, orderID)
	}
	return s.Items, nil
}

// PaymentCompleteCall captures a Complete invocation.
type PaymentCompleteCall struct {
	PaymentID    int64
	PaidAmount   decimal.Decimal
	ProcessorRef string
}

// PaymentFailCall captures a Fail invocation.
type PaymentFailCall struct {
	PaymentID int64
	Reason    string
}

// PaymentRepositoryStub lets tests control payment data.
type PaymentRepositoryStub struct {
	CreateFn       func(context.Context, int64, *int64, model.PaymentKind, decimal.Decimal, string) (*model.Payment, error)
	GetByIDFn      func(context.Context, int64) (*model.Payment, error)
	GetBySessionFn func(context.Context, string) (*model.Payment, error)
	ListByUserFn   func(context.Context, int64) ([]model.Payment, error)
	ListPendingFn  func(context.Context, int) ([]model.Payment, error)
	CompleteFn     func(context.Context, int64, decimal.Decimal, string) (*model.Payment, error)
	FailFn         func(context.Context, int64, string) error

	Payments      []model.Payment
	CompleteCalls []PaymentCompleteCall
	FailCalls     []PaymentFailCall
}

// Create returns configured response or a minimal pending payment.
func (s *PaymentRepositoryStub) Create(ctx context.Context, userID int64, orderID *int64, kind model.PaymentKind, amount decimal.Decimal, sessionID string) (*model.Payment, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, userID, orderID, kind, amount, sessionID)
	}
	return &model.Payment{ID: 1, UserID: userID, OrderID: orderID, Kind: kind, Status: model.PaymentStatePending, Amount: amount, SessionID: sessionID}, nil
}

// GetByID returns matched payment either via override or stored slice.
func (s *PaymentRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Payment, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, p := range s.Payments {
		if p.ID == id {
			payment := p
			return &payment, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetBySession returns matched payment either via override or stored slice.
func (s *PaymentRepositoryStub) GetBySession(ctx context.Context, sessionID string) (*model.Payment, error) {
	if s.GetBySessionFn != nil {
		return s.GetBySessionFn(ctx, sessionID)
	}
	for _, p := range s.Payments {
		if p.SessionID == sessionID {
			payment := p
			return &payment, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns payments from configured slice.
func (s *PaymentRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Payment, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	return s.Payments, nil
}

// ListPending returns queued payments for reconciliation.
func (s *PaymentRepositoryStub) ListPending(ctx context.Context, limit int) ([]model.Payment, error) {
	if s.ListPendingFn != nil {
		return s.ListPendingFn(ctx, limit)
	}
	return s.Payments, nil
}

// Complete records the invocation and applies overrides when provided.
func (s *PaymentRepositoryStub) Complete(ctx context.Context, paymentID int64, paidAmount decimal.Decimal, processorRef string) (*model.Payment, error) {
	s.CompleteCalls = append(s.CompleteCalls, PaymentCompleteCall{PaymentID: paymentID, PaidAmount: paidAmount, ProcessorRef: processorRef})
	if s.CompleteFn != nil {
		return s.CompleteFn(ctx, paymentID, paidAmount, processorRef)
	}
	return &model.Payment{ID: paymentID, Status: model.PaymentStateCompleted, PaidAmount: paidAmount}, nil
}

// Fail records the invocation and applies overrides when provided.
func (s *PaymentRepositoryStub) Fail(ctx context.Context, paymentID int64, reason string) error {
	s.FailCalls = append(s.FailCalls, PaymentFailCall{PaymentID: paymentID, Reason: reason})
	if s.FailFn != nil {
		return s.FailFn(ctx, paymentID, reason)
	}
	return nil
}
