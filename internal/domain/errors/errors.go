package errors

import "errors"

var (
	ErrAlreadyExists       = errors.New("already exists")
	ErrNotFound            = errors.New("not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrNoItems             = errors.New("order has no items")
	ErrNegativePrice       = errors.New("item price is negative")
	ErrPastDeliveryDate    = errors.New("delivery date is in the past")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidAttachment   = errors.New("invalid attachment")
	ErrOrderRequired       = errors.New("order reference required")
	ErrOrderNotAllowed     = errors.New("order reference not allowed")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidState        = errors.New("operation not allowed in current state")
	ErrConflict            = errors.New("concurrent update conflict")
	ErrDuplicateSettlement = errors.New("settlement reference mismatch")
)
