package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role distinguishes administrative staff from regular customers.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// BillingProfile holds company details required only for invoicing.
// Every field is optional; an empty profile never blocks order creation.
type BillingProfile struct {
	CompanyName string
	TaxID       string
	Address     string
	PostalCode  string
	City        string
	BuildingNo  string
}

// NotificationPrefs stores per-channel opt-in flags.
type NotificationPrefs struct {
	OrderUpdates bool
	Marketing    bool
}

// User represents a registered account of the marketplace.
// Balance and TotalSpent change only through payment settlement.
type User struct {
	ID            int64
	Email         string
	PasswordHash  string
	Role          Role
	Verified      bool
	Balance       decimal.Decimal
	TotalSpent    decimal.Decimal
	Billing       BillingProfile
	Notifications NotificationPrefs
	CreatedAt     time.Time
}
