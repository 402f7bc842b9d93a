package dto

import "github.com/shopspring/decimal"

// BillingProfilePayload mirrors invoicing details both ways.
type BillingProfilePayload struct {
	CompanyName string `json:"company_name"`
	TaxID       string `json:"tax_id"`
	Address     string `json:"address"`
	PostalCode  string `json:"postal_code"`
	City        string `json:"city"`
	BuildingNo  string `json:"building_no"`
}

// NotificationPrefsPayload mirrors notification opt-ins both ways.
type NotificationPrefsPayload struct {
	OrderUpdates bool `json:"order_updates"`
	Marketing    bool `json:"marketing"`
}

// ProfileResponse describes the authenticated account.
type ProfileResponse struct {
	Email         string                   `json:"email"`
	Role          string                   `json:"role"`
	Balance       decimal.Decimal          `json:"balance"`
	TotalSpent    decimal.Decimal          `json:"total_spent"`
	Billing       BillingProfilePayload    `json:"billing"`
	Notifications NotificationPrefsPayload `json:"notifications"`
}

// BalanceResponse summarizes account funds.
type BalanceResponse struct {
	Balance    decimal.Decimal `json:"balance"`
	TotalSpent decimal.Decimal `json:"total_spent"`
}
