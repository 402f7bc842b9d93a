package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/mkowalik/copydesk/internal/domain/errors"
	"github.com/mkowalik/copydesk/internal/domain/model"
)

// ValidateItems checks order line items before persistence.
func ValidateItems(items []model.OrderItem) error {
	if len(items) == 0 {
		return domainErrors.ErrNoItems
	}
	for _, item := range items {
		if item.Price.IsNegative() {
			return domainErrors.ErrNegativePrice
		}
	}
	return nil
}

// ValidateDeliveryDate rejects declared delivery dates in the past.
func ValidateDeliveryDate(declared, now time.Time) error {
	if declared.Before(now) {
		return domainErrors.ErrPastDeliveryDate
	}
	return nil
}

// ValidateAmount checks that a payment amount is positive.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domainErrors.ErrInvalidAmount
	}
	return nil
}

// TotalPrice sums item prices.
func TotalPrice(items []model.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price)
	}
	return total
}

// ValidAttachmentKind reports whether the kind is a known attachment tag.
func ValidAttachmentKind(kind model.AttachmentKind) bool {
	switch kind {
	case model.AttachmentKindPDF, model.AttachmentKindDocx, model.AttachmentKindImage, model.AttachmentKindOther:
		return true
	}
	return false
}
