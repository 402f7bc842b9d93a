package usecase

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/mkowalik/copydesk/internal/domain/errors"
	"github.com/mkowalik/copydesk/internal/domain/model"
)

func TestValidateItems(t *testing.T) {
	if err := ValidateItems(nil); err != domainErrors.ErrNoItems {
		t.Fatalf("expected ErrNoItems, got %v", err)
	}
	items := []model.OrderItem{{Topic: "landing page", Price: decimal.NewFromInt(-1)}}
	if err := ValidateItems(items); err != domainErrors.ErrNegativePrice {
		t.Fatalf("expected ErrNegativePrice, got %v", err)
	}
	items[0].Price = decimal.Zero
	if err := ValidateItems(items); err != nil {
		t.Fatalf("zero price should be allowed, got %v", err)
	}
}

func TestValidateDeliveryDate(t *testing.T) {
	now := time.Now()
	if err := ValidateDeliveryDate(now.Add(-time.Hour), now); err != domainErrors.ErrPastDeliveryDate {
		t.Fatalf("expected ErrPastDeliveryDate, got %v", err)
	}
	if err := ValidateDeliveryDate(now.Add(time.Hour), now); err != nil {
		t.Fatalf("future date should be allowed, got %v", err)
	}
}

func TestValidateAmount(t *testing.T) {
	if err := ValidateAmount(decimal.Zero); err != domainErrors.ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount for zero, got %v", err)
	}
	if err := ValidateAmount(decimal.NewFromInt(-5)); err != domainErrors.ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount for negative, got %v", err)
	}
	if err := ValidateAmount(decimal.NewFromFloat(0.01)); err != nil {
		t.Fatalf("positive amount should be allowed, got %v", err)
	}
}

func TestTotalPrice(t *testing.T) {
	items := []model.OrderItem{
		{Price: decimal.NewFromFloat(19.99)},
		{Price: decimal.NewFromFloat(30.01)},
	}
	if got := TotalPrice(items); !got.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected total 50, got %s", got)
	}
	if got := TotalPrice(nil); !got.Equal(decimal.Zero) {
		t.Fatalf("expected zero total for no items, got %s", got)
	}
}

func TestValidAttachmentKind(t *testing.T) {
	for _, kind := range []model.AttachmentKind{
		model.AttachmentKindPDF,
		model.AttachmentKindDocx,
		model.AttachmentKindImage,
		model.AttachmentKindOther,
	} {
		if !ValidAttachmentKind(kind) {
			t.Fatalf("kind %q should be valid", kind)
		}
	}
	if ValidAttachmentKind(model.AttachmentKind("archive")) {
		t.Fatalf("unknown kind should be rejected")
	}
}
