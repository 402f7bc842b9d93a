package repository

import (
	"context"

	"github.com/mkowalik/copydesk/internal/domain/model"
)

// UserRepository describes persistence operations for accounts.
// Balance and TotalSpent are adjusted exclusively by payment settlement
// inside PaymentRepository; no direct mutation path exists here.
type UserRepository interface {
	Create(ctx context.Context, email, passwordHash string, role model.Role) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	UpdateBillingProfile(ctx context.Context, userID int64, profile model.BillingProfile) error
	UpdateNotificationPrefs(ctx context.Context, userID int64, prefs model.NotificationPrefs) error
}
