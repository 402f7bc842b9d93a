package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	domainErrors "github.com/mkowalik/copydesk/internal/domain/errors"
	"github.com/mkowalik/copydesk/internal/domain/model"
	"github.com/mkowalik/copydesk/internal/domain/repository"
	pkgAuth "github.com/mkowalik/copydesk/internal/pkg/auth"
)

// AuthUseCase handles account lifecycle and token management.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy}
}

// Register creates a new customer account and returns an auth token.
func (u *AuthUseCase) Register(ctx context.Context, email, password string) (*model.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	usr, err := u.users.Create(ctx, email, hash, model.RoleCustomer)
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, "", domainErrors.ErrAlreadyExists
		}
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates credentials and returns an auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken extracts the user ID from a token.
func (u *AuthUseCase) ParseToken(token string) (int64, error) {
	if token == "" {
		return 0, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches a user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

// UpdateBillingProfile replaces the user's invoicing details.
func (u *AuthUseCase) UpdateBillingProfile(ctx context.Context, userID int64, profile model.BillingProfile) error {
	return u.users.UpdateBillingProfile(ctx, userID, profile)
}

// UpdateNotificationPrefs replaces the user's notification opt-ins.
func (u *AuthUseCase) UpdateNotificationPrefs(ctx context.Context, userID int64, prefs model.NotificationPrefs) error {
	return u.users.UpdateNotificationPrefs(ctx, userID, prefs)
}

// BootstrapAdmin makes sure an administrator account exists at startup.
// Idempotent: an already-registered admin email is left untouched.
func (u *AuthUseCase) BootstrapAdmin(ctx context.Context, log *slog.Logger, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil
	}

	if _, err := u.users.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, domainErrors.ErrNotFound) {
		return err
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return err
	}

	if _, err := u.users.Create(ctx, email, hash, model.RoleAdmin); err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil
		}
		return err
	}

	log.Info("admin account created", slog.String("email", email))
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
