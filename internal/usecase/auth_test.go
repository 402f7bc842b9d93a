package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	domainErrors "github.com/mkowalik/copydesk/internal/domain/errors"
	"github.com/mkowalik/copydesk/internal/domain/model"
	pkgAuth "github.com/mkowalik/copydesk/internal/pkg/auth"
	testhelpers "github.com/mkowalik/copydesk/internal/test"
)

func newStrategyStub() testhelpers.StrategyStub {
	return testhelpers.StrategyStub{
		IssueFn: func(userID int64) (string, error) {
			return fmt.Sprintf("token-%d", userID), nil
		},
		ParseFn: func(token string) (int64, error) {
			var id int64
			if _, err := fmt.Sscanf(token, "token-%d", &id); err != nil {
				return 0, pkgAuth.ErrInvalidToken
			}
			return id, nil
		},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuthUseCaseRegisterSuccess(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())

	ctx := context.Background()
	user, token, err := uc.Register(ctx, "alice@example.com", "password")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected user to have ID assigned")
	}
	if user.Role != model.RoleCustomer {
		t.Fatalf("registration must create customers, got %v", user.Role)
	}
	if token != "token-1" {
		t.Fatalf("unexpected token %q", token)
	}
	stored, err := repo.GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("expected user in repository: %v", err)
	}
	if stored.PasswordHash != "hash:password" {
		t.Fatalf("password hash not stored: %v", stored.PasswordHash)
	}
}

func TestAuthUseCaseRegisterNormalizesEmail(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())

	ctx := context.Background()
	if _, _, err := uc.Register(ctx, "  Bob@Example.COM ", "secret"); err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if _, err := repo.GetByEmail(ctx, "bob@example.com"); err != nil {
		t.Fatalf("expected lower-cased email in repository: %v", err)
	}
}

func TestAuthUseCaseRegisterDuplicate(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())

	ctx := context.Background()
	if _, _, err := uc.Register(ctx, "bob@example.com", "secret"); err != nil {
		t.Fatalf("unexpected error on first register: %v", err)
	}
	if _, _, err := uc.Register(ctx, "bob@example.com", "secret"); err != domainErrors.ErrAlreadyExists {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestAuthUseCaseAuthenticate(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())

	ctx := context.Background()
	if _, _, err := uc.Register(ctx, "carol@example.com", "123456"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, err := uc.Authenticate(ctx, "carol@example.com", "bad"); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}

	_, token, err := uc.Authenticate(ctx, "carol@example.com", "123456")
	if err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}
	if token != "token-1" {
		t.Fatalf("unexpected token %q", token)
	}
}

func TestAuthUseCaseAuthenticateUnknownUser(t *testing.T) {
	uc := NewAuthUseCase(testhelpers.NewUserRepositoryStub(), testhelpers.HasherStub{}, newStrategyStub())
	if _, _, err := uc.Authenticate(context.Background(), "nobody@example.com", "pw"); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}
}

func TestAuthUseCaseParseToken(t *testing.T) {
	uc := NewAuthUseCase(testhelpers.NewUserRepositoryStub(), testhelpers.HasherStub{}, newStrategyStub())

	id, err := uc.ParseToken("token-42")
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected id 42, got %d", id)
	}

	if _, err := uc.ParseToken("bad-token"); err != pkgAuth.ErrInvalidToken {
		t.Fatalf("expected invalid token error, got %v", err)
	}

	if _, err := uc.ParseToken(""); err != pkgAuth.ErrInvalidToken {
		t.Fatalf("expected invalid token error, got %v", err)
	}
}

func TestAuthUseCaseRegisterValidation(t *testing.T) {
	uc := NewAuthUseCase(testhelpers.NewUserRepositoryStub(), testhelpers.HasherStub{}, newStrategyStub())
	if _, _, err := uc.Register(context.Background(), "", "password"); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}
	if _, _, err := uc.Register(context.Background(), "user@example.com", ""); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}
}

func TestAuthUseCaseRegisterHasherError(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{HashFn: func(string) (string, error) {
		return "", fmt.Errorf("hash error")
	}}, newStrategyStub())

	if _, _, err := uc.Register(context.Background(), "dave@example.com", "pw"); err == nil {
		t.Fatalf("expected hasher error to propagate")
	}
}

func TestAuthUseCaseUpdateBillingProfile(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())

	ctx := context.Background()
	user, _, err := uc.Register(ctx, "erin@example.com", "pw")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	profile := model.BillingProfile{CompanyName: "Acme Copy", TaxID: "1234567890", City: "Austin"}
	if err := uc.UpdateBillingProfile(ctx, user.ID, profile); err != nil {
		t.Fatalf("update billing profile failed: %v", err)
	}
	stored, _ := repo.GetByID(ctx, user.ID)
	if stored.Billing != profile {
		t.Fatalf("billing profile not stored: %+v", stored.Billing)
	}

	if err := uc.UpdateBillingProfile(ctx, 9999, profile); err != domainErrors.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAuthUseCaseUpdateNotificationPrefs(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())

	ctx := context.Background()
	user, _, err := uc.Register(ctx, "frank@example.com", "pw")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	prefs := model.NotificationPrefs{OrderUpdates: true, Marketing: false}
	if err := uc.UpdateNotificationPrefs(ctx, user.ID, prefs); err != nil {
		t.Fatalf("update notification prefs failed: %v", err)
	}
	stored, _ := repo.GetByID(ctx, user.ID)
	if stored.Notifications != prefs {
		t.Fatalf("notification prefs not stored: %+v", stored.Notifications)
	}
}

func TestAuthUseCaseBootstrapAdmin(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())
	ctx := context.Background()

	if err := uc.BootstrapAdmin(ctx, discardLogger(), "admin@example.com", "root"); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	admin, err := repo.GetByEmail(ctx, "admin@example.com")
	if err != nil {
		t.Fatalf("expected admin in repository: %v", err)
	}
	if admin.Role != model.RoleAdmin {
		t.Fatalf("expected admin role, got %v", admin.Role)
	}

	// Second run is a no-op.
	if err := uc.BootstrapAdmin(ctx, discardLogger(), "admin@example.com", "root"); err != nil {
		t.Fatalf("repeated bootstrap failed: %v", err)
	}
	if len(repo.ByID) != 1 {
		t.Fatalf("bootstrap must not duplicate accounts, got %d", len(repo.ByID))
	}
}

func TestAuthUseCaseBootstrapAdminSkipsEmptyConfig(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())

	if err := uc.BootstrapAdmin(context.Background(), discardLogger(), "", ""); err != nil {
		t.Fatalf("empty config must be skipped, got %v", err)
	}
	if len(repo.ByID) != 0 {
		t.Fatalf("no account should be created")
	}
}
