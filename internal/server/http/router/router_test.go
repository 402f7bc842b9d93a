package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/mkowalik/copydesk/internal/domain/model"
	"github.com/mkowalik/copydesk/internal/server/http/handlers"
	testhelpers "github.com/mkowalik/copydesk/internal/test"
)

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := testhelpers.CopydeskFacadeStub{
		OrderFacadeStub: testhelpers.OrderFacadeStub{
			OrdersFn: func(ctx context.Context, userID int64) ([]model.Order, error) {
				return []model.Order{{
					Number:        1001,
					UserID:        userID,
					Status:        model.OrderStatusCompleted,
					PaymentStatus: model.PaymentStatusPaid,
					TotalPrice:    decimal.RequireFromString("300"),
					CreatedAt:     time.Unix(0, 0),
				}}, nil
			},
		},
	}
	engine := Setup(facade, logger)

	body, _ := json.Marshal(map[string]string{"email": "user@example.com", "password": "pass"})
	req := httptest.NewRequest(http.MethodPost, "/api/user/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for register, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/user/orders", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for orders, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/user/orders", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without token, got %d", resp.Code)
	}

	webhook, _ := json.Marshal(map[string]string{"session_id": "cs_1", "status": "PAID"})
	req = httptest.NewRequest(http.MethodPost, "/api/webhooks/checkout", bytes.NewReader(webhook))
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for webhook, got %d", resp.Code)
	}
}

func TestSetupAdminRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	asRole := func(role model.Role) testhelpers.CopydeskFacadeStub {
		return testhelpers.CopydeskFacadeStub{
			AccountFacadeStub: testhelpers.AccountFacadeStub{
				UserFn: func(ctx context.Context, userID int64) (*model.User, error) {
					return &model.User{ID: userID, Role: role}, nil
				},
			},
		}
	}

	engine := Setup(asRole(model.RoleAdmin), logger)
	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for admin, got %d", resp.Code)
	}

	engine = Setup(asRole(model.RoleCustomer), logger)
	req = httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403 for customer, got %d", resp.Code)
	}
}

var _ handlers.CopydeskFacade = (*testhelpers.CopydeskFacadeStub)(nil)
