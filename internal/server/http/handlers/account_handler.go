package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/mkowalik/copydesk/internal/domain/errors"
	"github.com/mkowalik/copydesk/internal/domain/model"
	"github.com/mkowalik/copydesk/internal/server/http/dto"
)

// AccountHandler manages profile, balance and preference endpoints.
type AccountHandler struct {
	facade AccountFacade
}

// NewAccountHandler constructs AccountHandler.
func NewAccountHandler(facade AccountFacade) *AccountHandler {
	return &AccountHandler{facade: facade}
}

// Profile handles GET /api/user/profile.
func (h *AccountHandler) Profile(c *gin.Context) {
	userID := CurrentUserID(c)
	user, err := h.facade.User(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.ProfileResponse{
		Email:      user.Email,
		Role:       string(user.Role),
		Balance:    user.Balance,
		TotalSpent: user.TotalSpent,
		Billing: dto.BillingProfilePayload{
			CompanyName: user.Billing.CompanyName,
			TaxID:       user.Billing.TaxID,
			Address:     user.Billing.Address,
			PostalCode:  user.Billing.PostalCode,
			City:        user.Billing.City,
			BuildingNo:  user.Billing.BuildingNo,
		},
		Notifications: dto.NotificationPrefsPayload{
			OrderUpdates: user.Notifications.OrderUpdates,
			Marketing:    user.Notifications.Marketing,
		},
	})
}

// Balance handles GET /api/user/balance.
func (h *AccountHandler) Balance(c *gin.Context) {
	userID := CurrentUserID(c)
	user, err := h.facade.User(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{Balance: user.Balance, TotalSpent: user.TotalSpent})
}

// UpdateBilling handles PUT /api/user/profile/billing.
func (h *AccountHandler) UpdateBilling(c *gin.Context) {
	userID := CurrentUserID(c)
	var req dto.BillingProfilePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	profile := model.BillingProfile{
		CompanyName: req.CompanyName,
		TaxID:       req.TaxID,
		Address:     req.Address,
		PostalCode:  req.PostalCode,
		City:        req.City,
		BuildingNo:  req.BuildingNo,
	}
	if err := h.facade.UpdateBillingProfile(c.Request.Context(), userID, profile); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusOK)
}

// UpdateNotifications handles PUT /api/user/profile/notifications.
func (h *AccountHandler) UpdateNotifications(c *gin.Context) {
	userID := CurrentUserID(c)
	var req dto.NotificationPrefsPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	prefs := model.NotificationPrefs{OrderUpdates: req.OrderUpdates, Marketing: req.Marketing}
	if err := h.facade.UpdateNotificationPrefs(c.Request.Context(), userID, prefs); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusOK)
}
