package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/mkowalik/copydesk/internal/domain/errors"
	"github.com/mkowalik/copydesk/internal/domain/model"
	"github.com/mkowalik/copydesk/internal/server/http/dto"
)

// WebhookHandler receives checkout processor callbacks.
type WebhookHandler struct {
	facade WebhookFacade
}

// NewWebhookHandler constructs WebhookHandler.
func NewWebhookHandler(facade WebhookFacade) *WebhookHandler {
	return &WebhookHandler{facade: facade}
}

// Checkout handles POST /api/webhooks/checkout. Settlement is idempotent,
// so processor retries of an already-applied callback get 200.
func (h *WebhookHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if req.SessionID == "" || req.Status == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	session := model.CheckoutSession{
		ID:         req.SessionID,
		Status:     model.CheckoutSessionStatus(req.Status),
		ChargeRef:  req.ChargeRef,
		AmountPaid: req.AmountPaid,
		CreatedAt:  req.CreatedAt,
	}

	if err := h.facade.ResolveSession(c.Request.Context(), session); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrDuplicateSettlement):
			c.Status(http.StatusConflict)
		case errors.Is(err, domainErrors.ErrInvalidState):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.Status(http.StatusOK)
}
