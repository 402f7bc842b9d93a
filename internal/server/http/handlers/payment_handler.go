package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/mkowalik/copydesk/internal/domain/errors"
	"github.com/mkowalik/copydesk/internal/domain/model"
	"github.com/mkowalik/copydesk/internal/server/http/dto"
)

// PaymentHandler manages payment endpoints.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// Start handles POST /api/user/payments.
func (h *PaymentHandler) Start(c *gin.Context) {
	userID := CurrentUserID(c)

	var req dto.StartPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	kind := model.PaymentKind(req.Kind)
	if kind != model.PaymentKindTopUp && kind != model.PaymentKindOrderPayment {
		c.Status(http.StatusBadRequest)
		return
	}

	payment, redirectURL, err := h.facade.StartPayment(c.Request.Context(), userID, kind, req.Amount, req.Order)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidAmount),
			errors.Is(err, domainErrors.ErrOrderRequired),
			errors.Is(err, domainErrors.ErrOrderNotAllowed):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidState):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.StartPaymentResponse{
		PaymentID:   payment.ID,
		SessionID:   payment.SessionID,
		RedirectURL: redirectURL,
	})
}

// List handles GET /api/user/payments.
func (h *PaymentHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)
	payments, err := h.facade.Payments(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(payments) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		response = append(response, toPaymentResponse(p))
	}
	c.JSON(http.StatusOK, response)
}
