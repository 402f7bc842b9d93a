package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/mkowalik/copydesk/internal/domain/errors"
	"github.com/mkowalik/copydesk/internal/domain/model"
	"github.com/mkowalik/copydesk/internal/server/http/dto"
)

// AdminHandler manages staff-only order endpoints.
type AdminHandler struct {
	facade AdminFacade
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade AdminFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// List handles GET /api/admin/orders.
func (h *AdminHandler) List(c *gin.Context) {
	orders, err := h.facade.AllOrders(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/admin/orders/:number.
func (h *AdminHandler) Get(c *gin.Context) {
	number, ok := orderNumberParam(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.OrderByNumber(c.Request.Context(), number)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// MarkInProgress handles POST /api/admin/orders/:number/progress.
func (h *AdminHandler) MarkInProgress(c *gin.Context) {
	number, ok := orderNumberParam(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}
	h.applyTransition(c, h.facade.MarkOrderInProgress(c.Request.Context(), number))
}

// Complete handles POST /api/admin/orders/:number/complete.
func (h *AdminHandler) Complete(c *gin.Context) {
	number, ok := orderNumberParam(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.CompleteOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if req.ActualDeliveryDate.IsZero() {
		c.Status(http.StatusBadRequest)
		return
	}
	h.applyTransition(c, h.facade.MarkOrderCompleted(c.Request.Context(), number, req.ActualDeliveryDate))
}

// Cancel handles DELETE /api/admin/orders/:number.
func (h *AdminHandler) Cancel(c *gin.Context) {
	number, ok := orderNumberParam(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}
	h.applyTransition(c, h.facade.CancelOrderByStaff(c.Request.Context(), number))
}

// Deliver handles POST /api/admin/orders/:number/deliveries.
func (h *AdminHandler) Deliver(c *gin.Context) {
	number, ok := orderNumberParam(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.DeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	att, err := h.facade.RecordDelivery(c.Request.Context(), number, model.AttachmentKind(req.Kind), req.Filename, req.URL)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidAttachment):
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
	c.JSON(http.StatusCreated, toAttachmentResponse(*att))
}

func (h *AdminHandler) applyTransition(c *gin.Context, err error) {
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidState):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.Status(http.StatusOK)
}
