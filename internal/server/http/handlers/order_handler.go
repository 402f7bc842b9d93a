package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/mkowalik/copydesk/internal/domain/errors"
	"github.com/mkowalik/copydesk/internal/domain/model"
	"github.com/mkowalik/copydesk/internal/server/http/dto"
)

// OrderHandler manages customer order endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/user/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	userID := CurrentUserID(c)

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	items := make([]model.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, model.OrderItem{
			Topic:       item.Topic,
			Length:      item.Length,
			Price:       item.Price,
			ContentType: item.ContentType,
			Language:    item.Language,
			Guidelines:  item.Guidelines,
		})
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), userID, items, req.DeclaredDeliveryDate)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNoItems),
			errors.Is(err, domainErrors.ErrNegativePrice),
			errors.Is(err, domainErrors.ErrPastDeliveryDate):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// List handles GET /api/user/orders.
func (h *OrderHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)
	orders, err := h.facade.Orders(c.Request.Context(), userID)
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

// Get handles GET /api/user/orders/:number.
func (h *OrderHandler) Get(c *gin.Context) {
	userID := CurrentUserID(c)
	number, ok := orderNumberParam(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.OrderForUser(c.Request.Context(), userID, number)
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

// Cancel handles DELETE /api/user/orders/:number.
func (h *OrderHandler) Cancel(c *gin.Context) {
	userID := CurrentUserID(c)
	number, ok := orderNumberParam(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	err := h.facade.CancelOrder(c.Request.Context(), userID, number)
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

// Upload handles POST /api/user/orders/:number/uploads.
func (h *OrderHandler) Upload(c *gin.Context) {
	userID := CurrentUserID(c)
	number, ok := orderNumberParam(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.CustomerUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	att, err := h.facade.RecordCustomerUpload(c.Request.Context(), userID, number, req.Filename, req.URL)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidAttachment):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusCreated, toAttachmentResponse(*att))
}

// Attachments handles GET /api/user/orders/:number/attachments.
func (h *OrderHandler) Attachments(c *gin.Context) {
	userID := CurrentUserID(c)
	number, ok := orderNumberParam(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	attachments, err := h.facade.OrderAttachments(c.Request.Context(), userID, number)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(attachments) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.AttachmentResponse, 0, len(attachments))
	for _, att := range attachments {
		response = append(response, toAttachmentResponse(att))
	}
	c.JSON(http.StatusOK, response)
}
