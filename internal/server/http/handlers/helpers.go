package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mkowalik/copydesk/internal/domain/model"
	"github.com/mkowalik/copydesk/internal/server/http/dto"
	"github.com/mkowalik/copydesk/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// orderNumberParam parses the :number path segment.
func orderNumberParam(c *gin.Context) (int64, bool) {
	number, err := strconv.ParseInt(c.Param("number"), 10, 64)
	if err != nil || number <= 0 {
		return 0, false
	}
	return number, true
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItemResponse{
			Number:      item.Number,
			Topic:       item.Topic,
			Length:      item.Length,
			Price:       item.Price,
			ContentType: item.ContentType,
			Language:    item.Language,
			Guidelines:  item.Guidelines,
		})
	}
	return dto.OrderResponse{
		Number:               order.Number,
		Status:               string(order.Status),
		PaymentStatus:        string(order.PaymentStatus),
		TotalPrice:           order.TotalPrice,
		DeclaredDeliveryDate: order.DeclaredDeliveryDate,
		ActualDeliveryDate:   order.ActualDeliveryDate,
		InvoiceRef:           order.InvoiceRef,
		CreatedAt:            order.CreatedAt,
		Items:                items,
	}
}

func toAttachmentResponse(att model.Attachment) dto.AttachmentResponse {
	return dto.AttachmentResponse{
		ID:           att.ID,
		Kind:         string(att.Kind),
		Source:       string(att.Source),
		Filename:     att.Filename,
		URL:          att.URL,
		OnCompletion: att.OnCompletion,
		UploadedAt:   att.UploadedAt,
	}
}

func toPaymentResponse(p model.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:         p.ID,
		Kind:       string(p.Kind),
		Status:     string(p.Status),
		Amount:     p.Amount,
		PaidAmount: p.PaidAmount,
		Discount:   p.Discount,
		OrderID:    p.OrderID,
		CreatedAt:  p.CreatedAt,
	}
}
