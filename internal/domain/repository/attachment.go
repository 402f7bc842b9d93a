package repository

import (
	"context"

	"github.com/mkowalik/copydesk/internal/domain/model"
)

// AttachmentRepository manages file references attached to orders.
type AttachmentRepository interface {
	// RecordDelivery stores a staff attachment. Singular kinds (pdf, docx,
	// image) replace any previous delivery of the same kind; other kinds
	// append. Deliveries to cancelled orders are rejected with
	// ErrInvalidState. The OnCompletion flag is set when the order is
	// already completed at upload time.
	RecordDelivery(ctx context.Context, orderID int64, kind model.AttachmentKind, filename, url string) (*model.Attachment, error)
	// RecordCustomerUpload appends a customer-supplied file regardless of
	// order status.
	RecordCustomerUpload(ctx context.Context, orderID int64, filename, url string) (*model.Attachment, error)
	ListByOrder(ctx context.Context, orderID int64) ([]model.Attachment, error)
}
