package model

import "time"

// AttachmentKind tags the file type of an attachment. Staff deliveries of
// kind pdf, docx and image occupy singular slots per order; KindOther and
// customer uploads are unbounded.
type AttachmentKind string

const (
	AttachmentKindPDF   AttachmentKind = "pdf"
	AttachmentKindDocx  AttachmentKind = "docx"
	AttachmentKindImage AttachmentKind = "image"
	AttachmentKindOther AttachmentKind = "other"
)

// Singular reports whether at most one staff attachment of this kind
// may exist per order.
func (k AttachmentKind) Singular() bool {
	switch k {
	case AttachmentKindPDF, AttachmentKindDocx, AttachmentKindImage:
		return true
	}
	return false
}

// AttachmentSource records who supplied the file.
type AttachmentSource string

const (
	AttachmentSourceStaff    AttachmentSource = "staff"
	AttachmentSourceCustomer AttachmentSource = "customer"
)

// Attachment references an externally stored file. The core never holds
// file bytes, only the filename and storage URL.
type Attachment struct {
	ID           int64
	OrderID      int64
	Kind         AttachmentKind
	Source       AttachmentSource
	Filename     string
	URL          string
	OnCompletion bool
	UploadedAt   time.Time
}
