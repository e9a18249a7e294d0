package shipping

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AttachmentInfo describes a stored attachment in service results.
type AttachmentInfo struct {
	ID         uuid.UUID
	Name       string
	StorageKey string
	Size       int64
}

// GenerateLabelResult is the outcome of the label generation flow.
type GenerateLabelResult struct {
	ShipmentID     uuid.UUID
	TrackingNumber string
	Cost           decimal.Decimal
	Attachments    []AttachmentInfo
}

// RateQuote is the outcome of a postage calculation.
type RateQuote struct {
	ShipmentID uuid.UUID
	Amount     decimal.Decimal
	Currency   string
	Cached     bool
	QuotedAt   time.Time
}

// RefundStatus is the outcome of the refund flow.
type RefundStatus struct {
	Approved bool
	Message  string
}

// SCANFormStatus is the outcome of the SCAN form flow.
type SCANFormStatus struct {
	SubmissionID string
	Response     string
	Attachments  []AttachmentInfo
}

// BuyPostageStatus is the outcome of the postage purchase flow.
type BuyPostageStatus struct {
	Amount   decimal.Decimal
	Response string
	Balance  decimal.Decimal
}
