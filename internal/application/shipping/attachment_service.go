package shipping

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/erp/shipping/internal/domain/shipping"
)

// DefaultDownloadURLExpiry is how long presigned attachment download
// URLs stay valid.
const DefaultDownloadURLExpiry = 15 * time.Minute

// ShipmentAttachment pairs stored attachment metadata with a presigned
// download URL.
type ShipmentAttachment struct {
	Attachment  *shipping.Attachment
	DownloadURL string
	ExpiresAt   time.Time
}

// AttachmentService lists the documents stored against a shipment and
// hands out download URLs for them.
type AttachmentService struct {
	shipmentRepo   shipping.ShipmentRepository
	attachmentRepo shipping.AttachmentRepository
	storage        ObjectStorageService
	urlExpiry      time.Duration
}

// NewAttachmentService creates a new AttachmentService
func NewAttachmentService(
	shipmentRepo shipping.ShipmentRepository,
	attachmentRepo shipping.AttachmentRepository,
	storage ObjectStorageService,
) *AttachmentService {
	return &AttachmentService{
		shipmentRepo:   shipmentRepo,
		attachmentRepo: attachmentRepo,
		storage:        storage,
		urlExpiry:      DefaultDownloadURLExpiry,
	}
}

// ListAttachments returns the attachments of a shipment together with
// presigned download URLs. A URL generation failure leaves the URL
// empty rather than failing the listing.
func (s *AttachmentService) ListAttachments(ctx context.Context, shipmentID uuid.UUID) ([]ShipmentAttachment, error) {
	if _, err := s.shipmentRepo.FindByID(ctx, shipmentID); err != nil {
		return nil, err
	}

	attachments, err := s.attachmentRepo.FindByShipmentID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	out := make([]ShipmentAttachment, 0, len(attachments))
	for _, att := range attachments {
		item := ShipmentAttachment{Attachment: att}
		if url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, att.StorageKey, s.urlExpiry); err == nil {
			item.DownloadURL = url
			item.ExpiresAt = expiresAt
		}
		out = append(out, item)
	}
	return out, nil
}
