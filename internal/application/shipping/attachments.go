package shipping

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/erp/shipping/internal/domain/shipping"
)

// storeShipmentAttachment uploads the bytes to object storage and
// records the attachment metadata against the shipment.
func storeShipmentAttachment(
	ctx context.Context,
	storage ObjectStorageService,
	attachmentRepo shipping.AttachmentRepository,
	shipmentID uuid.UUID,
	name, contentType string,
	data []byte,
) (*AttachmentInfo, error) {
	storageKey := fmt.Sprintf("shipments/%s/%s", shipmentID, name)

	if err := storage.PutObject(ctx, storageKey, data, contentType); err != nil {
		return nil, fmt.Errorf("failed to store attachment %s: %w", name, err)
	}

	attachment := shipping.NewAttachment(shipmentID, name, contentType, storageKey, int64(len(data)))
	if err := attachmentRepo.Save(ctx, attachment); err != nil {
		return nil, err
	}

	return &AttachmentInfo{
		ID:         attachment.ID,
		Name:       attachment.Name,
		StorageKey: attachment.StorageKey,
		Size:       attachment.Size,
	}, nil
}
