package shipping

import (
	"github.com/google/uuid"

	"github.com/erp/shipping/internal/domain/shared"
)

// Attachment is a document stored against a shipment, such as a
// purchased label image or a SCAN form manifest. The bytes live in
// object storage; the entity records the metadata.
type Attachment struct {
	shared.BaseEntity
	ShipmentID  uuid.UUID
	Name        string
	ContentType string
	StorageKey  string
	Size        int64
}

// NewAttachment creates attachment metadata for a stored object.
func NewAttachment(shipmentID uuid.UUID, name, contentType, storageKey string, size int64) *Attachment {
	return &Attachment{
		BaseEntity:  shared.NewBaseEntity(),
		ShipmentID:  shipmentID,
		Name:        name,
		ContentType: contentType,
		StorageKey:  storageKey,
		Size:        size,
	}
}
