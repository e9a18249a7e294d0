package shipping

import (
	"context"

	"github.com/google/uuid"
)

// ShipmentFilter narrows shipment listings.
type ShipmentFilter struct {
	State       ShipmentState
	CarrierCode string
	HasTracking *bool
	Limit       int
	Offset      int
}

// ShipmentRepository persists Shipment aggregates.
type ShipmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Shipment, error)
	FindByCode(ctx context.Context, code string) (*Shipment, error)
	FindByTrackingNumber(ctx context.Context, trackingNumber string) (*Shipment, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Shipment, error)
	FindAll(ctx context.Context, filter ShipmentFilter) ([]*Shipment, int64, error)
	Save(ctx context.Context, shipment *Shipment) error
	Update(ctx context.Context, shipment *Shipment) error
}

// CarrierRepository persists carriers.
type CarrierRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Carrier, error)
	FindByCode(ctx context.Context, code string) (*Carrier, error)
	FindAll(ctx context.Context) ([]*Carrier, error)
	Save(ctx context.Context, carrier *Carrier) error
}

// MailClassRepository persists the USPS mail class catalog.
type MailClassRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*MailClass, error)
	FindByValue(ctx context.Context, value string) (*MailClass, error)
	FindAll(ctx context.Context) ([]*MailClass, error)
	Save(ctx context.Context, mailClass *MailClass) error
}

// AttachmentRepository persists attachment metadata.
type AttachmentRepository interface {
	Save(ctx context.Context, attachment *Attachment) error
	FindByShipmentID(ctx context.Context, shipmentID uuid.UUID) ([]*Attachment, error)
}
