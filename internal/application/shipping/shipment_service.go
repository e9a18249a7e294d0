package shipping

import (
	"context"

	"github.com/google/uuid"

	"github.com/erp/shipping/internal/domain/shared"
	"github.com/erp/shipping/internal/domain/shipping"
)

// UpdateShippingOptionsInput carries the carrier-related fields a user
// may change on a shipment. Nil pointers leave the field untouched.
type UpdateShippingOptionsInput struct {
	CarrierCode        *string
	MailClassValue     *string
	LabelSubtype       *shipping.LabelSubtype
	IntegratedFormType *shipping.IntegratedFormType
	IncludePostage     *bool
	PackageContentType *shipping.PackageContentType
}

// ShipmentService exposes the shipment records the integration works
// on: lookups, listings and the carrier option edits the label flow
// depends on.
type ShipmentService struct {
	shipmentRepo  shipping.ShipmentRepository
	carrierRepo   shipping.CarrierRepository
	mailClassRepo shipping.MailClassRepository
}

// NewShipmentService creates a new ShipmentService
func NewShipmentService(
	shipmentRepo shipping.ShipmentRepository,
	carrierRepo shipping.CarrierRepository,
	mailClassRepo shipping.MailClassRepository,
) *ShipmentService {
	return &ShipmentService{
		shipmentRepo:  shipmentRepo,
		carrierRepo:   carrierRepo,
		mailClassRepo: mailClassRepo,
	}
}

// GetShipment returns a shipment by ID.
func (s *ShipmentService) GetShipment(ctx context.Context, id uuid.UUID) (*shipping.Shipment, error) {
	return s.shipmentRepo.FindByID(ctx, id)
}

// ListShipments returns shipments matching the filter plus the total count.
func (s *ShipmentService) ListShipments(ctx context.Context, filter shipping.ShipmentFilter) ([]*shipping.Shipment, int64, error) {
	return s.shipmentRepo.FindAll(ctx, filter)
}

// UpdateShippingOptions updates carrier-related fields on a shipment.
// Carrier fields stay editable in packed and done states only.
func (s *ShipmentService) UpdateShippingOptions(ctx context.Context, id uuid.UUID, input UpdateShippingOptionsInput) (*shipping.Shipment, error) {
	shipment, err := s.shipmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !shipment.CanEditCarrierFields() {
		return nil, shared.ErrInvalidState
	}

	if input.CarrierCode != nil {
		carrier, err := s.carrierRepo.FindByCode(ctx, *input.CarrierCode)
		if err != nil {
			return nil, err
		}
		shipment.Carrier = carrier
	}
	if input.MailClassValue != nil {
		mailClass, err := s.mailClassRepo.FindByValue(ctx, *input.MailClassValue)
		if err != nil {
			return nil, err
		}
		shipment.MailClass = mailClass
	}
	if input.LabelSubtype != nil {
		switch *input.LabelSubtype {
		case shipping.LabelSubtypeNone, shipping.LabelSubtypeIntegrated:
			shipment.LabelSubtype = *input.LabelSubtype
		default:
			return nil, shared.ErrInvalidInput
		}
	}
	if input.IntegratedFormType != nil {
		switch *input.IntegratedFormType {
		case shipping.FormType2976, shipping.FormType2976A:
			shipment.IntegratedFormType = *input.IntegratedFormType
		default:
			return nil, shared.ErrInvalidInput
		}
	}
	if input.IncludePostage != nil {
		shipment.IncludePostage = *input.IncludePostage
	}
	if input.PackageContentType != nil {
		if !input.PackageContentType.IsValid() {
			return nil, shared.ErrInvalidInput
		}
		shipment.PackageContentType = *input.PackageContentType
	}

	shipment.Touch()
	if err := s.shipmentRepo.Update(ctx, shipment); err != nil {
		return nil, err
	}
	return shipment, nil
}

// ListCarriers returns the configured carriers.
func (s *ShipmentService) ListCarriers(ctx context.Context) ([]*shipping.Carrier, error) {
	return s.carrierRepo.FindAll(ctx)
}

// ListMailClasses returns the USPS mail class catalog.
func (s *ShipmentService) ListMailClasses(ctx context.Context) ([]*shipping.MailClass, error) {
	return s.mailClassRepo.FindAll(ctx)
}
