package shipping

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erp/shipping/internal/domain/shared"
	"github.com/erp/shipping/internal/domain/shared/valueobject"
)

// ShipmentState is the lifecycle state of an outbound shipment.
type ShipmentState string

const (
	// StateDraft is a shipment still being assembled
	StateDraft ShipmentState = "draft"
	// StateWaiting is a shipment waiting for stock
	StateWaiting ShipmentState = "waiting"
	// StatePacked is a shipment packed and ready to label
	StatePacked ShipmentState = "packed"
	// StateDone is a shipped shipment
	StateDone ShipmentState = "done"
	// StateCancelled is a cancelled shipment
	StateCancelled ShipmentState = "cancelled"
)

// LabelSubtype is the Endicia label subtype; Integrated labels carry
// the customs form on the label itself.
type LabelSubtype string

const (
	// LabelSubtypeNone is a plain domestic label
	LabelSubtypeNone LabelSubtype = "None"
	// LabelSubtypeIntegrated embeds the customs form in the label
	LabelSubtypeIntegrated LabelSubtype = "Integrated"
)

// IntegratedFormType selects which customs form an integrated label carries.
type IntegratedFormType string

const (
	// FormType2976 is the same as CN22
	FormType2976 IntegratedFormType = "Form2976"
	// FormType2976A is the same as CP72
	FormType2976A IntegratedFormType = "Form2976A"
)

// PackageContentType is the Endicia ContentsType customs vocabulary.
type PackageContentType string

// Package content types accepted by Endicia customs declarations
const (
	ContentDocuments     PackageContentType = "Documents"
	ContentGift          PackageContentType = "Gift"
	ContentMerchandise   PackageContentType = "Merchandise"
	ContentReturnedGoods PackageContentType = "ReturnedGoods"
	ContentSample        PackageContentType = "Sample"
	ContentOther         PackageContentType = "Other"
)

// IsValid returns true for a known content type.
func (c PackageContentType) IsValid() bool {
	switch c {
	case ContentDocuments, ContentGift, ContentMerchandise,
		ContentReturnedGoods, ContentSample, ContentOther:
		return true
	default:
		return false
	}
}

// Shipment-specific domain errors
var (
	ErrInvalidShipmentState = shared.NewDomainError(
		"INVALID_SHIPMENT_STATE",
		"Labels can only be generated when the shipment is in Packed or Done states only")
	ErrWrongCarrier = shared.NewDomainError(
		"WRONG_CARRIER",
		"Carrier for selected shipment is not Endicia")
	ErrTrackingNumberPresent = shared.NewDomainError(
		"TRACKING_NUMBER_PRESENT",
		"Tracking Number is already present for this shipment.")
	ErrTrackingNumberMissing = shared.NewDomainError(
		"TRACKING_NUMBER_MISSING",
		"Shipment has no tracking number")
	ErrMailClassMissing = shared.NewDomainError(
		"MAILCLASS_MISSING",
		"Select a mailclass to ship using Endicia [USPS].")
	ErrWarehouseAddressRequired = shared.NewDomainError(
		"WAREHOUSE_ADDRESS_REQUIRED",
		"Warehouse address is required.")
	ErrDeliveryAddressRequired = shared.NewDomainError(
		"DELIVERY_ADDRESS_REQUIRED",
		"Delivery address is required.")
	ErrShipmentAlreadyRefunded = shared.NewDomainError(
		"ALREADY_REFUNDED",
		"Shipment postage has already been refunded")
)

// Shipment is an outbound stock shipment extended with the fields the
// Endicia integration needs.
type Shipment struct {
	shared.BaseEntity
	Code    string
	State   ShipmentState
	Carrier *Carrier

	// Endicia-specific fields
	MailClass          *MailClass
	LabelSubtype       LabelSubtype
	IntegratedFormType IntegratedFormType
	IncludePostage     bool
	PackageContentType PackageContentType

	TrackingNumber string
	Cost           decimal.Decimal
	CostCurrency   string
	Refunded       bool

	CustomerID       uuid.UUID
	WarehouseAddress valueobject.Address
	DeliveryAddress  valueobject.Address

	Moves []StockMove
}

// IsEndiciaShipping reports whether the shipment's carrier goes
// through Endicia. Mirrors the carrier-change reaction of the host ERP.
func (s *Shipment) IsEndiciaShipping() bool {
	return s.Carrier.IsEndicia()
}

// CanEditCarrierFields reports whether carrier-related fields are
// still editable. People may want to switch carriers even after the
// shipment is done, so done stays editable.
func (s *Shipment) CanEditCarrierFields() bool {
	return s.State == StatePacked || s.State == StateDone
}

// WeightOz returns the total shipment weight as the sum of the
// per-move ounce weights.
func (s *Shipment) WeightOz() (int64, error) {
	var total int64
	for i := range s.Moves {
		oz, err := s.Moves[i].WeightOz()
		if err != nil {
			return 0, err
		}
		total += oz
	}
	return total, nil
}

// EnsureLabelable verifies every precondition for label generation.
func (s *Shipment) EnsureLabelable() error {
	if s.State != StatePacked && s.State != StateDone {
		return ErrInvalidShipmentState
	}
	if !s.IsEndiciaShipping() {
		return ErrWrongCarrier
	}
	if s.TrackingNumber != "" {
		return ErrTrackingNumberPresent
	}
	if s.MailClass == nil {
		return ErrMailClassMissing
	}
	if s.WarehouseAddress.IsEmpty() {
		return ErrWarehouseAddressRequired
	}
	if s.DeliveryAddress.IsEmpty() {
		return ErrDeliveryAddressRequired
	}
	return nil
}

// EnsureRatable verifies the preconditions for a postage quote.
func (s *Shipment) EnsureRatable() error {
	if !s.IsEndiciaShipping() {
		return ErrWrongCarrier
	}
	if s.MailClass == nil {
		return ErrMailClassMissing
	}
	if s.WarehouseAddress.IsEmpty() {
		return ErrWarehouseAddressRequired
	}
	if s.DeliveryAddress.IsEmpty() {
		return ErrDeliveryAddressRequired
	}
	return nil
}

// EnsureRefundable verifies the shipment may be submitted for refund.
func (s *Shipment) EnsureRefundable() error {
	if !s.IsEndiciaShipping() {
		return ErrWrongCarrier
	}
	if s.TrackingNumber == "" {
		return ErrTrackingNumberMissing
	}
	if s.Refunded {
		return ErrShipmentAlreadyRefunded
	}
	return nil
}

// AssignLabel records the result of a successful label purchase.
func (s *Shipment) AssignLabel(trackingNumber string, cost decimal.Decimal) {
	s.TrackingNumber = trackingNumber
	s.Cost = cost
	s.CostCurrency = "USD"
	s.Touch()
}

// MarkRefunded flags the postage as refunded by the carrier.
func (s *Shipment) MarkRefunded() {
	s.Refunded = true
	s.Touch()
}

// CustomsDescription is the comma-joined product names truncated to
// the 50 characters the customs form accepts.
func (s *Shipment) CustomsDescription() string {
	desc := ""
	for i := range s.Moves {
		if i > 0 {
			desc += ","
		}
		desc += s.Moves[i].ProductName
	}
	return truncate(desc, 50)
}

// CustomsValue is the total declared value, computed from cost prices.
func (s *Shipment) CustomsValue() decimal.Decimal {
	total := decimal.Zero
	for i := range s.Moves {
		total = total.Add(s.Moves[i].CostValue())
	}
	return total
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
