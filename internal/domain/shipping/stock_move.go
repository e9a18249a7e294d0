package shipping

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erp/shipping/internal/domain/shared"
	"github.com/erp/shipping/internal/domain/shared/valueobject"
)

// ProductKind distinguishes physical goods from services.
type ProductKind string

const (
	// ProductKindGoods is a physical product that contributes weight
	ProductKindGoods ProductKind = "goods"
	// ProductKindService is a non-physical line that never weighs anything
	ProductKindService ProductKind = "service"
)

// NewProductWeightMissingError builds the domain error raised when a
// physical product on a move has no configured weight.
func NewProductWeightMissingError(productName string) *shared.DomainError {
	return shared.NewDomainError(
		"PRODUCT_WEIGHT_MISSING",
		fmt.Sprintf("Weight for product %s in stock move is missing", productName),
	)
}

// StockMove is an outgoing line item of a shipment.
//
// Quantity is expressed in the move's own unit of measure;
// DefaultUomRate converts it into the product's default unit, which is
// the unit the per-unit weight refers to.
type StockMove struct {
	shared.BaseEntity
	ShipmentID     uuid.UUID
	ProductCode    string
	ProductName    string
	ProductKind    ProductKind
	Quantity       decimal.Decimal
	DefaultUomRate decimal.Decimal
	UnitWeight     valueobject.Weight
	ListPrice      decimal.Decimal
	CostPrice      decimal.Decimal
}

// QuantityInDefaultUom returns the move quantity converted into the
// product's default unit of measure.
func (m *StockMove) QuantityInDefaultUom() decimal.Decimal {
	rate := m.DefaultUomRate
	if rate.IsZero() {
		rate = decimal.NewFromInt(1)
	}
	return m.Quantity.Mul(rate)
}

// WeightOz returns the move weight in upward-rounded integral ounces,
// the form the Endicia API expects.
//
// Services weigh nothing. A physical product without a configured
// weight is an error naming the product.
func (m *StockMove) WeightOz() (int64, error) {
	if m.ProductKind == ProductKindService {
		return 0, nil
	}
	if m.UnitWeight.IsZero() {
		return 0, NewProductWeightMissingError(m.ProductName)
	}
	total := m.UnitWeight.Mul(m.QuantityInDefaultUom())
	return total.CeilOunces(), nil
}

// CustomsQuantity returns the move quantity rounded up to a whole
// number, as customs declarations require integral counts.
func (m *StockMove) CustomsQuantity() int64 {
	return m.Quantity.Ceil().IntPart()
}

// ListValue returns list price times quantity.
func (m *StockMove) ListValue() decimal.Decimal {
	return m.ListPrice.Mul(m.Quantity)
}

// CostValue returns cost price times quantity.
func (m *StockMove) CostValue() decimal.Decimal {
	return m.CostPrice.Mul(m.Quantity)
}
