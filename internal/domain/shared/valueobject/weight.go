package valueobject

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// WeightUnit identifies a unit of weight measurement.
type WeightUnit string

// Supported weight units
const (
	WeightUnitOunce    WeightUnit = "OZ"
	WeightUnitPound    WeightUnit = "LB"
	WeightUnitGram     WeightUnit = "G"
	WeightUnitKilogram WeightUnit = "KG"
)

// Errors for weight construction and conversion
var (
	ErrWeightNegative    = errors.New("weight cannot be negative")
	ErrWeightUnitUnknown = errors.New("unknown weight unit")
)

// ouncesPerUnit maps each unit to its value in ounces.
var ouncesPerUnit = map[WeightUnit]decimal.Decimal{
	WeightUnitOunce:    decimal.NewFromInt(1),
	WeightUnitPound:    decimal.NewFromInt(16),
	WeightUnitGram:     decimal.NewFromFloat(0.035273962),
	WeightUnitKilogram: decimal.NewFromFloat(35.273962),
}

// ParseWeightUnit parses a unit symbol (case-insensitive) into a WeightUnit.
func ParseWeightUnit(symbol string) (WeightUnit, error) {
	switch strings.ToUpper(strings.TrimSpace(symbol)) {
	case "OZ", "OUNCE", "OUNCES":
		return WeightUnitOunce, nil
	case "LB", "LBS", "POUND", "POUNDS":
		return WeightUnitPound, nil
	case "G", "GR", "GRAM", "GRAMS":
		return WeightUnitGram, nil
	case "KG", "KILOGRAM", "KILOGRAMS":
		return WeightUnitKilogram, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrWeightUnitUnknown, symbol)
	}
}

// IsValid returns true if the unit is one of the supported units.
func (u WeightUnit) IsValid() bool {
	_, ok := ouncesPerUnit[u]
	return ok
}

// String returns the unit symbol
func (u WeightUnit) String() string {
	return string(u)
}

// Weight is a value object representing a physical weight.
// It is immutable - all operations return new Weight instances.
type Weight struct {
	amount decimal.Decimal
	unit   WeightUnit
}

// NewWeight creates a new Weight with the given amount and unit.
// The amount must not be negative.
func NewWeight(amount decimal.Decimal, unit WeightUnit) (Weight, error) {
	if !unit.IsValid() {
		return Weight{}, fmt.Errorf("%w: %q", ErrWeightUnitUnknown, unit)
	}
	if amount.IsNegative() {
		return Weight{}, ErrWeightNegative
	}
	return Weight{amount: amount, unit: unit}, nil
}

// NewWeightFromFloat creates a Weight from a float amount.
func NewWeightFromFloat(amount float64, unit WeightUnit) (Weight, error) {
	return NewWeight(decimal.NewFromFloat(amount), unit)
}

// MustNewWeight creates a Weight and panics on error.
// Use only when the inputs are known to be valid.
func MustNewWeight(amount decimal.Decimal, unit WeightUnit) Weight {
	w, err := NewWeight(amount, unit)
	if err != nil {
		panic(err)
	}
	return w
}

// ZeroWeight returns a zero weight in ounces.
func ZeroWeight() Weight {
	return Weight{amount: decimal.Zero, unit: WeightUnitOunce}
}

// Amount returns the weight amount in its own unit
func (w Weight) Amount() decimal.Decimal {
	return w.amount
}

// Unit returns the weight unit
func (w Weight) Unit() WeightUnit {
	return w.unit
}

// IsZero returns true for a zero weight
func (w Weight) IsZero() bool {
	return w.amount.IsZero()
}

// Mul returns a new Weight scaled by the given factor.
func (w Weight) Mul(factor decimal.Decimal) Weight {
	return Weight{amount: w.amount.Mul(factor), unit: w.unit}
}

// ToOunces converts the weight to ounces.
func (w Weight) ToOunces() decimal.Decimal {
	rate, ok := ouncesPerUnit[w.unit]
	if !ok {
		return decimal.Zero
	}
	return w.amount.Mul(rate)
}

// CeilOunces returns the weight in ounces rounded up to the nearest
// integral ounce, the smallest unit the USPS rate tables accept.
func (w Weight) CeilOunces() int64 {
	return w.ToOunces().Ceil().IntPart()
}

// Add returns the sum of two weights, expressed in ounces.
func (w Weight) Add(other Weight) Weight {
	return Weight{
		amount: w.ToOunces().Add(other.ToOunces()),
		unit:   WeightUnitOunce,
	}
}

// String returns a human-readable rendering, e.g. "12.5 OZ"
func (w Weight) String() string {
	return fmt.Sprintf("%s %s", w.amount.String(), w.unit)
}
