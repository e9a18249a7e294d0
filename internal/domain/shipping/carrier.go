package shipping

import (
	"strings"

	"github.com/erp/shipping/internal/domain/shared"
)

// CarrierCostMethod identifies how a carrier computes shipping cost.
type CarrierCostMethod string

const (
	// CostMethodEndicia marks carriers billed through the Endicia (USPS) API
	CostMethodEndicia CarrierCostMethod = "endicia"
	// CostMethodFlat marks carriers with a flat configured cost
	CostMethodFlat CarrierCostMethod = "flat"
)

// Carrier represents a shipping carrier configured in the system.
type Carrier struct {
	shared.BaseEntity
	Code       string
	Name       string
	CostMethod CarrierCostMethod
	Active     bool
}

// IsEndicia returns true when the carrier is billed through Endicia.
func (c *Carrier) IsEndicia() bool {
	return c != nil && c.CostMethod == CostMethodEndicia
}

// MailClass is a USPS service tier as named by the Endicia API,
// e.g. "First", "Priority", "PriorityMailInternational".
type MailClass struct {
	shared.BaseEntity
	Name  string
	Value string
}

// IsInternational reports whether the mail class is an international
// service. Endicia encodes this in the class value itself.
func (m *MailClass) IsInternational() bool {
	return m != nil && strings.Contains(m.Value, "International")
}

// LabelType returns the Endicia label type for this mail class.
func (m *MailClass) LabelType() string {
	if m.IsInternational() {
		return "International"
	}
	return "Default"
}
