package shipping

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/erp/shipping/internal/domain/shared/valueobject"
)

// ---------------------------------------------------------------------------
// LabelProvider errors
// ---------------------------------------------------------------------------

var (
	ErrProviderNotConfigured   = errors.New("shipping: label provider not configured")
	ErrProviderUnavailable     = errors.New("shipping: label provider temporarily unavailable")
	ErrProviderRequestFailed   = errors.New("shipping: label provider request failed")
	ErrProviderInvalidResponse = errors.New("shipping: invalid label provider response")
	ErrProviderAuthFailed      = errors.New("shipping: label provider authentication failed")
)

// ---------------------------------------------------------------------------
// Request / result types
// ---------------------------------------------------------------------------

// CustomsItem is one line of a customs declaration.
type CustomsItem struct {
	Description string
	Quantity    int64
	WeightOz    int64
	Value       decimal.Decimal
}

// CustomsInfo is the customs declaration attached to international and
// integrated labels.
type CustomsInfo struct {
	Items        []CustomsItem
	ContentsType PackageContentType
	Value        decimal.Decimal
	Description  string
	Certify      bool
	Signer       string
}

// LabelRequest carries everything needed to purchase a shipping label.
type LabelRequest struct {
	// Label rendering parameters
	LabelType       string
	ImageFormat     string
	LabelSize       string
	ImageResolution string
	ImageRotation   string

	MailClass string
	WeightOz  int64

	// Partner identifiers echoed back by the carrier
	PartnerCustomerID    string
	PartnerTransactionID string

	From valueobject.Address
	To   valueobject.Address

	LabelSubtype       LabelSubtype
	IncludePostage     bool
	IntegratedFormType IntegratedFormType

	Customs *CustomsInfo
}

// LabelImage is one image part of a returned label.
type LabelImage struct {
	Part string
	Data []byte
}

// LabelResult is the outcome of a successful label purchase.
type LabelResult struct {
	TrackingNumber string
	FinalPostage   decimal.Decimal
	Images         []LabelImage
}

// PostageRateRequest asks for the postage of a prospective package.
type PostageRateRequest struct {
	MailClass      string
	WeightOz       int64
	FromPostalCode string
	ToPostalCode   string
	ToCountryCode  string
}

// RefundRequest asks the carrier to refund unused labels, identified
// by their PIC (tracking) numbers.
type RefundRequest struct {
	PICNumbers []string
}

// RefundResult reports the carrier's refund decision.
type RefundResult struct {
	Approved bool
	Message  string
}

// SCANFormRequest submits labelled packages for a SCAN form manifest.
type SCANFormRequest struct {
	PICNumbers []string
}

// SCANFormResult carries the manifest image when the submission was
// accepted, or the carrier's error message when it was not.
type SCANFormResult struct {
	SubmissionID string
	Form         []byte
	ErrorMessage string
}

// BuyPostageRequest recredits the carrier account balance.
type BuyPostageRequest struct {
	RequestID string
	Amount    decimal.Decimal
}

// BuyPostageResult reports the outcome of a postage purchase.
type BuyPostageResult struct {
	Status         string
	ErrorMessage   string
	PostageBalance decimal.Decimal
}

// Success reports whether the purchase went through.
func (r *BuyPostageResult) Success() bool {
	return r.ErrorMessage == ""
}

// ---------------------------------------------------------------------------
// LabelProvider port
// ---------------------------------------------------------------------------

// LabelProvider is the port to the carrier's label API. The Endicia
// adapter in the infrastructure layer implements it.
type LabelProvider interface {
	// GetShippingLabel purchases a label and returns the tracking
	// number, final postage and label images.
	GetShippingLabel(ctx context.Context, req *LabelRequest) (*LabelResult, error)

	// CalculatePostage returns the postage for a prospective package.
	CalculatePostage(ctx context.Context, req *PostageRateRequest) (decimal.Decimal, error)

	// RequestRefund asks for a refund of unused labels.
	RequestRefund(ctx context.Context, req *RefundRequest) (*RefundResult, error)

	// SubmitSCANForm submits packages for a SCAN form manifest.
	SubmitSCANForm(ctx context.Context, req *SCANFormRequest) (*SCANFormResult, error)

	// BuyPostage recredits the account postage balance.
	BuyPostage(ctx context.Context, req *BuyPostageRequest) (*BuyPostageResult, error)
}
