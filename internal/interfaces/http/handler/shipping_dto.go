package handler

import (
	"time"

	appshipping "github.com/erp/shipping/internal/application/shipping"
	"github.com/erp/shipping/internal/domain/shared/valueobject"
	"github.com/erp/shipping/internal/domain/shipping"
)

// CarrierResponse represents a carrier in API responses
type CarrierResponse struct {
	ID         string `json:"id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	CostMethod string `json:"cost_method"`
	Active     bool   `json:"active"`
}

// MailClassResponse represents a USPS mail class in API responses
type MailClassResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Value         string `json:"value"`
	International bool   `json:"international"`
}

// AddressResponse represents a postal address in API responses
type AddressResponse struct {
	Name        string `json:"name"`
	Company     string `json:"company,omitempty"`
	Street      string `json:"street"`
	Street2     string `json:"street2,omitempty"`
	City        string `json:"city"`
	State       string `json:"state,omitempty"`
	PostalCode  string `json:"postal_code,omitempty"`
	CountryCode string `json:"country_code"`
	Phone       string `json:"phone,omitempty"`
}

// StockMoveResponse represents a shipment line in API responses
type StockMoveResponse struct {
	ID          string `json:"id"`
	ProductCode string `json:"product_code"`
	ProductName string `json:"product_name"`
	ProductKind string `json:"product_kind"`
	Quantity    string `json:"quantity"`
	Weight      string `json:"weight"`
	ListPrice   string `json:"list_price"`
	CostPrice   string `json:"cost_price"`
}

// ShipmentResponse represents a shipment in API responses
type ShipmentResponse struct {
	ID                 string              `json:"id"`
	Code               string              `json:"code"`
	State              string              `json:"state"`
	Carrier            *CarrierResponse    `json:"carrier,omitempty"`
	MailClass          *MailClassResponse  `json:"mail_class,omitempty"`
	LabelSubtype       string              `json:"label_subtype"`
	IntegratedFormType string              `json:"integrated_form_type,omitempty"`
	IncludePostage     bool                `json:"include_postage"`
	PackageContentType string              `json:"package_content_type"`
	TrackingNumber     string              `json:"tracking_number,omitempty"`
	Cost               string              `json:"cost"`
	CostCurrency       string              `json:"cost_currency,omitempty"`
	Refunded           bool                `json:"refunded"`
	CustomerID         string              `json:"customer_id"`
	WarehouseAddress   *AddressResponse    `json:"warehouse_address,omitempty"`
	DeliveryAddress    *AddressResponse    `json:"delivery_address,omitempty"`
	Moves              []StockMoveResponse `json:"moves"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// AttachmentResponse represents stored attachment metadata
type AttachmentResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContentType string `json:"content_type,omitempty"`
	StorageKey  string `json:"storage_key"`
	Size        int64  `json:"size"`
	DownloadURL string `json:"download_url,omitempty"`
}

// LabelResponse represents the outcome of label generation
type LabelResponse struct {
	ShipmentID     string               `json:"shipment_id"`
	TrackingNumber string               `json:"tracking_number"`
	Cost           string               `json:"cost"`
	Attachments    []AttachmentResponse `json:"attachments"`
}

// RateQuoteResponse represents a postage quote
type RateQuoteResponse struct {
	ShipmentID string    `json:"shipment_id"`
	Amount     string    `json:"amount"`
	Currency   string    `json:"currency"`
	Cached     bool      `json:"cached"`
	QuotedAt   time.Time `json:"quoted_at"`
}

// RefundResponse represents the outcome of a refund request
type RefundResponse struct {
	Approved bool   `json:"approved"`
	Message  string `json:"message,omitempty"`
}

// SCANFormResponse represents the outcome of a SCAN form submission
type SCANFormResponse struct {
	SubmissionID string               `json:"submission_id,omitempty"`
	Response     string               `json:"response"`
	Attachments  []AttachmentResponse `json:"attachments,omitempty"`
}

// BuyPostageResponse represents the outcome of a postage purchase
type BuyPostageResponse struct {
	Amount   string `json:"amount"`
	Response string `json:"response"`
	Balance  string `json:"balance"`
}

// ListShipmentsRequest carries the query parameters of the shipment listing
type ListShipmentsRequest struct {
	Page        int    `form:"page" binding:"omitempty,min=1"`
	PageSize    int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	State       string `form:"state" binding:"omitempty,oneof=draft waiting packed done cancelled"`
	CarrierCode string `form:"carrier_code" binding:"omitempty,max=50"`
	HasTracking *bool  `form:"has_tracking"`
}

// UpdateShippingOptionsRequest carries the carrier option edits.
// Absent fields are left unchanged.
type UpdateShippingOptionsRequest struct {
	CarrierCode        *string `json:"carrier_code" binding:"omitempty,max=50"`
	MailClassValue     *string `json:"mail_class_value" binding:"omitempty,max=100"`
	LabelSubtype       *string `json:"label_subtype" binding:"omitempty,oneof=None Integrated"`
	IntegratedFormType *string `json:"integrated_form_type" binding:"omitempty,oneof=Form2976 Form2976A"`
	IncludePostage     *bool   `json:"include_postage"`
	PackageContentType *string `json:"package_content_type" binding:"omitempty,oneof=Documents Gift Merchandise ReturnedGoods Sample Other"`
}

// RefundShipmentsRequest names the shipments to submit for refund
type RefundShipmentsRequest struct {
	ShipmentIDs []string `json:"shipment_ids" binding:"required,min=1,dive,uuid"`
}

// SCANFormRequest names the shipments to manifest on one SCAN form
type SCANFormRequest struct {
	ShipmentIDs []string `json:"shipment_ids" binding:"required,min=1,dive,uuid"`
}

// BuyPostageRequest carries the amount of postage to purchase
type BuyPostageRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// toCarrierResponse converts a domain carrier to its API representation
func toCarrierResponse(c *shipping.Carrier) *CarrierResponse {
	if c == nil {
		return nil
	}
	return &CarrierResponse{
		ID:         c.ID.String(),
		Code:       c.Code,
		Name:       c.Name,
		CostMethod: string(c.CostMethod),
		Active:     c.Active,
	}
}

// toMailClassResponse converts a domain mail class to its API representation
func toMailClassResponse(m *shipping.MailClass) *MailClassResponse {
	if m == nil {
		return nil
	}
	return &MailClassResponse{
		ID:            m.ID.String(),
		Name:          m.Name,
		Value:         m.Value,
		International: m.IsInternational(),
	}
}

// toAddressResponse converts an address value object to its API representation
func toAddressResponse(a valueobject.Address) *AddressResponse {
	if a.IsEmpty() {
		return nil
	}
	return &AddressResponse{
		Name:        a.Name(),
		Company:     a.Company(),
		Street:      a.Street(),
		Street2:     a.Street2(),
		City:        a.City(),
		State:       a.State(),
		PostalCode:  a.PostalCode(),
		CountryCode: a.CountryCode(),
		Phone:       a.Phone(),
	}
}

// toStockMoveResponse converts a domain stock move to its API representation
func toStockMoveResponse(m *shipping.StockMove) StockMoveResponse {
	return StockMoveResponse{
		ID:          m.ID.String(),
		ProductCode: m.ProductCode,
		ProductName: m.ProductName,
		ProductKind: string(m.ProductKind),
		Quantity:    m.Quantity.String(),
		Weight:      m.UnitWeight.String(),
		ListPrice:   m.ListPrice.String(),
		CostPrice:   m.CostPrice.String(),
	}
}

// toShipmentResponse converts a domain shipment to its API representation
func toShipmentResponse(s *shipping.Shipment) ShipmentResponse {
	moves := make([]StockMoveResponse, len(s.Moves))
	for i := range s.Moves {
		moves[i] = toStockMoveResponse(&s.Moves[i])
	}

	return ShipmentResponse{
		ID:                 s.ID.String(),
		Code:               s.Code,
		State:              string(s.State),
		Carrier:            toCarrierResponse(s.Carrier),
		MailClass:          toMailClassResponse(s.MailClass),
		LabelSubtype:       string(s.LabelSubtype),
		IntegratedFormType: string(s.IntegratedFormType),
		IncludePostage:     s.IncludePostage,
		PackageContentType: string(s.PackageContentType),
		TrackingNumber:     s.TrackingNumber,
		Cost:               s.Cost.String(),
		CostCurrency:       s.CostCurrency,
		Refunded:           s.Refunded,
		CustomerID:         s.CustomerID.String(),
		WarehouseAddress:   toAddressResponse(s.WarehouseAddress),
		DeliveryAddress:    toAddressResponse(s.DeliveryAddress),
		Moves:              moves,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

// toDomainAttachmentResponse converts a stored attachment to its API representation
func toDomainAttachmentResponse(a *shipping.Attachment, downloadURL string) AttachmentResponse {
	return AttachmentResponse{
		ID:          a.ID.String(),
		Name:        a.Name,
		ContentType: a.ContentType,
		StorageKey:  a.StorageKey,
		Size:        a.Size,
		DownloadURL: downloadURL,
	}
}

// toAttachmentResponses converts service attachment infos to API representations
func toAttachmentResponses(infos []appshipping.AttachmentInfo) []AttachmentResponse {
	out := make([]AttachmentResponse, len(infos))
	for i, info := range infos {
		out[i] = AttachmentResponse{
			ID:         info.ID.String(),
			Name:       info.Name,
			StorageKey: info.StorageKey,
			Size:       info.Size,
		}
	}
	return out
}
