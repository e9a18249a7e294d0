package models

import (
	"github.com/erp/shipping/internal/domain/shared/valueobject"
	"github.com/erp/shipping/internal/domain/shipping"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CarrierModel is the persistence model for the Carrier domain entity.
type CarrierModel struct {
	BaseModel
	Code       string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name       string `gorm:"type:varchar(100);not null"`
	CostMethod string `gorm:"column:cost_method;type:varchar(20);not null"`
	Active     bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CarrierModel) TableName() string {
	return "carriers"
}

// ToDomain converts the persistence model to a domain Carrier entity.
func (m *CarrierModel) ToDomain() *shipping.Carrier {
	return &shipping.Carrier{
		BaseEntity: m.BaseModel.ToDomain(),
		Code:       m.Code,
		Name:       m.Name,
		CostMethod: shipping.CarrierCostMethod(m.CostMethod),
		Active:     m.Active,
	}
}

// FromDomain populates the persistence model from a domain Carrier entity.
func (m *CarrierModel) FromDomain(c *shipping.Carrier) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Code = c.Code
	m.Name = c.Name
	m.CostMethod = string(c.CostMethod)
	m.Active = c.Active
}

// CarrierModelFromDomain creates a new persistence model from a domain Carrier.
func CarrierModelFromDomain(c *shipping.Carrier) *CarrierModel {
	m := &CarrierModel{}
	m.FromDomain(c)
	return m
}

// MailClassModel is the persistence model for the USPS mail class catalog.
type MailClassModel struct {
	BaseModel
	Name  string `gorm:"type:varchar(100);not null"`
	Value string `gorm:"type:varchar(100);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (MailClassModel) TableName() string {
	return "mail_classes"
}

// ToDomain converts the persistence model to a domain MailClass entity.
func (m *MailClassModel) ToDomain() *shipping.MailClass {
	return &shipping.MailClass{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Value:      m.Value,
	}
}

// FromDomain populates the persistence model from a domain MailClass entity.
func (m *MailClassModel) FromDomain(mc *shipping.MailClass) {
	m.FromDomainBaseEntity(mc.BaseEntity)
	m.Name = mc.Name
	m.Value = mc.Value
}

// MailClassModelFromDomain creates a new persistence model from a domain MailClass.
func MailClassModelFromDomain(mc *shipping.MailClass) *MailClassModel {
	m := &MailClassModel{}
	m.FromDomain(mc)
	return m
}

// StockMoveModel is the persistence model for a shipment line.
// Weight is stored as amount plus unit symbol and rebuilt into the
// Weight value object on load.
type StockMoveModel struct {
	BaseModel
	ShipmentID     uuid.UUID       `gorm:"column:shipment_id;type:uuid;not null;index"`
	ProductCode    string          `gorm:"column:product_code;type:varchar(50);not null"`
	ProductName    string          `gorm:"column:product_name;type:varchar(255);not null"`
	ProductKind    string          `gorm:"column:product_kind;type:varchar(20);not null;default:'goods'"`
	Quantity       decimal.Decimal `gorm:"type:numeric(14,4);not null"`
	DefaultUomRate decimal.Decimal `gorm:"column:default_uom_rate;type:numeric(14,6);not null;default:1"`
	WeightAmount   decimal.Decimal `gorm:"column:weight_amount;type:numeric(14,4);not null;default:0"`
	WeightUnit     string          `gorm:"column:weight_unit;type:varchar(4);not null;default:'OZ'"`
	ListPrice      decimal.Decimal `gorm:"column:list_price;type:numeric(14,4);not null;default:0"`
	CostPrice      decimal.Decimal `gorm:"column:cost_price;type:numeric(14,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (StockMoveModel) TableName() string {
	return "stock_moves"
}

// ToDomain converts the persistence model to a domain StockMove entity.
func (m *StockMoveModel) ToDomain() shipping.StockMove {
	return shipping.StockMove{
		BaseEntity:     m.BaseModel.ToDomain(),
		ShipmentID:     m.ShipmentID,
		ProductCode:    m.ProductCode,
		ProductName:    m.ProductName,
		ProductKind:    shipping.ProductKind(m.ProductKind),
		Quantity:       m.Quantity,
		DefaultUomRate: m.DefaultUomRate,
		UnitWeight:     m.unitWeight(),
		ListPrice:      m.ListPrice,
		CostPrice:      m.CostPrice,
	}
}

// unitWeight rebuilds the Weight value object from the stored columns.
// Rows predating the unit column fall back to ounces.
func (m *StockMoveModel) unitWeight() valueobject.Weight {
	unit := valueobject.WeightUnit(m.WeightUnit)
	if !unit.IsValid() {
		unit = valueobject.WeightUnitOunce
	}
	w, err := valueobject.NewWeight(m.WeightAmount, unit)
	if err != nil {
		return valueobject.ZeroWeight()
	}
	return w
}

// FromDomain populates the persistence model from a domain StockMove.
func (m *StockMoveModel) FromDomain(mv *shipping.StockMove) {
	m.FromDomainBaseEntity(mv.BaseEntity)
	m.ShipmentID = mv.ShipmentID
	m.ProductCode = mv.ProductCode
	m.ProductName = mv.ProductName
	m.ProductKind = string(mv.ProductKind)
	m.Quantity = mv.Quantity
	m.DefaultUomRate = mv.DefaultUomRate
	m.WeightAmount = mv.UnitWeight.Amount()
	m.WeightUnit = string(mv.UnitWeight.Unit())
	if m.WeightUnit == "" {
		m.WeightUnit = string(valueobject.WeightUnitOunce)
	}
	m.ListPrice = mv.ListPrice
	m.CostPrice = mv.CostPrice
}

// StockMoveModelFromDomain creates a new persistence model from a domain StockMove.
func StockMoveModelFromDomain(mv *shipping.StockMove) *StockMoveModel {
	m := &StockMoveModel{}
	m.FromDomain(mv)
	return m
}

// ShipmentModel is the persistence model for the Shipment aggregate.
// Addresses are stored as JSONB snapshots rather than references so a
// generated label always reflects the address it was bought for.
type ShipmentModel struct {
	BaseModel
	Code  string `gorm:"type:varchar(50);not null;uniqueIndex"`
	State string `gorm:"type:varchar(20);not null;index"`

	CarrierID *uuid.UUID    `gorm:"column:carrier_id;type:uuid;index"`
	Carrier   *CarrierModel `gorm:"foreignKey:CarrierID"`

	MailClassID *uuid.UUID      `gorm:"column:mail_class_id;type:uuid"`
	MailClass   *MailClassModel `gorm:"foreignKey:MailClassID"`

	LabelSubtype       string `gorm:"column:label_subtype;type:varchar(20);not null;default:'None'"`
	IntegratedFormType string `gorm:"column:integrated_form_type;type:varchar(20)"`
	IncludePostage     bool   `gorm:"column:include_postage;not null;default:false"`
	PackageContentType string `gorm:"column:package_content_type;type:varchar(20);not null;default:'Other'"`

	TrackingNumber string          `gorm:"column:tracking_number;type:varchar(50);index"`
	Cost           decimal.Decimal `gorm:"type:numeric(12,4);not null;default:0"`
	CostCurrency   string          `gorm:"column:cost_currency;type:varchar(3)"`
	Refunded       bool            `gorm:"not null;default:false"`

	CustomerID       uuid.UUID           `gorm:"column:customer_id;type:uuid;not null;index"`
	WarehouseAddress valueobject.Address `gorm:"column:warehouse_address;type:jsonb"`
	DeliveryAddress  valueobject.Address `gorm:"column:delivery_address;type:jsonb"`

	Moves []StockMoveModel `gorm:"foreignKey:ShipmentID"`
}

// TableName returns the table name for GORM
func (ShipmentModel) TableName() string {
	return "shipments"
}

// ToDomain converts the persistence model to a domain Shipment aggregate.
func (m *ShipmentModel) ToDomain() *shipping.Shipment {
	s := &shipping.Shipment{
		BaseEntity:         m.BaseModel.ToDomain(),
		Code:               m.Code,
		State:              shipping.ShipmentState(m.State),
		LabelSubtype:       shipping.LabelSubtype(m.LabelSubtype),
		IntegratedFormType: shipping.IntegratedFormType(m.IntegratedFormType),
		IncludePostage:     m.IncludePostage,
		PackageContentType: shipping.PackageContentType(m.PackageContentType),
		TrackingNumber:     m.TrackingNumber,
		Cost:               m.Cost,
		CostCurrency:       m.CostCurrency,
		Refunded:           m.Refunded,
		CustomerID:         m.CustomerID,
		WarehouseAddress:   m.WarehouseAddress,
		DeliveryAddress:    m.DeliveryAddress,
	}

	if m.Carrier != nil {
		s.Carrier = m.Carrier.ToDomain()
	}
	if m.MailClass != nil {
		s.MailClass = m.MailClass.ToDomain()
	}

	s.Moves = make([]shipping.StockMove, len(m.Moves))
	for i := range m.Moves {
		s.Moves[i] = m.Moves[i].ToDomain()
	}

	return s
}

// FromDomain populates the persistence model from a domain Shipment.
// Carrier and mail class are persisted by reference only; their rows
// are owned by their own repositories.
func (m *ShipmentModel) FromDomain(s *shipping.Shipment) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.Code = s.Code
	m.State = string(s.State)

	m.CarrierID = nil
	if s.Carrier != nil {
		id := s.Carrier.ID
		m.CarrierID = &id
	}
	m.MailClassID = nil
	if s.MailClass != nil {
		id := s.MailClass.ID
		m.MailClassID = &id
	}

	m.LabelSubtype = string(s.LabelSubtype)
	m.IntegratedFormType = string(s.IntegratedFormType)
	m.IncludePostage = s.IncludePostage
	m.PackageContentType = string(s.PackageContentType)

	m.TrackingNumber = s.TrackingNumber
	m.Cost = s.Cost
	m.CostCurrency = s.CostCurrency
	m.Refunded = s.Refunded

	m.CustomerID = s.CustomerID
	m.WarehouseAddress = s.WarehouseAddress
	m.DeliveryAddress = s.DeliveryAddress

	m.Moves = make([]StockMoveModel, len(s.Moves))
	for i := range s.Moves {
		m.Moves[i].FromDomain(&s.Moves[i])
		m.Moves[i].ShipmentID = s.ID
	}
}

// ShipmentModelFromDomain creates a new persistence model from a domain Shipment.
func ShipmentModelFromDomain(s *shipping.Shipment) *ShipmentModel {
	m := &ShipmentModel{}
	m.FromDomain(s)
	return m
}

// AttachmentModel is the persistence model for shipment attachment metadata.
type AttachmentModel struct {
	BaseModel
	ShipmentID  uuid.UUID `gorm:"column:shipment_id;type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(255);not null"`
	ContentType string    `gorm:"column:content_type;type:varchar(100);not null"`
	StorageKey  string    `gorm:"column:storage_key;type:varchar(500);not null"`
	Size        int64     `gorm:"type:bigint;not null"`
}

// TableName returns the table name for GORM
func (AttachmentModel) TableName() string {
	return "shipment_attachments"
}

// ToDomain converts the persistence model to a domain Attachment entity.
func (m *AttachmentModel) ToDomain() *shipping.Attachment {
	return &shipping.Attachment{
		BaseEntity:  m.BaseModel.ToDomain(),
		ShipmentID:  m.ShipmentID,
		Name:        m.Name,
		ContentType: m.ContentType,
		StorageKey:  m.StorageKey,
		Size:        m.Size,
	}
}

// FromDomain populates the persistence model from a domain Attachment.
func (m *AttachmentModel) FromDomain(a *shipping.Attachment) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.ShipmentID = a.ShipmentID
	m.Name = a.Name
	m.ContentType = a.ContentType
	m.StorageKey = a.StorageKey
	m.Size = a.Size
}

// AttachmentModelFromDomain creates a new persistence model from a domain Attachment.
func AttachmentModelFromDomain(a *shipping.Attachment) *AttachmentModel {
	m := &AttachmentModel{}
	m.FromDomain(a)
	return m
}
