package shipping

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/erp/shipping/internal/domain/shared"
	"github.com/erp/shipping/internal/domain/shared/valueobject"
	"github.com/erp/shipping/internal/domain/shipping"
)

// MockShipmentRepository is a mock implementation of shipping.ShipmentRepository
type MockShipmentRepository struct {
	mock.Mock
}

func (m *MockShipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipping.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) FindByCode(ctx context.Context, code string) (*shipping.Shipment, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) FindByTrackingNumber(ctx context.Context, trackingNumber string) (*shipping.Shipment, error) {
	args := m.Called(ctx, trackingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*shipping.Shipment, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipping.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) FindAll(ctx context.Context, filter shipping.ShipmentFilter) ([]*shipping.Shipment, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*shipping.Shipment), args.Get(1).(int64), args.Error(2)
}

func (m *MockShipmentRepository) Save(ctx context.Context, shipment *shipping.Shipment) error {
	args := m.Called(ctx, shipment)
	return args.Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, shipment *shipping.Shipment) error {
	args := m.Called(ctx, shipment)
	return args.Error(0)
}

// MockCarrierRepository is a mock implementation of shipping.CarrierRepository
type MockCarrierRepository struct {
	mock.Mock
}

func (m *MockCarrierRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipping.Carrier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.Carrier), args.Error(1)
}

func (m *MockCarrierRepository) FindByCode(ctx context.Context, code string) (*shipping.Carrier, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.Carrier), args.Error(1)
}

func (m *MockCarrierRepository) FindAll(ctx context.Context) ([]*shipping.Carrier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipping.Carrier), args.Error(1)
}

func (m *MockCarrierRepository) Save(ctx context.Context, carrier *shipping.Carrier) error {
	args := m.Called(ctx, carrier)
	return args.Error(0)
}

// MockMailClassRepository is a mock implementation of shipping.MailClassRepository
type MockMailClassRepository struct {
	mock.Mock
}

func (m *MockMailClassRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipping.MailClass, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.MailClass), args.Error(1)
}

func (m *MockMailClassRepository) FindByValue(ctx context.Context, value string) (*shipping.MailClass, error) {
	args := m.Called(ctx, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.MailClass), args.Error(1)
}

func (m *MockMailClassRepository) FindAll(ctx context.Context) ([]*shipping.MailClass, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipping.MailClass), args.Error(1)
}

func (m *MockMailClassRepository) Save(ctx context.Context, mailClass *shipping.MailClass) error {
	args := m.Called(ctx, mailClass)
	return args.Error(0)
}

// MockAttachmentRepository is a mock implementation of shipping.AttachmentRepository
type MockAttachmentRepository struct {
	mock.Mock
}

func (m *MockAttachmentRepository) Save(ctx context.Context, attachment *shipping.Attachment) error {
	args := m.Called(ctx, attachment)
	return args.Error(0)
}

func (m *MockAttachmentRepository) FindByShipmentID(ctx context.Context, shipmentID uuid.UUID) ([]*shipping.Attachment, error) {
	args := m.Called(ctx, shipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipping.Attachment), args.Error(1)
}

// MockLabelProvider is a mock implementation of shipping.LabelProvider
type MockLabelProvider struct {
	mock.Mock
}

func (m *MockLabelProvider) GetShippingLabel(ctx context.Context, req *shipping.LabelRequest) (*shipping.LabelResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.LabelResult), args.Error(1)
}

func (m *MockLabelProvider) CalculatePostage(ctx context.Context, req *shipping.PostageRateRequest) (decimal.Decimal, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLabelProvider) RequestRefund(ctx context.Context, req *shipping.RefundRequest) (*shipping.RefundResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.RefundResult), args.Error(1)
}

func (m *MockLabelProvider) SubmitSCANForm(ctx context.Context, req *shipping.SCANFormRequest) (*shipping.SCANFormResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.SCANFormResult), args.Error(1)
}

func (m *MockLabelProvider) BuyPostage(ctx context.Context, req *shipping.BuyPostageRequest) (*shipping.BuyPostageResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.BuyPostageResult), args.Error(1)
}

// MockObjectStorage is a mock implementation of ObjectStorageService
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) PutObject(ctx context.Context, storageKey string, data []byte, contentType string) error {
	args := m.Called(ctx, storageKey, data, contentType)
	return args.Error(0)
}

func (m *MockObjectStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	args := m.Called(ctx, storageKey)
	return args.Error(0)
}

func (m *MockObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	args := m.Called(ctx, storageKey)
	return args.Bool(0), args.Error(1)
}

// MockRateCache is a mock implementation of RateCache
type MockRateCache struct {
	mock.Mock
}

func (m *MockRateCache) Get(ctx context.Context, key string) (decimal.Decimal, bool) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return decimal.Zero, args.Bool(1)
	}
	return args.Get(0).(decimal.Decimal), args.Bool(1)
}

func (m *MockRateCache) Set(ctx context.Context, key string, amount decimal.Decimal, ttl time.Duration) {
	m.Called(ctx, key, amount, ttl)
}

// Test fixtures shared across the service tests

func newTestShipmentID() uuid.UUID {
	return uuid.MustParse("11111111-1111-1111-1111-111111111111")
}

func newTestCustomerID() uuid.UUID {
	return uuid.MustParse("22222222-2222-2222-2222-222222222222")
}

func createTestCarrier() *shipping.Carrier {
	return &shipping.Carrier{
		BaseEntity: shared.NewBaseEntity(),
		Code:       "endicia",
		Name:       "USPS [Endicia]",
		CostMethod: shipping.CostMethodEndicia,
		Active:     true,
	}
}

func createTestMailClass() *shipping.MailClass {
	return &shipping.MailClass{
		BaseEntity: shared.NewBaseEntity(),
		Name:       "Priority Mail",
		Value:      "Priority",
	}
}

// createTestShipment builds a packed shipment that passes every
// label precondition.
func createTestShipment() *shipping.Shipment {
	s := &shipping.Shipment{
		BaseEntity: shared.NewBaseEntity(),
		Code:       "SHP001",
		State:      shipping.StatePacked,
		Carrier:    createTestCarrier(),
		MailClass:  createTestMailClass(),

		LabelSubtype:       shipping.LabelSubtypeNone,
		PackageContentType: shipping.ContentOther,

		CustomerID: newTestCustomerID(),
		WarehouseAddress: valueobject.MustNewAddress(
			"Warehouse", "100 Industrial Way", "Los Angeles", "US",
			valueobject.WithState("CA"), valueobject.WithPostalCode("90001")),
		DeliveryAddress: valueobject.MustNewAddress(
			"John Doe", "250 NE 25th St", "Miami", "US",
			valueobject.WithState("FL"), valueobject.WithPostalCode("33137-4227")),

		Moves: []shipping.StockMove{
			{
				BaseEntity:  shared.NewBaseEntity(),
				ProductCode: "WIDGET",
				ProductName: "Widget",
				ProductKind: shipping.ProductKindGoods,
				Quantity:    decimal.NewFromInt(2),
				UnitWeight:  valueobject.MustNewWeight(decimal.NewFromInt(4), valueobject.WeightUnitOunce),
				ListPrice:   decimal.NewFromFloat(9.99),
				CostPrice:   decimal.NewFromFloat(4.50),
			},
		},
	}
	s.ID = newTestShipmentID()
	return s
}

// createLabelledTestShipment builds a done shipment that already
// carries a label.
func createLabelledTestShipment(id uuid.UUID, trackingNumber string) *shipping.Shipment {
	s := createTestShipment()
	s.ID = id
	s.State = shipping.StateDone
	s.TrackingNumber = trackingNumber
	s.Cost = decimal.NewFromFloat(7.33)
	s.CostCurrency = "USD"
	return s
}
