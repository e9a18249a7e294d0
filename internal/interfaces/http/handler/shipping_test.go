package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appshipping "github.com/erp/shipping/internal/application/shipping"
	"github.com/erp/shipping/internal/domain/shared"
	"github.com/erp/shipping/internal/domain/shared/valueobject"
	"github.com/erp/shipping/internal/domain/shipping"
	"github.com/erp/shipping/internal/infrastructure/storage"
	"github.com/erp/shipping/internal/interfaces/http/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// mockShipmentRepo is a mock implementation of shipping.ShipmentRepository
type mockShipmentRepo struct {
	mock.Mock
}

func (m *mockShipmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*shipping.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.Shipment), args.Error(1)
}

func (m *mockShipmentRepo) FindByCode(ctx context.Context, code string) (*shipping.Shipment, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.Shipment), args.Error(1)
}

func (m *mockShipmentRepo) FindByTrackingNumber(ctx context.Context, trackingNumber string) (*shipping.Shipment, error) {
	args := m.Called(ctx, trackingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.Shipment), args.Error(1)
}

func (m *mockShipmentRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*shipping.Shipment, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipping.Shipment), args.Error(1)
}

func (m *mockShipmentRepo) FindAll(ctx context.Context, filter shipping.ShipmentFilter) ([]*shipping.Shipment, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*shipping.Shipment), args.Get(1).(int64), args.Error(2)
}

func (m *mockShipmentRepo) Save(ctx context.Context, shipment *shipping.Shipment) error {
	args := m.Called(ctx, shipment)
	return args.Error(0)
}

func (m *mockShipmentRepo) Update(ctx context.Context, shipment *shipping.Shipment) error {
	args := m.Called(ctx, shipment)
	return args.Error(0)
}

// mockCarrierRepo is a mock implementation of shipping.CarrierRepository
type mockCarrierRepo struct {
	mock.Mock
}

func (m *mockCarrierRepo) FindByID(ctx context.Context, id uuid.UUID) (*shipping.Carrier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.Carrier), args.Error(1)
}

func (m *mockCarrierRepo) FindByCode(ctx context.Context, code string) (*shipping.Carrier, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.Carrier), args.Error(1)
}

func (m *mockCarrierRepo) FindAll(ctx context.Context) ([]*shipping.Carrier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipping.Carrier), args.Error(1)
}

func (m *mockCarrierRepo) Save(ctx context.Context, carrier *shipping.Carrier) error {
	args := m.Called(ctx, carrier)
	return args.Error(0)
}

// mockMailClassRepo is a mock implementation of shipping.MailClassRepository
type mockMailClassRepo struct {
	mock.Mock
}

func (m *mockMailClassRepo) FindByID(ctx context.Context, id uuid.UUID) (*shipping.MailClass, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.MailClass), args.Error(1)
}

func (m *mockMailClassRepo) FindByValue(ctx context.Context, value string) (*shipping.MailClass, error) {
	args := m.Called(ctx, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.MailClass), args.Error(1)
}

func (m *mockMailClassRepo) FindAll(ctx context.Context) ([]*shipping.MailClass, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipping.MailClass), args.Error(1)
}

func (m *mockMailClassRepo) Save(ctx context.Context, mailClass *shipping.MailClass) error {
	args := m.Called(ctx, mailClass)
	return args.Error(0)
}

// mockAttachmentRepo is a mock implementation of shipping.AttachmentRepository
type mockAttachmentRepo struct {
	mock.Mock
}

func (m *mockAttachmentRepo) Save(ctx context.Context, attachment *shipping.Attachment) error {
	args := m.Called(ctx, attachment)
	return args.Error(0)
}

func (m *mockAttachmentRepo) FindByShipmentID(ctx context.Context, shipmentID uuid.UUID) ([]*shipping.Attachment, error) {
	args := m.Called(ctx, shipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipping.Attachment), args.Error(1)
}

// mockLabelProvider is a mock implementation of shipping.LabelProvider
type mockLabelProvider struct {
	mock.Mock
}

func (m *mockLabelProvider) GetShippingLabel(ctx context.Context, req *shipping.LabelRequest) (*shipping.LabelResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.LabelResult), args.Error(1)
}

func (m *mockLabelProvider) CalculatePostage(ctx context.Context, req *shipping.PostageRateRequest) (decimal.Decimal, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockLabelProvider) RequestRefund(ctx context.Context, req *shipping.RefundRequest) (*shipping.RefundResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.RefundResult), args.Error(1)
}

func (m *mockLabelProvider) SubmitSCANForm(ctx context.Context, req *shipping.SCANFormRequest) (*shipping.SCANFormResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.SCANFormResult), args.Error(1)
}

func (m *mockLabelProvider) BuyPostage(ctx context.Context, req *shipping.BuyPostageRequest) (*shipping.BuyPostageResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.BuyPostageResult), args.Error(1)
}

// shippingTestEnv bundles the handler with the mocks behind it.
type shippingTestEnv struct {
	router         *gin.Engine
	shipmentRepo   *mockShipmentRepo
	carrierRepo    *mockCarrierRepo
	mailClassRepo  *mockMailClassRepo
	attachmentRepo *mockAttachmentRepo
	provider       *mockLabelProvider
	storage        *storage.MemoryObjectStorage
}

func newShippingTestEnv() *shippingTestEnv {
	env := &shippingTestEnv{
		shipmentRepo:   new(mockShipmentRepo),
		carrierRepo:    new(mockCarrierRepo),
		mailClassRepo:  new(mockMailClassRepo),
		attachmentRepo: new(mockAttachmentRepo),
		provider:       new(mockLabelProvider),
		storage:        storage.NewMemoryObjectStorage(),
	}

	h := NewShippingHandler(
		appshipping.NewShipmentService(env.shipmentRepo, env.carrierRepo, env.mailClassRepo),
		appshipping.NewLabelService(env.shipmentRepo, env.attachmentRepo, env.provider, env.storage),
		appshipping.NewRateService(env.shipmentRepo, env.provider, nil),
		appshipping.NewRefundService(env.shipmentRepo, env.provider),
		appshipping.NewSCANFormService(env.shipmentRepo, env.attachmentRepo, env.provider, env.storage),
		appshipping.NewPostageService(env.provider),
		appshipping.NewAttachmentService(env.shipmentRepo, env.attachmentRepo, env.storage),
	)

	env.router = gin.New()
	env.router.GET("/shipments", h.ListShipments)
	env.router.GET("/shipments/:id", h.GetShipment)
	env.router.PATCH("/shipments/:id/shipping-options", h.UpdateShippingOptions)
	env.router.POST("/shipments/:id/label", h.GenerateLabel)
	env.router.GET("/shipments/:id/rate", h.GetShippingCost)
	env.router.GET("/shipments/:id/attachments", h.ListAttachments)
	env.router.POST("/shipments/refund", h.RequestRefund)
	env.router.POST("/shipments/scan-form", h.MakeSCANForm)
	env.router.POST("/postage/buy", h.BuyPostage)
	env.router.GET("/carriers", h.ListCarriers)
	env.router.GET("/mail-classes", h.ListMailClasses)
	return env
}

func (env *shippingTestEnv) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, dto.Response) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Name", "john.doe")

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func newHandlerTestShipment() *shipping.Shipment {
	s := &shipping.Shipment{
		BaseEntity: shared.NewBaseEntity(),
		Code:       "SHP001",
		State:      shipping.StatePacked,
		Carrier: &shipping.Carrier{
			BaseEntity: shared.NewBaseEntity(),
			Code:       "endicia",
			Name:       "USPS [Endicia]",
			CostMethod: shipping.CostMethodEndicia,
			Active:     true,
		},
		MailClass: &shipping.MailClass{
			BaseEntity: shared.NewBaseEntity(),
			Name:       "Priority Mail",
			Value:      "Priority",
		},
		LabelSubtype:       shipping.LabelSubtypeNone,
		PackageContentType: shipping.ContentOther,
		CustomerID:         uuid.New(),
		WarehouseAddress: valueobject.MustNewAddress(
			"Warehouse", "100 Industrial Way", "Los Angeles", "US",
			valueobject.WithState("CA"), valueobject.WithPostalCode("90001")),
		DeliveryAddress: valueobject.MustNewAddress(
			"John Doe", "250 NE 25th St", "Miami", "US",
			valueobject.WithState("FL"), valueobject.WithPostalCode("33137")),
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
	s.ID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	return s
}

func dataAsMap(t *testing.T, resp dto.Response) map[string]any {
	t.Helper()
	m, ok := resp.Data.(map[string]any)
	require.True(t, ok, "expected object data, got %T", resp.Data)
	return m
}

func TestShippingHandler_GetShipment(t *testing.T) {
	env := newShippingTestEnv()
	shipment := newHandlerTestShipment()

	env.shipmentRepo.On("FindByID", mock.Anything, shipment.ID).Return(shipment, nil)

	w, resp := env.do(t, http.MethodGet, "/shipments/"+shipment.ID.String(), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	data := dataAsMap(t, resp)
	assert.Equal(t, "SHP001", data["code"])
	assert.Equal(t, "packed", data["state"])
	carrier := data["carrier"].(map[string]any)
	assert.Equal(t, "endicia", carrier["code"])
	moves := data["moves"].([]any)
	assert.Len(t, moves, 1)
}

func TestShippingHandler_GetShipment_InvalidID(t *testing.T) {
	env := newShippingTestEnv()

	w, resp := env.do(t, http.MethodGet, "/shipments/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
}

func TestShippingHandler_GetShipment_NotFound(t *testing.T) {
	env := newShippingTestEnv()
	id := uuid.New()

	env.shipmentRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	w, resp := env.do(t, http.MethodGet, "/shipments/"+id.String(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
}

func TestShippingHandler_ListShipments(t *testing.T) {
	env := newShippingTestEnv()
	shipment := newHandlerTestShipment()

	env.shipmentRepo.On("FindAll", mock.Anything, shipping.ShipmentFilter{
		State:  shipping.StatePacked,
		Limit:  10,
		Offset: 10,
	}).Return([]*shipping.Shipment{shipment}, int64(11), nil)

	w, resp := env.do(t, http.MethodGet, "/shipments?state=packed&page=2&page_size=10", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(11), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 10, resp.Meta.PageSize)
	assert.Equal(t, 2, resp.Meta.TotalPages)
}

func TestShippingHandler_ListShipments_InvalidState(t *testing.T) {
	env := newShippingTestEnv()

	w, resp := env.do(t, http.MethodGet, "/shipments?state=teleported", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
}

func TestShippingHandler_UpdateShippingOptions(t *testing.T) {
	env := newShippingTestEnv()
	shipment := newHandlerTestShipment()
	mailClass := &shipping.MailClass{
		BaseEntity: shared.NewBaseEntity(),
		Name:       "Priority Mail International",
		Value:      "PriorityMailInternational",
	}

	env.shipmentRepo.On("FindByID", mock.Anything, shipment.ID).Return(shipment, nil)
	env.mailClassRepo.On("FindByValue", mock.Anything, "PriorityMailInternational").Return(mailClass, nil)
	env.shipmentRepo.On("Update", mock.Anything, shipment).Return(nil)

	w, resp := env.do(t, http.MethodPatch, "/shipments/"+shipment.ID.String()+"/shipping-options", gin.H{
		"mail_class_value": "PriorityMailInternational",
		"label_subtype":    "Integrated",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataAsMap(t, resp)
	assert.Equal(t, "Integrated", data["label_subtype"])
	mc := data["mail_class"].(map[string]any)
	assert.Equal(t, "PriorityMailInternational", mc["value"])
	assert.Equal(t, true, mc["international"])
}

func TestShippingHandler_UpdateShippingOptions_BadSubtype(t *testing.T) {
	env := newShippingTestEnv()
	shipment := newHandlerTestShipment()

	w, resp := env.do(t, http.MethodPatch, "/shipments/"+shipment.ID.String()+"/shipping-options", gin.H{
		"label_subtype": "Fancy",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
}

func TestShippingHandler_GenerateLabel(t *testing.T) {
	env := newShippingTestEnv()
	shipment := newHandlerTestShipment()

	env.shipmentRepo.On("FindByID", mock.Anything, shipment.ID).Return(shipment, nil)
	env.provider.On("GetShippingLabel", mock.Anything, mock.MatchedBy(func(req *shipping.LabelRequest) bool {
		return req.Customs != nil && req.Customs.Signer == "john.doe"
	})).Return(&shipping.LabelResult{
		TrackingNumber: "9400100000000000000001",
		FinalPostage:   decimal.NewFromFloat(7.33),
		Images:         []shipping.LabelImage{{Part: "1", Data: []byte("label-bytes")}},
	}, nil)
	env.shipmentRepo.On("Update", mock.Anything, shipment).Return(nil)
	env.attachmentRepo.On("Save", mock.Anything, mock.AnythingOfType("*shipping.Attachment")).Return(nil)

	w, resp := env.do(t, http.MethodPost, "/shipments/"+shipment.ID.String()+"/label", nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := dataAsMap(t, resp)
	assert.Equal(t, "9400100000000000000001", data["tracking_number"])
	assert.Equal(t, "7.33", data["cost"])

	// label bytes were stored
	stored, contentType, ok := env.storage.GetObject(
		"shipments/" + shipment.ID.String() + "/9400100000000000000001_1_USPS-Endicia.png")
	assert.True(t, ok)
	assert.Equal(t, []byte("label-bytes"), stored)
	assert.Equal(t, "image/png", contentType)
}

func TestShippingHandler_GenerateLabel_PreconditionFailure(t *testing.T) {
	env := newShippingTestEnv()
	shipment := newHandlerTestShipment()
	shipment.State = shipping.StateDraft

	env.shipmentRepo.On("FindByID", mock.Anything, shipment.ID).Return(shipment, nil)

	w, resp := env.do(t, http.MethodPost, "/shipments/"+shipment.ID.String()+"/label", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "INVALID_SHIPMENT_STATE", resp.Error.Code)
}

func TestShippingHandler_GenerateLabel_CarrierFailure(t *testing.T) {
	env := newShippingTestEnv()
	shipment := newHandlerTestShipment()

	env.shipmentRepo.On("FindByID", mock.Anything, shipment.ID).Return(shipment, nil)
	env.provider.On("GetShippingLabel", mock.Anything, mock.AnythingOfType("*shipping.LabelRequest")).
		Return(nil, shipping.ErrProviderUnavailable)

	w, resp := env.do(t, http.MethodPost, "/shipments/"+shipment.ID.String()+"/label", nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "LABEL_GENERATION_FAILED", resp.Error.Code)
}

func TestShippingHandler_GetShippingCost(t *testing.T) {
	env := newShippingTestEnv()
	shipment := newHandlerTestShipment()

	env.shipmentRepo.On("FindByID", mock.Anything, shipment.ID).Return(shipment, nil)
	env.provider.On("CalculatePostage", mock.Anything, mock.AnythingOfType("*shipping.PostageRateRequest")).
		Return(decimal.NewFromFloat(7.33), nil)

	w, resp := env.do(t, http.MethodGet, "/shipments/"+shipment.ID.String()+"/rate", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataAsMap(t, resp)
	assert.Equal(t, "7.33", data["amount"])
	assert.Equal(t, "USD", data["currency"])
	assert.Equal(t, false, data["cached"])
}

func TestShippingHandler_RequestRefund(t *testing.T) {
	env := newShippingTestEnv()
	shipment := newHandlerTestShipment()
	shipment.State = shipping.StateDone
	shipment.TrackingNumber = "9400100000000000000001"

	env.shipmentRepo.On("FindByIDs", mock.Anything, []uuid.UUID{shipment.ID}).
		Return([]*shipping.Shipment{shipment}, nil)
	env.provider.On("RequestRefund", mock.Anything, mock.AnythingOfType("*shipping.RefundRequest")).
		Return(&shipping.RefundResult{Approved: true, Message: "Refund approved"}, nil)
	env.shipmentRepo.On("Update", mock.Anything, shipment).Return(nil)

	w, resp := env.do(t, http.MethodPost, "/shipments/refund", gin.H{
		"shipment_ids": []string{shipment.ID.String()},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataAsMap(t, resp)
	assert.Equal(t, true, data["approved"])
}

func TestShippingHandler_RequestRefund_EmptyList(t *testing.T) {
	env := newShippingTestEnv()

	w, resp := env.do(t, http.MethodPost, "/shipments/refund", gin.H{
		"shipment_ids": []string{},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
}

func TestShippingHandler_MakeSCANForm(t *testing.T) {
	env := newShippingTestEnv()
	shipment := newHandlerTestShipment()
	shipment.State = shipping.StateDone
	shipment.TrackingNumber = "9400100000000000000001"

	env.shipmentRepo.On("FindByIDs", mock.Anything, []uuid.UUID{shipment.ID}).
		Return([]*shipping.Shipment{shipment}, nil)
	env.provider.On("SubmitSCANForm", mock.Anything, mock.AnythingOfType("*shipping.SCANFormRequest")).
		Return(&shipping.SCANFormResult{SubmissionID: "123456", Form: []byte("manifest")}, nil)
	env.attachmentRepo.On("Save", mock.Anything, mock.AnythingOfType("*shipping.Attachment")).Return(nil)

	w, resp := env.do(t, http.MethodPost, "/shipments/scan-form", gin.H{
		"shipment_ids": []string{shipment.ID.String()},
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	data := dataAsMap(t, resp)
	assert.Equal(t, "123456", data["submission_id"])
	assert.Equal(t, "SCAN123456", data["response"])
}

func TestShippingHandler_BuyPostage(t *testing.T) {
	env := newShippingTestEnv()

	env.provider.On("BuyPostage", mock.Anything, &shipping.BuyPostageRequest{
		RequestID: "john.doe",
		Amount:    decimal.RequireFromString("100"),
	}).Return(&shipping.BuyPostageResult{
		Status:         "Success",
		PostageBalance: decimal.NewFromFloat(312.45),
	}, nil)

	w, resp := env.do(t, http.MethodPost, "/postage/buy", gin.H{"amount": "100"})

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataAsMap(t, resp)
	assert.Equal(t, "Success", data["response"])
	assert.Equal(t, "312.45", data["balance"])
}

func TestShippingHandler_BuyPostage_BadAmount(t *testing.T) {
	env := newShippingTestEnv()

	w, resp := env.do(t, http.MethodPost, "/postage/buy", gin.H{"amount": "a-lot"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
}

func TestShippingHandler_BuyPostage_NegativeAmount(t *testing.T) {
	env := newShippingTestEnv()

	w, resp := env.do(t, http.MethodPost, "/postage/buy", gin.H{"amount": "-5"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_AMOUNT", resp.Error.Code)
}

func TestShippingHandler_ListAttachments(t *testing.T) {
	env := newShippingTestEnv()
	shipment := newHandlerTestShipment()
	attachment := shipping.NewAttachment(shipment.ID, "SCAN123456.png", "image/png",
		"shipments/"+shipment.ID.String()+"/SCAN123456.png", 1024)

	env.shipmentRepo.On("FindByID", mock.Anything, shipment.ID).Return(shipment, nil)
	env.attachmentRepo.On("FindByShipmentID", mock.Anything, shipment.ID).
		Return([]*shipping.Attachment{attachment}, nil)

	w, resp := env.do(t, http.MethodGet, "/shipments/"+shipment.ID.String()+"/attachments", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	items := resp.Data.([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, "SCAN123456.png", item["name"])
	assert.NotEmpty(t, item["download_url"], "memory storage presigns every object")
}

func TestShippingHandler_ListCarriers(t *testing.T) {
	env := newShippingTestEnv()

	env.carrierRepo.On("FindAll", mock.Anything).Return([]*shipping.Carrier{
		newHandlerTestShipment().Carrier,
	}, nil)

	w, resp := env.do(t, http.MethodGet, "/carriers", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	items := resp.Data.([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "endicia", items[0].(map[string]any)["code"])
}

func TestShippingHandler_ListMailClasses(t *testing.T) {
	env := newShippingTestEnv()

	env.mailClassRepo.On("FindAll", mock.Anything).Return([]*shipping.MailClass{
		{BaseEntity: shared.NewBaseEntity(), Name: "Priority Mail", Value: "Priority"},
	}, nil)

	w, resp := env.do(t, http.MethodGet, "/mail-classes", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	items := resp.Data.([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Priority", items[0].(map[string]any)["value"])
}
