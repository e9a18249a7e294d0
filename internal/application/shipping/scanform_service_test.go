package shipping

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/erp/shipping/internal/domain/shared"
	"github.com/erp/shipping/internal/domain/shipping"
)

func newSCANFormServiceUnderTest() (*SCANFormService, *MockShipmentRepository, *MockAttachmentRepository, *MockLabelProvider, *MockObjectStorage) {
	shipmentRepo := new(MockShipmentRepository)
	attachmentRepo := new(MockAttachmentRepository)
	provider := new(MockLabelProvider)
	storage := new(MockObjectStorage)
	svc := NewSCANFormService(shipmentRepo, attachmentRepo, provider, storage)
	return svc, shipmentRepo, attachmentRepo, provider, storage
}

func TestSCANFormService_MakeSCANForm_Success(t *testing.T) {
	svc, shipmentRepo, attachmentRepo, provider, storage := newSCANFormServiceUnderTest()
	ctx := context.Background()

	first := createLabelledTestShipment(uuid.MustParse("11111111-1111-1111-1111-111111111111"), "9400100000000000000001")
	second := createLabelledTestShipment(uuid.MustParse("33333333-3333-3333-3333-333333333333"), "9400100000000000000002")
	ids := []uuid.UUID{first.ID, second.ID}

	shipmentRepo.On("FindByIDs", ctx, ids).Return([]*shipping.Shipment{first, second}, nil)
	provider.On("SubmitSCANForm", ctx, &shipping.SCANFormRequest{
		PICNumbers: []string{"9400100000000000000001", "9400100000000000000002"},
	}).Return(&shipping.SCANFormResult{
		SubmissionID: "123456",
		Form:         []byte("manifest-bytes"),
	}, nil)
	storage.On("PutObject", ctx, "shipments/"+first.ID.String()+"/SCAN123456.png",
		[]byte("manifest-bytes"), "image/png").Return(nil)
	storage.On("PutObject", ctx, "shipments/"+second.ID.String()+"/SCAN123456.png",
		[]byte("manifest-bytes"), "image/png").Return(nil)
	attachmentRepo.On("Save", ctx, mock.AnythingOfType("*shipping.Attachment")).Return(nil)

	status, err := svc.MakeSCANForm(ctx, ids)

	assert.NoError(t, err)
	assert.Equal(t, "123456", status.SubmissionID)
	assert.Equal(t, "SCAN123456", status.Response)
	// the manifest is stored against every shipment in the batch
	assert.Len(t, status.Attachments, 2)
	storage.AssertExpectations(t)
	attachmentRepo.AssertNumberOfCalls(t, "Save", 2)
}

func TestSCANFormService_MakeSCANForm_CarrierRejects(t *testing.T) {
	svc, shipmentRepo, attachmentRepo, provider, storage := newSCANFormServiceUnderTest()
	ctx := context.Background()

	shipment := createLabelledTestShipment(newTestShipmentID(), "9400100000000000000001")

	shipmentRepo.On("FindByIDs", ctx, []uuid.UUID{shipment.ID}).
		Return([]*shipping.Shipment{shipment}, nil)
	provider.On("SubmitSCANForm", ctx, mock.AnythingOfType("*shipping.SCANFormRequest")).
		Return(&shipping.SCANFormResult{ErrorMessage: "PIC already manifested"}, nil)

	status, err := svc.MakeSCANForm(ctx, []uuid.UUID{shipment.ID})

	assert.NoError(t, err)
	assert.Empty(t, status.SubmissionID)
	assert.Equal(t, "PIC already manifested", status.Response)
	assert.Empty(t, status.Attachments)
	storage.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	attachmentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSCANFormService_MakeSCANForm_EmptyInput(t *testing.T) {
	svc, _, _, _, _ := newSCANFormServiceUnderTest()

	_, err := svc.MakeSCANForm(context.Background(), nil)

	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestSCANFormService_MakeSCANForm_UnknownShipment(t *testing.T) {
	svc, shipmentRepo, _, _, _ := newSCANFormServiceUnderTest()
	ctx := context.Background()

	shipment := createLabelledTestShipment(newTestShipmentID(), "9400100000000000000001")
	ids := []uuid.UUID{shipment.ID, uuid.MustParse("33333333-3333-3333-3333-333333333333")}

	shipmentRepo.On("FindByIDs", ctx, ids).Return([]*shipping.Shipment{shipment}, nil)

	_, err := svc.MakeSCANForm(ctx, ids)

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestSCANFormService_MakeSCANForm_MissingTrackingNumber(t *testing.T) {
	svc, shipmentRepo, _, provider, _ := newSCANFormServiceUnderTest()
	ctx := context.Background()

	shipment := createTestShipment() // never labelled

	shipmentRepo.On("FindByIDs", ctx, []uuid.UUID{shipment.ID}).
		Return([]*shipping.Shipment{shipment}, nil)

	_, err := svc.MakeSCANForm(ctx, []uuid.UUID{shipment.ID})

	assert.ErrorIs(t, err, shipping.ErrTrackingNumberMissing)
	provider.AssertNotCalled(t, "SubmitSCANForm", mock.Anything, mock.Anything)
}

func TestSCANFormService_MakeSCANForm_WrongCarrier(t *testing.T) {
	svc, shipmentRepo, _, _, _ := newSCANFormServiceUnderTest()
	ctx := context.Background()

	shipment := createLabelledTestShipment(newTestShipmentID(), "9400100000000000000001")
	shipment.Carrier = &shipping.Carrier{Code: "flat", CostMethod: shipping.CostMethodFlat}

	shipmentRepo.On("FindByIDs", ctx, []uuid.UUID{shipment.ID}).
		Return([]*shipping.Shipment{shipment}, nil)

	_, err := svc.MakeSCANForm(ctx, []uuid.UUID{shipment.ID})

	assert.ErrorIs(t, err, shipping.ErrWrongCarrier)
}

func TestSCANFormService_MakeSCANForm_ProviderError(t *testing.T) {
	svc, shipmentRepo, _, provider, _ := newSCANFormServiceUnderTest()
	ctx := context.Background()

	shipment := createLabelledTestShipment(newTestShipmentID(), "9400100000000000000001")

	shipmentRepo.On("FindByIDs", ctx, []uuid.UUID{shipment.ID}).
		Return([]*shipping.Shipment{shipment}, nil)
	provider.On("SubmitSCANForm", ctx, mock.AnythingOfType("*shipping.SCANFormRequest")).
		Return(nil, errors.New("timeout"))

	_, err := svc.MakeSCANForm(ctx, []uuid.UUID{shipment.ID})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "SCAN_FORM_FAILED", domainErr.Code)
}
