package shipping

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erp/shipping/internal/domain/shared"
	"github.com/erp/shipping/internal/domain/shipping"
)

func newShipmentServiceUnderTest() (*ShipmentService, *MockShipmentRepository, *MockCarrierRepository, *MockMailClassRepository) {
	shipmentRepo := new(MockShipmentRepository)
	carrierRepo := new(MockCarrierRepository)
	mailClassRepo := new(MockMailClassRepository)
	svc := NewShipmentService(shipmentRepo, carrierRepo, mailClassRepo)
	return svc, shipmentRepo, carrierRepo, mailClassRepo
}

func strPtr(s string) *string { return &s }

func TestShipmentService_GetShipment(t *testing.T) {
	svc, shipmentRepo, _, _ := newShipmentServiceUnderTest()
	ctx := context.Background()
	shipment := createTestShipment()

	shipmentRepo.On("FindByID", ctx, shipment.ID).Return(shipment, nil)

	found, err := svc.GetShipment(ctx, shipment.ID)

	assert.NoError(t, err)
	assert.Equal(t, shipment, found)
}

func TestShipmentService_ListShipments(t *testing.T) {
	svc, shipmentRepo, _, _ := newShipmentServiceUnderTest()
	ctx := context.Background()
	shipment := createTestShipment()
	filter := shipping.ShipmentFilter{State: shipping.StatePacked, Limit: 20}

	shipmentRepo.On("FindAll", ctx, filter).Return([]*shipping.Shipment{shipment}, int64(1), nil)

	shipments, total, err := svc.ListShipments(ctx, filter)

	assert.NoError(t, err)
	assert.Len(t, shipments, 1)
	assert.Equal(t, int64(1), total)
}

func TestShipmentService_UpdateShippingOptions_Success(t *testing.T) {
	svc, shipmentRepo, carrierRepo, mailClassRepo := newShipmentServiceUnderTest()
	ctx := context.Background()
	shipment := createTestShipment()

	newCarrier := createTestCarrier()
	newMailClass := &shipping.MailClass{Name: "First-Class Mail", Value: "First"}
	subtype := shipping.LabelSubtypeIntegrated
	formType := shipping.FormType2976A
	includePostage := true
	contentType := shipping.ContentGift

	shipmentRepo.On("FindByID", ctx, shipment.ID).Return(shipment, nil)
	carrierRepo.On("FindByCode", ctx, "endicia").Return(newCarrier, nil)
	mailClassRepo.On("FindByValue", ctx, "First").Return(newMailClass, nil)
	shipmentRepo.On("Update", ctx, shipment).Return(nil)

	updated, err := svc.UpdateShippingOptions(ctx, shipment.ID, UpdateShippingOptionsInput{
		CarrierCode:        strPtr("endicia"),
		MailClassValue:     strPtr("First"),
		LabelSubtype:       &subtype,
		IntegratedFormType: &formType,
		IncludePostage:     &includePostage,
		PackageContentType: &contentType,
	})

	assert.NoError(t, err)
	assert.Equal(t, newCarrier, updated.Carrier)
	assert.Equal(t, newMailClass, updated.MailClass)
	assert.Equal(t, shipping.LabelSubtypeIntegrated, updated.LabelSubtype)
	assert.Equal(t, shipping.FormType2976A, updated.IntegratedFormType)
	assert.True(t, updated.IncludePostage)
	assert.Equal(t, shipping.ContentGift, updated.PackageContentType)
	shipmentRepo.AssertExpectations(t)
}

func TestShipmentService_UpdateShippingOptions_PartialUpdate(t *testing.T) {
	svc, shipmentRepo, _, _ := newShipmentServiceUnderTest()
	ctx := context.Background()
	shipment := createTestShipment()
	originalCarrier := shipment.Carrier
	includePostage := true

	shipmentRepo.On("FindByID", ctx, shipment.ID).Return(shipment, nil)
	shipmentRepo.On("Update", ctx, shipment).Return(nil)

	updated, err := svc.UpdateShippingOptions(ctx, shipment.ID, UpdateShippingOptionsInput{
		IncludePostage: &includePostage,
	})

	assert.NoError(t, err)
	assert.True(t, updated.IncludePostage)
	// untouched fields survive
	assert.Equal(t, originalCarrier, updated.Carrier)
	assert.Equal(t, shipping.LabelSubtypeNone, updated.LabelSubtype)
}

func TestShipmentService_UpdateShippingOptions_StateLocked(t *testing.T) {
	svc, shipmentRepo, _, _ := newShipmentServiceUnderTest()
	ctx := context.Background()
	shipment := createTestShipment()
	shipment.State = shipping.StateDraft

	shipmentRepo.On("FindByID", ctx, shipment.ID).Return(shipment, nil)

	_, err := svc.UpdateShippingOptions(ctx, shipment.ID, UpdateShippingOptionsInput{})

	assert.ErrorIs(t, err, shared.ErrInvalidState)
	shipmentRepo.AssertNotCalled(t, "Update", ctx, shipment)
}

func TestShipmentService_UpdateShippingOptions_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		input UpdateShippingOptionsInput
	}{
		{
			"bad label subtype",
			UpdateShippingOptionsInput{LabelSubtype: (*shipping.LabelSubtype)(strPtr("Fancy"))},
		},
		{
			"bad form type",
			UpdateShippingOptionsInput{IntegratedFormType: (*shipping.IntegratedFormType)(strPtr("Form9999"))},
		},
		{
			"bad content type",
			UpdateShippingOptionsInput{PackageContentType: (*shipping.PackageContentType)(strPtr("Explosives"))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, shipmentRepo, _, _ := newShipmentServiceUnderTest()
			ctx := context.Background()
			shipment := createTestShipment()

			shipmentRepo.On("FindByID", ctx, shipment.ID).Return(shipment, nil)

			_, err := svc.UpdateShippingOptions(ctx, shipment.ID, tt.input)

			assert.ErrorIs(t, err, shared.ErrInvalidInput)
		})
	}
}

func TestShipmentService_UpdateShippingOptions_UnknownCarrier(t *testing.T) {
	svc, shipmentRepo, carrierRepo, _ := newShipmentServiceUnderTest()
	ctx := context.Background()
	shipment := createTestShipment()

	shipmentRepo.On("FindByID", ctx, shipment.ID).Return(shipment, nil)
	carrierRepo.On("FindByCode", ctx, "bogus").Return(nil, shared.ErrNotFound)

	_, err := svc.UpdateShippingOptions(ctx, shipment.ID, UpdateShippingOptionsInput{
		CarrierCode: strPtr("bogus"),
	})

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestShipmentService_ListCarriers(t *testing.T) {
	svc, _, carrierRepo, _ := newShipmentServiceUnderTest()
	ctx := context.Background()

	carrierRepo.On("FindAll", ctx).Return([]*shipping.Carrier{createTestCarrier()}, nil)

	carriers, err := svc.ListCarriers(ctx)

	assert.NoError(t, err)
	assert.Len(t, carriers, 1)
	assert.Equal(t, "endicia", carriers[0].Code)
}

func TestShipmentService_ListMailClasses(t *testing.T) {
	svc, _, _, mailClassRepo := newShipmentServiceUnderTest()
	ctx := context.Background()

	mailClassRepo.On("FindAll", ctx).Return([]*shipping.MailClass{createTestMailClass()}, nil)

	classes, err := svc.ListMailClasses(ctx)

	assert.NoError(t, err)
	assert.Len(t, classes, 1)
	assert.Equal(t, "Priority", classes[0].Value)
}
