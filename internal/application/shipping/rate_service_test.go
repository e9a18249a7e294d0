package shipping

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/erp/shipping/internal/domain/shared"
	"github.com/erp/shipping/internal/domain/shipping"
)

func TestRateService_GetShippingCost_Success(t *testing.T) {
	shipmentRepo := new(MockShipmentRepository)
	provider := new(MockLabelProvider)
	svc := NewRateService(shipmentRepo, provider, nil)
	ctx := context.Background()
	shipment := createTestShipment()

	var captured *shipping.PostageRateRequest
	shipmentRepo.On("FindByID", ctx, shipment.ID).Return(shipment, nil)
	provider.On("CalculatePostage", ctx, mock.AnythingOfType("*shipping.PostageRateRequest")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(*shipping.PostageRateRequest)
		}).
		Return(decimal.NewFromFloat(7.33), nil)

	quote, err := svc.GetShippingCost(ctx, shipment.ID)

	assert.NoError(t, err)
	assert.True(t, quote.Amount.Equal(decimal.NewFromFloat(7.33)))
	assert.Equal(t, "USD", quote.Currency)
	assert.False(t, quote.Cached)

	assert.Equal(t, "Priority", captured.MailClass)
	assert.Equal(t, int64(8), captured.WeightOz)
	assert.Equal(t, "90001", captured.FromPostalCode)
	assert.Equal(t, "33137", captured.ToPostalCode, "zip+4 trimmed to zip5")
	assert.Equal(t, "US", captured.ToCountryCode)
	shipmentRepo.AssertExpectations(t)
	provider.AssertExpectations(t)
}

func TestRateService_GetShippingCost_CacheHit(t *testing.T) {
	shipmentRepo := new(MockShipmentRepository)
	provider := new(MockLabelProvider)
	cache := new(MockRateCache)
	svc := NewRateService(shipmentRepo, provider, cache)
	ctx := context.Background()
	shipment := createTestShipment()

	shipmentRepo.On("FindByID", ctx, shipment.ID).Return(shipment, nil)
	cache.On("Get", ctx, "postage:Priority:8:90001:33137:US").
		Return(decimal.NewFromFloat(7.33), true)

	quote, err := svc.GetShippingCost(ctx, shipment.ID)

	assert.NoError(t, err)
	assert.True(t, quote.Cached)
	assert.True(t, quote.Amount.Equal(decimal.NewFromFloat(7.33)))
	provider.AssertNotCalled(t, "CalculatePostage", mock.Anything, mock.Anything)
}

func TestRateService_GetShippingCost_CacheMissStoresQuote(t *testing.T) {
	shipmentRepo := new(MockShipmentRepository)
	provider := new(MockLabelProvider)
	cache := new(MockRateCache)
	svc := NewRateService(shipmentRepo, provider, cache)
	svc.SetCacheTTL(5 * time.Minute)
	ctx := context.Background()
	shipment := createTestShipment()

	shipmentRepo.On("FindByID", ctx, shipment.ID).Return(shipment, nil)
	cache.On("Get", ctx, "postage:Priority:8:90001:33137:US").Return(nil, false)
	provider.On("CalculatePostage", ctx, mock.AnythingOfType("*shipping.PostageRateRequest")).
		Return(decimal.NewFromFloat(7.33), nil)
	cache.On("Set", ctx, "postage:Priority:8:90001:33137:US", decimal.NewFromFloat(7.33), 5*time.Minute).Return()

	quote, err := svc.GetShippingCost(ctx, shipment.ID)

	assert.NoError(t, err)
	assert.False(t, quote.Cached)
	cache.AssertExpectations(t)
}

func TestRateService_GetShippingCost_WrongCarrier(t *testing.T) {
	shipmentRepo := new(MockShipmentRepository)
	provider := new(MockLabelProvider)
	svc := NewRateService(shipmentRepo, provider, nil)
	ctx := context.Background()
	shipment := createTestShipment()
	shipment.Carrier = &shipping.Carrier{Code: "flat", CostMethod: shipping.CostMethodFlat}

	shipmentRepo.On("FindByID", ctx, shipment.ID).Return(shipment, nil)

	_, err := svc.GetShippingCost(ctx, shipment.ID)

	assert.ErrorIs(t, err, shipping.ErrWrongCarrier)
	provider.AssertNotCalled(t, "CalculatePostage", mock.Anything, mock.Anything)
}

func TestRateService_GetShippingCost_ProviderError(t *testing.T) {
	shipmentRepo := new(MockShipmentRepository)
	provider := new(MockLabelProvider)
	svc := NewRateService(shipmentRepo, provider, nil)
	ctx := context.Background()
	shipment := createTestShipment()

	shipmentRepo.On("FindByID", ctx, shipment.ID).Return(shipment, nil)
	provider.On("CalculatePostage", ctx, mock.AnythingOfType("*shipping.PostageRateRequest")).
		Return(nil, errors.New("Invalid ZIP Code"))

	_, err := svc.GetShippingCost(ctx, shipment.ID)

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "POSTAGE_CALCULATION_FAILED", domainErr.Code)
	assert.Contains(t, domainErr.Message, "Invalid ZIP Code")
}

func TestRateService_GetShippingCost_ShipmentNotFound(t *testing.T) {
	shipmentRepo := new(MockShipmentRepository)
	svc := NewRateService(shipmentRepo, new(MockLabelProvider), nil)
	ctx := context.Background()

	shipmentRepo.On("FindByID", ctx, newTestShipmentID()).Return(nil, shared.ErrNotFound)

	_, err := svc.GetShippingCost(ctx, newTestShipmentID())

	assert.ErrorIs(t, err, shared.ErrNotFound)
}
