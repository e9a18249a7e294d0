package shipping

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/erp/shipping/internal/domain/shared"
	"github.com/erp/shipping/internal/domain/shipping"
)

func TestPostageService_BuyPostage_Success(t *testing.T) {
	provider := new(MockLabelProvider)
	svc := NewPostageService(provider)
	ctx := context.Background()

	provider.On("BuyPostage", ctx, &shipping.BuyPostageRequest{
		RequestID: "john.doe",
		Amount:    decimal.NewFromInt(100),
	}).Return(&shipping.BuyPostageResult{
		Status:         "Success",
		PostageBalance: decimal.NewFromFloat(312.45),
	}, nil)

	status, err := svc.BuyPostage(ctx, decimal.NewFromInt(100), "john.doe")

	assert.NoError(t, err)
	assert.Equal(t, "Success", status.Response)
	assert.True(t, status.Amount.Equal(decimal.NewFromInt(100)))
	assert.True(t, status.Balance.Equal(decimal.NewFromFloat(312.45)))
	provider.AssertExpectations(t)
}

func TestPostageService_BuyPostage_CarrierRejects(t *testing.T) {
	provider := new(MockLabelProvider)
	svc := NewPostageService(provider)
	ctx := context.Background()

	provider.On("BuyPostage", ctx, mock.AnythingOfType("*shipping.BuyPostageRequest")).
		Return(&shipping.BuyPostageResult{
			Status:       "Failed",
			ErrorMessage: "Payment method declined",
		}, nil)

	status, err := svc.BuyPostage(ctx, decimal.NewFromInt(100), "john.doe")

	assert.NoError(t, err)
	assert.Equal(t, "Payment method declined", status.Response)
}

func TestPostageService_BuyPostage_NonPositiveAmount(t *testing.T) {
	svc := NewPostageService(new(MockLabelProvider))
	ctx := context.Background()

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		_, err := svc.BuyPostage(ctx, amount, "john.doe")

		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_AMOUNT", domainErr.Code)
	}
}

func TestPostageService_BuyPostage_MissingRequester(t *testing.T) {
	svc := NewPostageService(new(MockLabelProvider))

	_, err := svc.BuyPostage(context.Background(), decimal.NewFromInt(100), "")

	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestPostageService_BuyPostage_ProviderError(t *testing.T) {
	provider := new(MockLabelProvider)
	svc := NewPostageService(provider)

	provider.On("BuyPostage", mock.Anything, mock.AnythingOfType("*shipping.BuyPostageRequest")).
		Return(nil, errors.New("connection refused"))

	_, err := svc.BuyPostage(context.Background(), decimal.NewFromInt(100), "john.doe")

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "POSTAGE_PURCHASE_FAILED", domainErr.Code)
}
