package shipping

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/erp/shipping/internal/domain/shared"
	"github.com/erp/shipping/internal/domain/shipping"
)

// PostageService drives the postage purchase flow.
type PostageService struct {
	provider shipping.LabelProvider
}

// NewPostageService creates a new PostageService
func NewPostageService(provider shipping.LabelProvider) *PostageService {
	return &PostageService{provider: provider}
}

// BuyPostage recredits the carrier account with the given amount in
// USD. requestedBy identifies the purchasing user towards the carrier.
func (s *PostageService) BuyPostage(ctx context.Context, amount decimal.Decimal, requestedBy string) (*BuyPostageStatus, error) {
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Postage amount must be positive")
	}
	if requestedBy == "" {
		return nil, shared.ErrInvalidInput
	}

	result, err := s.provider.BuyPostage(ctx, &shipping.BuyPostageRequest{
		RequestID: requestedBy,
		Amount:    amount,
	})
	if err != nil {
		return nil, shared.NewDomainError(
			"POSTAGE_PURCHASE_FAILED",
			fmt.Sprintf("Error in buying postage %q", err.Error()),
		)
	}

	status := &BuyPostageStatus{
		Amount:  amount,
		Balance: result.PostageBalance,
	}
	if result.Success() {
		status.Response = "Success"
	} else {
		status.Response = result.ErrorMessage
	}
	return status, nil
}
