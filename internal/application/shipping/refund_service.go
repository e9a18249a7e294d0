package shipping

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/erp/shipping/internal/domain/shared"
	"github.com/erp/shipping/internal/domain/shipping"
)

// RefundService drives the refund flow: collect the tracking (PIC)
// numbers of the selected shipments, submit the refund request and,
// when the carrier approves, flag the shipments as refunded.
type RefundService struct {
	shipmentRepo shipping.ShipmentRepository
	provider     shipping.LabelProvider
}

// NewRefundService creates a new RefundService
func NewRefundService(shipmentRepo shipping.ShipmentRepository, provider shipping.LabelProvider) *RefundService {
	return &RefundService{
		shipmentRepo: shipmentRepo,
		provider:     provider,
	}
}

// RequestRefund submits a refund request for the given shipments.
func (s *RefundService) RequestRefund(ctx context.Context, shipmentIDs []uuid.UUID) (*RefundStatus, error) {
	if len(shipmentIDs) == 0 {
		return nil, shared.ErrInvalidInput
	}

	shipments, err := s.shipmentRepo.FindByIDs(ctx, shipmentIDs)
	if err != nil {
		return nil, err
	}
	if len(shipments) != len(shipmentIDs) {
		return nil, shared.ErrNotFound
	}

	picNumbers := make([]string, 0, len(shipments))
	for _, shipment := range shipments {
		if err := shipment.EnsureRefundable(); err != nil {
			return nil, err
		}
		picNumbers = append(picNumbers, shipment.TrackingNumber)
	}

	result, err := s.provider.RequestRefund(ctx, &shipping.RefundRequest{PICNumbers: picNumbers})
	if err != nil {
		return nil, shared.NewDomainError(
			"REFUND_REQUEST_FAILED",
			fmt.Sprintf("Error in requesting refund %q", err.Error()),
		)
	}

	if result.Approved {
		for _, shipment := range shipments {
			shipment.MarkRefunded()
			if err := s.shipmentRepo.Update(ctx, shipment); err != nil {
				return nil, err
			}
		}
	}

	return &RefundStatus{
		Approved: result.Approved,
		Message:  result.Message,
	}, nil
}
