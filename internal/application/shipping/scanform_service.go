package shipping

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/erp/shipping/internal/domain/shared"
	"github.com/erp/shipping/internal/domain/shipping"
)

const scanFormContentType = "image/png"

// SCANFormService drives the SCAN form flow: submit the tracking
// numbers of labelled shipments and store the returned manifest.
type SCANFormService struct {
	shipmentRepo   shipping.ShipmentRepository
	attachmentRepo shipping.AttachmentRepository
	provider       shipping.LabelProvider
	storage        ObjectStorageService
}

// NewSCANFormService creates a new SCANFormService
func NewSCANFormService(
	shipmentRepo shipping.ShipmentRepository,
	attachmentRepo shipping.AttachmentRepository,
	provider shipping.LabelProvider,
	storage ObjectStorageService,
) *SCANFormService {
	return &SCANFormService{
		shipmentRepo:   shipmentRepo,
		attachmentRepo: attachmentRepo,
		provider:       provider,
		storage:        storage,
	}
}

// MakeSCANForm submits the given shipments for a SCAN form. When the
// carrier accepts, the manifest image is stored against each shipment
// and the submission reference is returned; otherwise the carrier's
// error message is returned.
func (s *SCANFormService) MakeSCANForm(ctx context.Context, shipmentIDs []uuid.UUID) (*SCANFormStatus, error) {
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
		if !shipment.IsEndiciaShipping() {
			return nil, shipping.ErrWrongCarrier
		}
		if shipment.TrackingNumber == "" {
			return nil, shipping.ErrTrackingNumberMissing
		}
		picNumbers = append(picNumbers, shipment.TrackingNumber)
	}

	result, err := s.provider.SubmitSCANForm(ctx, &shipping.SCANFormRequest{PICNumbers: picNumbers})
	if err != nil {
		return nil, shared.NewDomainError(
			"SCAN_FORM_FAILED",
			fmt.Sprintf("Error in generating SCAN form %q", err.Error()),
		)
	}

	if len(result.Form) == 0 {
		return &SCANFormStatus{Response: result.ErrorMessage}, nil
	}

	status := &SCANFormStatus{
		SubmissionID: result.SubmissionID,
		Response:     "SCAN" + result.SubmissionID,
	}

	name := fmt.Sprintf("SCAN%s.png", result.SubmissionID)
	for _, shipment := range shipments {
		info, err := storeShipmentAttachment(ctx, s.storage, s.attachmentRepo, shipment.ID, name, scanFormContentType, result.Form)
		if err != nil {
			return nil, err
		}
		status.Attachments = append(status.Attachments, *info)
	}

	return status, nil
}
