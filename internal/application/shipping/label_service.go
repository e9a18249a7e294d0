package shipping

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/erp/shipping/internal/domain/shared"
	"github.com/erp/shipping/internal/domain/shipping"
)

// Label rendering defaults sent with every label request.
const (
	labelImageFormat     = "PNG"
	labelSize            = "6x4"
	labelImageResolution = "203"
	labelImageRotation   = "Rotate270"

	labelContentType = "image/png"
)

// LabelService drives the label generation flow: validate the
// shipment, assemble the carrier request, persist the returned
// tracking number and cost, and store the label images.
type LabelService struct {
	shipmentRepo   shipping.ShipmentRepository
	attachmentRepo shipping.AttachmentRepository
	provider       shipping.LabelProvider
	storage        ObjectStorageService
}

// NewLabelService creates a new LabelService
func NewLabelService(
	shipmentRepo shipping.ShipmentRepository,
	attachmentRepo shipping.AttachmentRepository,
	provider shipping.LabelProvider,
	storage ObjectStorageService,
) *LabelService {
	return &LabelService{
		shipmentRepo:   shipmentRepo,
		attachmentRepo: attachmentRepo,
		provider:       provider,
		storage:        storage,
	}
}

// GenerateLabel purchases a shipping label for the shipment and
// returns the tracking number. signer is the name of the requesting
// user; it signs the customs declaration.
func (s *LabelService) GenerateLabel(ctx context.Context, shipmentID uuid.UUID, signer string) (*GenerateLabelResult, error) {
	shipment, err := s.shipmentRepo.FindByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	if err := shipment.EnsureLabelable(); err != nil {
		return nil, err
	}

	req, err := s.buildLabelRequest(shipment, signer)
	if err != nil {
		return nil, err
	}

	result, err := s.provider.GetShippingLabel(ctx, req)
	if err != nil {
		return nil, shared.NewDomainError(
			"LABEL_GENERATION_FAILED",
			fmt.Sprintf("Error in generating label %q", err.Error()),
		)
	}

	shipment.AssignLabel(result.TrackingNumber, result.FinalPostage)
	if err := s.shipmentRepo.Update(ctx, shipment); err != nil {
		return nil, err
	}

	out := &GenerateLabelResult{
		ShipmentID:     shipment.ID,
		TrackingNumber: result.TrackingNumber,
		Cost:           result.FinalPostage,
	}

	for _, image := range result.Images {
		name := fmt.Sprintf("%s_%s_USPS-Endicia.png", result.TrackingNumber, image.Part)
		info, err := storeShipmentAttachment(ctx, s.storage, s.attachmentRepo, shipment.ID, name, labelContentType, image.Data)
		if err != nil {
			return nil, err
		}
		out.Attachments = append(out.Attachments, *info)
	}

	return out, nil
}

// buildLabelRequest maps the shipment onto the carrier request schema.
func (s *LabelService) buildLabelRequest(shipment *shipping.Shipment, signer string) (*shipping.LabelRequest, error) {
	weightOz, err := shipment.WeightOz()
	if err != nil {
		return nil, err
	}

	req := &shipping.LabelRequest{
		LabelType:       shipment.MailClass.LabelType(),
		ImageFormat:     labelImageFormat,
		LabelSize:       labelSize,
		ImageResolution: labelImageResolution,
		ImageRotation:   labelImageRotation,

		MailClass: shipment.MailClass.Value,
		WeightOz:  weightOz,

		PartnerCustomerID:    shipment.CustomerID.String(),
		PartnerTransactionID: shipment.ID.String(),

		From: shipment.WarehouseAddress,
		To:   shipment.DeliveryAddress,

		LabelSubtype:       shipment.LabelSubtype,
		IncludePostage:     shipment.IncludePostage,
		IntegratedFormType: shipment.IntegratedFormType,

		Customs: buildCustomsInfo(shipment, signer),
	}

	return req, nil
}

// buildCustomsInfo assembles the customs declaration from the
// shipment's moves. Descriptions are truncated to the 50 characters
// the customs form accepts; declared totals come from cost prices,
// item values from list prices.
func buildCustomsInfo(shipment *shipping.Shipment, signer string) *shipping.CustomsInfo {
	items := make([]shipping.CustomsItem, 0, len(shipment.Moves))
	for i := range shipment.Moves {
		move := &shipment.Moves[i]
		weightOz, err := move.WeightOz()
		if err != nil {
			// EnsureLabelable ran before WeightOz on the shipment;
			// an erroring move was already reported there
			weightOz = 0
		}
		items = append(items, shipping.CustomsItem{
			Description: truncate(move.ProductName, 50),
			Quantity:    move.CustomsQuantity(),
			WeightOz:    weightOz,
			Value:       move.ListPrice,
		})
	}

	return &shipping.CustomsInfo{
		Items:        items,
		ContentsType: shipment.PackageContentType,
		Value:        shipment.CustomsValue(),
		Description:  shipment.CustomsDescription(),
		Certify:      true,
		Signer:       signer,
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
