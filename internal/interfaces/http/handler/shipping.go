package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appshipping "github.com/erp/shipping/internal/application/shipping"
	"github.com/erp/shipping/internal/domain/shipping"
	"github.com/erp/shipping/internal/infrastructure/logger"
	"github.com/erp/shipping/internal/interfaces/http/dto"
)

// ShippingHandler handles shipment and Endicia API endpoints
type ShippingHandler struct {
	BaseHandler
	shipmentService   *appshipping.ShipmentService
	labelService      *appshipping.LabelService
	rateService       *appshipping.RateService
	refundService     *appshipping.RefundService
	scanFormService   *appshipping.SCANFormService
	postageService    *appshipping.PostageService
	attachmentService *appshipping.AttachmentService
}

// NewShippingHandler creates a new ShippingHandler
func NewShippingHandler(
	shipmentService *appshipping.ShipmentService,
	labelService *appshipping.LabelService,
	rateService *appshipping.RateService,
	refundService *appshipping.RefundService,
	scanFormService *appshipping.SCANFormService,
	postageService *appshipping.PostageService,
	attachmentService *appshipping.AttachmentService,
) *ShippingHandler {
	return &ShippingHandler{
		shipmentService:   shipmentService,
		labelService:      labelService,
		rateService:       rateService,
		refundService:     refundService,
		scanFormService:   scanFormService,
		postageService:    postageService,
		attachmentService: attachmentService,
	}
}

// ListShipments handles GET /api/v1/shipments
func (h *ShippingHandler) ListShipments(c *gin.Context) {
	var req ListShipmentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	filter := shipping.ShipmentFilter{
		State:       shipping.ShipmentState(req.State),
		CarrierCode: req.CarrierCode,
		HasTracking: req.HasTracking,
		Limit:       req.PageSize,
		Offset:      (req.Page - 1) * req.PageSize,
	}

	shipments, total, err := h.shipmentService.ListShipments(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	responses := make([]ShipmentResponse, len(shipments))
	for i, s := range shipments {
		responses[i] = toShipmentResponse(s)
	}
	h.SuccessWithMeta(c, responses, total, req.Page, req.PageSize)
}

// GetShipment handles GET /api/v1/shipments/:id
func (h *ShippingHandler) GetShipment(c *gin.Context) {
	id, ok := h.parseShipmentID(c)
	if !ok {
		return
	}

	shipment, err := h.shipmentService.GetShipment(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, toShipmentResponse(shipment))
}

// UpdateShippingOptions handles PATCH /api/v1/shipments/:id/shipping-options
func (h *ShippingHandler) UpdateShippingOptions(c *gin.Context) {
	id, ok := h.parseShipmentID(c)
	if !ok {
		return
	}

	var req UpdateShippingOptionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := appshipping.UpdateShippingOptionsInput{
		CarrierCode:    req.CarrierCode,
		MailClassValue: req.MailClassValue,
		IncludePostage: req.IncludePostage,
	}
	if req.LabelSubtype != nil {
		subtype := shipping.LabelSubtype(*req.LabelSubtype)
		input.LabelSubtype = &subtype
	}
	if req.IntegratedFormType != nil {
		formType := shipping.IntegratedFormType(*req.IntegratedFormType)
		input.IntegratedFormType = &formType
	}
	if req.PackageContentType != nil {
		contentType := shipping.PackageContentType(*req.PackageContentType)
		input.PackageContentType = &contentType
	}

	shipment, err := h.shipmentService.UpdateShippingOptions(c.Request.Context(), id, input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, toShipmentResponse(shipment))
}

// GenerateLabel handles POST /api/v1/shipments/:id/label
func (h *ShippingHandler) GenerateLabel(c *gin.Context) {
	id, ok := h.parseShipmentID(c)
	if !ok {
		return
	}

	result, err := h.labelService.GenerateLabel(c.Request.Context(), id, getUsername(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	logger.L(c.Request.Context()).Info("Shipping label generated",
		zap.String("shipment_id", result.ShipmentID.String()),
		zap.String("tracking_number", result.TrackingNumber),
		zap.String("cost", result.Cost.String()),
	)

	h.Created(c, LabelResponse{
		ShipmentID:     result.ShipmentID.String(),
		TrackingNumber: result.TrackingNumber,
		Cost:           result.Cost.String(),
		Attachments:    toAttachmentResponses(result.Attachments),
	})
}

// GetShippingCost handles GET /api/v1/shipments/:id/rate
func (h *ShippingHandler) GetShippingCost(c *gin.Context) {
	id, ok := h.parseShipmentID(c)
	if !ok {
		return
	}

	quote, err := h.rateService.GetShippingCost(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, RateQuoteResponse{
		ShipmentID: quote.ShipmentID.String(),
		Amount:     quote.Amount.String(),
		Currency:   quote.Currency,
		Cached:     quote.Cached,
		QuotedAt:   quote.QuotedAt,
	})
}

// RequestRefund handles POST /api/v1/shipments/refund
func (h *ShippingHandler) RequestRefund(c *gin.Context) {
	var req RefundShipmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	ids, ok := h.parseShipmentIDs(c, req.ShipmentIDs)
	if !ok {
		return
	}

	status, err := h.refundService.RequestRefund(c.Request.Context(), ids)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	logger.L(c.Request.Context()).Info("Refund request submitted",
		zap.Int("shipments", len(ids)),
		zap.Bool("approved", status.Approved),
	)

	h.Success(c, RefundResponse{
		Approved: status.Approved,
		Message:  status.Message,
	})
}

// MakeSCANForm handles POST /api/v1/shipments/scan-form
func (h *ShippingHandler) MakeSCANForm(c *gin.Context) {
	var req SCANFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	ids, ok := h.parseShipmentIDs(c, req.ShipmentIDs)
	if !ok {
		return
	}

	status, err := h.scanFormService.MakeSCANForm(c.Request.Context(), ids)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, SCANFormResponse{
		SubmissionID: status.SubmissionID,
		Response:     status.Response,
		Attachments:  toAttachmentResponses(status.Attachments),
	})
}

// BuyPostage handles POST /api/v1/postage/buy
func (h *ShippingHandler) BuyPostage(c *gin.Context) {
	var req BuyPostageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		h.BadRequest(c, "Invalid amount: "+req.Amount)
		return
	}

	status, err := h.postageService.BuyPostage(c.Request.Context(), amount, getUsername(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	logger.L(c.Request.Context()).Info("Postage purchase requested",
		zap.String("amount", status.Amount.String()),
		zap.String("balance", status.Balance.String()),
	)

	h.Success(c, BuyPostageResponse{
		Amount:   status.Amount.String(),
		Response: status.Response,
		Balance:  status.Balance.String(),
	})
}

// ListAttachments handles GET /api/v1/shipments/:id/attachments
func (h *ShippingHandler) ListAttachments(c *gin.Context) {
	id, ok := h.parseShipmentID(c)
	if !ok {
		return
	}

	attachments, err := h.attachmentService.ListAttachments(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	responses := make([]AttachmentResponse, len(attachments))
	for i, att := range attachments {
		responses[i] = toDomainAttachmentResponse(att.Attachment, att.DownloadURL)
	}
	h.Success(c, responses)
}

// ListCarriers handles GET /api/v1/carriers
func (h *ShippingHandler) ListCarriers(c *gin.Context) {
	carriers, err := h.shipmentService.ListCarriers(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	responses := make([]*CarrierResponse, len(carriers))
	for i, carrier := range carriers {
		responses[i] = toCarrierResponse(carrier)
	}
	h.Success(c, responses)
}

// ListMailClasses handles GET /api/v1/mail-classes
func (h *ShippingHandler) ListMailClasses(c *gin.Context) {
	mailClasses, err := h.shipmentService.ListMailClasses(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	responses := make([]*MailClassResponse, len(mailClasses))
	for i, mc := range mailClasses {
		responses[i] = toMailClassResponse(mc)
	}
	h.Success(c, responses)
}

// parseShipmentID binds and parses the :id path parameter
func (h *ShippingHandler) parseShipmentID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid shipment ID")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid shipment ID")
		return uuid.Nil, false
	}
	return id, true
}

// parseShipmentIDs parses a list of shipment ID strings
func (h *ShippingHandler) parseShipmentIDs(c *gin.Context, raw []string) ([]uuid.UUID, bool) {
	ids := make([]uuid.UUID, len(raw))
	for i, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			h.BadRequest(c, "Invalid shipment ID: "+s)
			return nil, false
		}
		ids[i] = id
	}
	return ids, true
}
