// Package endicia implements the shipping.LabelProvider port against
// the Endicia (USPS) label server API.
package endicia

import (
	"context"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/erp/shipping/internal/domain/shipping"
)

// maxResponseSize is the maximum allowed response size from the label
// server (10MB); label images are large but bounded.
const maxResponseSize = 10 * 1024 * 1024

// Label server methods
const (
	methodGetPostageLabel      = "GetPostageLabelXML"
	methodCalculatePostageRate = "CalculatePostageRateXML"
	methodBuyPostage           = "BuyPostageXML"
)

// ELS service methods
const (
	elsMethodRefundRequest = "RefundRequest"
	elsMethodSCANRequest   = "SCANRequest"
)

// EndiciaAdapter implements shipping.LabelProvider against the Endicia
// label server and ELS services.
type EndiciaAdapter struct {
	config     *EndiciaConfig
	httpClient *http.Client
}

// NewEndiciaAdapter creates a new adapter with the given configuration.
func NewEndiciaAdapter(config *EndiciaConfig) (*EndiciaAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &EndiciaAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// ---------------------------------------------------------------------------
// Label purchase
// ---------------------------------------------------------------------------

// GetShippingLabel purchases a postage label and returns the tracking
// number, final postage and the label image parts.
func (a *EndiciaAdapter) GetShippingLabel(ctx context.Context, req *shipping.LabelRequest) (*shipping.LabelResult, error) {
	doc := &labelRequestXML{
		Test:            a.config.TestFlag(),
		LabelType:       req.LabelType,
		LabelSize:       req.LabelSize,
		ImageFormat:     req.ImageFormat,
		ImageResolution: req.ImageResolution,
		ImageRotation:   req.ImageRotation,

		RequesterID: a.config.RequesterID,
		AccountID:   a.config.AccountID,
		PassPhrase:  a.config.PassPhrase,

		MailClass: req.MailClass,
		WeightOz:  req.WeightOz,

		PartnerCustomerID:    req.PartnerCustomerID,
		PartnerTransactionID: req.PartnerTransactionID,

		FromName:       req.From.Name(),
		FromCompany:    req.From.Company(),
		ReturnAddress1: req.From.Street(),
		ReturnAddress2: req.From.Street2(),
		FromCity:       req.From.City(),
		FromState:      req.From.State(),
		FromPostalCode: req.From.PostalCode(),
		FromPhone:      req.From.Phone(),

		ToName:        req.To.Name(),
		ToCompany:     req.To.Company(),
		ToAddress1:    req.To.Street(),
		ToAddress2:    req.To.Street2(),
		ToCity:        req.To.City(),
		ToState:       req.To.State(),
		ToPostalCode:  req.To.PostalCode(),
		ToCountryCode: req.To.CountryCode(),
		ToPhone:       req.To.Phone(),

		LabelSubtype:   string(req.LabelSubtype),
		IncludePostage: boolToUpper(req.IncludePostage),
	}

	// Integrated form type is only meaningful for integrated labels
	if req.LabelSubtype != shipping.LabelSubtypeNone {
		doc.IntegratedFormType = string(req.IntegratedFormType)
	}

	if req.Customs != nil {
		items := make([]customsItemXML, len(req.Customs.Items))
		for i, item := range req.Customs.Items {
			items[i] = customsItemXML{
				Description: item.Description,
				Quantity:    item.Quantity,
				Weight:      item.WeightOz,
				Value:       item.Value.StringFixed(2),
			}
		}
		doc.CustomsInfo = &customsInfoXML{
			CustomsItems: items,
			ContentsType: string(req.Customs.ContentsType),
		}
		doc.Value = req.Customs.Value.StringFixed(2)
		doc.Description = req.Customs.Description
		doc.CustomsCertify = boolToUpper(req.Customs.Certify)
		doc.CustomsSigner = req.Customs.Signer
	}

	respBody, err := a.doLabelServerRequest(ctx, methodGetPostageLabel, "labelRequestXML", doc)
	if err != nil {
		return nil, err
	}

	var resp labelResponseXML
	if err := xml.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse label response: %v", shipping.ErrProviderInvalidResponse, err)
	}

	if resp.Status != 0 {
		return nil, fmt.Errorf("%w: %s", shipping.ErrProviderRequestFailed, resp.ErrorMessage)
	}

	postage, err := decimal.NewFromString(resp.FinalPostage)
	if err != nil {
		return nil, fmt.Errorf("%w: bad final postage %q", shipping.ErrProviderInvalidResponse, resp.FinalPostage)
	}

	result := &shipping.LabelResult{
		TrackingNumber: resp.TrackingNumber,
		FinalPostage:   postage,
	}

	images, err := decodeLabelImages(&resp)
	if err != nil {
		return nil, err
	}
	result.Images = images

	return result, nil
}

// decodeLabelImages collects the base64 image parts of a label
// response. Domestic labels carry a single Base64LabelImage;
// international labels carry numbered parts.
func decodeLabelImages(resp *labelResponseXML) ([]shipping.LabelImage, error) {
	var images []shipping.LabelImage

	if img := strings.TrimSpace(resp.Base64LabelImage); img != "" {
		data, err := base64.StdEncoding.DecodeString(img)
		if err != nil {
			return nil, fmt.Errorf("%w: bad label image encoding", shipping.ErrProviderInvalidResponse)
		}
		images = append(images, shipping.LabelImage{Part: "1", Data: data})
		return images, nil
	}

	for _, part := range resp.Label {
		data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(part.Data))
		if err != nil {
			return nil, fmt.Errorf("%w: bad label image encoding in part %s", shipping.ErrProviderInvalidResponse, part.PartNumber)
		}
		images = append(images, shipping.LabelImage{Part: part.PartNumber, Data: data})
	}
	return images, nil
}

// ---------------------------------------------------------------------------
// Postage rate
// ---------------------------------------------------------------------------

// CalculatePostage returns the total postage for a prospective package.
func (a *EndiciaAdapter) CalculatePostage(ctx context.Context, req *shipping.PostageRateRequest) (decimal.Decimal, error) {
	doc := &postageRateRequestXML{
		RequesterID: a.config.RequesterID,
		Intermediary: certifiedIntermediaryXML{
			AccountID:  a.config.AccountID,
			PassPhrase: a.config.PassPhrase,
		},
		MailClass:      req.MailClass,
		WeightOz:       req.WeightOz,
		FromPostalCode: req.FromPostalCode,
		ToPostalCode:   req.ToPostalCode,
		ToCountryCode:  req.ToCountryCode,
	}

	respBody, err := a.doLabelServerRequest(ctx, methodCalculatePostageRate, "postageRateRequestXML", doc)
	if err != nil {
		return decimal.Zero, err
	}

	var resp postageRateResponseXML
	if err := xml.Unmarshal(respBody, &resp); err != nil {
		return decimal.Zero, fmt.Errorf("%w: failed to parse rate response: %v", shipping.ErrProviderInvalidResponse, err)
	}

	if resp.Status != 0 {
		return decimal.Zero, fmt.Errorf("%w: %s", shipping.ErrProviderRequestFailed, resp.ErrorMessage)
	}

	amount, err := decimal.NewFromString(resp.PostagePrice.TotalAmount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: bad postage amount %q", shipping.ErrProviderInvalidResponse, resp.PostagePrice.TotalAmount)
	}
	return amount, nil
}

// ---------------------------------------------------------------------------
// Refunds
// ---------------------------------------------------------------------------

// RequestRefund asks the carrier to refund the given PIC numbers.
// The refund is reported approved only when every entry is approved.
func (a *EndiciaAdapter) RequestRefund(ctx context.Context, req *shipping.RefundRequest) (*shipping.RefundResult, error) {
	doc := &refundRequestXML{
		AccountID:  a.config.AccountID,
		PassPhrase: a.config.PassPhrase,
		Test:       a.config.ELSTestFlag(),
		RefundList: refundListRequestXML{PICNumbers: req.PICNumbers},
	}

	respBody, err := a.doELSRequest(ctx, elsMethodRefundRequest, doc)
	if err != nil {
		return nil, err
	}

	var resp refundResponseXML
	if err := xml.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse refund response: %v", shipping.ErrProviderInvalidResponse, err)
	}

	if len(resp.RefundList.Entries) == 0 {
		if resp.ErrorMsg != "" {
			return &shipping.RefundResult{Approved: false, Message: resp.ErrorMsg}, nil
		}
		return nil, fmt.Errorf("%w: refund response carries no entries", shipping.ErrProviderInvalidResponse)
	}

	result := &shipping.RefundResult{Approved: true}
	for _, entry := range resp.RefundList.Entries {
		if !entry.Approved() {
			result.Approved = false
		}
		if result.Message == "" && entry.ErrorMsg != "" {
			result.Message = entry.ErrorMsg
		}
	}
	return result, nil
}

// ---------------------------------------------------------------------------
// SCAN forms
// ---------------------------------------------------------------------------

// SubmitSCANForm submits the given PIC numbers for a SCAN form
// manifest and returns the form image when the carrier accepts.
func (a *EndiciaAdapter) SubmitSCANForm(ctx context.Context, req *shipping.SCANFormRequest) (*shipping.SCANFormResult, error) {
	doc := &scanRequestXML{
		AccountID:  a.config.AccountID,
		PassPhrase: a.config.PassPhrase,
		Test:       a.config.ELSTestFlag(),
		SCANList:   scanListRequestXML{PICNumbers: req.PICNumbers},
	}

	respBody, err := a.doELSRequest(ctx, elsMethodSCANRequest, doc)
	if err != nil {
		return nil, err
	}

	var resp scanResponseXML
	if err := xml.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse SCAN response: %v", shipping.ErrProviderInvalidResponse, err)
	}

	result := &shipping.SCANFormResult{
		SubmissionID: resp.SubmissionID,
		ErrorMessage: resp.ErrorMsg,
	}

	if form := strings.TrimSpace(resp.SCANForm); form != "" {
		data, err := base64.StdEncoding.DecodeString(form)
		if err != nil {
			return nil, fmt.Errorf("%w: bad SCAN form encoding", shipping.ErrProviderInvalidResponse)
		}
		result.Form = data
	}

	return result, nil
}

// ---------------------------------------------------------------------------
// Postage purchase
// ---------------------------------------------------------------------------

// BuyPostage recredits the account postage balance.
func (a *EndiciaAdapter) BuyPostage(ctx context.Context, req *shipping.BuyPostageRequest) (*shipping.BuyPostageResult, error) {
	doc := &recreditRequestXML{
		RequesterID: a.config.RequesterID,
		RequestID:   req.RequestID,
		Intermediary: certifiedIntermediaryXML{
			AccountID:  a.config.AccountID,
			PassPhrase: a.config.PassPhrase,
		},
		RecreditAmount: req.Amount.StringFixed(2),
	}

	respBody, err := a.doLabelServerRequest(ctx, methodBuyPostage, "recreditRequestXML", doc)
	if err != nil {
		return nil, err
	}

	var resp recreditResponseXML
	if err := xml.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse recredit response: %v", shipping.ErrProviderInvalidResponse, err)
	}

	result := &shipping.BuyPostageResult{}
	if resp.Status != 0 {
		result.Status = "Failed"
		result.ErrorMessage = resp.ErrorMessage
		return result, nil
	}

	result.Status = "Success"
	if resp.PostageBalance != "" {
		if balance, err := decimal.NewFromString(resp.PostageBalance); err == nil {
			result.PostageBalance = balance
		}
	}
	return result, nil
}

// ---------------------------------------------------------------------------
// Internal helpers
// ---------------------------------------------------------------------------

// doLabelServerRequest posts an XML document as a form field to a
// label server method and returns the raw response body.
func (a *EndiciaAdapter) doLabelServerRequest(ctx context.Context, method, field string, doc any) ([]byte, error) {
	endpoint := a.config.LabelServerURL + "/" + method
	payload, err := xml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("endicia: failed to encode request: %w", err)
	}

	values := url.Values{}
	values.Set(field, xml.Header+string(payload))

	return a.postForm(ctx, endpoint, values)
}

// doELSRequest posts an XML document to the ELS services endpoint.
func (a *EndiciaAdapter) doELSRequest(ctx context.Context, method string, doc any) ([]byte, error) {
	payload, err := xml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("endicia: failed to encode request: %w", err)
	}

	values := url.Values{}
	values.Set("method", method)
	values.Set("XMLInput", xml.Header+string(payload))

	return a.postForm(ctx, a.config.ELSServerURL, values)
}

func (a *EndiciaAdapter) postForm(ctx context.Context, endpoint string, values url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return nil, fmt.Errorf("endicia: failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shipping.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("endicia: failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("%w: HTTP %d", shipping.ErrProviderAuthFailed, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", shipping.ErrProviderRequestFailed, resp.StatusCode)
	}

	return body, nil
}

func boolToUpper(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

// Ensure EndiciaAdapter implements the LabelProvider port
var _ shipping.LabelProvider = (*EndiciaAdapter)(nil)
