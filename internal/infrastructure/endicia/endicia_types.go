package endicia

import "encoding/xml"

// The label server speaks XML documents posted as form fields. The
// request and response shapes below follow the Endicia Label Server
// API reference.

// ---------------------------------------------------------------------------
// Label request / response
// ---------------------------------------------------------------------------

// labelRequestXML is the GetPostageLabel request document.
type labelRequestXML struct {
	XMLName         xml.Name `xml:"LabelRequest"`
	Test            string   `xml:"Test,attr"`
	LabelType       string   `xml:"LabelType,attr"`
	LabelSize       string   `xml:"LabelSize,attr"`
	ImageFormat     string   `xml:"ImageFormat,attr"`
	ImageResolution string   `xml:"ImageResolution,attr"`
	ImageRotation   string   `xml:"ImageRotation,attr"`

	RequesterID string `xml:"RequesterID"`
	AccountID   string `xml:"AccountID"`
	PassPhrase  string `xml:"PassPhrase"`

	MailClass string `xml:"MailClass"`
	WeightOz  int64  `xml:"WeightOz"`

	PartnerCustomerID    string `xml:"PartnerCustomerID"`
	PartnerTransactionID string `xml:"PartnerTransactionID"`

	FromName       string `xml:"FromName"`
	FromCompany    string `xml:"FromCompany,omitempty"`
	ReturnAddress1 string `xml:"ReturnAddress1"`
	ReturnAddress2 string `xml:"ReturnAddress2,omitempty"`
	FromCity       string `xml:"FromCity"`
	FromState      string `xml:"FromState,omitempty"`
	FromPostalCode string `xml:"FromPostalCode"`
	FromPhone      string `xml:"FromPhone,omitempty"`

	ToName        string `xml:"ToName"`
	ToCompany     string `xml:"ToCompany,omitempty"`
	ToAddress1    string `xml:"ToAddress1"`
	ToAddress2    string `xml:"ToAddress2,omitempty"`
	ToCity        string `xml:"ToCity"`
	ToState       string `xml:"ToState,omitempty"`
	ToPostalCode  string `xml:"ToPostalCode"`
	ToCountryCode string `xml:"ToCountryCode,omitempty"`
	ToPhone       string `xml:"ToPhone,omitempty"`

	LabelSubtype       string `xml:"LabelSubtype,omitempty"`
	IncludePostage     string `xml:"IncludePostage,omitempty"`
	IntegratedFormType string `xml:"IntegratedFormType,omitempty"`

	CustomsInfo *customsInfoXML `xml:"CustomsInfo,omitempty"`

	Value          string `xml:"Value,omitempty"`
	Description    string `xml:"Description,omitempty"`
	CustomsCertify string `xml:"CustomsCertify,omitempty"`
	CustomsSigner  string `xml:"CustomsSigner,omitempty"`
}

type customsInfoXML struct {
	CustomsItems []customsItemXML `xml:"CustomsItems>CustomsItem"`
	ContentsType string           `xml:"ContentsType"`
}

type customsItemXML struct {
	Description string `xml:"Description"`
	Quantity    int64  `xml:"Quantity"`
	Weight      int64  `xml:"Weight"`
	Value       string `xml:"Value"`
}

// labelResponseXML is the GetPostageLabel response document.
// Single-part labels arrive in Base64LabelImage; multi-part
// international labels arrive as Label>Image parts.
type labelResponseXML struct {
	XMLName          xml.Name        `xml:"LabelRequestResponse"`
	Status           int             `xml:"Status"`
	ErrorMessage     string          `xml:"ErrorMessage"`
	TrackingNumber   string          `xml:"TrackingNumber"`
	FinalPostage     string          `xml:"FinalPostage"`
	Base64LabelImage string          `xml:"Base64LabelImage"`
	Label            []labelImageXML `xml:"Label>Image"`
}

type labelImageXML struct {
	PartNumber string `xml:"PartNumber,attr"`
	Data       string `xml:",chardata"`
}

// ---------------------------------------------------------------------------
// Postage rate request / response
// ---------------------------------------------------------------------------

type postageRateRequestXML struct {
	XMLName      xml.Name                 `xml:"PostageRateRequest"`
	RequesterID  string                   `xml:"RequesterID"`
	Intermediary certifiedIntermediaryXML `xml:"CertifiedIntermediary"`

	MailClass      string `xml:"MailClass"`
	WeightOz       int64  `xml:"WeightOz"`
	FromPostalCode string `xml:"FromPostalCode"`
	ToPostalCode   string `xml:"ToPostalCode"`
	ToCountryCode  string `xml:"ToCountryCode,omitempty"`
}

type certifiedIntermediaryXML struct {
	AccountID  string `xml:"AccountID"`
	PassPhrase string `xml:"PassPhrase"`
}

type postageRateResponseXML struct {
	XMLName      xml.Name        `xml:"PostageRateResponse"`
	Status       int             `xml:"Status"`
	ErrorMessage string          `xml:"ErrorMessage"`
	PostagePrice postagePriceXML `xml:"PostagePrice"`
}

type postagePriceXML struct {
	TotalAmount string `xml:"TotalAmount,attr"`
}

// ---------------------------------------------------------------------------
// Recredit (buy postage) request / response
// ---------------------------------------------------------------------------

type recreditRequestXML struct {
	XMLName      xml.Name                 `xml:"RecreditRequest"`
	RequesterID  string                   `xml:"RequesterID"`
	RequestID    string                   `xml:"RequestID"`
	Intermediary certifiedIntermediaryXML `xml:"CertifiedIntermediary"`

	RecreditAmount string `xml:"RecreditAmount"`
}

type recreditResponseXML struct {
	XMLName      xml.Name `xml:"RecreditRequestResponse"`
	Status       int      `xml:"Status"`
	ErrorMessage string   `xml:"ErrorMessage"`

	PostageBalance string `xml:"CertifiedIntermediary>PostageBalance"`
}

// ---------------------------------------------------------------------------
// Refund request / response (ELS services)
// ---------------------------------------------------------------------------

type refundRequestXML struct {
	XMLName    xml.Name             `xml:"RefundRequest"`
	AccountID  string               `xml:"AccountID"`
	PassPhrase string               `xml:"PassPhrase"`
	Test       string               `xml:"Test"`
	RefundList refundListRequestXML `xml:"RefundList"`
}

type refundListRequestXML struct {
	PICNumbers []string `xml:"PICNumber"`
}

type refundResponseXML struct {
	XMLName    xml.Name              `xml:"RefundResponse"`
	ErrorMsg   string                `xml:"ErrorMsg"`
	RefundList refundListResponseXML `xml:"RefundList"`
}

type refundListResponseXML struct {
	Entries []refundEntryXML `xml:"PICNumber"`
}

type refundEntryXML struct {
	PICNumber  string `xml:"PICNumber"`
	IsApproved string `xml:"IsApproved"`
	ErrorMsg   string `xml:"ErrorMsg"`
}

// Approved reports whether the carrier approved this refund entry.
func (e *refundEntryXML) Approved() bool {
	return e.IsApproved == "YES"
}

// ---------------------------------------------------------------------------
// SCAN form request / response (ELS services)
// ---------------------------------------------------------------------------

type scanRequestXML struct {
	XMLName    xml.Name           `xml:"SCANRequest"`
	AccountID  string             `xml:"AccountID"`
	PassPhrase string             `xml:"PassPhrase"`
	Test       string             `xml:"Test"`
	SCANList   scanListRequestXML `xml:"SCANList"`
}

type scanListRequestXML struct {
	PICNumbers []string `xml:"PICNumber"`
}

type scanResponseXML struct {
	XMLName      xml.Name `xml:"SCANResponse"`
	ErrorMsg     string   `xml:"ErrorMsg"`
	SubmissionID string   `xml:"SubmissionID"`
	SCANForm     string   `xml:"SCANForm"`
}
