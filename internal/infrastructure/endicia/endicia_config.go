package endicia

import (
	"errors"
)

// EndiciaConfig holds credentials and endpoints for the Endicia
// (USPS) label server API.
type EndiciaConfig struct {
	// AccountID is the Endicia account number
	AccountID string
	// RequesterID identifies the integration partner
	RequesterID string
	// PassPhrase is the account pass phrase
	PassPhrase string
	// LabelServerURL is the base URL of the Endicia label server
	LabelServerURL string
	// ELSServerURL is the base URL of the ELS service used for
	// refunds and SCAN form submissions
	ELSServerURL string
	// IsTest routes requests to the sandbox and marks them as test
	IsTest bool
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

const (
	// ProductionLabelServerURL is the production label server endpoint
	ProductionLabelServerURL = "https://labelserver.endicia.com/LabelService/EwsLabelService.asmx"
	// TestLabelServerURL is the sandbox label server endpoint
	TestLabelServerURL = "https://elstestserver.endicia.com/LabelService/EwsLabelService.asmx"
	// ELSServicesURL is the ELS services endpoint (refunds, SCAN forms)
	ELSServicesURL = "https://www.endicia.com/ELS/ELSServices.cfc"
)

// Errors for Endicia configuration
var (
	ErrConfigMissingAccountID   = errors.New("endicia: account ID is required")
	ErrConfigMissingRequesterID = errors.New("endicia: requester ID is required")
	ErrConfigMissingPassPhrase  = errors.New("endicia: pass phrase is required")
)

// NewEndiciaConfig creates a production configuration with defaults.
func NewEndiciaConfig(accountID, requesterID, passPhrase string) *EndiciaConfig {
	return &EndiciaConfig{
		AccountID:      accountID,
		RequesterID:    requesterID,
		PassPhrase:     passPhrase,
		LabelServerURL: ProductionLabelServerURL,
		ELSServerURL:   ELSServicesURL,
		IsTest:         false,
		TimeoutSeconds: 30,
	}
}

// NewTestEndiciaConfig creates a sandbox configuration with defaults.
func NewTestEndiciaConfig(accountID, requesterID, passPhrase string) *EndiciaConfig {
	return &EndiciaConfig{
		AccountID:      accountID,
		RequesterID:    requesterID,
		PassPhrase:     passPhrase,
		LabelServerURL: TestLabelServerURL,
		ELSServerURL:   ELSServicesURL,
		IsTest:         true,
		TimeoutSeconds: 30,
	}
}

// Validate validates the configuration and fills endpoint defaults.
func (c *EndiciaConfig) Validate() error {
	if c.AccountID == "" {
		return ErrConfigMissingAccountID
	}
	if c.RequesterID == "" {
		return ErrConfigMissingRequesterID
	}
	if c.PassPhrase == "" {
		return ErrConfigMissingPassPhrase
	}
	if c.LabelServerURL == "" {
		if c.IsTest {
			c.LabelServerURL = TestLabelServerURL
		} else {
			c.LabelServerURL = ProductionLabelServerURL
		}
	}
	if c.ELSServerURL == "" {
		c.ELSServerURL = ELSServicesURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}

// TestFlag renders the test marker the label server expects.
func (c *EndiciaConfig) TestFlag() string {
	if c.IsTest {
		return "YES"
	}
	return "NO"
}

// ELSTestFlag renders the test marker the ELS services expect.
func (c *EndiciaConfig) ELSTestFlag() string {
	if c.IsTest {
		return "Y"
	}
	return "N"
}
