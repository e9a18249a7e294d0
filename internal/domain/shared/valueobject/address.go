package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Address is a value object representing a postal address as used on
// shipping labels. It is immutable - all operations return new Address
// instances. Name, street, city and country code are required; state,
// second street line, postal code and phone are optional.
type Address struct {
	name        string
	company     string
	street      string
	street2     string
	city        string
	state       string
	postalCode  string
	countryCode string
	phone       string
}

// AddressOption is a functional option for configuring Address
type AddressOption func(*Address)

// WithCompany sets the company name for the address
func WithCompany(company string) AddressOption {
	return func(a *Address) {
		a.company = strings.TrimSpace(company)
	}
}

// WithStreet2 sets the second street line for the address
func WithStreet2(street2 string) AddressOption {
	return func(a *Address) {
		a.street2 = strings.TrimSpace(street2)
	}
}

// WithState sets the state/province for the address
func WithState(state string) AddressOption {
	return func(a *Address) {
		a.state = strings.ToUpper(strings.TrimSpace(state))
	}
}

// WithPostalCode sets the postal code for the address
func WithPostalCode(postalCode string) AddressOption {
	return func(a *Address) {
		a.postalCode = strings.TrimSpace(postalCode)
	}
}

// WithPhone sets the contact phone for the address
func WithPhone(phone string) AddressOption {
	return func(a *Address) {
		a.phone = strings.TrimSpace(phone)
	}
}

// NewAddress creates a new Address with the required fields.
// The country code is normalized to upper case and must be a two-letter
// ISO 3166-1 code.
func NewAddress(name, street, city, countryCode string, opts ...AddressOption) (Address, error) {
	name = strings.TrimSpace(name)
	street = strings.TrimSpace(street)
	city = strings.TrimSpace(city)
	countryCode = strings.ToUpper(strings.TrimSpace(countryCode))

	if name == "" {
		return Address{}, fmt.Errorf("address name is required")
	}
	if len(name) > 100 {
		return Address{}, fmt.Errorf("address name cannot exceed 100 characters")
	}
	if street == "" {
		return Address{}, fmt.Errorf("address street is required")
	}
	if len(street) > 200 {
		return Address{}, fmt.Errorf("address street cannot exceed 200 characters")
	}
	if city == "" {
		return Address{}, fmt.Errorf("address city is required")
	}
	if len(city) > 100 {
		return Address{}, fmt.Errorf("address city cannot exceed 100 characters")
	}
	if len(countryCode) != 2 {
		return Address{}, fmt.Errorf("country code must be a two-letter ISO code, got %q", countryCode)
	}

	addr := Address{
		name:        name,
		street:      street,
		city:        city,
		countryCode: countryCode,
	}

	for _, opt := range opts {
		opt(&addr)
	}

	if len(addr.postalCode) > 20 {
		return Address{}, fmt.Errorf("postal code cannot exceed 20 characters")
	}

	return addr, nil
}

// MustNewAddress creates a new Address, panics on error
func MustNewAddress(name, street, city, countryCode string, opts ...AddressOption) Address {
	addr, err := NewAddress(name, street, city, countryCode, opts...)
	if err != nil {
		panic(err)
	}
	return addr
}

// EmptyAddress returns an empty address (for optional address fields)
func EmptyAddress() Address {
	return Address{}
}

// Name returns the addressee name
func (a Address) Name() string {
	return a.name
}

// Company returns the company name
func (a Address) Company() string {
	return a.company
}

// Street returns the first street line
func (a Address) Street() string {
	return a.street
}

// Street2 returns the second street line
func (a Address) Street2() string {
	return a.street2
}

// City returns the city
func (a Address) City() string {
	return a.city
}

// State returns the state/province
func (a Address) State() string {
	return a.state
}

// PostalCode returns the postal code
func (a Address) PostalCode() string {
	return a.postalCode
}

// Zip5 returns the first five characters of the postal code,
// as expected by USPS rate endpoints.
func (a Address) Zip5() string {
	if len(a.postalCode) > 5 {
		return a.postalCode[:5]
	}
	return a.postalCode
}

// CountryCode returns the two-letter ISO country code
func (a Address) CountryCode() string {
	return a.countryCode
}

// Phone returns the contact phone
func (a Address) Phone() string {
	return a.phone
}

// IsEmpty returns true if the address has no content
func (a Address) IsEmpty() bool {
	return a == Address{}
}

// IsDomestic returns true for US destinations
func (a Address) IsDomestic() bool {
	return a.countryCode == "US"
}

// Equals compares two addresses field by field
func (a Address) Equals(other Address) bool {
	return a == other
}

// String returns a single-line rendering of the address
func (a Address) String() string {
	parts := make([]string, 0, 6)
	for _, p := range []string{a.name, a.street, a.street2, a.city, a.state, a.postalCode, a.countryCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// addressJSON is the serialization shape for Address
type addressJSON struct {
	Name        string `json:"name"`
	Company     string `json:"company,omitempty"`
	Street      string `json:"street"`
	Street2     string `json:"street2,omitempty"`
	City        string `json:"city"`
	State       string `json:"state,omitempty"`
	PostalCode  string `json:"postal_code,omitempty"`
	CountryCode string `json:"country_code"`
	Phone       string `json:"phone,omitempty"`
}

// MarshalJSON implements json.Marshaler
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(addressJSON{
		Name:        a.name,
		Company:     a.company,
		Street:      a.street,
		Street2:     a.street2,
		City:        a.city,
		State:       a.state,
		PostalCode:  a.postalCode,
		CountryCode: a.countryCode,
		Phone:       a.phone,
	})
}

// UnmarshalJSON implements json.Unmarshaler
func (a *Address) UnmarshalJSON(data []byte) error {
	var j addressJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	a.name = j.Name
	a.company = j.Company
	a.street = j.Street
	a.street2 = j.Street2
	a.city = j.City
	a.state = j.State
	a.postalCode = j.PostalCode
	a.countryCode = j.CountryCode
	a.phone = j.Phone
	return nil
}

// Value implements driver.Valuer for database persistence
func (a Address) Value() (driver.Value, error) {
	if a.IsEmpty() {
		return nil, nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for database retrieval
func (a *Address) Scan(value interface{}) error {
	if value == nil {
		*a = Address{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return fmt.Errorf("cannot scan %T into Address", value)
	}
}
