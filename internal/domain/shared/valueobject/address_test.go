package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAddress_RequiredFields(t *testing.T) {
	addr, err := NewAddress("John Doe", "250 NE 25th St", "Miami", "us",
		WithState("FL"),
		WithPostalCode("33137"),
		WithPhone("305-555-0100"),
	)

	assert.NoError(t, err)
	assert.Equal(t, "John Doe", addr.Name())
	assert.Equal(t, "250 NE 25th St", addr.Street())
	assert.Equal(t, "Miami", addr.City())
	assert.Equal(t, "US", addr.CountryCode(), "country code is upper-cased")
	assert.Equal(t, "FL", addr.State())
	assert.Equal(t, "33137", addr.PostalCode())
}

func TestNewAddress_Validation(t *testing.T) {
	tests := []struct {
		name        string
		addrName    string
		street      string
		city        string
		countryCode string
	}{
		{"missing name", "", "250 NE 25th St", "Miami", "US"},
		{"missing street", "John Doe", "", "Miami", "US"},
		{"missing city", "John Doe", "250 NE 25th St", "", "US"},
		{"bad country code", "John Doe", "250 NE 25th St", "Miami", "USA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAddress(tt.addrName, tt.street, tt.city, tt.countryCode)
			assert.Error(t, err)
		})
	}
}

func TestAddress_Zip5(t *testing.T) {
	tests := []struct {
		postalCode string
		want       string
	}{
		{"33137", "33137"},
		{"33137-4227", "33137"},
		{"1011", "1011"},
		{"", ""},
	}

	for _, tt := range tests {
		addr := MustNewAddress("John Doe", "250 NE 25th St", "Miami", "US",
			WithPostalCode(tt.postalCode))
		assert.Equal(t, tt.want, addr.Zip5(), tt.postalCode)
	}
}

func TestAddress_IsDomestic(t *testing.T) {
	us := MustNewAddress("John Doe", "250 NE 25th St", "Miami", "US")
	de := MustNewAddress("Erika Muster", "Unter den Linden 1", "Berlin", "DE")

	assert.True(t, us.IsDomestic())
	assert.False(t, de.IsDomestic())
}

func TestAddress_IsEmpty(t *testing.T) {
	assert.True(t, EmptyAddress().IsEmpty())
	assert.False(t, MustNewAddress("John Doe", "250 NE 25th St", "Miami", "US").IsEmpty())
}

func TestAddress_JSONRoundTrip(t *testing.T) {
	addr := MustNewAddress("John Doe", "250 NE 25th St", "Miami", "US",
		WithCompany("Acme Corp"),
		WithStreet2("Suite 12"),
		WithState("FL"),
		WithPostalCode("33137"),
	)

	data, err := addr.MarshalJSON()
	assert.NoError(t, err)

	var decoded Address
	assert.NoError(t, decoded.UnmarshalJSON(data))
	assert.True(t, addr.Equals(decoded))
}

func TestAddress_ScanValue(t *testing.T) {
	addr := MustNewAddress("John Doe", "250 NE 25th St", "Miami", "US",
		WithPostalCode("33137"))

	v, err := addr.Value()
	assert.NoError(t, err)

	var scanned Address
	assert.NoError(t, scanned.Scan(v))
	assert.True(t, addr.Equals(scanned))
}

func TestAddress_ValueEmptyIsNull(t *testing.T) {
	v, err := EmptyAddress().Value()

	assert.NoError(t, err)
	assert.Nil(t, v)
}

func TestAddress_ScanNil(t *testing.T) {
	scanned := MustNewAddress("John Doe", "250 NE 25th St", "Miami", "US")

	assert.NoError(t, scanned.Scan(nil))
	assert.True(t, scanned.IsEmpty())
}
