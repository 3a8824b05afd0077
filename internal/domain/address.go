package domain

import (
	"fmt"
	"strings"
)

// AddressForm holds the shipping address fields collected at checkout.
// The country is kept separate from the composed address so the
// shipping eligibility gate can inspect it directly.
type AddressForm struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Street   string `json:"street"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
	Country  string `json:"country"`
}

// Compose flattens the form into the single multi-line shipping address
// string the order backend stores:
//
//	name
//	phone
//	street
//	city, state - pincode
//	country
func (a AddressForm) Compose() string {
	return fmt.Sprintf("%s\n%s\n%s\n%s, %s - %s\n%s",
		a.FullName, a.Phone, a.Street, a.City, a.State, a.Pincode, a.Country)
}

// IsComplete reports whether every field is non-empty after trimming.
func (a AddressForm) IsComplete() bool {
	for _, f := range []string{a.FullName, a.Phone, a.Street, a.City, a.State, a.Pincode, a.Country} {
		if strings.TrimSpace(f) == "" {
			return false
		}
	}
	return true
}

// CountryAllowed reports whether orders can ship to the given country.
// The comparison is case-insensitive and ignores surrounding
// whitespace; India is the only supported destination.
func CountryAllowed(country string) bool {
	return strings.ToLower(strings.TrimSpace(country)) == "india"
}
