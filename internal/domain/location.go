package domain

// Location is an address record that one or more facilities may reference.
// All text fields are optional free text.
type Location struct {
	ID          int64  `json:"id"`
	City        string `json:"city,omitempty"`
	Address     string `json:"address,omitempty"`
	ZipCode     string `json:"zip_code,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}
