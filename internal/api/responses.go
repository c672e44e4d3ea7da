package api

import (
	"time"

	"github.com/caterdir/caterdir-server/internal/domain"
	"github.com/caterdir/caterdir-server/internal/store"
)

// listBody is the body of every collection response.
type listBody[T any] struct {
	Items      []T              `json:"items"`
	Pagination store.Pagination `json:"pagination"`
}

// LocationResponse is the wire form of a location.
type LocationResponse struct {
	ID          int64  `json:"id"`
	City        string `json:"city,omitempty"`
	Address     string `json:"address,omitempty"`
	ZipCode     string `json:"zip_code,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// TagResponse is the wire form of a tag.
type TagResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// FacilityResponse is the wire form of a facility, with its location and
// tags embedded.
type FacilityResponse struct {
	ID           int64             `json:"id"`
	Name         string            `json:"name"`
	LocationID   int64             `json:"location_id"`
	Location     *LocationResponse `json:"location,omitempty"`
	Tags         []TagResponse     `json:"tags"`
	Metadata     map[string]any    `json:"metadata,omitempty"`
	CreationDate time.Time         `json:"creation_date"`
}

// EmployeeResponse is the wire form of an employee, with assigned facilities
// embedded.
type EmployeeResponse struct {
	ID         int64              `json:"id"`
	Name       string             `json:"name"`
	Address    string             `json:"address,omitempty"`
	Phone      string             `json:"phone,omitempty"`
	Email      string             `json:"email"`
	Facilities []FacilityResponse `json:"facilities"`
	CreatedAt  time.Time          `json:"created_at"`
}

func toLocationResponse(l *domain.Location) *LocationResponse {
	if l == nil {
		return nil
	}
	return &LocationResponse{
		ID:          l.ID,
		City:        l.City,
		Address:     l.Address,
		ZipCode:     l.ZipCode,
		CountryCode: l.CountryCode,
		PhoneNumber: l.PhoneNumber,
	}
}

func toLocationResponses(locations []*domain.Location) []LocationResponse {
	out := make([]LocationResponse, 0, len(locations))
	for _, l := range locations {
		out = append(out, *toLocationResponse(l))
	}
	return out
}

func toTagResponse(t *domain.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name}
}

func toTagResponses(tags []*domain.Tag) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, toTagResponse(t))
	}
	return out
}

func toFacilityResponse(f *domain.Facility) FacilityResponse {
	return FacilityResponse{
		ID:           f.ID,
		Name:         f.Name,
		LocationID:   f.LocationID,
		Location:     toLocationResponse(f.Location),
		Tags:         toTagResponses(f.Tags),
		Metadata:     f.Metadata,
		CreationDate: f.CreationDate,
	}
}

func toFacilityResponses(facilities []*domain.Facility) []FacilityResponse {
	out := make([]FacilityResponse, 0, len(facilities))
	for _, f := range facilities {
		out = append(out, toFacilityResponse(f))
	}
	return out
}

func toEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		Name:       e.Name,
		Address:    e.Address,
		Phone:      e.Phone,
		Email:      e.Email,
		Facilities: toFacilityResponses(e.Facilities),
		CreatedAt:  e.CreatedAt,
	}
}

func toEmployeeResponses(employees []*domain.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, toEmployeeResponse(e))
	}
	return out
}
