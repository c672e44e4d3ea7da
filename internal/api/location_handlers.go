package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/caterdir/caterdir-server/internal/service"
	"github.com/caterdir/caterdir-server/internal/store"
)

type ListLocationsInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	Page          int    `query:"page" default:"1" doc:"Page number, starting at 1"`
	PerPage       int    `query:"per_page" default:"10" doc:"Items per page, 1 to 100"`
}

type ListLocationsOutput struct {
	Body listBody[LocationResponse]
}

type GetLocationInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	ID            int64  `path:"id" doc:"Location ID"`
}

type LocationOutput struct {
	Body LocationResponse
}

type CreateLocationInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	Body          struct {
		City        string `json:"city,omitempty" maxLength:"100" doc:"City name"`
		Address     string `json:"address,omitempty" maxLength:"200" doc:"Street address"`
		ZipCode     string `json:"zip_code,omitempty" maxLength:"20" doc:"Postal code"`
		CountryCode string `json:"country_code,omitempty" maxLength:"20" doc:"Country code"`
		PhoneNumber string `json:"phone_number,omitempty" maxLength:"30" doc:"Contact phone number"`
	}
}

type UpdateLocationInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	ID            int64  `path:"id" doc:"Location ID"`
	Body          struct {
		City        *string `json:"city,omitempty" maxLength:"100"`
		Address     *string `json:"address,omitempty" maxLength:"200"`
		ZipCode     *string `json:"zip_code,omitempty" maxLength:"20"`
		CountryCode *string `json:"country_code,omitempty" maxLength:"20"`
		PhoneNumber *string `json:"phone_number,omitempty" maxLength:"30"`
	}
}

type DeleteLocationInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	ID            int64  `path:"id" doc:"Location ID"`
}

func (s *Server) registerLocationRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "list-locations",
		Method:      http.MethodGet,
		Path:        "/locations",
		Summary:     "List locations",
		Tags:        []string{"locations"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListLocations)

	huma.Register(s.api, huma.Operation{
		OperationID:   "create-location",
		Method:        http.MethodPost,
		Path:          "/locations",
		Summary:       "Create a location",
		Tags:          []string{"locations"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"bearer": {}}},
	}, s.handleCreateLocation)

	huma.Register(s.api, huma.Operation{
		OperationID: "get-location",
		Method:      http.MethodGet,
		Path:        "/locations/{id}",
		Summary:     "Get a location",
		Tags:        []string{"locations"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetLocation)

	huma.Register(s.api, huma.Operation{
		OperationID: "update-location",
		Method:      http.MethodPut,
		Path:        "/locations/{id}",
		Summary:     "Update a location",
		Description: "Partial update; absent fields are left untouched.",
		Tags:        []string{"locations"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateLocation)

	huma.Register(s.api, huma.Operation{
		OperationID: "patch-location",
		Method:      http.MethodPatch,
		Path:        "/locations/{id}",
		Summary:     "Update a location",
		Description: "Partial update; absent fields are left untouched.",
		Tags:        []string{"locations"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateLocation)

	huma.Register(s.api, huma.Operation{
		OperationID:   "delete-location",
		Method:        http.MethodDelete,
		Path:          "/locations/{id}",
		Summary:       "Delete a location",
		Description:   "Refused while any facility still references the location.",
		Tags:          []string{"locations"},
		DefaultStatus: http.StatusNoContent,
		Security:      []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteLocation)
}

func (s *Server) handleListLocations(ctx context.Context, input *ListLocationsInput) (*ListLocationsOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	locations, pagination, err := s.services.Location.List(ctx, store.ListParams{
		Page:    input.Page,
		PerPage: input.PerPage,
	})
	if err != nil {
		return nil, err
	}

	resp := &ListLocationsOutput{}
	resp.Body.Items = toLocationResponses(locations)
	resp.Body.Pagination = pagination
	return resp, nil
}

func (s *Server) handleCreateLocation(ctx context.Context, input *CreateLocationInput) (*LocationOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	location, err := s.services.Location.Create(ctx, service.CreateLocationRequest{
		City:        input.Body.City,
		Address:     input.Body.Address,
		ZipCode:     input.Body.ZipCode,
		CountryCode: input.Body.CountryCode,
		PhoneNumber: input.Body.PhoneNumber,
	})
	if err != nil {
		return nil, err
	}

	return &LocationOutput{Body: *toLocationResponse(location)}, nil
}

func (s *Server) handleGetLocation(ctx context.Context, input *GetLocationInput) (*LocationOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	location, err := s.services.Location.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &LocationOutput{Body: *toLocationResponse(location)}, nil
}

func (s *Server) handleUpdateLocation(ctx context.Context, input *UpdateLocationInput) (*LocationOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	location, err := s.services.Location.Update(ctx, input.ID, service.UpdateLocationRequest{
		City:        input.Body.City,
		Address:     input.Body.Address,
		ZipCode:     input.Body.ZipCode,
		CountryCode: input.Body.CountryCode,
		PhoneNumber: input.Body.PhoneNumber,
	})
	if err != nil {
		return nil, err
	}

	return &LocationOutput{Body: *toLocationResponse(location)}, nil
}

func (s *Server) handleDeleteLocation(ctx context.Context, input *DeleteLocationInput) (*struct{}, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.Location.Delete(ctx, input.ID); err != nil {
		return nil, err
	}
	return &struct{}{}, nil
}
