package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/caterdir/caterdir-server/internal/service"
	"github.com/caterdir/caterdir-server/internal/store"
)

type ListFacilitiesInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	Page          int    `query:"page" default:"1" doc:"Page number, starting at 1"`
	PerPage       int    `query:"per_page" default:"10" doc:"Items per page, 1 to 100"`
}

type ListFacilitiesOutput struct {
	Body listBody[FacilityResponse]
}

// SearchFacilitiesInput carries the facility search criteria. Without
// filters the query matches facility names, cities, and tag names alike.
type SearchFacilitiesInput struct {
	Authorization string   `header:"Authorization" doc:"Bearer token"`
	Query         string   `query:"query" doc:"Case-insensitive substring to search for"`
	Filters       []string `query:"filter,explode" doc:"Fields to match: city, tag, facility_name"`
	Operator      string   `query:"operator" doc:"How multiple filters combine: AND or OR (default OR)"`
	Page          int      `query:"page" default:"1" doc:"Page number, starting at 1"`
	PerPage       int      `query:"per_page" default:"10" doc:"Items per page, 1 to 100"`
}

type GetFacilityInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	ID            int64  `path:"id" doc:"Facility ID"`
}

type FacilityOutput struct {
	Body FacilityResponse
}

type CreateFacilityInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	Body          struct {
		Name       string         `json:"name" maxLength:"120" doc:"Facility name"`
		LocationID int64          `json:"location_id" doc:"ID of an existing location"`
		TagIDs     []int64        `json:"tag_ids,omitempty" doc:"IDs of existing tags"`
		TagNames   []string       `json:"tag_names,omitempty" doc:"Tag names, created on demand"`
		Metadata   map[string]any `json:"metadata,omitempty" doc:"Free-form facility attributes"`
	}
}

type UpdateFacilityInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	ID            int64  `path:"id" doc:"Facility ID"`
	Body          struct {
		Name       *string        `json:"name,omitempty" maxLength:"120"`
		LocationID *int64         `json:"location_id,omitempty"`
		TagIDs     []int64        `json:"tag_ids,omitempty" doc:"Replaces the tag set; an empty list clears it"`
		TagNames   []string       `json:"tag_names,omitempty" doc:"Replaces the tag set; names are created on demand"`
		Metadata   map[string]any `json:"metadata,omitempty"`
	}
}

type DeleteFacilityInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	ID            int64  `path:"id" doc:"Facility ID"`
}

func (s *Server) registerFacilityRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "list-facilities",
		Method:      http.MethodGet,
		Path:        "/facilities",
		Summary:     "List facilities",
		Tags:        []string{"facilities"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListFacilities)

	huma.Register(s.api, huma.Operation{
		OperationID: "search-facilities",
		Method:      http.MethodGet,
		Path:        "/facilities/search",
		Summary:     "Search facilities",
		Description: "Case-insensitive substring search over facility names, cities, and tags.",
		Tags:        []string{"facilities"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSearchFacilities)

	huma.Register(s.api, huma.Operation{
		OperationID:   "create-facility",
		Method:        http.MethodPost,
		Path:          "/facilities",
		Summary:       "Create a facility",
		Tags:          []string{"facilities"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"bearer": {}}},
	}, s.handleCreateFacility)

	huma.Register(s.api, huma.Operation{
		OperationID: "get-facility",
		Method:      http.MethodGet,
		Path:        "/facilities/{id}",
		Summary:     "Get a facility",
		Tags:        []string{"facilities"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetFacility)

	huma.Register(s.api, huma.Operation{
		OperationID: "update-facility",
		Method:      http.MethodPut,
		Path:        "/facilities/{id}",
		Summary:     "Update a facility",
		Description: "Partial update; absent fields are left untouched. Tag lists replace the whole set.",
		Tags:        []string{"facilities"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateFacility)

	huma.Register(s.api, huma.Operation{
		OperationID: "patch-facility",
		Method:      http.MethodPatch,
		Path:        "/facilities/{id}",
		Summary:     "Update a facility",
		Description: "Partial update; absent fields are left untouched. Tag lists replace the whole set.",
		Tags:        []string{"facilities"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateFacility)

	huma.Register(s.api, huma.Operation{
		OperationID:   "delete-facility",
		Method:        http.MethodDelete,
		Path:          "/facilities/{id}",
		Summary:       "Delete a facility",
		Description:   "Tag and employee associations are removed along with the facility.",
		Tags:          []string{"facilities"},
		DefaultStatus: http.StatusNoContent,
		Security:      []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteFacility)
}

func (s *Server) handleListFacilities(ctx context.Context, input *ListFacilitiesInput) (*ListFacilitiesOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	facilities, pagination, err := s.services.Facility.List(ctx, store.ListParams{
		Page:    input.Page,
		PerPage: input.PerPage,
	})
	if err != nil {
		return nil, err
	}

	resp := &ListFacilitiesOutput{}
	resp.Body.Items = toFacilityResponses(facilities)
	resp.Body.Pagination = pagination
	return resp, nil
}

func (s *Server) handleSearchFacilities(ctx context.Context, input *SearchFacilitiesInput) (*ListFacilitiesOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	facilities, pagination, err := s.services.Facility.Search(ctx,
		store.SearchParams{
			Query:    input.Query,
			Filters:  input.Filters,
			Operator: input.Operator,
		},
		store.ListParams{
			Page:    input.Page,
			PerPage: input.PerPage,
		})
	if err != nil {
		return nil, err
	}

	resp := &ListFacilitiesOutput{}
	resp.Body.Items = toFacilityResponses(facilities)
	resp.Body.Pagination = pagination
	return resp, nil
}

func (s *Server) handleCreateFacility(ctx context.Context, input *CreateFacilityInput) (*FacilityOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	facility, err := s.services.Facility.Create(ctx, service.CreateFacilityRequest{
		Name:       input.Body.Name,
		LocationID: input.Body.LocationID,
		TagIDs:     input.Body.TagIDs,
		TagNames:   input.Body.TagNames,
		Metadata:   input.Body.Metadata,
	})
	if err != nil {
		return nil, err
	}

	return &FacilityOutput{Body: toFacilityResponse(facility)}, nil
}

func (s *Server) handleGetFacility(ctx context.Context, input *GetFacilityInput) (*FacilityOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	facility, err := s.services.Facility.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &FacilityOutput{Body: toFacilityResponse(facility)}, nil
}

func (s *Server) handleUpdateFacility(ctx context.Context, input *UpdateFacilityInput) (*FacilityOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	facility, err := s.services.Facility.Update(ctx, input.ID, service.UpdateFacilityRequest{
		Name:       input.Body.Name,
		LocationID: input.Body.LocationID,
		TagIDs:     input.Body.TagIDs,
		TagNames:   input.Body.TagNames,
		Metadata:   input.Body.Metadata,
	})
	if err != nil {
		return nil, err
	}

	return &FacilityOutput{Body: toFacilityResponse(facility)}, nil
}

func (s *Server) handleDeleteFacility(ctx context.Context, input *DeleteFacilityInput) (*struct{}, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.Facility.Delete(ctx, input.ID); err != nil {
		return nil, err
	}
	return &struct{}{}, nil
}
