package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/caterdir/caterdir-server/internal/service"
	"github.com/caterdir/caterdir-server/internal/store"
)

type ListEmployeesInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	Page          int    `query:"page" default:"1" doc:"Page number, starting at 1"`
	PerPage       int    `query:"per_page" default:"10" doc:"Items per page, 1 to 100"`
}

type ListEmployeesOutput struct {
	Body listBody[EmployeeResponse]
}

type GetEmployeeInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	ID            int64  `path:"id" doc:"Employee ID"`
}

type EmployeeOutput struct {
	Body EmployeeResponse
}

type CreateEmployeeInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	Body          struct {
		Name        string  `json:"name" maxLength:"200" doc:"Employee name"`
		Address     string  `json:"address,omitempty" maxLength:"200" doc:"Home address"`
		Phone       string  `json:"phone,omitempty" maxLength:"30" doc:"Phone number"`
		Email       string  `json:"email" maxLength:"200" format:"email" doc:"Unique email address"`
		FacilityIDs []int64 `json:"facility_ids,omitempty" doc:"IDs of facilities to assign"`
	}
}

type UpdateEmployeeInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	ID            int64  `path:"id" doc:"Employee ID"`
	Body          struct {
		Name        *string `json:"name,omitempty" maxLength:"200"`
		Address     *string `json:"address,omitempty" maxLength:"200"`
		Phone       *string `json:"phone,omitempty" maxLength:"30"`
		Email       *string `json:"email,omitempty" maxLength:"200"`
		FacilityIDs []int64 `json:"facility_ids,omitempty" doc:"Replaces the assignments; an empty list clears them"`
	}
}

type DeleteEmployeeInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	ID            int64  `path:"id" doc:"Employee ID"`
}

func (s *Server) registerEmployeeRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "list-employees",
		Method:      http.MethodGet,
		Path:        "/employees",
		Summary:     "List employees",
		Tags:        []string{"employees"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListEmployees)

	huma.Register(s.api, huma.Operation{
		OperationID:   "create-employee",
		Method:        http.MethodPost,
		Path:          "/employees",
		Summary:       "Create an employee",
		Tags:          []string{"employees"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"bearer": {}}},
	}, s.handleCreateEmployee)

	huma.Register(s.api, huma.Operation{
		OperationID: "get-employee",
		Method:      http.MethodGet,
		Path:        "/employees/{id}",
		Summary:     "Get an employee",
		Tags:        []string{"employees"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetEmployee)

	huma.Register(s.api, huma.Operation{
		OperationID: "update-employee",
		Method:      http.MethodPut,
		Path:        "/employees/{id}",
		Summary:     "Update an employee",
		Description: "Partial update; absent fields are left untouched. The facility list replaces the whole set.",
		Tags:        []string{"employees"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateEmployee)

	huma.Register(s.api, huma.Operation{
		OperationID: "patch-employee",
		Method:      http.MethodPatch,
		Path:        "/employees/{id}",
		Summary:     "Update an employee",
		Description: "Partial update; absent fields are left untouched. The facility list replaces the whole set.",
		Tags:        []string{"employees"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateEmployee)

	huma.Register(s.api, huma.Operation{
		OperationID:   "delete-employee",
		Method:        http.MethodDelete,
		Path:          "/employees/{id}",
		Summary:       "Delete an employee",
		Description:   "Facility assignments are removed along with the employee.",
		Tags:          []string{"employees"},
		DefaultStatus: http.StatusNoContent,
		Security:      []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteEmployee)
}

func (s *Server) handleListEmployees(ctx context.Context, input *ListEmployeesInput) (*ListEmployeesOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	employees, pagination, err := s.services.Employee.List(ctx, store.ListParams{
		Page:    input.Page,
		PerPage: input.PerPage,
	})
	if err != nil {
		return nil, err
	}

	resp := &ListEmployeesOutput{}
	resp.Body.Items = toEmployeeResponses(employees)
	resp.Body.Pagination = pagination
	return resp, nil
}

func (s *Server) handleCreateEmployee(ctx context.Context, input *CreateEmployeeInput) (*EmployeeOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	employee, err := s.services.Employee.Create(ctx, service.CreateEmployeeRequest{
		Name:        input.Body.Name,
		Address:     input.Body.Address,
		Phone:       input.Body.Phone,
		Email:       input.Body.Email,
		FacilityIDs: input.Body.FacilityIDs,
	})
	if err != nil {
		return nil, err
	}

	return &EmployeeOutput{Body: toEmployeeResponse(employee)}, nil
}

func (s *Server) handleGetEmployee(ctx context.Context, input *GetEmployeeInput) (*EmployeeOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	employee, err := s.services.Employee.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &EmployeeOutput{Body: toEmployeeResponse(employee)}, nil
}

func (s *Server) handleUpdateEmployee(ctx context.Context, input *UpdateEmployeeInput) (*EmployeeOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	employee, err := s.services.Employee.Update(ctx, input.ID, service.UpdateEmployeeRequest{
		Name:        input.Body.Name,
		Address:     input.Body.Address,
		Phone:       input.Body.Phone,
		Email:       input.Body.Email,
		FacilityIDs: input.Body.FacilityIDs,
	})
	if err != nil {
		return nil, err
	}

	return &EmployeeOutput{Body: toEmployeeResponse(employee)}, nil
}

func (s *Server) handleDeleteEmployee(ctx context.Context, input *DeleteEmployeeInput) (*struct{}, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.Employee.Delete(ctx, input.ID); err != nil {
		return nil, err
	}
	return &struct{}{}, nil
}
