package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/caterdir/caterdir-server/internal/domain"
	"github.com/caterdir/caterdir-server/internal/errors"
	"github.com/caterdir/caterdir-server/internal/sanitize"
	"github.com/caterdir/caterdir-server/internal/store"
	"github.com/caterdir/caterdir-server/internal/validation"
)

// EmployeeService orchestrates employee operations.
type EmployeeService struct {
	store     store.Store
	logger    *slog.Logger
	validator *validation.Validator
	sanitizer *sanitize.Sanitizer
}

// NewEmployeeService creates a new employee service.
func NewEmployeeService(st store.Store, logger *slog.Logger) *EmployeeService {
	return &EmployeeService{
		store:     st,
		logger:    logger,
		validator: validation.New(),
		sanitizer: sanitize.New(logger),
	}
}

// CreateEmployeeRequest contains fields for creating an employee.
type CreateEmployeeRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Address     string  `json:"address" validate:"max=200"`
	Phone       string  `json:"phone" validate:"max=30"`
	Email       string  `json:"email" validate:"required,email,max=200"`
	FacilityIDs []int64 `json:"facility_ids"`
}

// Create creates an employee with its facility assignments.
func (s *EmployeeService) Create(ctx context.Context, req CreateEmployeeRequest) (*domain.Employee, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if err := s.checkEmailFree(ctx, req.Email, 0); err != nil {
		return nil, err
	}
	if err := s.checkFacilitiesExist(ctx, req.FacilityIDs); err != nil {
		return nil, err
	}

	phone, err := s.cleanPhone(req.Phone)
	if err != nil {
		return nil, err
	}

	e := &domain.Employee{
		Name:      s.sanitizer.Text(req.Name),
		Address:   s.sanitizer.Text(req.Address),
		Phone:     phone,
		Email:     req.Email,
		CreatedAt: time.Now(),
	}
	if err := s.store.CreateEmployee(ctx, e); err != nil {
		if errors.Is(err, errors.ErrDuplicate) {
			return nil, errors.Duplicatef("Employee with email %q already exists", req.Email)
		}
		return nil, err
	}

	if len(req.FacilityIDs) > 0 {
		if err := s.store.SetEmployeeFacilities(ctx, e.ID, dedupeIDs(req.FacilityIDs)); err != nil {
			return nil, err
		}
	}

	s.logger.Info("employee created", "id", e.ID, "email", e.Email)
	return s.Get(ctx, e.ID)
}

// Get returns an employee with facility assignments populated.
func (s *EmployeeService) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	e, err := s.store.GetEmployee(ctx, id)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.NotFoundf("Employee with id %d not found", id)
		}
		return nil, err
	}
	return e, nil
}

// List returns one page of employees with pagination metadata.
func (s *EmployeeService) List(ctx context.Context, params store.ListParams) ([]*domain.Employee, store.Pagination, error) {
	if err := params.Validate(); err != nil {
		return nil, store.Pagination{}, err
	}

	total, err := s.store.CountEmployees(ctx)
	if err != nil {
		return nil, store.Pagination{}, err
	}

	p := store.Paginate(total, params.Page, params.PerPage)
	items, err := s.store.ListEmployees(ctx, p.PerPage, p.Offset)
	if err != nil {
		return nil, store.Pagination{}, err
	}
	return items, p, nil
}

// UpdateEmployeeRequest contains fields for a partial employee update.
// Nil fields are left untouched. A non-nil facility_ids replaces the whole
// assignment set; an empty list clears it.
type UpdateEmployeeRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address     *string `json:"address" validate:"omitempty,max=200"`
	Phone       *string `json:"phone" validate:"omitempty,max=30"`
	Email       *string `json:"email" validate:"omitempty,email,max=200"`
	FacilityIDs []int64 `json:"facility_ids"`
}

// Update applies a partial update. The facility set, when present, is
// replaced, never merged.
func (s *EmployeeService) Update(ctx context.Context, id int64, req UpdateEmployeeRequest) (*domain.Employee, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Name != nil {
		if clean := s.sanitizer.Text(*req.Name); clean != "" {
			fields["name"] = clean
		}
	}
	if req.Address != nil {
		if clean := s.sanitizer.Text(*req.Address); clean != "" {
			fields["address"] = clean
		}
	}
	if req.Phone != nil {
		phone, err := s.cleanPhone(*req.Phone)
		if err != nil {
			return nil, err
		}
		if phone != "" {
			fields["phone"] = phone
		}
	}
	if req.Email != nil {
		if err := s.checkEmailFree(ctx, *req.Email, id); err != nil {
			return nil, err
		}
		fields["email"] = *req.Email
	}

	if len(fields) == 0 && req.FacilityIDs == nil {
		return nil, errors.InvalidOperation("no fields to update")
	}

	if len(fields) > 0 {
		if err := s.store.UpdateEmployee(ctx, id, fields); err != nil {
			if errors.Is(err, errors.ErrDuplicate) {
				return nil, errors.Duplicatef("Employee with email %q already exists", *req.Email)
			}
			return nil, err
		}
	}

	if req.FacilityIDs != nil {
		if err := s.checkFacilitiesExist(ctx, req.FacilityIDs); err != nil {
			return nil, err
		}
		if err := s.store.SetEmployeeFacilities(ctx, id, dedupeIDs(req.FacilityIDs)); err != nil {
			return nil, err
		}
	}

	return s.Get(ctx, id)
}

// Delete removes an employee and its facility assignments.
func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteEmployee(ctx, id); err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return errors.NotFoundf("Employee with id %d not found", id)
		}
		return err
	}

	s.logger.Info("employee deleted", "id", id)
	return nil
}

// checkEmailFree rejects emails already taken by a different employee.
// excludeID skips the employee being updated; pass 0 for creates.
func (s *EmployeeService) checkEmailFree(ctx context.Context, email string, excludeID int64) error {
	existing, err := s.store.GetEmployeeByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != excludeID {
		return errors.Duplicatef("Employee with email %q already exists", email)
	}
	return nil
}

// checkFacilitiesExist verifies every referenced facility.
func (s *EmployeeService) checkFacilitiesExist(ctx context.Context, facilityIDs []int64) error {
	for _, fid := range facilityIDs {
		if _, err := s.store.GetFacility(ctx, fid); err != nil {
			if errors.Is(err, errors.ErrNotFound) {
				return errors.NotFoundf("Facility with id %d not found", fid)
			}
			return err
		}
	}
	return nil
}

// cleanPhone normalizes a phone number. Empty input passes through.
func (s *EmployeeService) cleanPhone(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	phone := s.sanitizer.Phone(raw)
	if phone == nil {
		return "", errors.ValidationWithDetails("validation failed",
			map[string]string{"phone": "must be a valid phone number"})
	}
	return phone.(string), nil
}

// dedupeIDs removes duplicate IDs preserving first occurrence.
func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
