package service

import (
	"context"
	"log/slog"

	"github.com/caterdir/caterdir-server/internal/domain"
	"github.com/caterdir/caterdir-server/internal/errors"
	"github.com/caterdir/caterdir-server/internal/sanitize"
	"github.com/caterdir/caterdir-server/internal/store"
	"github.com/caterdir/caterdir-server/internal/validation"
)

// LocationService orchestrates location operations.
type LocationService struct {
	store     store.Store
	logger    *slog.Logger
	validator *validation.Validator
	sanitizer *sanitize.Sanitizer
}

// NewLocationService creates a new location service.
func NewLocationService(st store.Store, logger *slog.Logger) *LocationService {
	return &LocationService{
		store:     st,
		logger:    logger,
		validator: validation.New(),
		sanitizer: sanitize.New(logger),
	}
}

// CreateLocationRequest contains fields for creating a location.
// Every field is optional free text; an address-only location is valid.
type CreateLocationRequest struct {
	City        string `json:"city" validate:"max=100"`
	Address     string `json:"address" validate:"max=200"`
	ZipCode     string `json:"zip_code" validate:"max=20"`
	CountryCode string `json:"country_code" validate:"max=20"`
	PhoneNumber string `json:"phone_number" validate:"max=30"`
}

// Create creates a new location.
func (s *LocationService) Create(ctx context.Context, req CreateLocationRequest) (*domain.Location, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	phone, err := s.cleanPhone(req.PhoneNumber)
	if err != nil {
		return nil, err
	}

	l := &domain.Location{
		City:        s.sanitizer.Text(req.City),
		Address:     s.sanitizer.Text(req.Address),
		ZipCode:     s.sanitizer.Text(req.ZipCode),
		CountryCode: s.sanitizer.Text(req.CountryCode),
		PhoneNumber: phone,
	}
	if err := s.store.CreateLocation(ctx, l); err != nil {
		return nil, err
	}

	s.logger.Info("location created", "id", l.ID, "city", l.City)
	return l, nil
}

// Get returns a single location.
func (s *LocationService) Get(ctx context.Context, id int64) (*domain.Location, error) {
	l, err := s.store.GetLocation(ctx, id)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.NotFoundf("Location with id %d not found", id)
		}
		return nil, err
	}
	return l, nil
}

// List returns one page of locations with pagination metadata.
func (s *LocationService) List(ctx context.Context, params store.ListParams) ([]*domain.Location, store.Pagination, error) {
	if err := params.Validate(); err != nil {
		return nil, store.Pagination{}, err
	}

	total, err := s.store.CountLocations(ctx)
	if err != nil {
		return nil, store.Pagination{}, err
	}

	p := store.Paginate(total, params.Page, params.PerPage)
	items, err := s.store.ListLocations(ctx, p.PerPage, p.Offset)
	if err != nil {
		return nil, store.Pagination{}, err
	}
	return items, p, nil
}

// UpdateLocationRequest contains fields for a partial location update.
// Nil fields are left untouched.
type UpdateLocationRequest struct {
	City        *string `json:"city" validate:"omitempty,max=100"`
	Address     *string `json:"address" validate:"omitempty,max=200"`
	ZipCode     *string `json:"zip_code" validate:"omitempty,max=20"`
	CountryCode *string `json:"country_code" validate:"omitempty,max=20"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=30"`
}

// Update applies a partial update. Only fields that are present and non-empty
// after sanitization participate; with no eligible fields the update fails
// rather than silently writing nothing.
func (s *LocationService) Update(ctx context.Context, id int64, req UpdateLocationRequest) (*domain.Location, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	setText := func(col string, v *string) {
		if v == nil {
			return
		}
		if clean := s.sanitizer.Text(*v); clean != "" {
			fields[col] = clean
		}
	}
	setText("city", req.City)
	setText("address", req.Address)
	setText("zip_code", req.ZipCode)
	setText("country_code", req.CountryCode)

	if req.PhoneNumber != nil {
		phone, err := s.cleanPhone(*req.PhoneNumber)
		if err != nil {
			return nil, err
		}
		if phone != "" {
			fields["phone_number"] = phone
		}
	}

	if err := s.store.UpdateLocation(ctx, id, fields); err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.NotFoundf("Location with id %d not found", id)
		}
		return nil, err
	}

	return s.Get(ctx, id)
}

// Delete removes a location unless any facility still references it.
func (s *LocationService) Delete(ctx context.Context, id int64) error {
	inUse, err := s.store.CountFacilitiesForLocation(ctx, id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return errors.ResourceInUsef("Location with id %d is referenced by %d facilities", id, inUse)
	}

	if err := s.store.DeleteLocation(ctx, id); err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return errors.NotFoundf("Location with id %d not found", id)
		}
		return err
	}

	s.logger.Info("location deleted", "id", id)
	return nil
}

// cleanPhone normalizes a phone number. Empty input passes through; anything
// else must survive the phone sanitizer.
func (s *LocationService) cleanPhone(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	phone := s.sanitizer.Phone(raw)
	if phone == nil {
		return "", errors.ValidationWithDetails("validation failed",
			map[string]string{"phone_number": "must be a valid phone number"})
	}
	return phone.(string), nil
}
