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

// FacilityService orchestrates facility operations, including the tag
// resolution and search paths.
type FacilityService struct {
	store     store.Store
	logger    *slog.Logger
	validator *validation.Validator
	sanitizer *sanitize.Sanitizer
}

// NewFacilityService creates a new facility service.
func NewFacilityService(st store.Store, logger *slog.Logger) *FacilityService {
	return &FacilityService{
		store:     st,
		logger:    logger,
		validator: validation.New(),
		sanitizer: sanitize.New(logger),
	}
}

// CreateFacilityRequest contains fields for creating a facility. Tags may be
// given as existing IDs, as names (created when absent), or both.
type CreateFacilityRequest struct {
	Name       string         `json:"name" validate:"required,min=1,max=120"`
	LocationID int64          `json:"location_id" validate:"required,gt=0"`
	TagIDs     []int64        `json:"tag_ids"`
	TagNames   []string       `json:"tag_names"`
	Metadata   map[string]any `json:"metadata"`
}

// Create creates a facility with its full tag association set and returns it
// populated with location and tag objects.
func (s *FacilityService) Create(ctx context.Context, req CreateFacilityRequest) (*domain.Facility, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if _, err := s.store.GetLocation(ctx, req.LocationID); err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.NotFoundf("Location with id %d not found", req.LocationID)
		}
		return nil, err
	}

	f := &domain.Facility{
		Name:         s.sanitizer.Text(req.Name),
		LocationID:   req.LocationID,
		Metadata:     s.sanitizer.Map(req.Metadata),
		CreationDate: time.Now(),
	}
	if err := s.store.CreateFacility(ctx, f); err != nil {
		return nil, err
	}

	tagIDs, err := s.resolveTagIDs(ctx, req.TagIDs, req.TagNames)
	if err != nil {
		return nil, err
	}
	if len(tagIDs) > 0 {
		if err := s.store.SetFacilityTags(ctx, f.ID, tagIDs); err != nil {
			return nil, err
		}
	}

	s.logger.Info("facility created", "id", f.ID, "name", f.Name, "tags", len(tagIDs))
	return s.Get(ctx, f.ID)
}

// resolveTagIDs combines explicit tag IDs with tag names, creating tags for
// names that don't exist yet. The result is deduplicated; order carries no
// meaning. Any failure aborts the whole resolution so callers never apply a
// partial tag set.
func (s *FacilityService) resolveTagIDs(ctx context.Context, tagIDs []int64, tagNames []string) ([]int64, error) {
	seen := make(map[int64]struct{}, len(tagIDs)+len(tagNames))
	resolved := make([]int64, 0, len(tagIDs)+len(tagNames))

	add := func(id int64) {
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			resolved = append(resolved, id)
		}
	}

	for _, id := range tagIDs {
		if _, err := s.store.GetTag(ctx, id); err != nil {
			if errors.Is(err, errors.ErrNotFound) {
				return nil, errors.NotFoundf("Tag with id %d not found", id)
			}
			return nil, err
		}
		add(id)
	}

	for _, name := range tagNames {
		name = s.sanitizer.Text(name)
		if name == "" {
			continue
		}
		tag, created, err := s.store.FindOrCreateTagByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if created {
			s.logger.Info("tag created during resolution", "id", tag.ID, "name", tag.Name)
		}
		add(tag.ID)
	}

	return resolved, nil
}

// Get returns a facility populated with its location and tags.
func (s *FacilityService) Get(ctx context.Context, id int64) (*domain.Facility, error) {
	f, err := s.store.GetFacility(ctx, id)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.NotFoundf("Facility with id %d not found", id)
		}
		return nil, err
	}
	return f, nil
}

// List returns one page of facilities with pagination metadata.
func (s *FacilityService) List(ctx context.Context, params store.ListParams) ([]*domain.Facility, store.Pagination, error) {
	if err := params.Validate(); err != nil {
		return nil, store.Pagination{}, err
	}

	total, err := s.store.CountFacilities(ctx)
	if err != nil {
		return nil, store.Pagination{}, err
	}

	p := store.Paginate(total, params.Page, params.PerPage)
	items, err := s.store.ListFacilities(ctx, p.PerPage, p.Offset)
	if err != nil {
		return nil, store.Pagination{}, err
	}
	return items, p, nil
}

// Search runs a filtered facility search. The page query and count query
// share one WHERE clause in the store, so the pagination metadata always
// agrees with the result set.
func (s *FacilityService) Search(ctx context.Context, search store.SearchParams, params store.ListParams) ([]*domain.Facility, store.Pagination, error) {
	if err := params.Validate(); err != nil {
		return nil, store.Pagination{}, err
	}
	if err := search.Validate(); err != nil {
		return nil, store.Pagination{}, err
	}

	offset := (params.Page - 1) * params.PerPage
	items, total, err := s.store.SearchFacilities(ctx, search, params.PerPage, offset)
	if err != nil {
		return nil, store.Pagination{}, err
	}

	p := store.Paginate(total, params.Page, params.PerPage)
	if p.Offset != offset {
		// The requested page was past the end; re-fetch the clamped page.
		items, _, err = s.store.SearchFacilities(ctx, search, p.PerPage, p.Offset)
		if err != nil {
			return nil, store.Pagination{}, err
		}
	}
	return items, p, nil
}

// UpdateFacilityRequest contains fields for a partial facility update.
// Nil fields are left untouched. A non-nil tag_ids or tag_names replaces the
// whole tag set; an empty list clears it.
type UpdateFacilityRequest struct {
	Name       *string        `json:"name" validate:"omitempty,min=1,max=120"`
	LocationID *int64         `json:"location_id" validate:"omitempty,gt=0"`
	TagIDs     []int64        `json:"tag_ids"`
	TagNames   []string       `json:"tag_names"`
	Metadata   map[string]any `json:"metadata"`
}

// tagChange reports whether the request carries a tag set replacement.
func (r UpdateFacilityRequest) tagChange() bool {
	return r.TagIDs != nil || r.TagNames != nil
}

// Update applies a partial update. The tag set, when present, is replaced,
// never merged. An update with no eligible fields and no tag change fails
// with an invalid-operation error.
func (s *FacilityService) Update(ctx context.Context, id int64, req UpdateFacilityRequest) (*domain.Facility, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if _, err := s.store.GetFacility(ctx, id); err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.NotFoundf("Facility with id %d not found", id)
		}
		return nil, err
	}

	fields := map[string]any{}
	if req.Name != nil {
		if clean := s.sanitizer.Text(*req.Name); clean != "" {
			fields["name"] = clean
		}
	}
	if req.LocationID != nil {
		if _, err := s.store.GetLocation(ctx, *req.LocationID); err != nil {
			if errors.Is(err, errors.ErrNotFound) {
				return nil, errors.NotFoundf("Location with id %d not found", *req.LocationID)
			}
			return nil, err
		}
		fields["location_id"] = *req.LocationID
	}
	if req.Metadata != nil {
		fields["metadata"] = s.sanitizer.Map(req.Metadata)
	}

	if len(fields) == 0 && !req.tagChange() {
		return nil, errors.InvalidOperation("no fields to update")
	}

	if len(fields) > 0 {
		if err := s.store.UpdateFacility(ctx, id, fields); err != nil {
			return nil, err
		}
	}

	if req.tagChange() {
		tagIDs, err := s.resolveTagIDs(ctx, req.TagIDs, req.TagNames)
		if err != nil {
			return nil, err
		}
		if err := s.store.SetFacilityTags(ctx, id, tagIDs); err != nil {
			return nil, err
		}
	}

	return s.Get(ctx, id)
}

// Delete removes a facility. Unlike locations and tags there is no dependency
// guard; tag associations and employee assignments go with it.
func (s *FacilityService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteFacility(ctx, id); err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return errors.NotFoundf("Facility with id %d not found", id)
		}
		return err
	}

	s.logger.Info("facility deleted", "id", id)
	return nil
}
