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

// TagService orchestrates tag operations. Tag names are matched exactly;
// "Vegan" and "vegan" are distinct tags.
type TagService struct {
	store     store.Store
	logger    *slog.Logger
	validator *validation.Validator
	sanitizer *sanitize.Sanitizer
}

// NewTagService creates a new tag service.
func NewTagService(st store.Store, logger *slog.Logger) *TagService {
	return &TagService{
		store:     st,
		logger:    logger,
		validator: validation.New(),
		sanitizer: sanitize.New(logger),
	}
}

// TagRequest contains the tag name for create and rename operations.
type TagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// Create creates a new tag with a unique name.
func (s *TagService) Create(ctx context.Context, req TagRequest) (*domain.Tag, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	t := &domain.Tag{Name: s.sanitizer.Text(req.Name)}
	if err := s.store.CreateTag(ctx, t); err != nil {
		if errors.Is(err, errors.ErrDuplicate) {
			return nil, errors.Duplicatef("Tag with name %q already exists", t.Name)
		}
		return nil, err
	}

	s.logger.Info("tag created", "id", t.ID, "name", t.Name)
	return t, nil
}

// Get returns a single tag.
func (s *TagService) Get(ctx context.Context, id int64) (*domain.Tag, error) {
	t, err := s.store.GetTag(ctx, id)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.NotFoundf("Tag with id %d not found", id)
		}
		return nil, err
	}
	return t, nil
}

// List returns one page of tags with pagination metadata.
func (s *TagService) List(ctx context.Context, params store.ListParams) ([]*domain.Tag, store.Pagination, error) {
	if err := params.Validate(); err != nil {
		return nil, store.Pagination{}, err
	}

	total, err := s.store.CountTags(ctx)
	if err != nil {
		return nil, store.Pagination{}, err
	}

	p := store.Paginate(total, params.Page, params.PerPage)
	items, err := s.store.ListTags(ctx, p.PerPage, p.Offset)
	if err != nil {
		return nil, store.Pagination{}, err
	}
	return items, p, nil
}

// Update renames a tag.
func (s *TagService) Update(ctx context.Context, id int64, req TagRequest) (*domain.Tag, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	name := s.sanitizer.Text(req.Name)
	if err := s.store.UpdateTag(ctx, id, name); err != nil {
		switch {
		case errors.Is(err, errors.ErrNotFound):
			return nil, errors.NotFoundf("Tag with id %d not found", id)
		case errors.Is(err, errors.ErrDuplicate):
			return nil, errors.Duplicatef("Tag with name %q already exists", name)
		}
		return nil, err
	}

	return s.Get(ctx, id)
}

// Delete removes a tag unless any facility still carries it.
func (s *TagService) Delete(ctx context.Context, id int64) error {
	inUse, err := s.store.CountFacilitiesForTag(ctx, id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return errors.ResourceInUsef("Tag with id %d is used by %d facilities", id, inUse)
	}

	if err := s.store.DeleteTag(ctx, id); err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return errors.NotFoundf("Tag with id %d not found", id)
		}
		return err
	}

	s.logger.Info("tag deleted", "id", id)
	return nil
}
