package sqlite

import (
	"context"
	"database/sql"

	"github.com/caterdir/caterdir-server/internal/domain"
	"github.com/caterdir/caterdir-server/internal/errors"
)

// CreateTag inserts a new tag and assigns its generated ID.
// Returns errors.ErrDuplicate on a taken name.
func (s *Store) CreateTag(ctx context.Context, t *domain.Tag) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tags (name) VALUES (?)`, t.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.ErrDuplicate.WithCause(err)
		}
		return wrapDB("create tag", err)
	}

	t.ID, err = res.LastInsertId()
	if err != nil {
		return wrapDB("create tag", err)
	}
	return nil
}

// GetTag retrieves a tag by ID.
// Returns errors.ErrNotFound if the tag does not exist.
func (s *Store) GetTag(ctx context.Context, id int64) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, name FROM tags WHERE id = ?`, id)

	var t domain.Tag
	err := row.Scan(&t.ID, &t.Name)
	if err == sql.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		return nil, wrapDB("get tag", err)
	}
	return &t, nil
}

// GetTagByName retrieves a tag by exact, case-sensitive name match.
// Returns errors.ErrNotFound if the tag does not exist.
func (s *Store) GetTagByName(ctx context.Context, name string) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, name FROM tags WHERE name = ?`, name)

	var t domain.Tag
	err := row.Scan(&t.ID, &t.Name)
	if err == sql.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		return nil, wrapDB("get tag by name", err)
	}
	return &t, nil
}

// FindOrCreateTagByName finds an existing tag by exact name or creates a new
// one. Returns (tag, created, error) where created is true if a new row was
// inserted.
func (s *Store) FindOrCreateTagByName(ctx context.Context, name string) (*domain.Tag, bool, error) {
	existing, err := s.GetTagByName(ctx, name)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, errors.ErrNotFound) {
		return nil, false, err
	}

	t := &domain.Tag{Name: name}
	if err := s.CreateTag(ctx, t); err != nil {
		if errors.Is(err, errors.ErrDuplicate) {
			// Race: another request created it between lookup and insert.
			existing, err := s.GetTagByName(ctx, name)
			if err != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
		return nil, false, err
	}

	return t, true, nil
}

// ListTags returns one page of tags ordered by name.
func (s *Store) ListTags(ctx context.Context, limit, offset int) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name FROM tags ORDER BY name LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, wrapDB("list tags", err)
	}
	defer rows.Close()

	tags := []*domain.Tag{}
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, wrapDB("list tags", err)
		}
		tags = append(tags, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDB("list tags", err)
	}

	return tags, nil
}

// CountTags returns the total number of tags.
func (s *Store) CountTags(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tags`).Scan(&n); err != nil {
		return 0, wrapDB("count tags", err)
	}
	return n, nil
}

// UpdateTag renames a tag.
// Returns errors.ErrDuplicate if the new name is taken.
func (s *Store) UpdateTag(ctx context.Context, id int64, name string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE tags SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.ErrDuplicate.WithCause(err)
		}
		return wrapDB("update tag", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return wrapDB("update tag", err)
	}
	if affected == 0 {
		return errors.ErrNotFound
	}
	return nil
}

// DeleteTag removes a tag row.
// Usage guards are enforced by the service layer, not here.
func (s *Store) DeleteTag(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
	if err != nil {
		return wrapDB("delete tag", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return wrapDB("delete tag", err)
	}
	if affected == 0 {
		return errors.ErrNotFound
	}
	return nil
}

// CountFacilitiesForTag returns how many facilities carry a tag.
func (s *Store) CountFacilitiesForTag(ctx context.Context, tagID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM facility_tags WHERE tag_id = ?`, tagID).Scan(&n)
	if err != nil {
		return 0, wrapDB("count facilities for tag", err)
	}
	return n, nil
}
