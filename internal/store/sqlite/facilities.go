package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/caterdir/caterdir-server/internal/domain"
	"github.com/caterdir/caterdir-server/internal/errors"
	"github.com/caterdir/caterdir-server/internal/store"
)

// facilityColumns is the ordered list of columns selected in facility queries.
// Must match the scan order in scanFacility.
const facilityColumns = `f.id, f.name, f.location_id, f.metadata, f.creation_date`

// facilityUpdatable lists the columns eligible for partial updates.
var facilityUpdatable = []string{"name", "location_id", "metadata"}

// scanFacility scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.Facility. Location and Tags are left unpopulated.
func scanFacility(scanner interface{ Scan(dest ...any) error }) (*domain.Facility, error) {
	var f domain.Facility

	var (
		metadata     string
		creationDate string
	)

	err := scanner.Scan(
		&f.ID,
		&f.Name,
		&f.LocationID,
		&metadata,
		&creationDate,
	)
	if err != nil {
		return nil, err
	}

	if metadata != "" {
		if err := json.Unmarshal([]byte(metadata), &f.Metadata); err != nil {
			return nil, err
		}
	}

	f.CreationDate, err = parseTime(creationDate)
	if err != nil {
		return nil, err
	}

	return &f, nil
}

// encodeMetadata serializes the free-form metadata blob for storage.
func encodeMetadata(m map[string]any) (string, error) {
	if len(m) == 0 {
		return "", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CreateFacility inserts a new facility and assigns its generated ID.
// Tag associations are written separately via SetFacilityTags.
func (s *Store) CreateFacility(ctx context.Context, f *domain.Facility) error {
	metadata, err := encodeMetadata(f.Metadata)
	if err != nil {
		return wrapDB("create facility", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO facilities (name, location_id, metadata, creation_date)
		VALUES (?, ?, ?, ?)`,
		f.Name,
		f.LocationID,
		metadata,
		formatTime(f.CreationDate),
	)
	if err != nil {
		return wrapDB("create facility", err)
	}

	f.ID, err = res.LastInsertId()
	if err != nil {
		return wrapDB("create facility", err)
	}
	return nil
}

// GetFacility retrieves a facility by ID with its location and tags populated.
// Returns errors.ErrNotFound if the facility does not exist.
func (s *Store) GetFacility(ctx context.Context, id int64) (*domain.Facility, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+facilityColumns+` FROM facilities f WHERE f.id = ?`, id)

	f, err := scanFacility(row)
	if err == sql.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		return nil, wrapDB("get facility", err)
	}

	if err := s.populateFacility(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// populateFacility attaches the location record and tag set to a scanned row.
func (s *Store) populateFacility(ctx context.Context, f *domain.Facility) error {
	location, err := s.GetLocation(ctx, f.LocationID)
	if err != nil && !errors.Is(err, errors.ErrNotFound) {
		return err
	}
	f.Location = location

	tags, err := s.GetFacilityTags(ctx, f.ID)
	if err != nil {
		return err
	}
	f.Tags = tags
	return nil
}

// ListFacilities returns one page of facilities ordered by ID, with
// relationships populated.
func (s *Store) ListFacilities(ctx context.Context, limit, offset int) ([]*domain.Facility, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+facilityColumns+` FROM facilities f ORDER BY f.id LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, wrapDB("list facilities", err)
	}

	facilities, err := collectFacilities(rows)
	if err != nil {
		return nil, wrapDB("list facilities", err)
	}

	for _, f := range facilities {
		if err := s.populateFacility(ctx, f); err != nil {
			return nil, err
		}
	}
	return facilities, nil
}

// CountFacilities returns the total number of facilities.
func (s *Store) CountFacilities(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM facilities`).Scan(&n); err != nil {
		return 0, wrapDB("count facilities", err)
	}
	return n, nil
}

// collectFacilities drains a result set into facility records.
func collectFacilities(rows *sql.Rows) ([]*domain.Facility, error) {
	defer rows.Close()

	facilities := []*domain.Facility{}
	for rows.Next() {
		f, err := scanFacility(rows)
		if err != nil {
			return nil, err
		}
		facilities = append(facilities, f)
	}
	return facilities, rows.Err()
}

// buildFacilityFilter assembles the WHERE clause and bind parameters for a
// facility search. With no query every row matches. With a query but no
// filter fields, all supported fields are matched OR-combined; explicit
// filter fields use the requested operator. The same clause feeds both the
// page query and the count query so the two can never diverge.
func buildFacilityFilter(params store.SearchParams) (string, []any) {
	if params.Query == "" {
		return "1=1", nil
	}

	fields := params.Filters
	operator := params.EffectiveOperator()
	if len(fields) == 0 {
		fields = []string{store.FilterCity, store.FilterTag, store.FilterFacilityName}
		operator = store.OperatorOr
	}

	pattern := "%" + strings.ToLower(params.Query) + "%"

	predicates := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields))
	for _, field := range fields {
		switch field {
		case store.FilterCity:
			predicates = append(predicates, `LOWER(l.city) LIKE ?`)
		case store.FilterFacilityName:
			predicates = append(predicates, `LOWER(f.name) LIKE ?`)
		case store.FilterTag:
			predicates = append(predicates, `EXISTS (
				SELECT 1 FROM facility_tags ft
				JOIN tags t ON t.id = ft.tag_id
				WHERE ft.facility_id = f.id AND LOWER(t.name) LIKE ?)`)
		}
		args = append(args, pattern)
	}

	return "(" + strings.Join(predicates, " "+operator+" ") + ")", args
}

// SearchFacilities runs the filtered page query and its structurally
// identical count query, returning matching rows plus the total count.
func (s *Store) SearchFacilities(ctx context.Context, params store.SearchParams, limit, offset int) ([]*domain.Facility, int, error) {
	where, args := buildFacilityFilter(params)

	const fromClause = ` FROM facilities f JOIN locations l ON l.id = f.location_id WHERE `

	var total int
	countArgs := make([]any, len(args))
	copy(countArgs, args)
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*)`+fromClause+where, countArgs...).Scan(&total)
	if err != nil {
		return nil, 0, wrapDB("count facility search", err)
	}

	pageArgs := append(args, limit, offset)
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+facilityColumns+fromClause+where+` ORDER BY f.id LIMIT ? OFFSET ?`,
		pageArgs...)
	if err != nil {
		return nil, 0, wrapDB("search facilities", err)
	}

	facilities, err := collectFacilities(rows)
	if err != nil {
		return nil, 0, wrapDB("search facilities", err)
	}

	for _, f := range facilities {
		if err := s.populateFacility(ctx, f); err != nil {
			return nil, 0, err
		}
	}
	return facilities, total, nil
}

// UpdateFacility applies a partial field update.
func (s *Store) UpdateFacility(ctx context.Context, id int64, fields map[string]any) error {
	if m, ok := fields["metadata"]; ok {
		blob, isMap := m.(map[string]any)
		if !isMap {
			return errors.Validation("metadata must be an object")
		}
		encoded, err := encodeMetadata(blob)
		if err != nil {
			return wrapDB("update facility", err)
		}
		fields["metadata"] = encoded
	}
	return s.partialUpdate(ctx, "facilities", "update facility", id, facilityUpdatable, fields)
}

// DeleteFacility removes a facility row together with its tag and employee
// join rows, in one transaction. The join rows are deleted explicitly rather
// than left to the foreign-key cascade, which only fires on connections that
// have the foreign_keys pragma applied. There is deliberately no
// dependent-resource guard here, unlike location and tag deletion.
func (s *Store) DeleteFacility(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapDB("delete facility", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM facility_tags WHERE facility_id = ?`, id); err != nil {
		return wrapDB("delete facility", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM employee_facilities WHERE facility_id = ?`, id); err != nil {
		return wrapDB("delete facility", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM facilities WHERE id = ?`, id)
	if err != nil {
		return wrapDB("delete facility", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return wrapDB("delete facility", err)
	}
	if affected == 0 {
		return errors.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return wrapDB("delete facility", err)
	}
	return nil
}

// SetFacilityTags replaces all tag associations for a facility in a single
// transaction. It deletes existing facility_tags rows and inserts the new set.
func (s *Store) SetFacilityTags(ctx context.Context, facilityID int64, tagIDs []int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapDB("set facility tags", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM facility_tags WHERE facility_id = ?`, facilityID); err != nil {
		return wrapDB("set facility tags", err)
	}

	for _, tagID := range tagIDs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO facility_tags (facility_id, tag_id)
			VALUES (?, ?)`,
			facilityID,
			tagID,
		)
		if err != nil {
			return wrapDB("set facility tags", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return wrapDB("set facility tags", err)
	}
	return nil
}

// GetFacilityTags returns the tags associated with a facility, ordered by name.
func (s *Store) GetFacilityTags(ctx context.Context, facilityID int64) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.name FROM tags t
		JOIN facility_tags ft ON ft.tag_id = t.id
		WHERE ft.facility_id = ?
		ORDER BY t.name`, facilityID)
	if err != nil {
		return nil, wrapDB("get facility tags", err)
	}
	defer rows.Close()

	tags := []*domain.Tag{}
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, wrapDB("get facility tags", err)
		}
		tags = append(tags, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDB("get facility tags", err)
	}

	return tags, nil
}
