package sqlite

import (
	"context"
	"database/sql"

	"github.com/caterdir/caterdir-server/internal/domain"
	"github.com/caterdir/caterdir-server/internal/errors"
)

// locationColumns is the ordered list of columns selected in location queries.
// Must match the scan order in scanLocation.
const locationColumns = `id, city, address, zip_code, country_code, phone_number`

// locationUpdatable lists the columns eligible for partial updates, in the
// order they appear in generated SET clauses.
var locationUpdatable = []string{"city", "address", "zip_code", "country_code", "phone_number"}

// scanLocation scans a sql.Row (or sql.Rows via its Scan method) into a domain.Location.
func scanLocation(scanner interface{ Scan(dest ...any) error }) (*domain.Location, error) {
	var l domain.Location
	err := scanner.Scan(
		&l.ID,
		&l.City,
		&l.Address,
		&l.ZipCode,
		&l.CountryCode,
		&l.PhoneNumber,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// CreateLocation inserts a new location and assigns its generated ID.
func (s *Store) CreateLocation(ctx context.Context, l *domain.Location) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO locations (city, address, zip_code, country_code, phone_number)
		VALUES (?, ?, ?, ?, ?)`,
		l.City,
		l.Address,
		l.ZipCode,
		l.CountryCode,
		l.PhoneNumber,
	)
	if err != nil {
		return wrapDB("create location", err)
	}

	l.ID, err = res.LastInsertId()
	if err != nil {
		return wrapDB("create location", err)
	}
	return nil
}

// GetLocation retrieves a location by ID.
// Returns errors.ErrNotFound if the location does not exist.
func (s *Store) GetLocation(ctx context.Context, id int64) (*domain.Location, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE id = ?`, id)

	l, err := scanLocation(row)
	if err == sql.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		return nil, wrapDB("get location", err)
	}
	return l, nil
}

// ListLocations returns one page of locations ordered by ID.
func (s *Store) ListLocations(ctx context.Context, limit, offset int) ([]*domain.Location, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+locationColumns+` FROM locations ORDER BY id LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, wrapDB("list locations", err)
	}
	defer rows.Close()

	locations := []*domain.Location{}
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, wrapDB("list locations", err)
		}
		locations = append(locations, l)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDB("list locations", err)
	}

	return locations, nil
}

// CountLocations returns the total number of locations.
func (s *Store) CountLocations(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM locations`).Scan(&n); err != nil {
		return 0, wrapDB("count locations", err)
	}
	return n, nil
}

// UpdateLocation applies a partial field update. Only whitelisted columns
// present in fields participate. Returns errors.ErrNotFound for unknown IDs
// and errors.ErrInvalidOperation when no eligible field is present.
func (s *Store) UpdateLocation(ctx context.Context, id int64, fields map[string]any) error {
	return s.partialUpdate(ctx, "locations", "update location", id, locationUpdatable, fields)
}

// DeleteLocation removes a location row.
// Usage guards are enforced by the service layer, not here.
func (s *Store) DeleteLocation(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM locations WHERE id = ?`, id)
	if err != nil {
		return wrapDB("delete location", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return wrapDB("delete location", err)
	}
	if affected == 0 {
		return errors.ErrNotFound
	}
	return nil
}

// CountFacilitiesForLocation returns how many facilities reference a location.
func (s *Store) CountFacilitiesForLocation(ctx context.Context, locationID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM facilities WHERE location_id = ?`, locationID).Scan(&n)
	if err != nil {
		return 0, wrapDB("count facilities for location", err)
	}
	return n, nil
}
