package sqlite

import (
	"context"
	"database/sql"

	"github.com/caterdir/caterdir-server/internal/domain"
	"github.com/caterdir/caterdir-server/internal/errors"
)

// employeeColumns is the ordered list of columns selected in employee queries.
// Must match the scan order in scanEmployee.
const employeeColumns = `id, name, address, phone, email, created_at`

// employeeUpdatable lists the columns eligible for partial updates.
var employeeUpdatable = []string{"name", "address", "phone", "email"}

// scanEmployee scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.Employee. Facilities are left unpopulated.
func scanEmployee(scanner interface{ Scan(dest ...any) error }) (*domain.Employee, error) {
	var e domain.Employee
	var createdAt string

	err := scanner.Scan(
		&e.ID,
		&e.Name,
		&e.Address,
		&e.Phone,
		&e.Email,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	e.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// CreateEmployee inserts a new employee and assigns its generated ID.
// Returns errors.ErrDuplicate on a taken email address. Facility assignments
// are written separately via SetEmployeeFacilities.
func (s *Store) CreateEmployee(ctx context.Context, e *domain.Employee) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO employees (name, address, phone, email, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		e.Name,
		e.Address,
		e.Phone,
		e.Email,
		formatTime(e.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.ErrDuplicate.WithCause(err)
		}
		return wrapDB("create employee", err)
	}

	e.ID, err = res.LastInsertId()
	if err != nil {
		return wrapDB("create employee", err)
	}
	return nil
}

// GetEmployee retrieves an employee by ID with facility assignments populated.
// Returns errors.ErrNotFound if the employee does not exist.
func (s *Store) GetEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id = ?`, id)

	e, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		return nil, wrapDB("get employee", err)
	}

	e.Facilities, err = s.GetEmployeeFacilities(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// GetEmployeeByEmail retrieves an employee by exact email address.
// Returns errors.ErrNotFound if no such employee exists.
func (s *Store) GetEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE email = ?`, email)

	e, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		return nil, wrapDB("get employee by email", err)
	}
	return e, nil
}

// ListEmployees returns one page of employees ordered by ID, with facility
// assignments populated.
func (s *Store) ListEmployees(ctx context.Context, limit, offset int) ([]*domain.Employee, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+employeeColumns+` FROM employees ORDER BY id LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, wrapDB("list employees", err)
	}
	defer rows.Close()

	employees := []*domain.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, wrapDB("list employees", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDB("list employees", err)
	}

	for _, e := range employees {
		e.Facilities, err = s.GetEmployeeFacilities(ctx, e.ID)
		if err != nil {
			return nil, err
		}
	}
	return employees, nil
}

// CountEmployees returns the total number of employees.
func (s *Store) CountEmployees(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees`).Scan(&n); err != nil {
		return 0, wrapDB("count employees", err)
	}
	return n, nil
}

// UpdateEmployee applies a partial field update.
// Returns errors.ErrDuplicate if the new email is taken.
func (s *Store) UpdateEmployee(ctx context.Context, id int64, fields map[string]any) error {
	return s.partialUpdate(ctx, "employees", "update employee", id, employeeUpdatable, fields)
}

// DeleteEmployee removes an employee row and its facility assignments in one
// transaction. The assignments are deleted explicitly so removal does not
// depend on the connection's foreign_keys pragma.
func (s *Store) DeleteEmployee(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapDB("delete employee", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM employee_facilities WHERE employee_id = ?`, id); err != nil {
		return wrapDB("delete employee", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)
	if err != nil {
		return wrapDB("delete employee", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return wrapDB("delete employee", err)
	}
	if affected == 0 {
		return errors.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return wrapDB("delete employee", err)
	}
	return nil
}

// SetEmployeeFacilities replaces all facility assignments for an employee in
// a single transaction.
func (s *Store) SetEmployeeFacilities(ctx context.Context, employeeID int64, facilityIDs []int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapDB("set employee facilities", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM employee_facilities WHERE employee_id = ?`, employeeID); err != nil {
		return wrapDB("set employee facilities", err)
	}

	for _, facilityID := range facilityIDs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO employee_facilities (employee_id, facility_id)
			VALUES (?, ?)`,
			employeeID,
			facilityID,
		)
		if err != nil {
			return wrapDB("set employee facilities", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return wrapDB("set employee facilities", err)
	}
	return nil
}

// GetEmployeeFacilities returns the facilities assigned to an employee,
// ordered by ID. Facility locations and tags are not populated here.
func (s *Store) GetEmployeeFacilities(ctx context.Context, employeeID int64) ([]*domain.Facility, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+facilityColumns+` FROM facilities f
		JOIN employee_facilities ef ON ef.facility_id = f.id
		WHERE ef.employee_id = ?
		ORDER BY f.id`, employeeID)
	if err != nil {
		return nil, wrapDB("get employee facilities", err)
	}

	facilities, err := collectFacilities(rows)
	if err != nil {
		return nil, wrapDB("get employee facilities", err)
	}
	return facilities, nil
}
