// Package store defines the persistence interface for the CaterDir server.
// The SQLite implementation lives in the sqlite subpackage; services depend
// only on the interfaces here.
package store

import (
	"context"

	"github.com/caterdir/caterdir-server/internal/domain"
)

// UserStore persists API accounts.
type UserStore interface {
	CreateUser(ctx context.Context, u *domain.User) error
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	CountUsers(ctx context.Context) (int, error)
}

// LocationStore persists locations.
type LocationStore interface {
	CreateLocation(ctx context.Context, l *domain.Location) error
	GetLocation(ctx context.Context, id int64) (*domain.Location, error)
	ListLocations(ctx context.Context, limit, offset int) ([]*domain.Location, error)
	CountLocations(ctx context.Context) (int, error)
	UpdateLocation(ctx context.Context, id int64, fields map[string]any) error
	DeleteLocation(ctx context.Context, id int64) error
	CountFacilitiesForLocation(ctx context.Context, locationID int64) (int, error)
}

// TagStore persists tags and their facility associations.
type TagStore interface {
	CreateTag(ctx context.Context, t *domain.Tag) error
	GetTag(ctx context.Context, id int64) (*domain.Tag, error)
	GetTagByName(ctx context.Context, name string) (*domain.Tag, error)
	FindOrCreateTagByName(ctx context.Context, name string) (*domain.Tag, bool, error)
	ListTags(ctx context.Context, limit, offset int) ([]*domain.Tag, error)
	CountTags(ctx context.Context) (int, error)
	UpdateTag(ctx context.Context, id int64, name string) error
	DeleteTag(ctx context.Context, id int64) error
	CountFacilitiesForTag(ctx context.Context, tagID int64) (int, error)
}

// FacilityStore persists facilities, their tag set, and search queries.
type FacilityStore interface {
	CreateFacility(ctx context.Context, f *domain.Facility) error
	GetFacility(ctx context.Context, id int64) (*domain.Facility, error)
	ListFacilities(ctx context.Context, limit, offset int) ([]*domain.Facility, error)
	CountFacilities(ctx context.Context) (int, error)
	// SearchFacilities runs the filtered list query and its structurally
	// identical count query, returning matching rows plus the total count.
	SearchFacilities(ctx context.Context, params SearchParams, limit, offset int) ([]*domain.Facility, int, error)
	UpdateFacility(ctx context.Context, id int64, fields map[string]any) error
	DeleteFacility(ctx context.Context, id int64) error
	// SetFacilityTags replaces the facility's tag association set.
	SetFacilityTags(ctx context.Context, facilityID int64, tagIDs []int64) error
	GetFacilityTags(ctx context.Context, facilityID int64) ([]*domain.Tag, error)
}

// EmployeeStore persists employees and their facility assignments.
type EmployeeStore interface {
	CreateEmployee(ctx context.Context, e *domain.Employee) error
	GetEmployee(ctx context.Context, id int64) (*domain.Employee, error)
	GetEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error)
	ListEmployees(ctx context.Context, limit, offset int) ([]*domain.Employee, error)
	CountEmployees(ctx context.Context) (int, error)
	UpdateEmployee(ctx context.Context, id int64, fields map[string]any) error
	DeleteEmployee(ctx context.Context, id int64) error
	SetEmployeeFacilities(ctx context.Context, employeeID int64, facilityIDs []int64) error
	GetEmployeeFacilities(ctx context.Context, employeeID int64) ([]*domain.Facility, error)
}

// Store is the full persistence surface, implemented by sqlite.Store.
type Store interface {
	UserStore
	LocationStore
	TagStore
	FacilityStore
	EmployeeStore

	Ping(ctx context.Context) error
	Close() error
}
