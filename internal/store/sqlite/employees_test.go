package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/caterdir/caterdir-server/internal/domain"
	"github.com/caterdir/caterdir-server/internal/errors"
)

// makeTestEmployee creates a domain.Employee with sensible defaults for testing.
func makeTestEmployee(name, email string) *domain.Employee {
	return &domain.Employee{
		Name:      name,
		Address:   "Nebenstrasse 2",
		Phone:     "+4930654321",
		Email:     email,
		CreatedAt: time.Now(),
	}
}

func TestCreateAndGetEmployee(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e := makeTestEmployee("Alex Schmidt", "alex@example.com")
	if err := s.CreateEmployee(ctx, e); err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}
	if e.ID == 0 {
		t.Fatal("expected non-zero ID after create")
	}

	got, err := s.GetEmployee(ctx, e.ID)
	if err != nil {
		t.Fatalf("GetEmployee: %v", err)
	}
	if got.Name != "Alex Schmidt" {
		t.Errorf("Name: got %q, want %q", got.Name, "Alex Schmidt")
	}
	if got.Email != "alex@example.com" {
		t.Errorf("Email: got %q, want %q", got.Email, "alex@example.com")
	}
	if got.Facilities == nil || len(got.Facilities) != 0 {
		t.Errorf("Facilities: got %v, want empty non-nil slice", got.Facilities)
	}
	if got.CreatedAt.Unix() != e.CreatedAt.Unix() {
		t.Errorf("CreatedAt: got %v, want %v", got.CreatedAt, e.CreatedAt)
	}
}

func TestCreateEmployee_DuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateEmployee(ctx, makeTestEmployee("Alex", "alex@example.com")); err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}

	err := s.CreateEmployee(ctx, makeTestEmployee("Other Alex", "alex@example.com"))
	if !errors.Is(err, errors.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestGetEmployeeByEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e := makeTestEmployee("Alex Schmidt", "alex@example.com")
	if err := s.CreateEmployee(ctx, e); err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}

	got, err := s.GetEmployeeByEmail(ctx, "alex@example.com")
	if err != nil {
		t.Fatalf("GetEmployeeByEmail: %v", err)
	}
	if got.ID != e.ID {
		t.Errorf("ID: got %d, want %d", got.ID, e.ID)
	}

	_, err = s.GetEmployeeByEmail(ctx, "nobody@example.com")
	if !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListAndCountEmployees(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateEmployee(ctx, makeTestEmployee("A", "a@example.com")); err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}
	if err := s.CreateEmployee(ctx, makeTestEmployee("B", "b@example.com")); err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}

	got, err := s.ListEmployees(ctx, 10, 0)
	if err != nil {
		t.Fatalf("ListEmployees: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 employees, got %d", len(got))
	}
	if got[0].Name != "A" {
		t.Errorf("item 0: got name %q, want %q", got[0].Name, "A")
	}

	n, err := s.CountEmployees(ctx)
	if err != nil {
		t.Fatalf("CountEmployees: %v", err)
	}
	if n != 2 {
		t.Errorf("expected count 2, got %d", n)
	}
}

func TestUpdateEmployee(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e := makeTestEmployee("Alex Schmidt", "alex@example.com")
	if err := s.CreateEmployee(ctx, e); err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}

	err := s.UpdateEmployee(ctx, e.ID, map[string]any{
		"name":  "Alexandra Schmidt",
		"email": "alexandra@example.com",
	})
	if err != nil {
		t.Fatalf("UpdateEmployee: %v", err)
	}

	got, err := s.GetEmployee(ctx, e.ID)
	if err != nil {
		t.Fatalf("GetEmployee: %v", err)
	}
	if got.Name != "Alexandra Schmidt" {
		t.Errorf("Name: got %q, want %q", got.Name, "Alexandra Schmidt")
	}
	if got.Email != "alexandra@example.com" {
		t.Errorf("Email: got %q, want %q", got.Email, "alexandra@example.com")
	}
	if got.Phone != "+4930654321" {
		t.Errorf("Phone: got %q, want %q", got.Phone, "+4930654321")
	}
}

func TestUpdateEmployee_DuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateEmployee(ctx, makeTestEmployee("A", "a@example.com")); err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}
	e := makeTestEmployee("B", "b@example.com")
	if err := s.CreateEmployee(ctx, e); err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}

	err := s.UpdateEmployee(ctx, e.ID, map[string]any{"email": "a@example.com"})
	if !errors.Is(err, errors.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestDeleteEmployee_RemovesAssignments(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	loc := makeTestLocation("Berlin")
	if err := s.CreateLocation(ctx, loc); err != nil {
		t.Fatalf("CreateLocation: %v", err)
	}
	f := insertTestFacility(t, s, "Canteen North", loc.ID)

	e := makeTestEmployee("Alex", "alex@example.com")
	if err := s.CreateEmployee(ctx, e); err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}
	if err := s.SetEmployeeFacilities(ctx, e.ID, []int64{f.ID}); err != nil {
		t.Fatalf("SetEmployeeFacilities: %v", err)
	}

	if err := s.DeleteEmployee(ctx, e.ID); err != nil {
		t.Fatalf("DeleteEmployee: %v", err)
	}

	_, err := s.GetEmployee(ctx, e.ID)
	if !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// The facility survives the employee's deletion.
	if _, err := s.GetFacility(ctx, f.ID); err != nil {
		t.Fatalf("GetFacility after employee delete: %v", err)
	}
}

func TestSetAndGetEmployeeFacilities(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	loc := makeTestLocation("Berlin")
	if err := s.CreateLocation(ctx, loc); err != nil {
		t.Fatalf("CreateLocation: %v", err)
	}
	north := insertTestFacility(t, s, "Canteen North", loc.ID)
	south := insertTestFacility(t, s, "Canteen South", loc.ID)

	e := makeTestEmployee("Alex", "alex@example.com")
	if err := s.CreateEmployee(ctx, e); err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}

	if err := s.SetEmployeeFacilities(ctx, e.ID, []int64{north.ID, south.ID}); err != nil {
		t.Fatalf("SetEmployeeFacilities: %v", err)
	}

	got, err := s.GetEmployeeFacilities(ctx, e.ID)
	if err != nil {
		t.Fatalf("GetEmployeeFacilities: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 facilities, got %d", len(got))
	}
	if got[0].ID != north.ID || got[1].ID != south.ID {
		t.Errorf("facilities: got [%d %d], want [%d %d]", got[0].ID, got[1].ID, north.ID, south.ID)
	}

	// Replace with a single facility to verify old assignments are removed.
	if err := s.SetEmployeeFacilities(ctx, e.ID, []int64{south.ID}); err != nil {
		t.Fatalf("SetEmployeeFacilities (replace): %v", err)
	}
	got, err = s.GetEmployeeFacilities(ctx, e.ID)
	if err != nil {
		t.Fatalf("GetEmployeeFacilities after replace: %v", err)
	}
	if len(got) != 1 || got[0].ID != south.ID {
		t.Fatalf("expected [%d] after replace, got %v", south.ID, got)
	}
}

func TestFacilityDelete_CascadesEmployeeAssignments(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	loc := makeTestLocation("Berlin")
	if err := s.CreateLocation(ctx, loc); err != nil {
		t.Fatalf("CreateLocation: %v", err)
	}
	f := insertTestFacility(t, s, "Canteen North", loc.ID)

	e := makeTestEmployee("Alex", "alex@example.com")
	if err := s.CreateEmployee(ctx, e); err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}
	if err := s.SetEmployeeFacilities(ctx, e.ID, []int64{f.ID}); err != nil {
		t.Fatalf("SetEmployeeFacilities: %v", err)
	}

	// Facility deletion has no dependency guard; assignments just go away.
	if err := s.DeleteFacility(ctx, f.ID); err != nil {
		t.Fatalf("DeleteFacility: %v", err)
	}

	got, err := s.GetEmployeeFacilities(ctx, e.ID)
	if err != nil {
		t.Fatalf("GetEmployeeFacilities: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no assignments after facility delete, got %d", len(got))
	}
}
