package service

import (
	"context"
	"testing"

	"github.com/caterdir/caterdir-server/internal/errors"
)

func TestEmployeeCreate_WithFacilities(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	loc := createTestLocation(t, svc, "Berlin")
	f := createTestFacility(t, svc, "Canteen North", loc.ID)

	e, err := svc.Employee.Create(ctx, CreateEmployeeRequest{
		Name:        "Alex Schmidt",
		Email:       "alex@example.com",
		Phone:       "+49 30 654321",
		FacilityIDs: []int64{f.ID, f.ID}, // duplicates collapse
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if e.Phone != "+4930654321" {
		t.Errorf("Phone: got %q", e.Phone)
	}
	if len(e.Facilities) != 1 || e.Facilities[0].ID != f.ID {
		t.Fatalf("Facilities: got %v, want [%d]", e.Facilities, f.ID)
	}
}

func TestEmployeeCreate_DuplicateEmail(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	if _, err := svc.Employee.Create(ctx, CreateEmployeeRequest{
		Name:  "Alex",
		Email: "alex@example.com",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := svc.Employee.Create(ctx, CreateEmployeeRequest{
		Name:  "Other Alex",
		Email: "alex@example.com",
	})
	if !errors.Is(err, errors.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestEmployeeCreate_BadEmail(t *testing.T) {
	svc := newTestServices(t)

	_, err := svc.Employee.Create(context.Background(), CreateEmployeeRequest{
		Name:  "Alex",
		Email: "not-an-email",
	})
	if !errors.Is(err, errors.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestEmployeeCreate_UnknownFacility(t *testing.T) {
	svc := newTestServices(t)

	_, err := svc.Employee.Create(context.Background(), CreateEmployeeRequest{
		Name:        "Alex",
		Email:       "alex@example.com",
		FacilityIDs: []int64{9999},
	})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEmployeeUpdate_EmailExcludesSelf(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	e, err := svc.Employee.Create(ctx, CreateEmployeeRequest{
		Name:  "Alex",
		Email: "alex@example.com",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Re-submitting the same email on the same employee is fine.
	email := "alex@example.com"
	if _, err := svc.Employee.Update(ctx, e.ID, UpdateEmployeeRequest{Email: &email}); err != nil {
		t.Fatalf("Update with own email: %v", err)
	}

	// Taking another employee's email is not.
	if _, err := svc.Employee.Create(ctx, CreateEmployeeRequest{
		Name:  "Kim",
		Email: "kim@example.com",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	taken := "kim@example.com"
	_, err = svc.Employee.Update(ctx, e.ID, UpdateEmployeeRequest{Email: &taken})
	if !errors.Is(err, errors.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestEmployeeUpdate_ReplacesFacilities(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	loc := createTestLocation(t, svc, "Berlin")
	north := createTestFacility(t, svc, "Canteen North", loc.ID)
	south := createTestFacility(t, svc, "Canteen South", loc.ID)

	e, err := svc.Employee.Create(ctx, CreateEmployeeRequest{
		Name:        "Alex",
		Email:       "alex@example.com",
		FacilityIDs: []int64{north.ID},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Employee.Update(ctx, e.ID, UpdateEmployeeRequest{
		FacilityIDs: []int64{south.ID},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(updated.Facilities) != 1 || updated.Facilities[0].ID != south.ID {
		t.Fatalf("Facilities: got %v, want [%d]", updated.Facilities, south.ID)
	}

	// Empty list clears the assignments.
	updated, err = svc.Employee.Update(ctx, e.ID, UpdateEmployeeRequest{
		FacilityIDs: []int64{},
	})
	if err != nil {
		t.Fatalf("Update (clear): %v", err)
	}
	if len(updated.Facilities) != 0 {
		t.Fatalf("expected no facilities, got %v", updated.Facilities)
	}
}

func TestEmployeeUpdate_NoFields(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	e, err := svc.Employee.Create(ctx, CreateEmployeeRequest{
		Name:  "Alex",
		Email: "alex@example.com",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = svc.Employee.Update(ctx, e.ID, UpdateEmployeeRequest{})
	if !errors.Is(err, errors.ErrInvalidOperation) {
		t.Fatalf("expected ErrInvalidOperation, got %v", err)
	}
}

func TestEmployeeDelete(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	e, err := svc.Employee.Create(ctx, CreateEmployeeRequest{
		Name:  "Alex",
		Email: "alex@example.com",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Employee.Delete(ctx, e.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, err = svc.Employee.Get(ctx, e.ID)
	if !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
