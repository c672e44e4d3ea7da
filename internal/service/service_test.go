package service

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/caterdir/caterdir-server/internal/auth"
	"github.com/caterdir/caterdir-server/internal/domain"
	"github.com/caterdir/caterdir-server/internal/store/sqlite"
)

func newTestServices(t *testing.T) *Services {
	t.Helper()
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	st, err := sqlite.Open(filepath.Join(dir, "test.db"), logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	tokens, err := auth.NewTokenService([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}

	return New(st, tokens, logger)
}

// createTestLocation creates a location through the service.
func createTestLocation(t *testing.T, svc *Services, city string) *domain.Location {
	t.Helper()
	l, err := svc.Location.Create(context.Background(), CreateLocationRequest{
		City:        city,
		Address:     "Hauptstrasse 1",
		ZipCode:     "10115",
		CountryCode: "DE",
	})
	if err != nil {
		t.Fatalf("create location: %v", err)
	}
	return l
}

// createTestFacility creates a facility through the service.
func createTestFacility(t *testing.T, svc *Services, name string, locationID int64) *domain.Facility {
	t.Helper()
	f, err := svc.Facility.Create(context.Background(), CreateFacilityRequest{
		Name:       name,
		LocationID: locationID,
	})
	if err != nil {
		t.Fatalf("create facility: %v", err)
	}
	return f
}
