// Package service contains the business logic between the HTTP layer and the
// store. Services validate and sanitize input, enforce business rules, and
// translate store errors into resource-specific domain errors.
package service

import (
	"log/slog"

	"github.com/caterdir/caterdir-server/internal/auth"
	"github.com/caterdir/caterdir-server/internal/store"
)

// Services aggregates all business services for injection into the server.
type Services struct {
	Auth     *AuthService
	Location *LocationService
	Tag      *TagService
	Facility *FacilityService
	Employee *EmployeeService
}

// New wires up all services against a single store.
func New(st store.Store, tokens *auth.TokenService, logger *slog.Logger) *Services {
	return &Services{
		Auth:     NewAuthService(st, tokens, logger),
		Location: NewLocationService(st, logger),
		Tag:      NewTagService(st, logger),
		Facility: NewFacilityService(st, logger),
		Employee: NewEmployeeService(st, logger),
	}
}
