package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/caterdir/caterdir-server/internal/auth"
	"github.com/caterdir/caterdir-server/internal/config"
	"github.com/caterdir/caterdir-server/internal/logger"
	"github.com/caterdir/caterdir-server/internal/service"
)

// ProvideServices provides the aggregated business services.
func ProvideServices(i do.Injector) (*service.Services, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokens := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.New(storeHandle.Store, tokens, log.Logger), nil
}

// Bootstrap marks that first-start initialization has run.
type Bootstrap struct{}

// ProvideBootstrap creates the admin account on an empty users table.
func ProvideBootstrap(i do.Injector) (*Bootstrap, error) {
	cfg := do.MustInvoke[*config.Config](i)
	services := do.MustInvoke[*service.Services](i)

	err := services.Auth.Bootstrap(context.Background(), cfg.Auth.BootstrapUsername, cfg.Auth.BootstrapPassword)
	if err != nil {
		return nil, err
	}

	return &Bootstrap{}, nil
}
