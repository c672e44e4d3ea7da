// Package di provides dependency injection configuration for the CaterDir
// server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/caterdir/caterdir-server/internal/auth"
	"github.com/caterdir/caterdir-server/internal/config"
	"github.com/caterdir/caterdir-server/internal/di/providers"
	"github.com/caterdir/caterdir-server/internal/logger"
	"github.com/caterdir/caterdir-server/internal/metrics"
	"github.com/caterdir/caterdir-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideMetrics)

	// Auth layer
	do.Provide(injector, providers.ProvideAuthSecret)
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideServices)
	do.Provide(injector, providers.ProvideBootstrap)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns once the server is running.
func Bootstrap(injector *do.RootScope) error {
	invocations := []func() error{
		func() error { _, err := do.Invoke[*config.Config](injector); return err },
		func() error { _, err := do.Invoke[*logger.Logger](injector); return err },
		func() error { _, err := do.Invoke[*providers.StoreHandle](injector); return err },
		func() error { _, err := do.Invoke[*metrics.Metrics](injector); return err },
		func() error { _, err := do.Invoke[providers.AuthSecret](injector); return err },
		func() error { _, err := do.Invoke[*auth.TokenService](injector); return err },
		func() error { _, err := do.Invoke[*service.Services](injector); return err },
		func() error { _, err := do.Invoke[*providers.Bootstrap](injector); return err },
		func() error { _, err := do.Invoke[*providers.HTTPServerHandle](injector); return err },
	}

	for _, invoke := range invocations {
		if err := invoke(); err != nil {
			return err
		}
	}
	return nil
}
