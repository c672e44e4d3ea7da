package providers

import (
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/caterdir/caterdir-server/internal/auth"
	"github.com/caterdir/caterdir-server/internal/config"
	"github.com/caterdir/caterdir-server/internal/logger"
)

// AuthSecret wraps the JWT signing secret bytes.
type AuthSecret []byte

// ProvideAuthSecret loads the JWT secret from configuration, or generates
// and persists one next to the database.
func ProvideAuthSecret(i do.Injector) (AuthSecret, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if len(cfg.Auth.JWTSecret) > 0 {
		return AuthSecret(cfg.Auth.JWTSecret), nil
	}

	secret, err := auth.LoadOrGenerateSecret(filepath.Dir(cfg.Database.Path))
	if err != nil {
		return nil, err
	}
	cfg.Auth.JWTSecret = secret

	log.Info("Authentication secret loaded", "token_duration", cfg.Auth.TokenDuration)

	return AuthSecret(secret), nil
}

// ProvideTokenService provides the JWT token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	secret := do.MustInvoke[AuthSecret](i)

	return auth.NewTokenService([]byte(secret), cfg.Auth.TokenDuration)
}
