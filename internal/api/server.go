// Package api exposes the HTTP surface of the CaterDir server: JWT-protected
// CRUD for facilities, locations, tags, and employees, plus login, health,
// and metrics endpoints.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/caterdir/caterdir-server/internal/config"
	"github.com/caterdir/caterdir-server/internal/metrics"
	"github.com/caterdir/caterdir-server/internal/ratelimit"
	"github.com/caterdir/caterdir-server/internal/service"
	"github.com/caterdir/caterdir-server/internal/store"
)

const apiVersion = "1.0.0"

// Server wires the router, the OpenAPI layer, and the service layer together.
type Server struct {
	store    store.Store
	services *service.Services
	router   chi.Router
	api      huma.API
	logger   *slog.Logger

	// Throttles login attempts per client IP.
	authRateLimiter *ratelimit.KeyedRateLimiter
}

// NewServer builds the HTTP stack: chi middleware, CORS, metrics, the huma
// API with its bearer security scheme, and all route registrations.
func NewServer(cfg *config.Config, st store.Store, services *service.Services, m *metrics.Metrics, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(remoteAddrMiddleware)
	if m != nil {
		router.Use(m.Middleware)
		router.Handle("/metrics", m.Handler())
	}

	humaConfig := huma.DefaultConfig("CaterDir API", apiVersion)
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}

	RegisterErrorHandler(logger, cfg.App.IsDevelopment())

	s := &Server{
		store:           st,
		services:        services,
		router:          router,
		api:             humachi.New(router, humaConfig),
		logger:          logger,
		authRateLimiter: ratelimit.New(1, 5),
	}

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerLocationRoutes()
	s.registerTagRoutes()
	s.registerFacilityRoutes()
	s.registerEmployeeRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases background resources held by the server.
func (s *Server) Close() {
	if s.authRateLimiter != nil {
		s.authRateLimiter.Stop()
	}
}

type contextKey int

const remoteAddrKey contextKey = iota

// remoteAddrMiddleware stashes the client address in the request context so
// huma handlers can key rate limits by IP.
func remoteAddrMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), remoteAddrKey, r.RemoteAddr)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
