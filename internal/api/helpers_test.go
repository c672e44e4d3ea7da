package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/caterdir/caterdir-server/internal/auth"
	"github.com/caterdir/caterdir-server/internal/ratelimit"
	"github.com/caterdir/caterdir-server/internal/service"
	"github.com/caterdir/caterdir-server/internal/store/sqlite"
)

const (
	testUsername = "admin"
	testPassword = "test-password"
)

// testServer wraps the API server for handler testing against a real
// SQLite store.
type testServer struct {
	*Server
	api humatest.TestAPI
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	tokens, err := auth.NewTokenService([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
	require.NoError(t, err)

	services := service.New(st, tokens, logger)
	require.NoError(t, services.Auth.Bootstrap(context.Background(), testUsername, testPassword))

	router := chi.NewRouter()
	router.Use(remoteAddrMiddleware)

	humaConfig := huma.DefaultConfig("CaterDir API Test", apiVersion)
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}

	api := humachi.New(router, humaConfig)
	RegisterErrorHandler(logger, true)

	s := &Server{
		store:    st,
		services: services,
		router:   router,
		api:      api,
		logger:   logger,
		// Generous limits so ordinary tests never trip the throttle.
		authRateLimiter: ratelimit.New(1000, 1000),
	}
	t.Cleanup(s.Close)

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerLocationRoutes()
	s.registerTagRoutes()
	s.registerFacilityRoutes()
	s.registerEmployeeRoutes()

	return &testServer{Server: s, api: humatest.Wrap(t, api)}
}

// login authenticates the bootstrap account and returns a ready-to-use
// Authorization header.
func (ts *testServer) login(t *testing.T) string {
	t.Helper()

	resp := ts.api.Post("/auth/login", map[string]any{
		"username": testUsername,
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, resp.Code, "login failed: %s", resp.Body.String())

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)

	return "Authorization: Bearer " + body.Token
}

// createLocation creates a location over the API and returns its id.
func (ts *testServer) createLocation(t *testing.T, authHeader, city string) int64 {
	t.Helper()

	resp := ts.api.Post("/locations", map[string]any{"city": city}, authHeader)
	require.Equal(t, http.StatusCreated, resp.Code, "create location failed: %s", resp.Body.String())

	var body LocationResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body.ID
}

// createFacility creates a facility over the API and returns its id.
func (ts *testServer) createFacility(t *testing.T, authHeader, name string, locationID int64, tagNames ...string) int64 {
	t.Helper()

	payload := map[string]any{
		"name":        name,
		"location_id": locationID,
	}
	if len(tagNames) > 0 {
		payload["tag_names"] = tagNames
	}
	resp := ts.api.Post("/facilities", payload, authHeader)
	require.Equal(t, http.StatusCreated, resp.Code, "create facility failed: %s", resp.Body.String())

	var body FacilityResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body.ID
}

// errorBody is the decoded error response shape.
type errorBody struct {
	Message    string         `json:"error"`
	ErrorType  string         `json:"error_type"`
	ErrorCode  string         `json:"error_code"`
	Details    map[string]any `json:"details"`
	TrackingID string         `json:"tracking_id"`
}

func decodeError(t *testing.T, data []byte) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(data, &body))
	return body
}
