package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// HealthOutput is the health check response.
type HealthOutput struct {
	Body struct {
		Status  string `json:"status" doc:"ok when the server and its storage are reachable"`
		Version string `json:"version"`
	}
}

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Reports whether the server and its storage are reachable.",
		Tags:        []string{"health"},
	}, s.handleHealthCheck)
}

func (s *Server) handleHealthCheck(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	if err := s.store.Ping(ctx); err != nil {
		s.logger.Error("health check failed", "error", err)
		return nil, huma.Error503ServiceUnavailable("storage unreachable")
	}

	resp := &HealthOutput{}
	resp.Body.Status = "ok"
	resp.Body.Version = apiVersion
	return resp, nil
}
