package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/caterdir/caterdir-server/internal/errors"
	"github.com/caterdir/caterdir-server/internal/service"
)

// LoginInput carries the credentials for a token request.
type LoginInput struct {
	Body struct {
		Username string `json:"username" maxLength:"100" doc:"Account username"`
		Password string `json:"password" maxLength:"1024" doc:"Account password"`
	}
}

// LoginOutput returns a bearer token and its expiry.
type LoginOutput struct {
	Body struct {
		Token     string    `json:"token" doc:"JWT bearer token"`
		ExpiresAt time.Time `json:"expires_at" doc:"Token expiry timestamp"`
		Username  string    `json:"username"`
	}
}

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/auth/login",
		Summary:     "Log in",
		Description: "Exchanges username and password for a JWT bearer token.",
		Tags:        []string{"auth"},
	}, s.handleLogin)
}

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	if !s.authRateLimiter.Allow(clientIP(ctx)) {
		return nil, errors.RateLimited("too many login attempts, try again later")
	}

	result, err := s.services.Auth.Login(ctx, service.LoginRequest{
		Username: input.Body.Username,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, err
	}

	resp := &LoginOutput{}
	resp.Body.Token = result.Token
	resp.Body.ExpiresAt = result.ExpiresAt
	resp.Body.Username = result.User.Username
	return resp, nil
}
