package api

import (
	"context"
	"net"
	"strings"

	"github.com/caterdir/caterdir-server/internal/auth"
	"github.com/caterdir/caterdir-server/internal/errors"
)

// authenticateRequest validates the Authorization header and returns the
// token claims. Every protected handler calls this first.
func (s *Server) authenticateRequest(_ context.Context, authHeader string) (*auth.Claims, error) {
	if authHeader == "" {
		return nil, errors.Unauthorized("missing authorization header")
	}

	token, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok || token == "" {
		return nil, errors.Unauthorized("authorization header must be of the form: Bearer <token>")
	}

	return s.services.Auth.VerifyToken(token)
}

// clientIP extracts the caller's IP from the request context. Returns
// "unknown" when the address is missing, which still rate-limits such
// requests as a single bucket.
func clientIP(ctx context.Context) string {
	addr, _ := ctx.Value(remoteAddrKey).(string)
	if addr == "" {
		return "unknown"
	}
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
