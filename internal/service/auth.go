package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/caterdir/caterdir-server/internal/auth"
	"github.com/caterdir/caterdir-server/internal/domain"
	"github.com/caterdir/caterdir-server/internal/errors"
	"github.com/caterdir/caterdir-server/internal/store"
	"github.com/caterdir/caterdir-server/internal/validation"
)

// AuthService handles login and account bootstrap.
type AuthService struct {
	store     store.Store
	tokens    *auth.TokenService
	logger    *slog.Logger
	validator *validation.Validator
}

// NewAuthService creates a new auth service.
func NewAuthService(st store.Store, tokens *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:     st,
		tokens:    tokens,
		logger:    logger,
		validator: validation.New(),
	}
}

// LoginRequest contains credentials for a login attempt.
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required,min=1,max=1024"`
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// Login verifies credentials and issues an access token. Unknown usernames
// and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.InvalidCredentials("invalid username or password")
		}
		return nil, err
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "verify password")
	}
	if !ok {
		return nil, errors.InvalidCredentials("invalid username or password")
	}

	token, expiresAt, err := s.tokens.Generate(user)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "generate token")
	}

	s.logger.Info("user logged in", "user_id", user.ID, "username", user.Username)
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// VerifyToken validates an access token and returns its claims.
func (s *AuthService) VerifyToken(tokenString string) (*auth.Claims, error) {
	return s.tokens.Verify(tokenString)
}

// Bootstrap creates the initial admin account when no accounts exist yet.
// It is a no-op on an already-initialized database.
func (s *AuthService) Bootstrap(ctx context.Context, username, password string) error {
	count, err := s.store.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if username == "" || password == "" {
		s.logger.Warn("no accounts exist and no bootstrap credentials configured; login is impossible")
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "hash bootstrap password")
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		// A concurrent bootstrap already created the account.
		if errors.Is(err, errors.ErrDuplicate) {
			return nil
		}
		return err
	}

	s.logger.Info("bootstrap account created", "username", username)
	return nil
}
