package auth

import (
	"testing"
	"time"

	"github.com/caterdir/caterdir-server/internal/domain"
	"github.com/caterdir/caterdir-server/internal/errors"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	ok, err := VerifyPassword(hash, "correct horse battery staple")
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if !ok {
		t.Error("expected password to verify")
	}

	ok, err = VerifyPassword(hash, "wrong password")
	if err != nil {
		t.Fatalf("VerifyPassword wrong: %v", err)
	}
	if ok {
		t.Error("expected wrong password to fail")
	}
}

func TestHashPassword_Empty(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Error("expected error for empty password")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	ok, err := VerifyPassword("not-a-hash", "whatever")
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if ok {
		t.Error("expected malformed hash to verify as false")
	}
}

func testSecret() []byte {
	return []byte("0123456789abcdef0123456789abcdef")
}

func TestGenerateAndVerifyToken(t *testing.T) {
	svc, err := NewTokenService(testSecret(), time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	user := &domain.User{ID: 42, Username: "admin"}
	token, expiresAt, err := svc.Generate(user)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if time.Until(expiresAt) <= 0 {
		t.Errorf("expected future expiry, got %v", expiresAt)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID: got %d, want 42", claims.UserID)
	}
	if claims.Username != "admin" {
		t.Errorf("Username: got %q, want %q", claims.Username, "admin")
	}
}

func TestVerifyToken_Expired(t *testing.T) {
	svc, err := NewTokenService(testSecret(), -time.Minute)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	token, _, err := svc.Generate(&domain.User{ID: 1, Username: "admin"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	_, err = svc.Verify(token)
	if !errors.Is(err, errors.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	svc, err := NewTokenService(testSecret(), time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	other, err := NewTokenService([]byte("ffffffffffffffffffffffffffffffff"), time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	token, _, err := svc.Generate(&domain.User{ID: 1, Username: "admin"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	_, err = other.Verify(token)
	if !errors.Is(err, errors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestVerifyToken_Garbage(t *testing.T) {
	svc, err := NewTokenService(testSecret(), time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	_, err = svc.Verify("not.a.token")
	if !errors.Is(err, errors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestNewTokenService_ShortSecret(t *testing.T) {
	if _, err := NewTokenService([]byte("short"), time.Hour); err == nil {
		t.Error("expected error for short secret")
	}
}

func TestLoadOrGenerateSecret(t *testing.T) {
	dir := t.TempDir()

	secret, err := LoadOrGenerateSecret(dir)
	if err != nil {
		t.Fatalf("LoadOrGenerateSecret: %v", err)
	}
	if len(secret) != 32 {
		t.Fatalf("expected 32-byte secret, got %d", len(secret))
	}

	// A second load returns the same secret.
	again, err := LoadOrGenerateSecret(dir)
	if err != nil {
		t.Fatalf("LoadOrGenerateSecret (reload): %v", err)
	}
	if string(again) != string(secret) {
		t.Error("expected stable secret across loads")
	}
}
