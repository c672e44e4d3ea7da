package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestIs_MatchesByCode(t *testing.T) {
	err := NotFoundf("Facility with id %d not found", 42)
	if !Is(err, ErrNotFound) {
		t.Error("custom-message not found error should match ErrNotFound")
	}
	if Is(err, ErrDuplicate) {
		t.Error("not found error must not match ErrDuplicate")
	}
}

func TestIs_ThroughWrapping(t *testing.T) {
	cause := stderrors.New("disk full")
	err := fmt.Errorf("saving facility: %w", Database("create_facility", cause))

	if !Is(err, ErrDatabase) {
		t.Error("wrapped database error should match ErrDatabase")
	}

	var domainErr *Error
	if !As(err, &domainErr) {
		t.Fatal("expected to extract *Error")
	}
	if !stderrors.Is(domainErr.Unwrap(), cause) {
		t.Error("Unwrap should expose the cause")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeDuplicate, http.StatusBadRequest},
		{CodeResourceInUse, http.StatusBadRequest},
		{CodeInvalidOperation, http.StatusBadRequest},
		{CodeValidation, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeInvalidCredentials, http.StatusUnauthorized},
		{CodeTokenExpired, http.StatusUnauthorized},
		{CodeRateLimited, http.StatusTooManyRequests},
		{CodeDatabase, http.StatusInternalServerError},
		{CodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := tt.code.HTTPStatus(); got != tt.want {
			t.Errorf("%s.HTTPStatus() = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestKind(t *testing.T) {
	if got := CodeNotFound.Kind(); got != "resource_not_found" {
		t.Errorf("Kind() = %q", got)
	}
	if got := CodeInvalidCredentials.Kind(); got != "unauthorized" {
		t.Errorf("Kind() = %q", got)
	}
	if got := Code("SOMETHING_NEW").Kind(); got != "internal_error" {
		t.Errorf("unknown code Kind() = %q", got)
	}
}

func TestWithDetailsAndCause(t *testing.T) {
	base := Validation("validation failed")
	detailed := base.WithDetails(map[string]string{"name": "is required"})

	if base.Details != nil {
		t.Error("WithDetails must not mutate the receiver")
	}
	if detailed.Details == nil {
		t.Error("expected details on the new error")
	}

	cause := stderrors.New("boom")
	wrapped := detailed.WithCause(cause)
	if !stderrors.Is(wrapped.Unwrap(), cause) {
		t.Error("WithCause should set the cause")
	}
	// Message keeps the cause visible for logs.
	if wrapped.Error() == detailed.Error() {
		t.Error("Error() should include the cause")
	}
}
