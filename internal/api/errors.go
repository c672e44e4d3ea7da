package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	domainerrors "github.com/caterdir/caterdir-server/internal/errors"
	"github.com/caterdir/caterdir-server/internal/redact"
)

// APIError is the error body for every non-2xx response. It implements
// huma.StatusError so handlers can surface domain errors directly.
type APIError struct { //nolint:revive // API prefix is intentional for clarity
	status int

	Message    string `json:"error" doc:"Human-readable error message"`
	ErrorType  string `json:"error_type" doc:"Error taxonomy name"`
	ErrorCode  string `json:"error_code,omitempty" doc:"Machine-readable error code"`
	Details    any    `json:"details,omitempty" doc:"Field-level details, development mode only"`
	TrackingID string `json:"tracking_id,omitempty" doc:"Correlation id for server-side failures"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *APIError) GetStatus() int {
	return e.status
}

// ContentType returns the content type for the error response.
func (e *APIError) ContentType(_ string) string {
	return "application/json"
}

// RegisterErrorHandler configures huma to render domain errors.
// Call this after creating the huma.API but before registering routes.
//
// Domain errors keep their code and message. Request decoding and schema
// failures (huma's 422s) are reported as validation errors with status 400.
// Server-side failures get a tracking id; in production their message and
// details are replaced with a generic one so internals never leak.
func RegisterErrorHandler(logger *slog.Logger, devMode bool) {
	if logger == nil {
		logger = slog.Default()
	}

	huma.NewError = func(status int, message string, errs ...error) huma.StatusError {
		for _, err := range errs {
			var domainErr *domainerrors.Error
			if domainerrors.As(err, &domainErr) {
				return newAPIError(logger, devMode, domainErr.HTTPStatus(), domainErr.Message, domainErr.Code, domainErr.Details)
			}
		}

		if status == http.StatusUnprocessableEntity {
			// Malformed bodies and schema violations are plain validation
			// errors in this API.
			return newAPIError(logger, devMode, http.StatusBadRequest, message, domainerrors.CodeValidation, detailsFromErrs(errs))
		}

		return newAPIError(logger, devMode, status, message, statusToCode(status), detailsFromErrs(errs))
	}
}

func newAPIError(logger *slog.Logger, devMode bool, status int, message string, code domainerrors.Code, details any) *APIError {
	apiErr := &APIError{
		status:    status,
		Message:   message,
		ErrorType: code.Kind(),
		ErrorCode: string(code),
		Details:   details,
	}

	if status >= http.StatusInternalServerError {
		apiErr.TrackingID = uuid.NewString()
	}

	logError(logger, apiErr)

	if status >= http.StatusInternalServerError && !devMode {
		apiErr.Message = "an internal error occurred"
		apiErr.Details = nil
	} else if !devMode {
		apiErr.Details = nil
	}

	return apiErr
}

// logError records every error response. Server-side failures log at error
// level with their tracking id so the full message can be recovered from the
// logs after the client saw only the generic one.
func logError(logger *slog.Logger, apiErr *APIError) {
	attrs := []any{
		slog.Int("status", apiErr.status),
		slog.String("error_type", apiErr.ErrorType),
		slog.String("error_code", apiErr.ErrorCode),
	}
	if details, ok := apiErr.Details.(map[string]any); ok {
		attrs = append(attrs, slog.Any("details", redact.Map(details)))
	}
	if apiErr.TrackingID != "" {
		attrs = append(attrs, slog.String("tracking_id", apiErr.TrackingID))
		logger.Error(apiErr.Message, attrs...)
		return
	}
	logger.Warn(apiErr.Message, attrs...)
}

// detailsFromErrs collects huma's field-level error details into a map
// keyed by location, so validation responses match the domain format.
func detailsFromErrs(errs []error) any {
	details := map[string]any{}
	for _, err := range errs {
		var detailer huma.ErrorDetailer
		if domainerrors.As(err, &detailer) {
			detail := detailer.ErrorDetail()
			key := detail.Location
			if key == "" {
				key = "request"
			}
			details[key] = detail.Message
		}
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

// statusToCode maps non-domain HTTP statuses to domain error codes.
func statusToCode(status int) domainerrors.Code {
	switch status {
	case http.StatusBadRequest:
		return domainerrors.CodeValidation
	case http.StatusUnauthorized:
		return domainerrors.CodeUnauthorized
	case http.StatusNotFound:
		return domainerrors.CodeNotFound
	case http.StatusTooManyRequests:
		return domainerrors.CodeRateLimited
	default:
		return domainerrors.CodeInternal
	}
}
