package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"sales-dashboard/internal/observability"
)

type ErrorCode string

const (
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest   ErrorCode = "BAD_REQUEST"
	CodeRateLimit    ErrorCode = "RATE_LIMIT_EXCEEDED"
	CodeLoad         ErrorCode = "LOAD_ERROR"
	CodeAssetMissing ErrorCode = "ASSET_MISSING"
)

// AppError carries a stable code for clients and the HTTP status it maps to.
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
	Timestamp  time.Time `json:"timestamp"`
	RequestID  string    `json:"request_id,omitempty"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func newAppError(code ErrorCode, cause error, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusFor(code),
		Cause:      cause,
		Timestamp:  time.Now().UTC(),
	}
}

func Internal(message string) *AppError {
	return newAppError(CodeInternal, nil, message)
}

func BadRequestWrap(err error, message string) *AppError {
	return newAppError(CodeBadRequest, err, message)
}

func RateLimit(message string) *AppError {
	return newAppError(CodeRateLimit, nil, message)
}

// Load reports an input file that is missing or malformed. It is fatal at
// startup.
func Load(err error, message string) *AppError {
	return newAppError(CodeLoad, err, message)
}

// AssetMissing is returned for an image file absent from the assets
// directory. Callers fall back to a placeholder rather than fail.
func AssetMissing(err error, message string) *AppError {
	return newAppError(CodeAssetMissing, err, message)
}

// HasCode reports whether err or anything it wraps is an AppError with code.
func HasCode(err error, code ErrorCode) bool {
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return false
	}
	return appErr.Code == code
}

func statusFor(code ErrorCode) int {
	switch code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeAssetMissing:
		return http.StatusNotFound
	case CodeRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

type ErrorResponse struct {
	Error   *AppError `json:"error"`
	Success bool      `json:"success"`
}

// WriteError writes err as a JSON error envelope tagged with the request id
// from r's context. Errors without a code are reported as INTERNAL_ERROR.
func WriteError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	ctx := r.Context()

	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		appErr = newAppError(CodeInternal, err, "An unexpected error occurred")
	}

	body := *appErr
	body.RequestID = observability.GetRequestID(ctx)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(body.StatusCode)

	if encodeErr := json.NewEncoder(w).Encode(ErrorResponse{Error: &body}); encodeErr != nil {
		logger.ErrorContext(ctx, "failed to encode error response",
			"encode_error", encodeErr,
			"original_error", err,
		)
		return
	}

	level := slog.LevelError
	if body.StatusCode < 500 {
		level = slog.LevelWarn
	}
	logger.Log(ctx, level, "request failed",
		"error_code", body.Code,
		"error_message", body.Message,
		"status_code", body.StatusCode,
		"cause", body.Cause,
	)
}

type SuccessResponse struct {
	Data    any  `json:"data"`
	Success bool `json:"success"`
}

func WriteSuccess(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	json.NewEncoder(w).Encode(SuccessResponse{Data: data, Success: true})
}

func WriteSuccessWithHeaders(w http.ResponseWriter, data any, headers map[string]string) {
	for key, value := range headers {
		w.Header().Set(key, value)
	}
	WriteSuccess(w, data)
}
