package profilesdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Stable machine-readable error codes used in the JSON error envelope.
const (
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeInvalidToken       = "invalid_token"
	ErrorCodeOwnershipDenied    = "ownership_denied"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeEmailTaken         = "email_taken"
	ErrorCodeNameInvalid        = "profile_name_invalid"
	ErrorCodeNameTaken          = "profile_name_taken"
	ErrorCodeLimitReached       = "profile_limit_reached"
	ErrorCodeLastProfile        = "last_profile"
	ErrorCodeServerError        = "server_error"
)

// APIError is the service's JSON error envelope. It is used both by the
// server to write HTTP responses and by the SDK to represent failures.
type APIError struct {
	// StatusCode is the HTTP status code for this error.
	StatusCode int `json:"-"`

	// Code is the stable machine-readable error code.
	Code string `json:"code"`

	// Message is a human-readable description.
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WriteError writes the error envelope to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(e)
}

// Predefined errors.
var (
	ErrInvalidRequest = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeInvalidRequest,
		Message:    "the request is malformed or missing required parameters",
	}

	ErrInvalidCredentials = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeInvalidCredentials,
		Message:    "invalid email or password",
	}

	ErrInvalidToken = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeInvalidToken,
		Message:    "the access token is missing, invalid or expired",
	}

	// ErrOwnershipDenied deliberately reads the same whether the resource
	// does not exist or belongs to someone else.
	ErrOwnershipDenied = &APIError{
		StatusCode: http.StatusForbidden,
		Code:       ErrorCodeOwnershipDenied,
		Message:    "you do not have access to this resource",
	}

	ErrNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Code:       ErrorCodeNotFound,
		Message:    "resource not found",
	}

	ErrEmailTaken = &APIError{
		StatusCode: http.StatusConflict,
		Code:       ErrorCodeEmailTaken,
		Message:    "an account with this email already exists",
	}

	ErrProfileNameInvalid = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeNameInvalid,
		Message:    "profile name must be 1-50 characters",
	}

	ErrProfileNameTaken = &APIError{
		StatusCode: http.StatusConflict,
		Code:       ErrorCodeNameTaken,
		Message:    "an active profile with this name already exists",
	}

	ErrProfileLimitReached = &APIError{
		StatusCode: http.StatusConflict,
		Code:       ErrorCodeLimitReached,
		Message:    "the account already holds the maximum number of active profiles",
	}

	ErrLastProfile = &APIError{
		StatusCode: http.StatusConflict,
		Code:       ErrorCodeLastProfile,
		Message:    "the last remaining profile cannot be deleted",
	}

	ErrServerError = &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrorCodeServerError,
		Message:    "internal server error",
	}
)

// ErrBackendUnavailable reports that the service could not be reached (or
// answered too slowly) within the synchronizer's budget.
var ErrBackendUnavailable = errors.New("profilesdk: backend unavailable")

// parseErrorResponse turns a non-2xx HTTP response into a typed *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Code != "" {
		apiErr.StatusCode = resp.StatusCode
		return &apiErr
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       ErrorCodeServerError,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
