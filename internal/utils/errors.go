package utils

import (
	"errors"
	"net/http"
)

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons.
var (
	ErrNotFound           = errors.New("not_found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrAccountDisabled    = errors.New("account_disabled")
	ErrEmailExists        = errors.New("email_exists")
	ErrInvalidStatus      = errors.New("invalid_status")
	ErrRowVersionConflict = errors.New("row_version_conflict")
	ErrNoRowsUpdated      = errors.New("no_rows_updated")
)

// AppError carries an HTTP status plus a machine code from the
// service layer up to the controller.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
		return
	}
	switch {
	case errors.Is(err, ErrNotFound):
		RespondErrorWithCode(w, http.StatusNotFound, ErrCodeNotFound, "Resource not found", nil)
	case errors.Is(err, ErrForbidden):
		RespondErrorWithCode(w, http.StatusForbidden, ErrCodeForbidden, "Insufficient permissions", nil)
	case errors.Is(err, ErrInvalidCredentials):
		RespondErrorWithCode(w, http.StatusUnauthorized, ErrCodeInvalidCredentials, "Invalid email or password", nil)
	case errors.Is(err, ErrAccountDisabled):
		RespondErrorWithCode(w, http.StatusForbidden, ErrCodeAccountDisabled, "Account is disabled", nil)
	case errors.Is(err, ErrEmailExists):
		RespondErrorWithCode(w, http.StatusConflict, ErrCodeConflict, "Email already registered", nil)
	case errors.Is(err, ErrInvalidStatus):
		RespondErrorWithCode(w, http.StatusBadRequest, ErrCodeValidation, "Invalid status value", nil)
	case errors.Is(err, ErrRowVersionConflict):
		RespondErrorWithCode(w, http.StatusConflict, ErrCodeRowVersionConflict, "Resource was modified concurrently", nil)
	default:
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
