package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrForbidden     = errors.New("forbidden")

	// Authentication failures, in resolution order.
	ErrMissingCredential   = errors.New("credential required")
	ErrInvalidCredential   = errors.New("invalid credential")
	ErrCredentialExpired   = errors.New("credential invalid or expired")
	ErrMalformedCredential = errors.New("malformed credential payload")
	ErrPrincipalNotFound   = errors.New("credential subject not found")
	ErrCredentialRevoked   = errors.New("credential has been revoked")

	// Login-path failures. Deliberately distinct; see the product note on
	// account enumeration in DESIGN.md.
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
)

// AppError represents an application error with an HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrInvalidInput)
}

func Unauthorized(message string, err error) *AppError {
	return NewAppError(http.StatusUnauthorized, message, err)
}

// Forbidden is the generic permission denial. It never names the missing
// grant.
func Forbidden() *AppError {
	return NewAppError(http.StatusForbidden, "insufficient permissions", ErrForbidden)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "internal server error", err)
}

// EscalationError denies a key-issuance batch that requested permissions
// beyond the creator's effective set. Unlike the generic Forbidden it lists
// the offending names: the caller already proved ownership of a valid
// permission set, so the names leak nothing.
type EscalationError struct {
	InvalidPermissions []string
}

func (e *EscalationError) Error() string {
	return "requested permissions exceed creator's grants"
}

// AsEscalation unwraps err into an EscalationError if it is one.
func AsEscalation(err error) (*EscalationError, bool) {
	var esc *EscalationError
	if errors.As(err, &esc) {
		return esc, true
	}
	return nil, false
}
