package errors

import (
	"errors"
	"fmt"
)

var (
	// tokens
	ErrInvalidSigningMethod = fmt.Errorf("unexpected token signing method")
	ErrInvalidToken         = fmt.Errorf("invalid token")
	ErrTokenExpired         = fmt.Errorf("token has expired")
	ErrTokenIsNotRefresh    = fmt.Errorf("token is not a refresh token")
	ErrTokenIsNotAccess     = fmt.Errorf("token is not an access token")

	// auth
	ErrEmptyAuthHeader    = fmt.Errorf("authorization header is missing")
	ErrInvalidAuthHeader  = fmt.Errorf("malformed authorization header")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrUnauthorized       = fmt.Errorf("unauthorized")
	ErrForbidden          = fmt.Errorf("forbidden")

	// context
	ErrUserIDNotFoundInContext = fmt.Errorf("user id not found in request context")

	// common
	ErrNotFound        = fmt.Errorf("record not found")
	ErrBadRequest      = fmt.Errorf("bad request")
	ErrConflict        = fmt.Errorf("record already exists")
	ErrRecordInUse     = fmt.Errorf("record is referenced by other data")
	ErrVersionMismatch = fmt.Errorf("record was modified by another user")
	ErrInternalServer  = fmt.Errorf("internal server error")
)

// HttpError carries an HTTP status and a user-facing message alongside
// the internal error and any context worth logging.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, context map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Context: context}
}

// InvalidInputError is returned by services for semantic validation
// failures that validator tags cannot express.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// TransitionError is returned when a checksheet workflow action is not
// permitted from the record's current status.
type TransitionError struct {
	From   string
	Action string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("action %q is not allowed from status %q", e.Action, e.From)
}

func IsTransitionError(err error) bool {
	var te *TransitionError
	return errors.As(err, &te)
}
