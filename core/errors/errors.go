package errors

import "fmt"

// ErrorCode identifies an application-level error category.
type ErrorCode string

const (
	ErrInternalServer             ErrorCode = "INTERNAL_SERVER_ERROR"
	ErrInvalidInput               ErrorCode = "INVALID_INPUT"
	ErrInvalidRequestData         ErrorCode = "INVALID_REQUEST_DATA"
	ErrNotFound                   ErrorCode = "NOT_FOUND"
	ErrAlreadyExists              ErrorCode = "ALREADY_EXISTS"
	ErrUnauthorized               ErrorCode = "UNAUTHORIZED"
	ErrForbidden                  ErrorCode = "FORBIDDEN"
	ErrTokenExpired               ErrorCode = "TOKEN_EXPIRED"
	ErrInvalidTokenFormat         ErrorCode = "INVALID_TOKEN_FORMAT"
	ErrMissingAuthorizationHeader ErrorCode = "MISSING_AUTHORIZATION_HEADER"
	ErrCreateFailed               ErrorCode = "CREATE_FAILED"
	ErrGetFailed                  ErrorCode = "GET_FAILED"
	ErrUpdateFailed               ErrorCode = "UPDATE_FAILED"
	ErrDeleteFailed               ErrorCode = "DELETE_FAILED"
)

// AppError is the error type services return to controllers.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps a cause with an application error code and message.
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
