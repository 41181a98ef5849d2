package errors

import "fmt"

// ErrorCode identifies an application error category.
type ErrorCode string

const (
	ErrInvalidInput          ErrorCode = "INVALID_INPUT"
	ErrInvalidRequestData    ErrorCode = "INVALID_REQUEST_DATA"
	ErrInvalidTimezone       ErrorCode = "INVALID_TIMEZONE"
	ErrNotFound              ErrorCode = "NOT_FOUND"
	ErrAlreadyExists         ErrorCode = "ALREADY_EXISTS"
	ErrCapacityExceeded      ErrorCode = "CAPACITY_EXCEEDED"
	ErrDuplicateRegistration ErrorCode = "DUPLICATE_REGISTRATION"
	ErrEventInPast           ErrorCode = "EVENT_IN_PAST"
	ErrInternalServer        ErrorCode = "INTERNAL_SERVER_ERROR"
)

// AppError carries an error code, a caller-facing message, the underlying
// cause and optional structured details.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
	Details any       `json:"details,omitempty"`
}

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewAppErrorWithDetails attaches structured details for business-rule
// conflicts (current capacity, offending email, ...).
func NewAppErrorWithDetails(code ErrorCode, message string, err error, details any) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
		Details: details,
	}
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
