package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Fatal indicates the error must abort startup.
	Fatal bool `json:"fatal"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic fatal detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Fatal:   IsFatalCode(code),
	}
}

// As returns the first AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is reports whether err's chain contains an AppError with the given code.
func Is(err error, code ErrorCode) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

// IsFatal reports whether err's chain contains a fatal AppError.
func IsFatal(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Fatal
}

// --- Common Error Constructors ---

// ReadFailed creates a new AppError for a file that exists but cannot be read.
func ReadFailed(path string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeConfigRead, Message: fmt.Sprintf("Unable to read %s.", path),
		Fatal: true, Details: map[string]any{"path": path}, Cause: cause,
	}
}

// ParseFailed creates a new AppError for a malformed config or env file.
func ParseFailed(source, path string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeConfigParse, Message: fmt.Sprintf("Malformed %s file %s.", source, path),
		Fatal: true, Details: map[string]any{"source": source, "path": path}, Cause: cause,
	}
}

// KeyCollision creates a new AppError for a key defined in several spellings by one source.
func KeyCollision(key string, spellings []string) *AppError {
	return &AppError{
		Code: ErrCodeKeyCollision,
		Message: fmt.Sprintf("Key %s is defined more than once with different case: %s.",
			key, strings.Join(spellings, ", ")),
		Fatal:   true,
		Details: map[string]any{"key": key, "spellings": spellings},
	}
}

// KeyNotFound creates a new AppError for a key absent from the resolved configuration.
func KeyNotFound(key string) *AppError {
	return &AppError{
		Code: ErrCodeKeyNotFound, Message: fmt.Sprintf("Key %s is not set.", key),
		Fatal: false, Details: map[string]any{"key": key},
	}
}

// TypeMismatch creates a new AppError for a value that cannot be read as the wanted type.
func TypeMismatch(key, want string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeTypeMismatch, Message: fmt.Sprintf("Value of %s cannot be read as %s.", key, want),
		Fatal: false, Details: map[string]any{"key": key, "type": want}, Cause: cause,
	}
}

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		Fatal: true, Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		Fatal: true,
	}
}

// Internal creates a new AppError for an unexpected internal failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		Fatal: true, Cause: cause,
	}
}
