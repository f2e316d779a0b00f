package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Source loading errors
const (
	// ErrCodeConfigRead indicates a config or env file exists but could not be read.
	ErrCodeConfigRead ErrorCode = "CONFIG_READ"
	// ErrCodeConfigParse indicates a config or env file is malformed.
	ErrCodeConfigParse ErrorCode = "CONFIG_PARSE"
	// ErrCodeKeyCollision indicates one source defines the same key in two spellings.
	ErrCodeKeyCollision ErrorCode = "KEY_COLLISION"
)

// Lookup errors
const (
	// ErrCodeKeyNotFound indicates the key is absent from the resolved configuration.
	ErrCodeKeyNotFound ErrorCode = "KEY_NOT_FOUND"
	// ErrCodeTypeMismatch indicates a value could not be coerced to the requested type.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected internal failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// fatalCodes are the codes that must abort process startup.
var fatalCodes = map[ErrorCode]bool{
	ErrCodeConfigRead:   true,
	ErrCodeConfigParse:  true,
	ErrCodeKeyCollision: true,
	ErrCodeInvalidInput: true,
	ErrCodeInternal:     true,
}

// IsFatalCode returns true if the error code must stop the process from starting.
func IsFatalCode(code ErrorCode) bool {
	return fatalCodes[code]
}
