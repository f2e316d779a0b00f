// Package errors provides the structured error type used across ssot.
// Every failure carries a machine-readable code, a human-readable message,
// optional details and the underlying cause, and can be classified as fatal
// (startup must abort) or recoverable (a lookup miss).
package errors
