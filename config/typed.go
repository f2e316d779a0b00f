package config

import (
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/kbukum/ssot/errors"
)

// read looks key up and converts it, reporting KEY_NOT_FOUND or TYPE_MISMATCH.
func read[T any](r *Resolved, key, kind string, convert func(any) (T, error)) (T, error) {
	var zero T
	v, ok := r.Get(key)
	if !ok {
		return zero, errors.KeyNotFound(strings.ToUpper(key))
	}
	out, err := convert(v)
	if err != nil {
		return zero, errors.TypeMismatch(strings.ToUpper(key), kind, err)
	}
	return out, nil
}

// readOr returns fallback when key is absent or cannot be converted.
func readOr[T any](r *Resolved, key string, fallback T, convert func(any) (T, error)) T {
	v, ok := r.Get(key)
	if !ok {
		return fallback
	}
	out, err := convert(v)
	if err != nil {
		return fallback
	}
	return out
}

// String returns the value of key as a string.
func (r *Resolved) String(key string) (string, error) {
	return read(r, key, "string", cast.ToStringE)
}

// StringOr returns the value of key as a string, or fallback.
func (r *Resolved) StringOr(key, fallback string) string {
	return readOr(r, key, fallback, cast.ToStringE)
}

// Int returns the value of key as an int.
func (r *Resolved) Int(key string) (int, error) {
	return read(r, key, "int", cast.ToIntE)
}

// IntOr returns the value of key as an int, or fallback.
func (r *Resolved) IntOr(key string, fallback int) int {
	return readOr(r, key, fallback, cast.ToIntE)
}

// Int64 returns the value of key as an int64.
func (r *Resolved) Int64(key string) (int64, error) {
	return read(r, key, "int64", cast.ToInt64E)
}

// Bool returns the value of key as a bool.
func (r *Resolved) Bool(key string) (bool, error) {
	return read(r, key, "bool", cast.ToBoolE)
}

// BoolOr returns the value of key as a bool, or fallback.
func (r *Resolved) BoolOr(key string, fallback bool) bool {
	return readOr(r, key, fallback, cast.ToBoolE)
}

// Float64 returns the value of key as a float64.
func (r *Resolved) Float64(key string) (float64, error) {
	return read(r, key, "float64", cast.ToFloat64E)
}

// Duration returns the value of key as a time.Duration. Bare numbers are nanoseconds.
func (r *Resolved) Duration(key string) (time.Duration, error) {
	return read(r, key, "duration", cast.ToDurationE)
}

// DurationOr returns the value of key as a time.Duration, or fallback.
func (r *Resolved) DurationOr(key string, fallback time.Duration) time.Duration {
	return readOr(r, key, fallback, cast.ToDurationE)
}

// StringSlice returns the value of key as a string slice.
// A string value is split on commas.
func (r *Resolved) StringSlice(key string) ([]string, error) {
	return read(r, key, "[]string", toStringSlice)
}

func toStringSlice(v any) ([]string, error) {
	s, ok := v.(string)
	if !ok {
		return cast.ToStringSliceE(v)
	}
	if strings.TrimSpace(s) == "" {
		return []string{}, nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, nil
}
