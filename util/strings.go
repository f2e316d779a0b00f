package util

import (
	"regexp"
	"strings"
)

// secretKeyRegex matches key names with a secret-looking segment, such as
// DB_PASSWORD, api-key or STRIPE.SECRET.
var secretKeyRegex = regexp.MustCompile(`(?i)(^|[_.-])(secret|password|passwd|pwd|token|key|apikey|credentials?|private)([_.-]|$)`)

// Coalesce returns the first non-zero value, or the zero value if all are zero.
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// LooksSecret reports whether key names a credential.
func LooksSecret(key string) bool {
	return secretKeyRegex.MatchString(key)
}

// Mask hides s, keeping two characters at each end of long values.
func Mask(s string) string {
	r := []rune(s)
	switch {
	case len(r) == 0:
		return ""
	case len(r) <= 8:
		return strings.Repeat("*", 8)
	default:
		return string(r[:2]) + strings.Repeat("*", 4) + string(r[len(r)-2:])
	}
}
