package config

import (
	"os"
	"strings"
)

// Environ converts KEY=VALUE pairs into a mapping. Each entry is split on its
// first '='; entries without a key are skipped.
func Environ(environ []string) Mapping {
	out := make(Mapping, len(environ))
	for _, kv := range environ {
		key, value, _ := strings.Cut(kv, "=")
		if key == "" {
			continue
		}
		out[key] = value
	}
	return out
}

// ProcessEnv returns the live process environment as a mapping.
func ProcessEnv() Mapping {
	return Environ(os.Environ())
}

// environLookup turns KEY=VALUE pairs into the map form env parsers expect.
func environLookup(environ []string) map[string]string {
	out := make(map[string]string, len(environ))
	for k, v := range Environ(environ) {
		out[k] = v.(string)
	}
	return out
}
