package config

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	numberPattern  = regexp.MustCompile(`^-?(\d+(\.\d*)?|\.\d+)([eE][-+]?\d+)?$`)
	leadingZeroNum = regexp.MustCompile(`^-?0\d`)
)

// ParseArgs turns command-line flags into a mapping without any flag
// declarations. Flag names are kept as written.
//
// Accepted forms:
//
//	--key=value  --key value  --flag  --no-flag  -k value  -k=value  -abc
//
// A flag without a value is true, --no-<name> sets <name> to false and
// grouped short flags are all true. Values that look like booleans or
// numbers are converted. Repeated flags keep the last value. Parsing stops
// at "--" and positional arguments are ignored.
func ParseArgs(args []string) Mapping {
	out := make(Mapping)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return out

		case strings.HasPrefix(arg, "--"):
			name := arg[2:]
			if key, value, ok := strings.Cut(name, "="); ok {
				if key != "" {
					out[key] = coerceArg(value)
				}
				continue
			}
			if strings.HasPrefix(name, "no-") && len(name) > 3 {
				out[name[3:]] = false
				continue
			}
			if i+1 < len(args) && !isFlag(args[i+1]) {
				out[name] = coerceArg(args[i+1])
				i++
				continue
			}
			out[name] = true

		case isFlag(arg):
			letters := arg[1:]
			if key, value, ok := strings.Cut(letters, "="); ok {
				if key != "" {
					out[key] = coerceArg(value)
				}
				continue
			}
			if len(letters) == 1 && i+1 < len(args) && !isFlag(args[i+1]) {
				out[letters] = coerceArg(args[i+1])
				i++
				continue
			}
			for _, r := range letters {
				out[string(r)] = true
			}
		}
	}
	return out
}

// isFlag reports whether arg starts a flag. Negative numbers are values.
func isFlag(arg string) bool {
	return len(arg) > 1 && arg[0] == '-' && !numberPattern.MatchString(arg)
}

// coerceArg converts true/false and plain decimal numbers; everything else
// stays a string. Numbers with leading zeros and integers that overflow
// int64 stay strings so identifiers keep their exact spelling.
func coerceArg(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if !numberPattern.MatchString(s) || leadingZeroNum.MatchString(s) {
		return s
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.ContainsAny(s, ".eE") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}
