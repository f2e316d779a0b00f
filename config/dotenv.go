package config

import (
	"github.com/joho/godotenv"

	"github.com/kbukum/ssot/errors"
)

// LoadDotEnv parses the env file at path. A missing file yields an empty
// mapping; a malformed one is a CONFIG_PARSE error.
func LoadDotEnv(fs FileSystem, path string) (Mapping, error) {
	out := make(Mapping)
	if path == "" || !fs.Exists(path) {
		return out, nil
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, errors.ReadFailed(path, err)
	}

	pairs, err := godotenv.UnmarshalBytes(data)
	if err != nil {
		return nil, errors.ParseFailed(SourceDotEnv.String(), path, err)
	}
	for k, v := range pairs {
		out[k] = v
	}
	return out, nil
}

// ExportDotEnv copies the variables of the env file at path into the process
// environment, leaving variables that are already set untouched.
func ExportDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		return errors.ParseFailed(SourceDotEnv.String(), path, err)
	}
	return nil
}
