package config

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/kbukum/ssot/errors"
)

// staticExtensions are tried in order for every static file base name.
var staticExtensions = []string{"json", "yaml", "yml", "toml"}

// StaticFileNames returns the base names loaded for environment, lowest
// precedence first: default, <environment>, local, local-<environment>.
func StaticFileNames(environment string) []string {
	names := []string{"default"}
	if environment != "" && environment != "default" && environment != "local" {
		names = append(names, environment)
	}
	names = append(names, "local")
	if environment != "" && environment != "default" && environment != "local" {
		names = append(names, "local-"+environment)
	}
	return names
}

// LoadStaticFiles reads the static config files of dir for environment and
// overlays them shallowly in StaticFileNames order. Only top-level keys are
// kept, spelled as written; nested tables stay opaque values. A later file
// replaces every spelling of a key it defines. A missing dir or file
// contributes nothing. It returns the merged mapping and the files that were
// read.
func LoadStaticFiles(fs FileSystem, dir, environment string) (Mapping, []string, error) {
	out := make(Mapping)
	if dir == "" {
		return out, nil, nil
	}

	var loaded []string
	for _, name := range StaticFileNames(environment) {
		path, ok := findStaticFile(fs, dir, name)
		if !ok {
			continue
		}
		values, err := readStaticFile(fs, path)
		if err != nil {
			return nil, loaded, err
		}
		overlay(out, values)
		loaded = append(loaded, path)
	}
	return out, loaded, nil
}

// overlay copies src into dst, first dropping dst keys that src redefines
// under any spelling. Spellings inside src are kept so collisions within one
// file still reach Normalize.
func overlay(dst, src Mapping) {
	redefined := make(map[string]struct{}, len(src))
	for k := range src {
		redefined[strings.ToUpper(k)] = struct{}{}
	}
	for k := range dst {
		if _, ok := redefined[strings.ToUpper(k)]; ok {
			delete(dst, k)
		}
	}
	for k, v := range src {
		dst[k] = v
	}
}

// findStaticFile returns the first existing <dir>/<name>.<ext>.
func findStaticFile(fs FileSystem, dir, name string) (string, bool) {
	for _, ext := range staticExtensions {
		path := filepath.Join(dir, name+"."+ext)
		if fs.Exists(path) {
			return path, true
		}
	}
	return "", false
}

// readStaticFile parses one file using its extension as the format.
func readStaticFile(fs FileSystem, path string) (Mapping, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, errors.ReadFailed(path, err)
	}

	values, err := decodeStatic(strings.TrimPrefix(filepath.Ext(path), "."), data)
	if err != nil {
		return nil, errors.ParseFailed(SourceStaticFile.String(), path, err)
	}
	return values, nil
}

// decodeStatic decodes data with the codec for ext. Keys are not folded or
// split on dots, unlike viper's own reader.
func decodeStatic(ext string, data []byte) (Mapping, error) {
	if !slices.Contains(viper.SupportedExts, ext) {
		return nil, viper.UnsupportedConfigError(ext)
	}

	out := make(map[string]any)
	if len(bytes.TrimSpace(data)) == 0 {
		return out, nil
	}

	var err error
	switch ext {
	case "json":
		err = json.Unmarshal(data, &out)
	case "yaml", "yml":
		err = yaml.Unmarshal(data, &out)
	case "toml":
		err = toml.Unmarshal(data, &out)
	default:
		err = viper.UnsupportedConfigError(ext)
	}
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = make(map[string]any)
	}
	return Mapping(out), nil
}
