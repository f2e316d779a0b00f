package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/kbukum/ssot/config"
	"github.com/kbukum/ssot/errors"
	"github.com/kbukum/ssot/version"
)

// project writes config/default.json and .env under a temp dir.
func project(t *testing.T, defaults, dotenv string) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "config"), 0o755))
	if defaults != "" {
		require.NoError(t, os.WriteFile(filepath.Join(root, "config", "default.json"), []byte(defaults), 0o600))
	}
	if dotenv != "" {
		require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte(dotenv), 0o600))
	}
	return root
}

// execute runs the CLI against root with environ as the process environment.
func execute(t *testing.T, root string, environ []string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(config.WithEnviron(environ))

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)

	full := append([]string{}, args[0])
	if root != "" {
		full = append(full,
			"--config-dir", filepath.Join(root, "config"),
			"--env-file", filepath.Join(root, ".env"))
	}
	cmd.SetArgs(append(full, args[1:]...))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestResolve_JSON(t *testing.T) {
	root := project(t, `{"DB_HOST": "localhost"}`, "DB_HOST=staging-db\nDB_PORT=5432\n")

	out, err := execute(t, root, []string{"DB_PORT=6000"}, "resolve")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, map[string]any{"DB_HOST": "staging-db", "DB_PORT": "6000"}, got)
}

func TestResolve_AppArgsAfterDash(t *testing.T) {
	root := project(t, `{"port": 3000}`, "")

	out, err := execute(t, root, []string{"PORT=5000"}, "resolve", "--", "--port", "8080", "--debug")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, map[string]any{"PORT": 8080.0, "DEBUG": true}, got)
}

func TestResolve_ShowSourceAndMask(t *testing.T) {
	root := project(t, `{"db_password": "hunter2-long-secret"}`, "DB_HOST=db.internal\n")

	out, err := execute(t, root, nil, "resolve", "--show-source", "--mask")
	require.NoError(t, err)

	var got map[string]sourcedValue
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, sourcedValue{Value: "db.internal", Source: "dotenv"}, got["DB_HOST"])
	assert.Equal(t, sourcedValue{Value: "hu****et", Source: "static_file"}, got["DB_PASSWORD"])
	assert.NotContains(t, out, "hunter2")
}

func TestResolve_Formats(t *testing.T) {
	root := project(t, `{"name": "api", "replicas": 2}`, "REGION=eu\n")

	out, err := execute(t, root, nil, "resolve", "--format", "yaml")
	require.NoError(t, err)
	var y map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &y))
	assert.Equal(t, "api", y["NAME"])
	assert.Equal(t, "eu", y["REGION"])

	out, err = execute(t, root, nil, "resolve", "--format", "toml")
	require.NoError(t, err)
	var tm map[string]any
	require.NoError(t, toml.Unmarshal([]byte(out), &tm))
	assert.Equal(t, "api", tm["NAME"])

	out, err = execute(t, root, nil, "resolve", "--format", "env")
	require.NoError(t, err)
	assert.Contains(t, out, `NAME="api"`)
	assert.Contains(t, out, `REGION="eu"`)

	out, err = execute(t, root, nil, "resolve", "--format", "env", "--show-source")
	require.NoError(t, err)
	assert.Contains(t, out, "# dotenv\nREGION=\"eu\"")

	out, err = execute(t, root, nil, "resolve", "--format", "table", "--show-source")
	require.NoError(t, err)
	for _, s := range []string{"KEY", "VALUE", "SOURCE", "REPLICAS", "static_file", "dotenv"} {
		assert.Contains(t, out, s)
	}
}

func TestResolve_InvalidFormat(t *testing.T) {
	_, err := execute(t, "", nil, "resolve", "--format", "xml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestResolve_RejectsPositionalArgs(t *testing.T) {
	_, err := execute(t, "", nil, "resolve", "extra")
	assert.ErrorContains(t, err, "expects 0 argument(s)")
}

func TestResolve_InvalidEnvironmentFlag(t *testing.T) {
	_, err := execute(t, "", nil, "resolve", "--env", "../prod")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestResolve_StrictCollision(t *testing.T) {
	root := project(t, "", "port=1\nPORT=2\n")

	_, err := execute(t, root, nil, "resolve", "--strict")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeKeyCollision))
}

func TestResolve_MalformedFile(t *testing.T) {
	root := project(t, `{"broken": `, "")

	_, err := execute(t, root, nil, "resolve")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigParse))
}

func TestGet(t *testing.T) {
	root := project(t, `{"db_host": "localhost"}`, "")

	out, err := execute(t, root, []string{"API_URL=https://api.local"}, "get", "api_url")
	require.NoError(t, err)
	assert.Equal(t, "https://api.local\n", out)

	out, err = execute(t, root, nil, "get", "DB_HOST", "--show-source")
	require.NoError(t, err)
	assert.Equal(t, "localhost\tstatic_file\n", out)

	out, err = execute(t, root, nil, "get", "DB_HOST", "--", "--DB_HOST", "cli-host")
	require.NoError(t, err)
	assert.Equal(t, "cli-host\n", out)
}

func TestGet_Missing(t *testing.T) {
	_, err := execute(t, "", nil, "get", "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeKeyNotFound))

	_, err = execute(t, "", nil, "get")
	assert.ErrorContains(t, err, "expects 1 argument(s)")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", nil, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "ssot "+version.Short())

	out, err = execute(t, "", nil, "version", "--json")
	require.NoError(t, err)
	var info map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, version.Version, info["version"])
}

func TestDisplayValue(t *testing.T) {
	assert.Equal(t, "", displayValue(nil))
	assert.Equal(t, "x", displayValue("x"))
	assert.Equal(t, "42", displayValue(int64(42)))
	assert.Equal(t, "true", displayValue(true))
	assert.Equal(t, `{"a":1}`, displayValue(map[string]any{"a": 1}))
	assert.Equal(t, `["a","b"]`, displayValue([]any{"a", "b"}))
}
