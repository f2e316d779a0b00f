package config

import (
	stderrors "errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/ssot/errors"
)

func TestStaticFileNames(t *testing.T) {
	assert.Equal(t, []string{"default", "local"}, StaticFileNames(""))
	assert.Equal(t, []string{"default", "local"}, StaticFileNames("default"))
	assert.Equal(t, []string{"default", "local"}, StaticFileNames("local"))
	assert.Equal(t,
		[]string{"default", "production", "local", "local-production"},
		StaticFileNames("production"))
}

func TestLoadStaticFiles_LayersByEnvironment(t *testing.T) {
	fs := newMemFS(map[string]string{
		"config/default.json":          `{"host": "a", "port": 3000, "debug": false}`,
		"config/production.yaml":       "host: b\n",
		"config/local.toml":            "debug = true\n",
		"config/local-production.json": `{"region": "eu"}`,
		"config/staging.json":          `{"host": "never"}`,
	})

	got, files, err := LoadStaticFiles(fs, "config", "production")
	require.NoError(t, err)

	assert.Equal(t, "b", got["host"])
	assert.EqualValues(t, 3000, got["port"])
	assert.Equal(t, true, got["debug"])
	assert.Equal(t, "eu", got["region"])
	assert.Equal(t, []string{
		filepath.Join("config", "default.json"),
		filepath.Join("config", "production.yaml"),
		filepath.Join("config", "local.toml"),
		filepath.Join("config", "local-production.json"),
	}, files)
}

func TestLoadStaticFiles_NestedValuesStayOpaque(t *testing.T) {
	fs := newMemFS(map[string]string{
		"config/default.yaml":     "db:\n  host: localhost\n  port: 5432\n",
		"config/development.yaml": "db:\n  host: dev-db\n",
	})

	got, _, err := LoadStaticFiles(fs, "config", "development")
	require.NoError(t, err)

	require.Len(t, got, 1)
	db, ok := got["db"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "dev-db", db["host"])
	assert.NotContains(t, db, "port", "files replace top-level values wholesale")
}

func TestLoadStaticFiles_ExtensionOrder(t *testing.T) {
	fs := newMemFS(map[string]string{
		"config/default.json": `{"format": "json"}`,
		"config/default.yaml": "format: yaml\n",
	})

	got, files, err := LoadStaticFiles(fs, "config", "")
	require.NoError(t, err)
	assert.Equal(t, "json", got["format"])
	assert.Len(t, files, 1)
}

func TestLoadStaticFiles_MissingDirectory(t *testing.T) {
	got, files, err := LoadStaticFiles(newMemFS(nil), "config", "production")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, files)

	got, files, err = LoadStaticFiles(newMemFS(nil), "", "production")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, files)
}

func TestLoadStaticFiles_MalformedFile(t *testing.T) {
	fs := newMemFS(map[string]string{
		"config/default.json": `{"host": "a"`,
	})

	_, _, err := LoadStaticFiles(fs, "config", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigParse))
	assert.True(t, errors.IsFatal(err))

	appErr, _ := errors.As(err)
	assert.Equal(t, filepath.Join("config", "default.json"), appErr.Details["path"])
}

func TestLoadStaticFiles_ReadFailure(t *testing.T) {
	fs := newMemFS(map[string]string{"config/default.json": `{}`})
	fs.readErrs[filepath.Join("config", "default.json")] = stderrors.New("permission denied")

	_, _, err := LoadStaticFiles(fs, "config", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigRead))
}

func TestLoadStaticFiles_OSFileSystem(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"default.json": `{"DB_HOST": "localhost"}`,
		"test.toml":    "DB_PORT = 5432\n",
	})

	got, files, err := LoadStaticFiles(OSFileSystem{}, root, "test")
	require.NoError(t, err)
	assert.Len(t, files, 2)

	r := Resolve(got, nil, nil, nil)
	assert.Equal(t, "localhost", r.StringOr("DB_HOST", ""))
	assert.Equal(t, 5432, r.IntOr("db_port", 0))
}

func TestLoadStaticFiles_KeepsKeySpelling(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
		want Mapping
	}{
		{"dotted json keys stay flat", "default.json", `{"db.host": "x", "APP.NAME": "y"}`, Mapping{"db.host": "x", "APP.NAME": "y"}},
		{"dotted yaml keys stay flat", "default.yaml", "db.host: x\n", Mapping{"db.host": "x"}},
		{"quoted toml keys stay flat", "default.toml", "\"db.host\" = \"x\"\n", Mapping{"db.host": "x"}},
		{"mixed case", "default.json", `{"Api_Url": "u", "DEBUG": true}`, Mapping{"Api_Url": "u", "DEBUG": true}},
		{"nested keys untouched", "default.json", `{"db": {"Host": "h"}}`, Mapping{"db": map[string]any{"Host": "h"}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fs := newMemFS(map[string]string{"config/" + tc.file: tc.body})

			got, _, err := LoadStaticFiles(fs, "config", "")
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLoadStaticFiles_DottedKeyOverriddenByHigherSources(t *testing.T) {
	fs := newMemFS(map[string]string{
		"config/default.json": `{"db.host": "x", "APP.NAME": "y"}`,
	})

	static, _, err := LoadStaticFiles(fs, "config", "")
	require.NoError(t, err)

	r := Resolve(static, Mapping{"DB.HOST": "dotenv"}, nil, nil)
	assert.Equal(t, []string{"APP.NAME", "DB.HOST"}, r.Keys())
	assert.Equal(t, "dotenv", r.StringOr("DB.HOST", ""))
	assert.Equal(t, "y", r.StringOr("app.name", ""))
}

func TestLoadStaticFiles_CollisionInsideOneFile(t *testing.T) {
	fs := newMemFS(map[string]string{
		"config/default.json": `{"PORT": "upper", "port": "lower", "Port": "mixed"}`,
	})

	static, _, err := LoadStaticFiles(fs, "config", "")
	require.NoError(t, err)
	assert.Equal(t, Mapping{"PORT": "upper", "port": "lower", "Port": "mixed"}, static)

	assert.Equal(t, "upper", Resolve(static, nil, nil, nil).StringOr("PORT", ""))

	_, err = NormalizeStrict(static)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeKeyCollision))
}

func TestLoadStaticFiles_LaterFileReplacesAnySpelling(t *testing.T) {
	fs := newMemFS(map[string]string{
		"config/default.json": `{"PORT": 1, "Host": "a"}`,
		"config/local.json":   `{"port": 2}`,
	})

	static, _, err := LoadStaticFiles(fs, "config", "")
	require.NoError(t, err)
	assert.Equal(t, Mapping{"port": float64(2), "Host": "a"}, static)

	_, err = NormalizeStrict(static)
	assert.NoError(t, err)
}

func TestLoadStaticFiles_EmptyAndNullFiles(t *testing.T) {
	fs := newMemFS(map[string]string{
		"config/default.yaml": "",
		"config/local.json":   "null",
	})

	got, files, err := LoadStaticFiles(fs, "config", "")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Len(t, files, 2)
}

func TestDecodeStatic_RejectsNonObjectDocuments(t *testing.T) {
	_, err := decodeStatic("json", []byte(`["a", "b"]`))
	assert.Error(t, err)

	_, err = decodeStatic("ini", []byte("a=1"))
	assert.Error(t, err)

	_, err = decodeStatic("xml", []byte("<a/>"))
	assert.Error(t, err)
}
