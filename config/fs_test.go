package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// memFS is an in-memory FileSystem.
type memFS struct {
	files    map[string]string
	dirs     map[string]bool
	readErrs map[string]error
}

func newMemFS(files map[string]string) *memFS {
	m := &memFS{files: map[string]string{}, dirs: map[string]bool{}, readErrs: map[string]error{}}
	for p, content := range files {
		m.files[filepath.Clean(p)] = content
		for dir := filepath.Dir(p); dir != "." && dir != "/"; dir = filepath.Dir(dir) {
			m.dirs[dir] = true
		}
	}
	return m
}

func (m *memFS) Exists(path string) bool {
	path = filepath.Clean(path)
	_, ok := m.files[path]
	return ok || m.dirs[path]
}

func (m *memFS) ReadFile(path string) ([]byte, error) {
	path = filepath.Clean(path)
	if err, ok := m.readErrs[path]; ok {
		return nil, err
	}
	content, ok := m.files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return []byte(content), nil
}

func (m *memFS) Getwd() (string, error) {
	return "/mem", nil
}

// writeFiles creates files under a temp dir and returns the dir.
func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return root
}

func TestOSFileSystem(t *testing.T) {
	root := writeFiles(t, map[string]string{"a.txt": "hello"})
	fs := OSFileSystem{}

	require.True(t, fs.Exists(root))
	require.True(t, fs.Exists(filepath.Join(root, "a.txt")))
	require.False(t, fs.Exists(filepath.Join(root, "missing.txt")))

	data, err := fs.ReadFile(filepath.Join(root, "a.txt"))
	require.NoError(t, err)
	require.Equal(t, "hello", string(data))

	wd, err := fs.Getwd()
	require.NoError(t, err)
	require.NotEmpty(t, wd)
}
