package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}
}

func TestFindFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "b.hcl", "a.yaml", "nested/c.hcl", "nested/d.yml", "notes.txt")

	got, err := FindFiles([]string{root}, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "b.hcl"),
		filepath.Join(root, "nested", "c.hcl"),
	}, got)

	got, err = FindFiles([]string{root}, ".yaml", ".yml")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.yaml"),
		filepath.Join(root, "nested", "d.yml"),
	}, got)
}

func TestFindFiles_SingleFileAndDuplicates(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "main.hcl", "other.yaml")
	file := filepath.Join(root, "main.hcl")

	got, err := FindFiles([]string{file, root, file}, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{file}, got)

	got, err = FindFiles([]string{filepath.Join(root, "other.yaml")}, ".hcl")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindFiles_MissingPath(t *testing.T) {
	_, err := FindFiles([]string{filepath.Join(t.TempDir(), "missing")}, ".hcl")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFindFiles_PanicsOnEmptyExtension(t *testing.T) {
	assert.Panics(t, func() { _, _ = FindFiles([]string{t.TempDir()}, "") })
	assert.Panics(t, func() { _, _ = FindFiles([]string{t.TempDir()}) })
}
