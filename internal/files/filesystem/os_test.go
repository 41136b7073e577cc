package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Provider = (*OSFileSystem)(nil)

func TestOSFileSystem_Open_ValidDirectory(t *testing.T) {
	dir := t.TempDir()
	fs := NewOSFileSystem()

	d, err := fs.Open(dir)
	require.NoError(t, err)

	absDir, _ := filepath.Abs(dir)
	assert.Equal(t, absDir, d.Path())
}

func TestOSFileSystem_Open_NonexistentPath(t *testing.T) {
	_, err := NewOSFileSystem().Open(filepath.Join(t.TempDir(), "nonexistent"))
	assert.Error(t, err)
}

func TestOSFileSystem_Open_FileNotDirectory(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "handling.meta")
	require.NoError(t, os.WriteFile(filePath, []byte("content"), 0o644))

	_, err := NewOSFileSystem().Open(filePath)
	assert.Error(t, err)
}

func TestOSFileSystem_ReadWriteFile(t *testing.T) {
	dir := t.TempDir()
	fs := NewOSFileSystem()
	target := filepath.Join(dir, "out", "nested", "merged.meta")

	require.NoError(t, fs.WriteFile(target, []byte("<a />")))
	data, err := fs.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "<a />", string(data))

	require.NoError(t, fs.WriteFile(target, []byte("<b />")))
	data, err = fs.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "<b />", string(data))

	info, err := fs.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, "merged.meta", info.Name())
}

func TestOSFileSystem_Walk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "police"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "handling.meta"), []byte("h"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "police", "carcols.meta"), []byte("c"), 0o644))

	d, err := NewOSFileSystem().Open(dir)
	require.NoError(t, err)

	var rels []string
	err = d.Walk(func(file File, err error) error {
		require.NoError(t, err)
		if !file.Info().IsDir() {
			rels = append(rels, file.RelativePath())
			content, err := file.ReadContent()
			require.NoError(t, err)
			assert.Len(t, content, 1)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"handling.meta", "police/carcols.meta"}, rels)
}

func TestOSFileSystem_WalkRecoversPanic(t *testing.T) {
	d, err := NewOSFileSystem().Open(t.TempDir())
	require.NoError(t, err)

	err = d.Walk(func(File, error) error { panic("boom") })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panicked")
}
