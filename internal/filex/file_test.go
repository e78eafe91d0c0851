package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir_CreatesNestedDirectory(t *testing.T) {
	tmp := t.TempDir()
	want := filepath.Join(tmp, "exports", "2026")

	got, err := EnsureDir(want)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	fi, err := os.Stat(want)
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
}

func TestEnsureDir_EmptyMeansCWD(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	got, err := EnsureDir("")
	require.NoError(t, err)
	assert.Equal(t, cwd, got)
}

func TestEnsureDir_FailsOnFile(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, "plain")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	_, err := EnsureDir(filepath.Join(file, "sub"))
	require.Error(t, err)
}

func TestWriteFileAtomic_WritesAndLeavesNoTemp(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "out.pdf")

	require.NoError(t, WriteFileAtomic(path, []byte("%PDF-1.3"), 0o644))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(b))

	entries, err := os.ReadDir(tmp)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteFileAtomic_MissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.pdf")

	err := WriteFileAtomic(path, []byte("x"), 0o644)
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
