package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureDir_CreatesNested(t *testing.T) {
	base := t.TempDir()
	dir, err := EnsureDir(filepath.Join(base, "a", "b"))
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestEnsureDir_RelativeResolvesToCwd(t *testing.T) {
	base := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(base))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	dir, err := EnsureDir("downloads")
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(dir))
}

func TestWriteAtomic_WritesAndLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "qr-abc.png")

	require.NoError(t, WriteAtomic(path, []byte("payload")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), data)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestWriteAtomic_Overwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "qr-abc.png")

	require.NoError(t, WriteAtomic(path, []byte("one")))
	require.NoError(t, WriteAtomic(path, []byte("two")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("two"), data)
}
