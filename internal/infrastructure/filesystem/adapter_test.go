package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestAdapter_CountFiles(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "a")
	writeFile(t, filepath.Join(root, "sub", "b.txt"), "b")
	writeFile(t, filepath.Join(root, "sub", "deeper", "c.txt"), "c")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o755))

	fs := New()

	n, err := fs.CountFiles(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = fs.CountFiles(ctx, filepath.Join(root, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = fs.CountFiles(ctx, filepath.Join(root, "missing"))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestAdapter_CopyFile_TruncatesDestination(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	writeFile(t, src, "short")
	writeFile(t, dst, "a much longer previous content")

	n, err := New().CopyFile(ctx, src, dst)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "short", string(data))
}

func TestAdapter_CopyFile_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	writeFile(t, src, "content")

	_, err := New().CopyFile(ctx, src, filepath.Join(dir, "dst.txt"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAdapter_HardLink_SharesIdentity(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "link.bin")
	writeFile(t, src, "payload")

	require.NoError(t, New().HardLink(ctx, src, dst))

	srcInfo, err := os.Stat(src)
	require.NoError(t, err)
	dstInfo, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, os.SameFile(srcInfo, dstInfo))
}

func TestAdapter_GetSize(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a"), "12345")
	writeFile(t, filepath.Join(root, "d", "b"), "123")

	fs := New()
	size, err := fs.GetSize(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, int64(8), size)

	size, err = fs.GetSize(ctx, filepath.Join(root, "nope"))
	require.NoError(t, err)
	assert.Zero(t, size)
}
