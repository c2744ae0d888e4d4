package usecase_test

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/slickdir/internal/application/usecase"
	"github.com/bnema/slickdir/internal/domain/entity"
	"github.com/bnema/slickdir/internal/infrastructure/filesystem"
	"github.com/bnema/slickdir/internal/infrastructure/imaging"
)

func newReplicator(t *testing.T) *usecase.ReplicateFilesUseCase {
	materialize, _ := newMaterializer(t)
	return usecase.NewReplicateFilesUseCase(filesystem.New(), imaging.NewCodec(), materialize)
}

func sameFile(t *testing.T, a, b string) bool {
	t.Helper()
	ai, err := os.Stat(a)
	require.NoError(t, err)
	bi, err := os.Stat(b)
	require.NoError(t, err)
	return os.SameFile(ai, bi)
}

func TestReplicateFiles_HardLinkThreshold(t *testing.T) {
	ctx := testContext()
	src := t.TempDir()
	dst := t.TempDir()

	const limit = 16
	small := filepath.Join(src, "small.bin")
	large := filepath.Join(src, "large.bin")
	writeFile(t, small, make([]byte, limit))
	writeFile(t, large, make([]byte, limit+1))

	out, err := newReplicator(t).Execute(ctx, usecase.ReplicateFilesInput{
		Sources:   []string{small, large},
		TargetDir: dst,
		Policy:    entity.CopyPolicy{MaxHardLinkSize: limit},
	})
	require.NoError(t, err)
	require.Equal(t, 2, out.Succeeded())

	assert.Equal(t, usecase.CopyMethodCopy, out.Results[0].Method)
	assert.False(t, sameFile(t, small, filepath.Join(dst, "small.bin")))

	assert.Equal(t, usecase.CopyMethodHardLink, out.Results[1].Method)
	assert.True(t, sameFile(t, large, filepath.Join(dst, "large.bin")))
}

func TestReplicateFiles_DisabledThresholdsAlwaysCopy(t *testing.T) {
	for _, limit := range []int64{entity.HardLinkDisabled, entity.HardLinkUnbounded, math.MaxInt64} {
		t.Run(fmt.Sprint(limit), func(t *testing.T) {
			ctx := testContext()
			src := filepath.Join(t.TempDir(), "big.bin")
			dst := t.TempDir()
			writeFile(t, src, make([]byte, 64))

			out, err := newReplicator(t).Execute(ctx, usecase.ReplicateFilesInput{
				Sources:   []string{src},
				TargetDir: dst,
				Policy:    entity.CopyPolicy{MaxHardLinkSize: limit},
			})
			require.NoError(t, err)
			require.Len(t, out.Results, 1)
			assert.Equal(t, usecase.CopyMethodCopy, out.Results[0].Method)
			assert.False(t, sameFile(t, src, filepath.Join(dst, "big.bin")))
		})
	}
}

func TestReplicateFiles_RecursiveTree(t *testing.T) {
	ctx := testContext()
	root := filepath.Join(t.TempDir(), "project")
	dst := t.TempDir()

	writeFile(t, filepath.Join(root, "README"), []byte("readme"))
	writeFile(t, filepath.Join(root, "src", "main.go"), []byte("package main"))
	writeFile(t, filepath.Join(root, "src", "lib", "lib.go"), []byte("package lib"))
	writeFile(t, filepath.Join(root, "docs", "a.txt"), []byte("a"))
	writeFile(t, filepath.Join(root, "docs", "b.txt"), []byte("b"))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o755))

	out, err := newReplicator(t).Execute(ctx, usecase.ReplicateFilesInput{
		Sources:   []string{root},
		TargetDir: dst,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, out.Succeeded())
	assert.Equal(t, 5, out.Directories)
	assert.ElementsMatch(t, []string{
		"project/README",
		"project/src/main.go",
		"project/src/lib/lib.go",
		"project/docs/a.txt",
		"project/docs/b.txt",
	}, listFiles(t, dst))
	assert.DirExists(t, filepath.Join(dst, "project", "empty"))
	assert.Equal(t, "package lib", readFile(t, filepath.Join(dst, "project", "src", "lib", "lib.go")))
}

func TestReplicateFiles_FailureIsolation(t *testing.T) {
	ctx := testContext()
	src := t.TempDir()
	dst := t.TempDir()

	var sources []string
	for i := 0; i < 10; i++ {
		p := filepath.Join(src, fmt.Sprintf("file%d.txt", i))
		if i != 4 {
			writeFile(t, p, []byte(p))
		}
		sources = append(sources, p)
	}

	out, err := newReplicator(t).Execute(ctx, usecase.ReplicateFilesInput{Sources: sources, TargetDir: dst})
	require.NoError(t, err)

	assert.Equal(t, 9, out.Succeeded())
	assert.Equal(t, 1, out.Failed())
	assert.Len(t, listFiles(t, dst), 9)
	assert.NoFileExists(t, filepath.Join(dst, "file4.txt"))
}

func TestReplicateFiles_ImagesAreMaterialized(t *testing.T) {
	ctx := testContext()
	src := t.TempDir()
	dst := t.TempDir()
	photo := filepath.Join(src, "photo.jpg")
	writeFile(t, photo, jpegBytes(t))

	out, err := newReplicator(t).Execute(ctx, usecase.ReplicateFilesInput{Sources: []string{photo}, TargetDir: dst})
	require.NoError(t, err)
	require.Len(t, out.Results, 1)
	require.NoError(t, out.Results[0].ImageErr)

	assert.Equal(t, []string{"photo.jpg", "photo.png"}, listFiles(t, dst))
	assert.Equal(t, readFile(t, photo), readFile(t, filepath.Join(dst, "photo.jpg")))
}

func TestReplicateFiles_WebPIsTranscodedOnce(t *testing.T) {
	ctx := testContext()
	src := t.TempDir()
	dst := t.TempDir()
	// Content is sniffed, so PNG bytes behind a webp name take the transcode path.
	pic := filepath.Join(src, "pic.webp")
	writeFile(t, pic, pngBytes(t))

	out, err := newReplicator(t).Execute(ctx, usecase.ReplicateFilesInput{Sources: []string{pic}, TargetDir: dst})
	require.NoError(t, err)
	require.Len(t, out.Results, 1)
	require.NoError(t, out.Results[0].ImageErr)

	assert.Equal(t, []string{"pic.png", "pic.webp"}, listFiles(t, dst))
}

func TestReplicateFiles_BrokenImageDoesNotFailFile(t *testing.T) {
	ctx := testContext()
	src := t.TempDir()
	dst := t.TempDir()
	fake := filepath.Join(src, "fake.png")
	writeFile(t, fake, []byte("not a png"))

	out, err := newReplicator(t).Execute(ctx, usecase.ReplicateFilesInput{Sources: []string{fake}, TargetDir: dst})
	require.NoError(t, err)
	require.Len(t, out.Results, 1)

	assert.True(t, out.Results[0].OK())
	assert.Error(t, out.Results[0].ImageErr)
	assert.FileExists(t, filepath.Join(dst, "fake.png"))
}

func TestReplicateFiles_SkipsNestedSymlinkedDirectories(t *testing.T) {
	ctx := testContext()
	root := filepath.Join(t.TempDir(), "tree")
	dst := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), []byte("a"))
	require.NoError(t, os.Symlink(root, filepath.Join(root, "loop")))

	out, err := newReplicator(t).Execute(ctx, usecase.ReplicateFilesInput{Sources: []string{root}, TargetDir: dst})
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(root, "loop")}, out.Skipped)
	assert.Equal(t, []string{"tree/a.txt"}, listFiles(t, dst))
}

func TestReplicateFiles_StopsWhenCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(testContext())
	cancel()
	src := filepath.Join(t.TempDir(), "a.txt")
	dst := t.TempDir()
	writeFile(t, src, []byte("a"))

	out, err := newReplicator(t).Execute(ctx, usecase.ReplicateFilesInput{Sources: []string{src}, TargetDir: dst})
	require.NoError(t, err)

	assert.True(t, out.Canceled)
	assert.Empty(t, out.Results)
	assert.Empty(t, listFiles(t, dst))
}

func TestReplicateFiles_RequiresTarget(t *testing.T) {
	_, err := newReplicator(t).Execute(testContext(), usecase.ReplicateFilesInput{Sources: []string{"/tmp"}})
	assert.Error(t, err)
}
