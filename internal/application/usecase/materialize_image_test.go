package usecase_test

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/slickdir/internal/application/port"
	"github.com/bnema/slickdir/internal/application/port/mocks"
	"github.com/bnema/slickdir/internal/application/usecase"
	"github.com/bnema/slickdir/internal/domain/entity"
	"github.com/bnema/slickdir/internal/infrastructure/filesystem"
	"github.com/bnema/slickdir/internal/infrastructure/imaging"
)

func newMaterializer(t *testing.T) (*usecase.MaterializeImageUseCase, *mocks.MockFailureSignal) {
	signal := mocks.NewMockFailureSignal(t)
	return usecase.NewMaterializeImageUseCase(filesystem.New(), imaging.NewCodec(), signal), signal
}

func TestMaterializeImage_JPEGWritesNativeAndPNG(t *testing.T) {
	ctx := testContext()
	dir := t.TempDir()
	uc, _ := newMaterializer(t)

	out := uc.Execute(ctx, usecase.MaterializeImageInput{
		Image:     &port.Image{Format: entity.ImageFormatJPEG, Data: jpegBytes(t)},
		TargetDir: dir,
	})

	require.False(t, out.Failed)
	assert.Equal(t, []string{"clipboard.jpg", "clipboard.png"}, listFiles(t, dir))

	f, err := os.Open(filepath.Join(dir, "clipboard.png"))
	require.NoError(t, err)
	defer f.Close()
	_, err = png.Decode(f)
	assert.NoError(t, err)
}

func TestMaterializeImage_PNGWritesSingleFile(t *testing.T) {
	ctx := testContext()
	dir := t.TempDir()
	uc, _ := newMaterializer(t)
	data := pngBytes(t)

	out := uc.Execute(ctx, usecase.MaterializeImageInput{
		Image:     &port.Image{Format: entity.ImageFormatPNG, Data: data},
		TargetDir: dir,
	})

	require.False(t, out.Failed)
	assert.Equal(t, []string{"clipboard.png"}, listFiles(t, dir))
	assert.Equal(t, string(data), readFile(t, filepath.Join(dir, "clipboard.png")))
}

func TestMaterializeImage_IsIdempotent(t *testing.T) {
	ctx := testContext()
	dir := t.TempDir()
	uc, _ := newMaterializer(t)
	input := usecase.MaterializeImageInput{
		Image:     &port.Image{Format: entity.ImageFormatJPEG, Data: jpegBytes(t)},
		TargetDir: dir,
	}

	first := uc.Execute(ctx, input)
	require.Len(t, first.Written, 2)

	// A marker proves the second call leaves existing files alone.
	writeFile(t, filepath.Join(dir, "clipboard.png"), []byte("marker"))

	second := uc.Execute(ctx, input)
	assert.False(t, second.Failed)
	assert.Empty(t, second.Written)
	assert.Len(t, second.Skipped, 2)
	assert.Equal(t, "marker", readFile(t, filepath.Join(dir, "clipboard.png")))
}

func TestMaterializeImage_BaseNameSwapsExtension(t *testing.T) {
	ctx := testContext()
	dir := t.TempDir()
	uc, _ := newMaterializer(t)
	writeFile(t, filepath.Join(dir, "photo.jpg"), jpegBytes(t))

	out := uc.Execute(ctx, usecase.MaterializeImageInput{
		Image:     &port.Image{Format: entity.ImageFormatJPEG, Data: jpegBytes(t)},
		TargetDir: dir,
		BaseName:  "photo.jpg",
	})

	require.False(t, out.Failed)
	assert.Equal(t, []string{filepath.Join(dir, "photo.jpg")}, out.Skipped)
	assert.Equal(t, []string{"photo.jpg", "photo.png"}, listFiles(t, dir))
}

func TestMaterializeImage_UnlistedFormatFallsBackToBMP(t *testing.T) {
	ctx := testContext()
	dir := t.TempDir()
	uc, _ := newMaterializer(t)

	out := uc.Execute(ctx, usecase.MaterializeImageInput{
		Image:     &port.Image{Format: entity.ImageFormatWebP, Data: pngBytes(t)},
		TargetDir: dir,
	})

	require.False(t, out.Failed)
	assert.Equal(t, []string{"clipboard.bmp", "clipboard.png"}, listFiles(t, dir))
}

func TestMaterializeImage_UsesClipboardFallback(t *testing.T) {
	ctx := testContext()
	dir := t.TempDir()
	uc, _ := newMaterializer(t)

	snap := &fakeSnapshot{image: &port.Image{Format: entity.ImageFormatPNG, Data: pngBytes(t)}}
	out := uc.Execute(ctx, usecase.MaterializeImageInput{Fallback: snap, TargetDir: dir})

	require.False(t, out.Failed)
	assert.Equal(t, []string{"clipboard.png"}, listFiles(t, dir))
}

func TestMaterializeImage_NoImageSignalsFailure(t *testing.T) {
	ctx := testContext()
	dir := t.TempDir()
	uc, signal := newMaterializer(t)
	signal.EXPECT().Signal(mock.Anything, mock.AnythingOfType("string")).Return().Once()

	out := uc.Execute(ctx, usecase.MaterializeImageInput{Fallback: &fakeSnapshot{}, TargetDir: dir})

	assert.True(t, out.Failed)
	assert.ErrorIs(t, out.Err, usecase.ErrNoImage)
	assert.Empty(t, listFiles(t, dir))
}

func TestMaterializeImage_MetafileWithoutPNGConversionFails(t *testing.T) {
	ctx := testContext()
	dir := t.TempDir()
	uc, _ := newMaterializer(t)

	emf := make([]byte, 64)
	emf[0] = 0x01
	copy(emf[40:], " EMF")

	out := uc.Execute(ctx, usecase.MaterializeImageInput{
		Image:     &port.Image{Format: entity.ImageFormatEMF, Data: emf},
		TargetDir: dir,
	})

	assert.True(t, out.Failed)
	assert.ErrorIs(t, out.Err, imaging.ErrUnsupportedFormat)
	// The native copy is kept.
	assert.Equal(t, []string{"clipboard.emf"}, listFiles(t, dir))
}
