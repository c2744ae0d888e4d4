package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bnema/slickdir/internal/application/port"
	"github.com/bnema/slickdir/internal/logging"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

// fakeSnapshot is an in-memory clipboard payload.
type fakeSnapshot struct {
	texts    map[port.Representation]string
	files    []string
	wave     []byte
	image    *port.Image
	hasImage bool
	readErr  map[port.Representation]error
	panicOn  port.Representation
}

func (s *fakeSnapshot) Has(_ context.Context, rep port.Representation) bool {
	if s.panicOn != "" && rep == s.panicOn {
		panic("clipboard went away")
	}
	if _, ok := s.readErr[rep]; ok {
		return true
	}
	switch rep {
	case port.RepresentationFileDrop:
		return s.files != nil
	case port.RepresentationWaveAudio:
		return s.wave != nil
	case port.RepresentationImage:
		return s.hasImage || s.image != nil
	}
	_, ok := s.texts[rep]
	return ok
}

func (s *fakeSnapshot) Text(_ context.Context, rep port.Representation) (string, error) {
	if err := s.readErr[rep]; err != nil {
		return "", err
	}
	text, ok := s.texts[rep]
	if !ok {
		return "", errors.New("representation not offered")
	}
	return text, nil
}

func (s *fakeSnapshot) FileDropList(context.Context) ([]string, error) {
	if err := s.readErr[port.RepresentationFileDrop]; err != nil {
		return nil, err
	}
	return s.files, nil
}

func (s *fakeSnapshot) WaveAudio(context.Context) ([]byte, error) {
	return s.wave, nil
}

func (s *fakeSnapshot) Image(context.Context) (*port.Image, error) {
	return s.image, nil
}

func textSnapshot(text string) *fakeSnapshot {
	return &fakeSnapshot{texts: map[port.Representation]string{port.RepresentationUnicodeText: text}}
}

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for x := 0; x < 4; x++ {
		for y := 0; y < 3; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 60), G: uint8(y * 80), B: 200, A: 255})
		}
	}
	return img
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage()))
	return buf.Bytes()
}

func jpegBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, testImage(), nil))
	return buf.Bytes()
}

// listFiles returns the slash-separated relative paths of every regular file under dir.
func listFiles(t *testing.T, dir string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	require.NoError(t, err)
	sort.Strings(files)
	return files
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}
