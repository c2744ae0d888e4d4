package clipboard

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/slickdir/internal/application/port"
	"github.com/bnema/slickdir/internal/domain/entity"
)

type fakeTool struct {
	types    string
	contents map[string][]byte
	written  string
	calls    [][]string
}

func (f *fakeTool) run(_ context.Context, stdin string, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if stdin != "" {
		f.written = stdin
		return nil, nil
	}
	if len(args) > 0 && args[0] == "--list-types" {
		if f.types == "" {
			return nil, errors.New("exit status 1")
		}
		return []byte(f.types), nil
	}
	mimeType := args[len(args)-1]
	data, ok := f.contents[mimeType]
	if !ok {
		return nil, errors.New("no such type")
	}
	return data, nil
}

type stubCodec struct{ format entity.ImageFormat }

func (s stubCodec) Detect([]byte) entity.ImageFormat { return s.format }

func (s stubCodec) Encode(_ io.Writer, _ *port.Image, _ entity.ImageFormat) error {
	return nil
}

func waylandAdapter(tool *fakeTool) *Adapter {
	return &Adapter{
		kind:     toolWayland,
		copyCmd:  "wl-copy",
		pasteCmd: "wl-paste",
		run:      tool.run,
	}
}

func TestParseURIList(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    []string
	}{
		{
			name:    "uri list with comment and crlf",
			payload: "# copied\r\nfile:///home/u/a.txt\r\nfile:///home/u/My%20Dir\r\n",
			want:    []string{"/home/u/a.txt", "/home/u/My Dir"},
		},
		{
			name:    "gnome copied files",
			payload: "copy\nfile:///tmp/x.png\nfile://localhost/tmp/y.png",
			want:    []string{"/tmp/x.png", "/tmp/y.png"},
		},
		{
			name:    "non file schemes dropped",
			payload: "https://example.com/a\nfile://remote-host/share/b\nsmb://x/y",
			want:    nil,
		},
		{
			name:    "bare paths kept",
			payload: "/var/tmp/z",
			want:    []string{"/var/tmp/z"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseURIList(tt.payload))
		})
	}
}

func TestSnapshot_MapsRepresentations(t *testing.T) {
	ctx := context.Background()
	tool := &fakeTool{
		types: strings.Join([]string{
			"text/html",
			"text/plain;charset=utf-8",
			"UTF8_STRING",
			"text/uri-list",
			"image/png",
		}, "\n"),
	}

	snap, err := waylandAdapter(tool).Snapshot(ctx)
	require.NoError(t, err)

	assert.True(t, snap.Has(ctx, port.RepresentationUnicodeText))
	assert.True(t, snap.Has(ctx, port.RepresentationHTML))
	assert.True(t, snap.Has(ctx, port.RepresentationFileDrop))
	assert.True(t, snap.Has(ctx, port.RepresentationImage))
	assert.False(t, snap.Has(ctx, port.RepresentationText))
	assert.False(t, snap.Has(ctx, port.RepresentationRichText))
	assert.False(t, snap.Has(ctx, port.RepresentationCSV))
	assert.False(t, snap.Has(ctx, port.RepresentationWaveAudio))
}

func TestSnapshot_EmptyClipboard(t *testing.T) {
	ctx := context.Background()
	snap, err := waylandAdapter(&fakeTool{}).Snapshot(ctx)
	require.NoError(t, err)

	assert.False(t, snap.Has(ctx, port.RepresentationText))
	img, err := snap.Image(ctx)
	require.NoError(t, err)
	assert.Nil(t, img)
}

func TestSnapshot_ReadsLazily(t *testing.T) {
	ctx := context.Background()
	tool := &fakeTool{
		types: "text/plain\ntext/uri-list\nimage/x-icon",
		contents: map[string][]byte{
			"text/plain":    []byte("hello"),
			"text/uri-list": []byte("file:///tmp/a\nfile:///tmp/b\n"),
			"image/x-icon":  {0, 0, 1, 0},
		},
	}
	a := waylandAdapter(tool)
	a.codec = stubCodec{format: entity.ImageFormatUnknown}

	snap, err := a.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, tool.calls, 1, "only the type listing runs up front")

	text, err := snap.Text(ctx, port.RepresentationText)
	require.NoError(t, err)
	assert.Equal(t, "hello", text)

	files, err := snap.FileDropList(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"/tmp/a", "/tmp/b"}, files)

	img, err := snap.Image(ctx)
	require.NoError(t, err)
	require.NotNil(t, img)
	assert.Equal(t, entity.ImageFormatIcon, img.Format, "falls back to the MIME type")

	_, err = snap.Text(ctx, port.RepresentationCSV)
	assert.Error(t, err)
}

func TestAdapter_WriteText(t *testing.T) {
	tool := &fakeTool{}
	a := &Adapter{kind: toolXclip, copyCmd: "xclip", pasteCmd: "xclip", run: tool.run}

	require.NoError(t, a.WriteText(context.Background(), "/tmp/ws"))
	assert.Equal(t, "/tmp/ws", tool.written)
	assert.Equal(t, []string{"xclip", "-selection", "clipboard"}, tool.calls[0])
}

func TestAdapter_NoTool(t *testing.T) {
	a := &Adapter{run: (&fakeTool{}).run}

	_, err := a.Snapshot(context.Background())
	assert.ErrorIs(t, err, ErrNoTool)
	assert.ErrorIs(t, a.WriteText(context.Background(), "x"), ErrNoTool)
}
