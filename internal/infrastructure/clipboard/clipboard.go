// Package clipboard provides a clipboard adapter using wl-clipboard (Wayland) with X11 fallback.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/bnema/slickdir/internal/application/port"
	"github.com/bnema/slickdir/internal/domain/entity"
	"github.com/bnema/slickdir/internal/logging"
)

// ErrNoTool is returned when neither wl-clipboard nor xclip/xsel is installed.
var ErrNoTool = errors.New("no clipboard tool available (install wl-clipboard or xclip)")

type toolKind int

const (
	toolNone toolKind = iota
	toolWayland
	toolXclip
	toolXsel
)

// runFunc executes a clipboard tool and returns its stdout.
type runFunc func(ctx context.Context, stdin string, name string, args ...string) ([]byte, error)

func execRun(ctx context.Context, stdin string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
		return nil, cmd.Run()
	}
	return cmd.Output()
}

// Adapter implements port.ClipboardReader and port.ClipboardWriter using
// system clipboard tools.
type Adapter struct {
	kind     toolKind
	copyCmd  string
	pasteCmd string
	codec    port.ImageCodec
	run      runFunc
}

// New creates a new clipboard adapter.
// Detects Wayland vs X11 and selects appropriate clipboard tool.
func New(codec port.ImageCodec) *Adapter {
	a := &Adapter{codec: codec, run: execRun}

	if os.Getenv("WAYLAND_DISPLAY") != "" {
		copyPath, copyErr := exec.LookPath("wl-copy")
		pastePath, pasteErr := exec.LookPath("wl-paste")
		if copyErr == nil && pasteErr == nil {
			a.kind, a.copyCmd, a.pasteCmd = toolWayland, copyPath, pastePath
		}
	}

	if a.kind == toolNone && os.Getenv("DISPLAY") != "" {
		if path, err := exec.LookPath("xclip"); err == nil {
			a.kind, a.copyCmd, a.pasteCmd = toolXclip, path, path
		} else if path, err := exec.LookPath("xsel"); err == nil {
			a.kind, a.copyCmd, a.pasteCmd = toolXsel, path, path
		}
	}

	return a
}

// WriteText copies text to the clipboard.
func (a *Adapter) WriteText(ctx context.Context, text string) error {
	log := logging.FromContext(ctx)

	var args []string
	switch a.kind {
	case toolWayland:
	case toolXclip:
		args = []string{"-selection", "clipboard"}
	case toolXsel:
		args = []string{"--clipboard", "--input"}
	default:
		log.Error().Err(ErrNoTool).Msg("clipboard write failed")
		return ErrNoTool
	}

	if _, err := a.run(ctx, text, a.copyCmd, args...); err != nil {
		log.Error().Err(err).Str("tool", a.copyCmd).Msg("clipboard write failed")
		return err
	}

	log.Debug().Str("tool", a.copyCmd).Int("len", len(text)).Msg("clipboard write success")
	return nil
}

// Snapshot lists the MIME types currently offered. Contents are read on demand.
func (a *Adapter) Snapshot(ctx context.Context) (port.ClipboardSnapshot, error) {
	log := logging.FromContext(ctx)

	var (
		out []byte
		err error
	)
	switch a.kind {
	case toolWayland:
		out, err = a.run(ctx, "", a.pasteCmd, "--list-types")
	case toolXclip:
		out, err = a.run(ctx, "", a.pasteCmd, "-selection", "clipboard", "-o", "-t", "TARGETS")
	case toolXsel:
		// xsel has no target negotiation, only text is reachable.
		out = []byte(mimeTextPlain)
	default:
		return nil, ErrNoTool
	}
	if err != nil {
		// An empty clipboard makes both tools exit non-zero.
		log.Debug().Err(err).Str("tool", a.pasteCmd).Msg("clipboard type listing failed (may be empty)")
		return &snapshot{adapter: a, types: map[string]bool{}}, nil
	}

	types := parseTypes(string(out))
	log.Debug().Int("types", len(types)).Msg("clipboard snapshot taken")
	return &snapshot{adapter: a, types: types}, nil
}

func (a *Adapter) read(ctx context.Context, mimeType string) ([]byte, error) {
	switch a.kind {
	case toolWayland:
		return a.run(ctx, "", a.pasteCmd, "--no-newline", "--type", mimeType)
	case toolXclip:
		return a.run(ctx, "", a.pasteCmd, "-selection", "clipboard", "-o", "-t", mimeType)
	case toolXsel:
		return a.run(ctx, "", a.pasteCmd, "--clipboard", "--output")
	default:
		return nil, ErrNoTool
	}
}

// snapshot implements port.ClipboardSnapshot over one type listing.
type snapshot struct {
	adapter *Adapter
	types   map[string]bool
}

func (s *snapshot) offered(rep port.Representation) (string, bool) {
	for _, mimeType := range representationTypes[rep] {
		if s.types[mimeType] {
			return mimeType, true
		}
	}
	return "", false
}

func (s *snapshot) Has(_ context.Context, rep port.Representation) bool {
	_, ok := s.offered(rep)
	return ok
}

func (s *snapshot) readRep(ctx context.Context, rep port.Representation) ([]byte, string, error) {
	mimeType, ok := s.offered(rep)
	if !ok {
		return nil, "", fmt.Errorf("clipboard does not offer %s", rep)
	}
	data, err := s.adapter.read(ctx, mimeType)
	if err != nil {
		return nil, mimeType, fmt.Errorf("read %s: %w", mimeType, err)
	}
	return data, mimeType, nil
}

func (s *snapshot) Text(ctx context.Context, rep port.Representation) (string, error) {
	data, _, err := s.readRep(ctx, rep)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *snapshot) FileDropList(ctx context.Context) ([]string, error) {
	data, _, err := s.readRep(ctx, port.RepresentationFileDrop)
	if err != nil {
		return nil, err
	}
	return parseURIList(string(data)), nil
}

func (s *snapshot) WaveAudio(ctx context.Context) ([]byte, error) {
	data, _, err := s.readRep(ctx, port.RepresentationWaveAudio)
	return data, err
}

func (s *snapshot) Image(ctx context.Context) (*port.Image, error) {
	if !s.Has(ctx, port.RepresentationImage) {
		return nil, nil
	}
	data, mimeType, err := s.readRep(ctx, port.RepresentationImage)
	if err != nil {
		return nil, err
	}

	format := entity.ImageFormatUnknown
	if s.adapter.codec != nil {
		format = s.adapter.codec.Detect(data)
	}
	if format == entity.ImageFormatUnknown {
		format = imageMIMEFormats[mimeType]
	}
	return &port.Image{Format: format, Data: data}, nil
}

var (
	_ port.ClipboardReader   = (*Adapter)(nil)
	_ port.ClipboardWriter   = (*Adapter)(nil)
	_ port.ClipboardSnapshot = (*snapshot)(nil)
)
