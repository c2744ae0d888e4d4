package port

import (
	"context"

	"github.com/bnema/slickdir/internal/domain/entity"
)

// Representation is one of the alternate encodings a clipboard payload may offer.
type Representation string

const (
	RepresentationUnicodeText Representation = "unicode-text"
	RepresentationText        Representation = "text"
	RepresentationRichText    Representation = "rich-text"
	RepresentationFileDrop    Representation = "file-drop"
	RepresentationHTML        Representation = "html"
	RepresentationCSV         Representation = "csv"
	RepresentationWaveAudio   Representation = "wave-audio"
	RepresentationImage       Representation = "image"
)

// Image is an encoded image payload together with its detected format.
type Image struct {
	Format entity.ImageFormat
	Data   []byte
}

// ClipboardSnapshot exposes the representations offered by one clipboard payload.
// Contents are read lazily; a platform may change them between two calls.
type ClipboardSnapshot interface {
	// Has reports whether the representation is offered.
	Has(ctx context.Context, rep Representation) bool

	// Text returns a textual representation (unicode text, text, rich text, HTML or CSV).
	Text(ctx context.Context, rep Representation) (string, error)

	// FileDropList returns the paths of copied files and directories.
	FileDropList(ctx context.Context) ([]string, error)

	// WaveAudio returns raw wave audio bytes.
	WaveAudio(ctx context.Context) ([]byte, error)

	// Image returns the bitmap representation, or nil when none is offered.
	Image(ctx context.Context) (*Image, error)
}

// ClipboardReader captures the current system clipboard.
type ClipboardReader interface {
	Snapshot(ctx context.Context) (ClipboardSnapshot, error)
}

// ClipboardWriter places text on the system clipboard.
type ClipboardWriter interface {
	WriteText(ctx context.Context, text string) error
}
