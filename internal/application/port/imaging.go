package port

import (
	"io"

	"github.com/bnema/slickdir/internal/domain/entity"
)

// ImageCodec detects and converts image encodings.
type ImageCodec interface {
	// Detect sniffs the format of encoded image bytes.
	// Returns entity.ImageFormatUnknown when the bytes are not a known image.
	Detect(data []byte) entity.ImageFormat

	// Encode writes img to w in the given format. When img is already in that
	// format the original bytes are written unchanged.
	Encode(w io.Writer, img *Image, format entity.ImageFormat) error
}
