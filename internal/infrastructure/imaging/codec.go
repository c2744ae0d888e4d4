// Package imaging sniffs and converts the image encodings found on the clipboard.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/h2non/filetype"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // registers the webp decoder

	"github.com/bnema/slickdir/internal/application/port"
	"github.com/bnema/slickdir/internal/domain/entity"
)

const jpegQuality = 95

// ErrUnsupportedFormat is returned when an image cannot be decoded from, or
// encoded to, the requested format.
var ErrUnsupportedFormat = errors.New("unsupported image format")

var (
	emfType = filetype.NewType("emf", "image/emf")
	wmfType = filetype.NewType("wmf", "image/wmf")
)

func init() {
	filetype.AddMatcher(emfType, isEMF)
	filetype.AddMatcher(wmfType, isWMF)
}

// isEMF matches an EMR_HEADER record carrying the " EMF" signature.
func isEMF(buf []byte) bool {
	return len(buf) >= 44 &&
		buf[0] == 0x01 && buf[1] == 0x00 && buf[2] == 0x00 && buf[3] == 0x00 &&
		buf[40] == 0x20 && buf[41] == 0x45 && buf[42] == 0x4D && buf[43] == 0x46
}

// isWMF matches placeable and standard metafile headers.
func isWMF(buf []byte) bool {
	if len(buf) < 4 {
		return false
	}
	if buf[0] == 0xD7 && buf[1] == 0xCD && buf[2] == 0xC6 && buf[3] == 0x9A {
		return true
	}
	return (buf[0] == 0x01 || buf[0] == 0x02) && buf[1] == 0x00 && buf[2] == 0x09 && buf[3] == 0x00
}

var extFormats = map[string]entity.ImageFormat{
	"jpg":  entity.ImageFormatJPEG,
	"png":  entity.ImageFormatPNG,
	"gif":  entity.ImageFormatGIF,
	"bmp":  entity.ImageFormatBMP,
	"tif":  entity.ImageFormatTIFF,
	"webp": entity.ImageFormatWebP,
	"ico":  entity.ImageFormatIcon,
	"emf":  entity.ImageFormatEMF,
	"wmf":  entity.ImageFormatWMF,
}

// Codec implements port.ImageCodec.
type Codec struct{}

// NewCodec creates a new image codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Detect sniffs the format of data from its magic bytes.
func (c *Codec) Detect(data []byte) entity.ImageFormat {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return entity.ImageFormatUnknown
	}
	return extFormats[kind.Extension]
}

// Encode writes img in format. Matching formats are copied byte for byte.
func (c *Codec) Encode(w io.Writer, img *port.Image, format entity.ImageFormat) error {
	if img == nil || len(img.Data) == 0 {
		return fmt.Errorf("encode %s: empty image", format)
	}

	src := c.Detect(img.Data)
	if src == entity.ImageFormatUnknown {
		src = img.Format
	}
	if sameEncoding(src, format) {
		_, err := w.Write(img.Data)
		return err
	}

	decoded, err := decode(img.Data, src)
	if err != nil {
		return fmt.Errorf("decode %s: %w", src, err)
	}

	switch format {
	case entity.ImageFormatPNG:
		return png.Encode(w, decoded)
	case entity.ImageFormatJPEG, entity.ImageFormatEXIF:
		return jpeg.Encode(w, decoded, &jpeg.Options{Quality: jpegQuality})
	case entity.ImageFormatGIF:
		return gif.Encode(w, decoded, nil)
	case entity.ImageFormatBMP, entity.ImageFormatMemoryBMP:
		return bmp.Encode(w, decoded)
	case entity.ImageFormatTIFF:
		return tiff.Encode(w, decoded, &tiff.Options{Compression: tiff.Deflate})
	case entity.ImageFormatIcon:
		return encodeICO(w, decoded)
	default:
		return fmt.Errorf("encode %s: %w", format, ErrUnsupportedFormat)
	}
}

func sameEncoding(src, dst entity.ImageFormat) bool {
	if src == dst {
		return true
	}
	// EXIF payloads are JPEG files, memory bitmaps are plain BMP.
	switch dst {
	case entity.ImageFormatEXIF:
		return src == entity.ImageFormatJPEG
	case entity.ImageFormatMemoryBMP:
		return src == entity.ImageFormatBMP
	}
	return false
}

func decode(data []byte, format entity.ImageFormat) (image.Image, error) {
	switch format {
	case entity.ImageFormatEMF, entity.ImageFormatWMF:
		return nil, ErrUnsupportedFormat
	case entity.ImageFormatIcon:
		return decodeICO(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, ErrUnsupportedFormat
		}
		return nil, err
	}
	return img, nil
}

var _ port.ImageCodec = (*Codec)(nil)
