package imaging

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
)

const (
	icoHeaderSize   = 6
	icoEntrySize    = 16
	dibHeaderSize   = 40
	icoMaxDimension = 256
)

var (
	pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

	errBadICO = errors.New("malformed ico")
)

type icoEntry struct {
	width, height int
	size, offset  uint32
}

// decodeICO decodes the largest entry of an icon. Entries must be PNG or
// 32-bit uncompressed DIBs.
func decodeICO(data []byte) (image.Image, error) {
	if len(data) < icoHeaderSize {
		return nil, errBadICO
	}
	if binary.LittleEndian.Uint16(data[0:2]) != 0 || binary.LittleEndian.Uint16(data[2:4]) != 1 {
		return nil, errBadICO
	}
	count := int(binary.LittleEndian.Uint16(data[4:6]))
	if count == 0 || len(data) < icoHeaderSize+count*icoEntrySize {
		return nil, errBadICO
	}

	var best icoEntry
	for i := range count {
		e := data[icoHeaderSize+i*icoEntrySize:]
		entry := icoEntry{
			width:  icoDimension(e[0]),
			height: icoDimension(e[1]),
			size:   binary.LittleEndian.Uint32(e[8:12]),
			offset: binary.LittleEndian.Uint32(e[12:16]),
		}
		if entry.width*entry.height > best.width*best.height {
			best = entry
		}
	}

	end := uint64(best.offset) + uint64(best.size)
	if best.size == 0 || end > uint64(len(data)) {
		return nil, errBadICO
	}
	payload := data[best.offset:end]

	if bytes.HasPrefix(payload, pngSignature) {
		return png.Decode(bytes.NewReader(payload))
	}
	return decodeDIB32(payload)
}

func icoDimension(b byte) int {
	if b == 0 {
		return icoMaxDimension
	}
	return int(b)
}

// decodeDIB32 decodes a bottom-up 32bpp BGRA bitmap as stored inside icons,
// where the header height covers both the color and the AND mask.
func decodeDIB32(payload []byte) (image.Image, error) {
	if len(payload) < dibHeaderSize {
		return nil, errBadICO
	}
	width := int(int32(binary.LittleEndian.Uint32(payload[4:8])))
	height := int(int32(binary.LittleEndian.Uint32(payload[8:12]))) / 2
	bpp := binary.LittleEndian.Uint16(payload[14:16])
	if bpp != 32 {
		return nil, fmt.Errorf("ico entry with %d bpp: %w", bpp, ErrUnsupportedFormat)
	}
	if width <= 0 || height <= 0 {
		return nil, errBadICO
	}

	pixels := payload[dibHeaderSize:]
	stride := width * 4
	if len(pixels) < stride*height {
		return nil, errBadICO
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	alphaless := true
	for y := range height {
		row := pixels[(height-1-y)*stride:]
		for x := range width {
			p := row[x*4:]
			img.SetNRGBA(x, y, color.NRGBA{R: p[2], G: p[1], B: p[0], A: p[3]})
			if p[3] != 0 {
				alphaless = false
			}
		}
	}
	// Icons without an alpha channel leave it zeroed and rely on the mask.
	if alphaless {
		for i := 3; i < len(img.Pix); i += 4 {
			img.Pix[i] = 0xff
		}
	}
	return img, nil
}

// encodeICO writes img as a single entry icon with an embedded PNG.
func encodeICO(w io.Writer, img image.Image) error {
	var body bytes.Buffer
	if err := png.Encode(&body, img); err != nil {
		return err
	}

	b := img.Bounds()
	header := make([]byte, icoHeaderSize+icoEntrySize)
	binary.LittleEndian.PutUint16(header[2:4], 1)
	binary.LittleEndian.PutUint16(header[4:6], 1)
	header[6] = icoSizeByte(b.Dx())
	header[7] = icoSizeByte(b.Dy())
	binary.LittleEndian.PutUint16(header[10:12], 1)
	binary.LittleEndian.PutUint16(header[12:14], 32)
	binary.LittleEndian.PutUint32(header[14:18], uint32(body.Len()))
	binary.LittleEndian.PutUint32(header[18:22], icoHeaderSize+icoEntrySize)

	if _, err := w.Write(header); err != nil {
		return err
	}
	_, err := w.Write(body.Bytes())
	return err
}

func icoSizeByte(n int) byte {
	if n >= icoMaxDimension {
		return 0
	}
	return byte(n)
}
