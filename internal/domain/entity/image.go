package entity

// ImageFormat identifies the encoding of an image payload.
type ImageFormat string

const (
	ImageFormatUnknown   ImageFormat = ""
	ImageFormatJPEG      ImageFormat = "jpeg"
	ImageFormatPNG       ImageFormat = "png"
	ImageFormatGIF       ImageFormat = "gif"
	ImageFormatBMP       ImageFormat = "bmp"
	ImageFormatEMF       ImageFormat = "emf"
	ImageFormatWMF       ImageFormat = "wmf"
	ImageFormatEXIF      ImageFormat = "exif"
	ImageFormatTIFF      ImageFormat = "tiff"
	ImageFormatMemoryBMP ImageFormat = "memorybmp"
	ImageFormatIcon      ImageFormat = "icon"
	ImageFormatWebP      ImageFormat = "webp"
)

var imageFormatExt = map[ImageFormat]string{
	ImageFormatJPEG:      "jpg",
	ImageFormatPNG:       "png",
	ImageFormatGIF:       "gif",
	ImageFormatBMP:       "bmp",
	ImageFormatEMF:       "emf",
	ImageFormatWMF:       "wmf",
	ImageFormatEXIF:      "exif",
	ImageFormatTIFF:      "tiff",
	ImageFormatMemoryBMP: "bmp",
	ImageFormatIcon:      "ico",
}

// NativeExt returns the extension an image of this format is saved under.
// Formats outside the table are saved as bmp.
func (f ImageFormat) NativeExt() string {
	if ext, ok := imageFormatExt[f]; ok {
		return ext
	}
	return "bmp"
}

// NativeFormat returns the format actually written for NativeExt.
// Formats outside the table are re-encoded as BMP.
func (f ImageFormat) NativeFormat() ImageFormat {
	if _, ok := imageFormatExt[f]; ok {
		return f
	}
	return ImageFormatBMP
}
