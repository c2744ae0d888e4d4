// Package artifact holds the naming rules for files written into a workspace.
package artifact

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/bnema/slickdir/internal/domain/classify"
)

// BaseName is the stem shared by every clipboard-derived artifact.
const BaseName = "clipboard"

// Fixed artifact names.
const (
	PlainTextFile     = BaseName + ".txt"
	FormattedJSONFile = BaseName + ".formatted.json"
	RichTextFile      = BaseName + ".rtf"
	CSVFile           = BaseName + ".csv"
	HTMLFile          = BaseName + ".html"
	WaveFile          = BaseName + ".wav"
	URLShortcutFile   = BaseName + ".url"
	URLResponseFile   = BaseName + ".url.response"
)

// TextFile returns the artifact name for text classified as label.
func TextFile(label classify.Label) string {
	return BaseName + "." + label.Ext()
}

// HTMLImageFile returns the artifact name of the n-th (1-indexed) image referenced by HTML.
func HTMLImageFile(n int) string {
	return fmt.Sprintf("%s_image_%d.png", BaseName, n)
}

// URLShortcut renders the body of an internet shortcut file pointing at rawURL.
func URLShortcut(rawURL string) string {
	return "[InternetShortcut]\nURL=" + rawURL
}

// Ext returns the lowercase extension of name without the leading dot.
func Ext(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// ReplaceExt swaps the last extension of name for ext, or appends ext when name has none.
func ReplaceExt(name, ext string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + "." + strings.TrimPrefix(ext, ".")
}

var imageExts = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true, "bmp": true, "tiff": true,
	"ico": true, "emf": true, "wmf": true, "exif": true, "memorybmp": true,
}

// IsImageExt reports whether ext names a raster or vector image format that is
// materialized directly.
func IsImageExt(ext string) bool {
	return imageExts[strings.ToLower(ext)]
}

// NeedsTranscode reports whether ext names a format converted to PNG before materializing.
func NeedsTranscode(ext string) bool {
	return strings.EqualFold(ext, "webp")
}

// SanitizeFilename reduces name to a bare file name so it cannot escape the
// target directory. "." , ".." and empty names yield fallback.
func SanitizeFilename(name, fallback string) string {
	// filepath.Base only splits on the native separator.
	name = strings.ReplaceAll(name, "\\", "/")
	clean := filepath.Base(name)
	if clean == "." || clean == ".." || clean == "/" || clean == "" {
		return fallback
	}
	return clean
}

// FilenameFromContentDisposition extracts the filename parameter of a
// Content-Disposition header. Returns "" when absent or unparsable.
func FilenameFromContentDisposition(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return params["filename"]
}

// ResponseFilename picks the artifact name for a successful URL fetch.
// Priority: Content-Disposition filename, then clipboard.<subtype> for image
// content types, then URLResponseFile.
func ResponseFilename(contentDisposition, contentType string) string {
	name := FilenameFromContentDisposition(contentDisposition)

	if strings.TrimSpace(name) == "" {
		if subtype, ok := imageSubtype(contentType); ok {
			name = BaseName + "." + strings.TrimPrefix(subtype, ".")
		}
	}

	name = strings.Trim(name, "\"' ")
	if name == "" {
		return URLResponseFile
	}
	return SanitizeFilename(name, URLResponseFile)
}

func imageSubtype(contentType string) (string, bool) {
	if contentType == "" {
		return "", false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
	}
	if !strings.Contains(mediaType, "image") {
		return "", false
	}
	_, subtype, found := strings.Cut(mediaType, "/")
	if !found || subtype == "" {
		return "", false
	}
	return subtype, true
}
