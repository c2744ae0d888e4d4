package clipboard

import (
	"net/url"
	"strings"

	"github.com/bnema/slickdir/internal/application/port"
	"github.com/bnema/slickdir/internal/domain/entity"
)

const (
	mimeTextPlain   = "text/plain"
	mimeURIList     = "text/uri-list"
	mimeGnomeCopied = "x-special/gnome-copied-files"
)

// representationTypes lists, in preference order, the MIME types or X11
// targets that carry each representation.
var representationTypes = map[port.Representation][]string{
	port.RepresentationUnicodeText: {"text/plain;charset=utf-8", "UTF8_STRING"},
	port.RepresentationText:        {mimeTextPlain, "STRING", "TEXT"},
	port.RepresentationRichText:    {"text/rtf", "application/rtf"},
	port.RepresentationFileDrop:    {mimeURIList, mimeGnomeCopied},
	port.RepresentationHTML:        {"text/html"},
	port.RepresentationCSV:         {"text/csv"},
	port.RepresentationWaveAudio:   {"audio/x-wav", "audio/wav"},
	port.RepresentationImage: {
		"image/png", "image/jpeg", "image/gif", "image/bmp",
		"image/tiff", "image/webp", "image/x-icon",
	},
}

var imageMIMEFormats = map[string]entity.ImageFormat{
	"image/png":    entity.ImageFormatPNG,
	"image/jpeg":   entity.ImageFormatJPEG,
	"image/gif":    entity.ImageFormatGIF,
	"image/bmp":    entity.ImageFormatBMP,
	"image/tiff":   entity.ImageFormatTIFF,
	"image/webp":   entity.ImageFormatWebP,
	"image/x-icon": entity.ImageFormatIcon,
}

// parseTypes turns a newline separated type listing into a set.
func parseTypes(listing string) map[string]bool {
	types := make(map[string]bool)
	for _, line := range strings.Split(listing, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			types[line] = true
		}
	}
	return types
}

// parseURIList extracts local paths from a text/uri-list or a GNOME
// copied-files payload. Non-file URIs and comments are dropped.
func parseURIList(payload string) []string {
	var paths []string
	for _, line := range strings.Split(payload, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		switch {
		case line == "", strings.HasPrefix(line, "#"):
			continue
		case line == "copy" || line == "cut":
			// GNOME operation header
			continue
		}

		if strings.HasPrefix(line, "/") {
			paths = append(paths, line)
			continue
		}

		u, err := url.Parse(line)
		if err != nil || u.Scheme != "file" || u.Path == "" {
			continue
		}
		if u.Host != "" && u.Host != "localhost" {
			continue
		}
		paths = append(paths, u.Path)
	}
	return paths
}
