package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/bnema/slickdir/internal/application/port"
	"github.com/bnema/slickdir/internal/domain/artifact"
	"github.com/bnema/slickdir/internal/domain/entity"
	"github.com/bnema/slickdir/internal/logging"
)

// ErrInvalidURL is returned for text that is not an absolute http(s) URL.
var ErrInvalidURL = errors.New("invalid url")

// FetchURLUseCase downloads a URL found on the clipboard into a workspace.
type FetchURLUseCase struct {
	fs     port.FileSystem
	client port.HTTPClient
	codec  port.ImageCodec
}

// NewFetchURLUseCase creates a new FetchURLUseCase.
// The client is expected to carry the browser user agent.
func NewFetchURLUseCase(fs port.FileSystem, client port.HTTPClient, codec port.ImageCodec) *FetchURLUseCase {
	return &FetchURLUseCase{
		fs:     fs,
		client: client,
		codec:  codec,
	}
}

// FetchURLInput contains the parameters for a URL fetch.
type FetchURLInput struct {
	TargetDir string
	URL       string
}

// FetchURLOutput reports the files produced by a fetch.
type FetchURLOutput struct {
	ShortcutPath   string
	ResponsePath   string
	TranscodedPath string
	StatusCode     int
	Rejected       bool
}

// Execute writes an internet shortcut for the URL, then stores the response body.
// A non-success status is not an error: the body, or a "rejected" marker, is
// written to artifact.URLResponseFile instead.
func (uc *FetchURLUseCase) Execute(ctx context.Context, input FetchURLInput) (*FetchURLOutput, error) {
	target, err := parseFetchURL(input.URL)
	if err != nil {
		return nil, err
	}
	ctx = logging.WithURL(ctx, target.String())
	log := logging.FromContext(ctx)

	out := &FetchURLOutput{ShortcutPath: filepath.Join(input.TargetDir, artifact.URLShortcutFile)}
	if err := uc.fs.WriteFile(ctx, out.ShortcutPath, []byte(artifact.URLShortcut(target.String()))); err != nil {
		return nil, fmt.Errorf("write url shortcut: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), http.NoBody)
	if err != nil {
		return out, fmt.Errorf("build request: %w", err)
	}
	resp, err := uc.client.Do(req)
	if err != nil {
		return out, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()
	out.StatusCode = resp.StatusCode

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		out.Rejected = true
		out.ResponsePath = filepath.Join(input.TargetDir, artifact.URLResponseFile)
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil || len(body) == 0 {
			body = []byte("rejected " + resp.Status)
		}
		log.Warn().Int("status", resp.StatusCode).Msg("url rejected")
		if err := uc.fs.WriteFile(ctx, out.ResponsePath, body); err != nil {
			return out, fmt.Errorf("write rejected response: %w", err)
		}
		return out, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return out, fmt.Errorf("read body: %w", err)
	}

	name := artifact.ResponseFilename(resp.Header.Get("Content-Disposition"), resp.Header.Get("Content-Type"))
	out.ResponsePath = filepath.Join(input.TargetDir, name)
	if err := uc.fs.WriteFile(ctx, out.ResponsePath, data); err != nil {
		return out, fmt.Errorf("write response: %w", err)
	}
	log.Info().Str("file", name).Int("bytes", len(data)).Msg("url fetched")

	if artifact.Ext(name) != "png" {
		out.TranscodedPath = uc.transcode(ctx, out.ResponsePath, data)
	}
	return out, nil
}

// transcode writes a PNG sibling of path when data is a decodable image.
func (uc *FetchURLUseCase) transcode(ctx context.Context, path string, data []byte) string {
	log := logging.FromContext(ctx)

	format := uc.codec.Detect(data)
	if format == entity.ImageFormatUnknown {
		log.Debug().Str("file", filepath.Base(path)).Msg("response is not an image, no png copy")
		return ""
	}

	var buf bytes.Buffer
	if err := uc.codec.Encode(&buf, &port.Image{Format: format, Data: data}, entity.ImageFormatPNG); err != nil {
		log.Warn().Err(err).Str("file", filepath.Base(path)).Msg("error converting image to png")
		return ""
	}
	pngPath := artifact.ReplaceExt(path, "png")
	if err := uc.fs.WriteFile(ctx, pngPath, buf.Bytes()); err != nil {
		log.Warn().Err(err).Str("file", pngPath).Msg("error writing png copy")
		return ""
	}
	return pngPath
}

func parseFetchURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidURL, raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	return u, nil
}
