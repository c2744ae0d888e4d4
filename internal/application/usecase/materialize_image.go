package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/bnema/slickdir/internal/application/port"
	"github.com/bnema/slickdir/internal/domain/artifact"
	"github.com/bnema/slickdir/internal/domain/entity"
	"github.com/bnema/slickdir/internal/logging"
)

// ErrNoImage is reported when neither the input nor the clipboard carries a readable image.
var ErrNoImage = errors.New("no image available")

// MaterializeImageUseCase writes an image in its native encoding plus a PNG copy.
type MaterializeImageUseCase struct {
	fs     port.FileSystem
	codec  port.ImageCodec
	signal port.FailureSignal
}

// NewMaterializeImageUseCase creates a new MaterializeImageUseCase.
func NewMaterializeImageUseCase(
	fs port.FileSystem,
	codec port.ImageCodec,
	signal port.FailureSignal,
) *MaterializeImageUseCase {
	return &MaterializeImageUseCase{
		fs:     fs,
		codec:  codec,
		signal: signal,
	}
}

// MaterializeImageInput contains the parameters for image materialization.
type MaterializeImageInput struct {
	// Image to write. When nil the image representation of Fallback is used.
	Image    *port.Image
	Fallback port.ClipboardSnapshot

	TargetDir string
	// BaseName is the file name whose extension is swapped per format.
	// Defaults to artifact.BaseName.
	BaseName string
}

// MaterializeImageOutput reports what was written.
type MaterializeImageOutput struct {
	Written []string
	Skipped []string
	Failed  bool
	Err     error
}

// Execute writes the native encoding and, unless the image already is PNG,
// a PNG copy. Existing files are never overwritten.
func (uc *MaterializeImageUseCase) Execute(ctx context.Context, input MaterializeImageInput) *MaterializeImageOutput {
	log := logging.FromContext(ctx)
	out := &MaterializeImageOutput{}

	img := input.Image
	if img == nil && input.Fallback != nil {
		fallback, err := input.Fallback.Image(ctx)
		if err != nil {
			log.Debug().Err(err).Msg("clipboard image fallback unavailable")
		}
		img = fallback
	}
	if img == nil || img.Format == entity.ImageFormatUnknown || len(img.Data) == 0 {
		out.Failed = true
		out.Err = ErrNoImage
		log.Error().Str("dir", input.TargetDir).Msg("failed to get image from clipboard")
		uc.fail(ctx, "no readable image on the clipboard")
		return out
	}

	baseName := input.BaseName
	if baseName == "" {
		baseName = artifact.BaseName
	}

	native := img.Format.NativeFormat()
	if err := uc.save(ctx, img, input.TargetDir, baseName, native, img.Format.NativeExt(), out); err != nil {
		return uc.failed(ctx, out, err)
	}
	if native != entity.ImageFormatPNG {
		if err := uc.save(ctx, img, input.TargetDir, baseName, entity.ImageFormatPNG, "png", out); err != nil {
			return uc.failed(ctx, out, err)
		}
	}
	return out
}

func (uc *MaterializeImageUseCase) save(
	ctx context.Context,
	img *port.Image,
	dir, baseName string,
	format entity.ImageFormat,
	ext string,
	out *MaterializeImageOutput,
) error {
	path := filepath.Join(dir, artifact.ReplaceExt(baseName, ext))

	exists, err := uc.fs.Exists(ctx, path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if exists {
		out.Skipped = append(out.Skipped, path)
		return nil
	}

	var buf bytes.Buffer
	if err := uc.codec.Encode(&buf, img, format); err != nil {
		return fmt.Errorf("encode %s as %s: %w", baseName, format, err)
	}
	if err := uc.fs.WriteFile(ctx, path, buf.Bytes()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	out.Written = append(out.Written, path)
	return nil
}

func (uc *MaterializeImageUseCase) failed(ctx context.Context, out *MaterializeImageOutput, err error) *MaterializeImageOutput {
	logging.FromContext(ctx).Error().Err(err).Msg("error saving image")
	out.Failed = true
	out.Err = err
	return out
}

func (uc *MaterializeImageUseCase) fail(ctx context.Context, message string) {
	if uc.signal != nil {
		uc.signal.Signal(ctx, message)
	}
}
