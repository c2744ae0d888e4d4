package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/bnema/slickdir/internal/application/port"
	"github.com/bnema/slickdir/internal/domain/artifact"
	"github.com/bnema/slickdir/internal/domain/entity"
	"github.com/bnema/slickdir/internal/logging"
)

// CopyMethod tells how a file reached the workspace.
type CopyMethod string

const (
	CopyMethodCopy     CopyMethod = "copy"
	CopyMethodHardLink CopyMethod = "hardlink"
)

// FileResult is the outcome of replicating one file.
type FileResult struct {
	Source      string
	Destination string
	Method      CopyMethod
	Bytes       int64
	Err         error

	// Image handling runs after a successful copy and never fails the file.
	Image    *MaterializeImageOutput
	ImageErr error
}

// OK reports whether the file itself was replicated.
func (r FileResult) OK() bool {
	return r.Err == nil
}

// ReplicateFilesInput contains the parameters for a file-drop replication.
type ReplicateFilesInput struct {
	Sources   []string
	TargetDir string
	Policy    entity.CopyPolicy
}

// ReplicateFilesOutput aggregates per-file results.
type ReplicateFilesOutput struct {
	Results     []FileResult
	Directories int
	Skipped     []string
	Canceled    bool
}

// Succeeded returns the number of files replicated.
func (o *ReplicateFilesOutput) Succeeded() int {
	n := 0
	for _, r := range o.Results {
		if r.OK() {
			n++
		}
	}
	return n
}

// Failed returns the number of files that could not be replicated.
func (o *ReplicateFilesOutput) Failed() int {
	return len(o.Results) - o.Succeeded()
}

// ReplicateFilesUseCase copies or hard-links dropped files and directories into a workspace.
type ReplicateFilesUseCase struct {
	fs          port.FileSystem
	codec       port.ImageCodec
	materialize *MaterializeImageUseCase
}

// NewReplicateFilesUseCase creates a new ReplicateFilesUseCase.
func NewReplicateFilesUseCase(
	fs port.FileSystem,
	codec port.ImageCodec,
	materialize *MaterializeImageUseCase,
) *ReplicateFilesUseCase {
	return &ReplicateFilesUseCase{
		fs:          fs,
		codec:       codec,
		materialize: materialize,
	}
}

// Execute replicates every source depth-first, one file at a time.
// A failing file is recorded and its siblings continue. Cancellation stops
// between files and keeps what was already written.
func (uc *ReplicateFilesUseCase) Execute(ctx context.Context, input ReplicateFilesInput) (*ReplicateFilesOutput, error) {
	if input.TargetDir == "" {
		return nil, fmt.Errorf("replicate: empty target directory")
	}

	out := &ReplicateFilesOutput{}
	for _, src := range input.Sources {
		if ctx.Err() != nil {
			out.Canceled = true
			break
		}
		uc.replicate(ctx, src, input.TargetDir, input.Policy, true, out)
	}

	logging.FromContext(ctx).Info().
		Int("files", out.Succeeded()).
		Int("failed", out.Failed()).
		Int("dirs", out.Directories).
		Bool("canceled", out.Canceled).
		Msg("file drop replicated")
	return out, nil
}

func (uc *ReplicateFilesUseCase) replicate(
	ctx context.Context,
	src, targetDir string,
	policy entity.CopyPolicy,
	topLevel bool,
	out *ReplicateFilesOutput,
) {
	if out.Canceled {
		return
	}
	if ctx.Err() != nil {
		out.Canceled = true
		return
	}
	log := logging.FromContext(ctx)

	info, err := uc.entryInfo(ctx, src, topLevel)
	if err != nil {
		log.Error().Err(err).Str("path", src).Msg("cannot read drop entry")
		out.Results = append(out.Results, FileResult{Source: src, Err: err})
		return
	}
	if info == nil {
		log.Debug().Str("path", src).Msg("skipping symlinked directory")
		out.Skipped = append(out.Skipped, src)
		return
	}

	if !info.IsDir() {
		out.Results = append(out.Results, uc.replicateFile(ctx, src, info.Size(), targetDir, policy))
		return
	}

	dir := filepath.Join(targetDir, filepath.Base(src))
	if err := uc.fs.MkdirAll(ctx, dir); err != nil {
		log.Error().Err(err).Str("path", dir).Msg("cannot create directory")
		out.Results = append(out.Results, FileResult{Source: src, Destination: dir, Err: err})
		return
	}
	out.Directories++

	entries, err := uc.fs.ReadDir(ctx, src)
	if err != nil {
		log.Error().Err(err).Str("path", src).Msg("cannot list directory")
		out.Results = append(out.Results, FileResult{Source: src, Destination: dir, Err: err})
		return
	}
	for _, entry := range entries {
		uc.replicate(ctx, filepath.Join(src, entry.Name()), dir, policy, false, out)
	}
}

// entryInfo stats src. Top-level entries follow symlinks; nested symlinks to
// files are followed while nested symlinks to directories yield nil.
func (uc *ReplicateFilesUseCase) entryInfo(ctx context.Context, src string, topLevel bool) (fs.FileInfo, error) {
	if topLevel {
		return uc.fs.Stat(ctx, src)
	}
	info, err := uc.fs.Lstat(ctx, src)
	if err != nil || info.Mode()&fs.ModeSymlink == 0 {
		return info, err
	}
	target, err := uc.fs.Stat(ctx, src)
	if err != nil {
		return nil, err
	}
	if target.IsDir() {
		return nil, nil
	}
	return target, nil
}

func (uc *ReplicateFilesUseCase) replicateFile(
	ctx context.Context,
	src string,
	size int64,
	targetDir string,
	policy entity.CopyPolicy,
) FileResult {
	log := logging.FromContext(logging.WithPath(ctx, src))
	res := FileResult{Source: src, Destination: filepath.Join(targetDir, filepath.Base(src))}

	if policy.ShouldHardLink(size) {
		res.Method = CopyMethodHardLink
		if err := uc.fs.HardLink(ctx, src, res.Destination); err != nil {
			log.Error().Err(err).Msg("failed to create hard link")
			res.Err = err
			return res
		}
		log.Info().Str("dest", res.Destination).Msg("hard link created")
	} else {
		res.Method = CopyMethodCopy
		n, err := uc.fs.CopyFile(ctx, src, res.Destination)
		if err != nil {
			log.Error().Err(err).Msg("error copying file")
			res.Err = err
			return res
		}
		res.Bytes = n
	}

	res.Image, res.ImageErr = uc.handleImage(ctx, res.Destination)
	if res.ImageErr != nil {
		log.Error().Err(res.ImageErr).Str("dest", res.Destination).Msg("error handling image file")
	}
	return res
}

// handleImage materializes image files. A webp file is first transcoded to a
// PNG sibling, which is then handled as a png file.
func (uc *ReplicateFilesUseCase) handleImage(ctx context.Context, path string) (*MaterializeImageOutput, error) {
	ext := artifact.Ext(path)

	if artifact.NeedsTranscode(ext) {
		pngPath, err := uc.transcodeToPNG(ctx, path)
		if err != nil {
			return nil, err
		}
		path = pngPath
		ext = artifact.Ext(path)
	}

	if !artifact.IsImageExt(ext) {
		return nil, nil
	}

	data, err := uc.fs.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	format := uc.codec.Detect(data)
	if format == entity.ImageFormatUnknown {
		return nil, fmt.Errorf("%s: not a recognizable image", filepath.Base(path))
	}

	res := uc.materialize.Execute(ctx, MaterializeImageInput{
		Image:     &port.Image{Format: format, Data: data},
		TargetDir: filepath.Dir(path),
		BaseName:  filepath.Base(path),
	})
	return res, res.Err
}

func (uc *ReplicateFilesUseCase) transcodeToPNG(ctx context.Context, path string) (string, error) {
	data, err := uc.fs.ReadFile(ctx, path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	var buf bytes.Buffer
	if err := uc.codec.Encode(&buf, &port.Image{Format: uc.codec.Detect(data), Data: data}, entity.ImageFormatPNG); err != nil {
		return "", fmt.Errorf("transcode %s: %w", filepath.Base(path), err)
	}
	pngPath := artifact.ReplaceExt(path, "png")
	if err := uc.fs.WriteFile(ctx, pngPath, buf.Bytes()); err != nil {
		return "", fmt.Errorf("write %s: %w", filepath.Base(pngPath), err)
	}
	return pngPath, nil
}
