package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"github.com/bnema/slickdir/internal/application/port"
	"github.com/bnema/slickdir/internal/domain/artifact"
	"github.com/bnema/slickdir/internal/domain/classify"
	"github.com/bnema/slickdir/internal/domain/entity"
	"github.com/bnema/slickdir/internal/logging"
)

// DefaultConfirmFileThreshold is the file count above which a file drop needs confirmation.
const DefaultConfirmFileThreshold = 1000

// Branch names one clipboard representation handled by an extraction.
type Branch string

const (
	BranchText     Branch = "text"
	BranchFileDrop Branch = "file-drop"
	BranchCSV      Branch = "csv"
	BranchHTML     Branch = "html"
	BranchWave     Branch = "wave"
	BranchImage    Branch = "image"
)

// textPrecedence is the order in which textual representations are tried.
var textPrecedence = []port.Representation{
	port.RepresentationUnicodeText,
	port.RepresentationText,
	port.RepresentationRichText,
}

// ExtractClipboardConfig holds the tunables of an extraction.
type ExtractClipboardConfig struct {
	Policy entity.CopyPolicy
	// ConfirmFileThreshold defaults to DefaultConfirmFileThreshold when not positive.
	ConfirmFileThreshold int
}

// ExtractClipboardUseCase materializes every representation of a clipboard
// payload into a workspace directory.
type ExtractClipboardUseCase struct {
	fs          port.FileSystem
	client      port.HTTPClient
	codec       port.ImageCodec
	confirmer   port.Confirmer
	signal      port.FailureSignal
	fetch       *FetchURLUseCase
	replicate   *ReplicateFilesUseCase
	materialize *MaterializeImageUseCase
	cfg         ExtractClipboardConfig
}

// NewExtractClipboardUseCase creates a new ExtractClipboardUseCase and its
// fetch, replicate and materialize collaborators.
func NewExtractClipboardUseCase(
	fs port.FileSystem,
	client port.HTTPClient,
	codec port.ImageCodec,
	confirmer port.Confirmer,
	signal port.FailureSignal,
	cfg ExtractClipboardConfig,
) *ExtractClipboardUseCase {
	if cfg.ConfirmFileThreshold <= 0 {
		cfg.ConfirmFileThreshold = DefaultConfirmFileThreshold
	}
	materialize := NewMaterializeImageUseCase(fs, codec, signal)
	return &ExtractClipboardUseCase{
		fs:          fs,
		client:      client,
		codec:       codec,
		confirmer:   confirmer,
		signal:      signal,
		fetch:       NewFetchURLUseCase(fs, client, codec),
		replicate:   NewReplicateFilesUseCase(fs, codec, materialize),
		materialize: materialize,
		cfg:         cfg,
	}
}

// ExtractClipboardInput contains the parameters for one extraction.
type ExtractClipboardInput struct {
	Snapshot port.ClipboardSnapshot
	// TargetDir must exist and be empty.
	TargetDir string
}

// ExtractClipboardOutput summarizes an extraction. It never carries a fatal error.
type ExtractClipboardOutput struct {
	Branches []Branch
	Label    classify.Label

	URLs       []*FetchURLOutput
	Replicated *ReplicateFilesOutput
	// Declined is set when the user refused a large file drop.
	Declined   bool
	HTMLImages int
	Image      *MaterializeImageOutput

	Errors []error
}

// Extracted reports whether any representation was recognized.
func (o *ExtractClipboardOutput) Extracted() bool {
	return len(o.Branches) > 0
}

// Failed reports whether any branch hit an error.
func (o *ExtractClipboardOutput) Failed() bool {
	return len(o.Errors) > 0
}

// Execute runs every applicable branch in a fixed order: text, file drop,
// CSV, HTML, wave audio, image. Failures are logged and collected; a panic
// is recovered and reported the same way.
func (uc *ExtractClipboardUseCase) Execute(ctx context.Context, input ExtractClipboardInput) (out *ExtractClipboardOutput) {
	ctx = logging.WithWorkspace(logging.WithComponent(ctx, "extract"), input.TargetDir)
	log := logging.FromContext(ctx)
	out = &ExtractClipboardOutput{}

	defer func() {
		if r := recover(); r != nil {
			out.Errors = append(out.Errors, logging.PanicError(ctx, "extraction", r))
		}
		if out.Failed() {
			uc.fail(ctx, fmt.Sprintf("clipboard extraction hit %d error(s)", len(out.Errors)))
		}
	}()

	snap := input.Snapshot
	if snap == nil {
		out.Errors = append(out.Errors, errors.New("no clipboard snapshot"))
		return out
	}

	branches := []struct {
		name Branch
		run  func(context.Context, port.ClipboardSnapshot, string, *ExtractClipboardOutput) (bool, error)
	}{
		{BranchText, uc.extractText},
		{BranchFileDrop, uc.extractFileDrop},
		{BranchCSV, uc.extractCSV},
		{BranchHTML, uc.extractHTML},
		{BranchWave, uc.extractWave},
		{BranchImage, uc.extractImage},
	}
	for _, b := range branches {
		matched, err := b.run(ctx, snap, input.TargetDir, out)
		if matched {
			out.Branches = append(out.Branches, b.name)
		}
		if err != nil {
			log.Error().Err(err).Str("branch", string(b.name)).Msg("clipboard branch failed")
			out.Errors = append(out.Errors, fmt.Errorf("%s: %w", b.name, err))
		}
	}

	if !out.Extracted() {
		log.Warn().Msg("unsupported clipboard format")
	}
	return out
}

func (uc *ExtractClipboardUseCase) extractText(
	ctx context.Context, snap port.ClipboardSnapshot, dir string, out *ExtractClipboardOutput,
) (bool, error) {
	log := logging.FromContext(ctx)

	text, ok := firstText(ctx, snap)
	if !ok || strings.TrimSpace(text) == "" {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	label := classify.Classify(text)
	out.Label = label
	if err := uc.writeText(ctx, dir, artifact.TextFile(label), text); err != nil {
		return true, err
	}
	if label != classify.LabelText {
		if err := uc.writeText(ctx, dir, artifact.PlainTextFile, text); err != nil {
			return true, err
		}
	}

	switch label {
	case classify.LabelJSON:
		if pretty, ok := prettyJSON(text); ok && pretty != text {
			if err := uc.writeText(ctx, dir, artifact.FormattedJSONFile, pretty); err != nil {
				return true, err
			}
		} else if !ok {
			log.Debug().Msg("json pretty print skipped")
		}
	case classify.LabelURL:
		for _, line := range strings.Split(strings.ReplaceAll(text, "\r", ""), "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			res, err := uc.fetch.Execute(ctx, FetchURLInput{TargetDir: dir, URL: line})
			if err != nil {
				log.Error().Err(err).Str("url", line).Msg("error handling url")
				continue
			}
			out.URLs = append(out.URLs, res)
		}
	}

	if snap.Has(ctx, port.RepresentationRichText) {
		rtf, err := snap.Text(ctx, port.RepresentationRichText)
		if err != nil {
			return true, fmt.Errorf("read rich text: %w", err)
		}
		if err := uc.writeText(ctx, dir, artifact.RichTextFile, rtf); err != nil {
			return true, err
		}
	}
	return true, nil
}

func (uc *ExtractClipboardUseCase) extractFileDrop(
	ctx context.Context, snap port.ClipboardSnapshot, dir string, out *ExtractClipboardOutput,
) (bool, error) {
	if !snap.Has(ctx, port.RepresentationFileDrop) {
		return false, nil
	}
	log := logging.FromContext(ctx)

	sources, err := snap.FileDropList(ctx)
	if err != nil {
		return true, fmt.Errorf("read file drop list: %w", err)
	}

	total := 0
	for _, src := range sources {
		n, err := uc.fs.CountFiles(ctx, src)
		if err != nil {
			log.Warn().Err(err).Str("path", src).Msg("cannot count files")
			continue
		}
		total += n
	}

	if total > uc.cfg.ConfirmFileThreshold && !uc.confirm(ctx, total) {
		log.Info().Int("files", total).Msg("file drop declined")
		out.Declined = true
		return true, nil
	}

	res, err := uc.replicate.Execute(ctx, ReplicateFilesInput{
		Sources:   sources,
		TargetDir: dir,
		Policy:    uc.cfg.Policy,
	})
	out.Replicated = res
	return true, err
}

func (uc *ExtractClipboardUseCase) confirm(ctx context.Context, total int) bool {
	log := logging.FromContext(ctx)
	if uc.confirmer == nil {
		log.Warn().Int("files", total).Msg("no confirmer available, declining large file drop")
		return false
	}
	msg := fmt.Sprintf(
		"There are %d files in total (including those in subdirectories). Copy them to the workspace?",
		total,
	)
	ok, err := uc.confirmer.Confirm(ctx, msg)
	if err != nil {
		log.Warn().Err(err).Msg("confirmation failed, declining")
		return false
	}
	return ok
}

func (uc *ExtractClipboardUseCase) extractCSV(
	ctx context.Context, snap port.ClipboardSnapshot, dir string, _ *ExtractClipboardOutput,
) (bool, error) {
	if !snap.Has(ctx, port.RepresentationCSV) {
		return false, nil
	}
	data, err := snap.Text(ctx, port.RepresentationCSV)
	if err != nil {
		return true, fmt.Errorf("read csv: %w", err)
	}
	return true, uc.writeText(ctx, dir, artifact.CSVFile, data)
}

func (uc *ExtractClipboardUseCase) extractHTML(
	ctx context.Context, snap port.ClipboardSnapshot, dir string, out *ExtractClipboardOutput,
) (bool, error) {
	if !snap.Has(ctx, port.RepresentationHTML) {
		return false, nil
	}
	log := logging.FromContext(ctx)

	markup, err := snap.Text(ctx, port.RepresentationHTML)
	if err != nil {
		return true, fmt.Errorf("read html: %w", err)
	}
	if err := uc.writeText(ctx, dir, artifact.HTMLFile, markup); err != nil {
		return true, err
	}

	for i, src := range imageSources(markup) {
		name := artifact.HTMLImageFile(i + 1)
		imgCtx := logging.WithURL(ctx, src)
		if err := uc.downloadImage(imgCtx, src, dir, name); err != nil {
			log.Error().Err(err).Str("url", src).Msg("error downloading image")
			continue
		}
		out.HTMLImages++
	}
	return true, nil
}

func (uc *ExtractClipboardUseCase) downloadImage(ctx context.Context, src, dir, name string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, http.NoBody)
	if err != nil {
		return err
	}
	resp, err := uc.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if err := uc.fs.WriteFile(ctx, filepath.Join(dir, name), data); err != nil {
		return err
	}

	format := uc.codec.Detect(data)
	if format == entity.ImageFormatUnknown {
		return fmt.Errorf("%s is not a recognizable image", name)
	}
	res := uc.materialize.Execute(ctx, MaterializeImageInput{
		Image:     &port.Image{Format: format, Data: data},
		TargetDir: dir,
		BaseName:  name,
	})
	return res.Err
}

func (uc *ExtractClipboardUseCase) extractWave(
	ctx context.Context, snap port.ClipboardSnapshot, dir string, _ *ExtractClipboardOutput,
) (bool, error) {
	if !snap.Has(ctx, port.RepresentationWaveAudio) {
		return false, nil
	}
	data, err := snap.WaveAudio(ctx)
	if err != nil {
		return true, fmt.Errorf("read wave audio: %w", err)
	}
	return true, uc.fs.WriteFile(ctx, filepath.Join(dir, artifact.WaveFile), data)
}

func (uc *ExtractClipboardUseCase) extractImage(
	ctx context.Context, snap port.ClipboardSnapshot, dir string, out *ExtractClipboardOutput,
) (bool, error) {
	if !snap.Has(ctx, port.RepresentationImage) {
		return false, nil
	}
	img, err := snap.Image(ctx)
	if err != nil {
		logging.FromContext(ctx).Debug().Err(err).Msg("clipboard image unreadable, trying fallback")
	}
	out.Image = uc.materialize.Execute(ctx, MaterializeImageInput{
		Image:     img,
		Fallback:  snap,
		TargetDir: dir,
	})
	// The materializer signals a missing image itself.
	if errors.Is(out.Image.Err, ErrNoImage) {
		return true, nil
	}
	return true, out.Image.Err
}

func (uc *ExtractClipboardUseCase) writeText(ctx context.Context, dir, name, text string) error {
	path := filepath.Join(dir, name)
	if err := uc.fs.WriteFile(ctx, path, []byte(text)); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (uc *ExtractClipboardUseCase) fail(ctx context.Context, message string) {
	if uc.signal != nil {
		uc.signal.Signal(ctx, message)
	}
}

// firstText returns the first readable textual representation.
func firstText(ctx context.Context, snap port.ClipboardSnapshot) (string, bool) {
	for _, rep := range textPrecedence {
		if !snap.Has(ctx, rep) {
			continue
		}
		text, err := snap.Text(ctx, rep)
		if err != nil {
			logging.FromContext(ctx).Debug().Err(err).Str("representation", string(rep)).Msg("text unreadable")
			continue
		}
		return text, true
	}
	return "", false
}

// prettyJSON indents text with two spaces. ok is false when text is not valid JSON.
func prettyJSON(text string) (string, bool) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(strings.TrimSpace(text)), "", "  "); err != nil {
		return "", false
	}
	return buf.String(), true
}

// imageSources returns the src attribute of every img tag, in document order.
func imageSources(markup string) []string {
	if !strings.Contains(strings.ToLower(markup), "<img") {
		return nil
	}

	var srcs []string
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return srcs
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "img" || !hasAttr {
				continue
			}
			for {
				key, val, more := z.TagAttr()
				if string(key) == "src" {
					if src := strings.TrimSpace(string(val)); src != "" {
						srcs = append(srcs, src)
					}
					break
				}
				if !more {
					break
				}
			}
		}
	}
}
