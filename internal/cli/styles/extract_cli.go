package styles

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bnema/slickdir/internal/application/usecase"
)

// ExtractCLIRenderer renders the summary printed after a clipboard grab.
type ExtractCLIRenderer struct {
	theme *Theme
}

func NewExtractCLIRenderer(theme *Theme) *ExtractCLIRenderer {
	return &ExtractCLIRenderer{theme: theme}
}

// RenderResult summarizes what each branch produced in dir.
func (r *ExtractCLIRenderer) RenderResult(dir string, out *usecase.ExtractClipboardOutput) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s\n",
		r.theme.Highlight.Render(IconClipboard),
		r.theme.Title.Render(dir),
	))

	if !out.Extracted() {
		b.WriteString(fmt.Sprintf("  %s %s",
			r.theme.WarningStyle.Render(IconWarning),
			r.theme.Subtle.Render("Clipboard holds no supported format."),
		))
		return b.String()
	}

	badges := make([]string, 0, len(out.Branches))
	for _, br := range out.Branches {
		badges = append(badges, r.theme.BadgeMuted.Render(string(br)))
	}
	b.WriteString("  " + strings.Join(badges, " ") + "\n")

	if out.Label != "" {
		b.WriteString(r.line(IconCode, "Text", string(out.Label)))
	}
	for _, u := range out.URLs {
		b.WriteString(r.urlLine(u))
	}
	if out.Declined {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			r.theme.WarningStyle.Render(IconWarning),
			r.theme.Subtle.Render("Large file drop declined, nothing copied."),
		))
	}
	if rep := out.Replicated; rep != nil {
		summary := fmt.Sprintf("%d copied, %d directories", rep.Succeeded(), rep.Directories)
		if n := rep.Failed(); n > 0 {
			summary += fmt.Sprintf(", %d failed", n)
		}
		if rep.Canceled {
			summary += ", canceled"
		}
		b.WriteString(r.line(IconFile, "Files", summary))
	}
	if out.HTMLImages > 0 {
		b.WriteString(r.line(IconImage, "HTML images", fmt.Sprint(out.HTMLImages)))
	}
	if img := out.Image; img != nil && !img.Failed {
		names := make([]string, 0, len(img.Written)+len(img.Skipped))
		for _, p := range append(append([]string{}, img.Written...), img.Skipped...) {
			names = append(names, filepath.Base(p))
		}
		b.WriteString(r.line(IconImage, "Image", strings.Join(names, ", ")))
	}

	for _, err := range out.Errors {
		b.WriteString(fmt.Sprintf("  %s %v\n", r.theme.ErrorStyle.Render(IconX), err))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *ExtractCLIRenderer) urlLine(u *usecase.FetchURLOutput) string {
	status := r.theme.SuccessStyle.Render(fmt.Sprint(u.StatusCode))
	if u.Rejected {
		status = r.theme.ErrorStyle.Render(fmt.Sprint(u.StatusCode))
	}
	target := filepath.Base(u.ResponsePath)
	if u.TranscodedPath != "" {
		target += " + " + filepath.Base(u.TranscodedPath)
	}
	return fmt.Sprintf("  %s %s %s %s\n",
		r.theme.Highlight.Render(IconLink),
		status,
		r.theme.Subtle.Render("→"),
		r.theme.Normal.Render(target),
	)
}

func (r *ExtractCLIRenderer) line(icon, key, value string) string {
	return fmt.Sprintf("  %s %s %s\n",
		r.theme.Highlight.Render(icon),
		r.theme.Subtle.Render(key),
		r.theme.Normal.Render(value),
	)
}
