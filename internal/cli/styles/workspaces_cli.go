package styles

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bnema/slickdir/internal/application/usecase"
	"github.com/bnema/slickdir/internal/domain/entity"
)

const (
	hoursPerDay = 24
	daysPerWeek = 7
)

// WorkspacesCLIRenderer renders non-interactive CLI output for workspace
// subcommands (e.g. `slickdir list`, `restore`, `flush`).
type WorkspacesCLIRenderer struct {
	theme *Theme
	now   func() time.Time
}

func NewWorkspacesCLIRenderer(theme *Theme) *WorkspacesCLIRenderer {
	return &WorkspacesCLIRenderer{theme: theme, now: time.Now}
}

func (r *WorkspacesCLIRenderer) RenderEmptyList() string {
	return r.theme.Subtle.Render("No tracked workspaces.")
}

func (r *WorkspacesCLIRenderer) RenderList(items []*entity.Workspace) string {
	if len(items) == 0 {
		return r.RenderEmptyList()
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s", r.theme.Highlight.Render(IconFolder), r.theme.Title.Render("Workspaces")))
	b.WriteString(r.theme.Subtle.Render(fmt.Sprintf(" (%d)", len(items))))
	b.WriteString("\n\n")

	for _, ws := range items {
		b.WriteString(r.renderOne(ws))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(r.theme.Subtle.Render("Tip: use `slickdir flush <path>` to delete one, or `--all` for every workspace."))
	return b.String()
}

func (r *WorkspacesCLIRenderer) renderOne(ws *entity.Workspace) string {
	age := "unknown"
	if !ws.CreatedAt.IsZero() {
		age = RelativeTime(r.now(), ws.CreatedAt)
	}
	return fmt.Sprintf("  %s  %s",
		r.theme.Highlight.Render(ws.Path),
		r.theme.Subtle.Render(age),
	)
}

func (r *WorkspacesCLIRenderer) RenderCreated(ws *entity.Workspace) string {
	return fmt.Sprintf("%s Workspace %s created.",
		r.theme.SuccessStyle.Render(IconFolder),
		r.theme.Highlight.Render(ws.Path),
	)
}

func (r *WorkspacesCLIRenderer) RenderRestore(out *usecase.RestoreWorkspacesOutput) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s Restored %s workspace(s).",
		r.theme.SuccessStyle.Render(IconRestore),
		r.theme.Highlight.Render(fmt.Sprint(len(out.Kept))),
	))
	for _, ws := range out.Kept {
		b.WriteString("\n")
		b.WriteString(r.renderOne(ws))
	}
	for _, ws := range out.Dropped {
		b.WriteString(fmt.Sprintf("\n  %s %s %s",
			r.theme.WarningStyle.Render(IconWarning),
			r.theme.Subtle.Render(ws.Path),
			r.theme.Subtle.Render("(missing, forgotten)"),
		))
	}
	return b.String()
}

func (r *WorkspacesCLIRenderer) RenderFlushed(path string) string {
	return fmt.Sprintf("%s Workspace %s flushed.",
		r.theme.SuccessStyle.Render(IconCheck),
		r.theme.Highlight.Render(path),
	)
}

func (r *WorkspacesCLIRenderer) RenderFlushAll(out *usecase.FlushAllOutput) string {
	if len(out.Flushed) == 0 && len(out.Failed) == 0 {
		return r.RenderEmptyList()
	}

	lines := make([]string, 0, len(out.Flushed)+len(out.Failed))
	for _, path := range out.Flushed {
		lines = append(lines, r.RenderFlushed(path))
	}
	failed := make([]string, 0, len(out.Failed))
	for path := range out.Failed {
		failed = append(failed, path)
	}
	sort.Strings(failed)
	for _, path := range failed {
		lines = append(lines, fmt.Sprintf("%s %s: %v",
			r.theme.ErrorStyle.Render(IconX),
			r.theme.Highlight.Render(path),
			out.Failed[path],
		))
	}
	return strings.Join(lines, "\n")
}

func (r *WorkspacesCLIRenderer) RenderError(err error) string {
	return fmt.Sprintf("%s %v", r.theme.ErrorStyle.Render(IconX), err)
}

// RelativeTime formats the time elapsed between t and now in a compact form.
func RelativeTime(now, t time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < hoursPerDay*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < daysPerWeek*hoursPerDay*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/hoursPerDay))
	default:
		return fmt.Sprintf("%dw ago", int(diff.Hours()/hoursPerDay/daysPerWeek))
	}
}
