package styles

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
)

// ConfigRenderer renders config status messages with styled output.
type ConfigRenderer struct {
	theme *Theme
}

// NewConfigRenderer creates a new config renderer with the given theme.
func NewConfigRenderer(theme *Theme) *ConfigRenderer {
	return &ConfigRenderer{theme: theme}
}

// RenderConfigInfo renders the config file location and whether it exists yet.
func (r *ConfigRenderer) RenderConfigInfo(path string, exists bool) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	pathStyle := r.theme.Subtle

	status := r.theme.Subtle.Render("Config file will be created on first run with all defaults.")
	if exists {
		status = fmt.Sprintf("%s %s", r.theme.SuccessStyle.Render(IconCheck), r.theme.Normal.Render("present"))
	}

	return fmt.Sprintf(
		"\n  %s Config %s\n  %s\n",
		iconStyle.Render(IconConfig),
		pathStyle.Render(path),
		status,
	)
}

// RenderSchemaWritten renders the success message after writing the JSON schema.
func (r *ConfigRenderer) RenderSchemaWritten(path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)

	return fmt.Sprintf(
		"\n  %s Wrote schema %s\n",
		iconStyle.Render(IconCheck),
		r.theme.Subtle.Render(filepath.Base(path)),
	)
}

// RenderError renders an error message.
func (r *ConfigRenderer) RenderError(err error) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Error)

	return fmt.Sprintf(
		"\n  %s Config error: %v\n",
		iconStyle.Render(IconX),
		err,
	)
}
