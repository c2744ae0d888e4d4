package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/slickdir/internal/application/port"
	"github.com/bnema/slickdir/internal/cli/styles"
	"github.com/bnema/slickdir/internal/logging"
)

// AutoConfirmer answers yes to every question.
type AutoConfirmer struct{}

// Confirm implements port.Confirmer.
func (AutoConfirmer) Confirm(ctx context.Context, message string) (bool, error) {
	logging.FromContext(ctx).Debug().Str("question", message).Msg("auto-confirmed")
	return true, nil
}

// PromptConfirmer asks through an interactive yes/no dialog.
type PromptConfirmer struct {
	theme  *styles.Theme
	input  io.Reader
	output io.Writer
}

// NewPromptConfirmer creates a confirmer bound to the terminal.
func NewPromptConfirmer(theme *styles.Theme) *PromptConfirmer {
	return &PromptConfirmer{theme: theme, input: os.Stdin, output: os.Stderr}
}

// Confirm implements port.Confirmer. Canceling the dialog counts as no.
func (p *PromptConfirmer) Confirm(ctx context.Context, message string) (bool, error) {
	program := tea.NewProgram(
		styles.ConfirmProgram{Dialog: styles.NewConfirm(p.theme, message)},
		tea.WithContext(ctx),
		tea.WithInput(p.input),
		tea.WithOutput(p.output),
	)
	final, err := program.Run()
	if err != nil {
		return false, fmt.Errorf("run confirm prompt: %w", err)
	}
	result, ok := final.(styles.ConfirmProgram)
	if !ok {
		return false, fmt.Errorf("unexpected prompt model %T", final)
	}
	return result.Dialog.Result(), nil
}

var (
	_ port.Confirmer = AutoConfirmer{}
	_ port.Confirmer = (*PromptConfirmer)(nil)
)
