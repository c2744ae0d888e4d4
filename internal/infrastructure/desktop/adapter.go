// Package desktop provides desktop environment integration for Linux (XDG).
package desktop

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/bnema/slickdir/internal/application/port"
	"github.com/bnema/slickdir/internal/logging"
)

// ErrNoOpener is returned when no file manager launcher is installed.
var ErrNoOpener = errors.New("no directory opener found (install xdg-utils)")

// openers are tried in order; the first one on PATH wins.
var openers = []string{"xdg-open", "gio", "kde-open5", "gnome-open"}

// startFunc launches a detached process.
type startFunc func(name string, args ...string) (int, error)

func startDetached(name string, args ...string) (int, error) {
	// Not tied to the command context: the file manager outlives us.
	cmd := exec.Command(name, args...)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil

	if err := cmd.Start(); err != nil {
		return 0, err
	}
	pid := cmd.Process.Pid
	// Release the process so it continues running after we exit
	if err := cmd.Process.Release(); err != nil {
		return pid, fmt.Errorf("release: %w", err)
	}
	return pid, nil
}

// Opener implements port.DirectoryOpener with the XDG launchers.
type Opener struct {
	openerPath string
	start      startFunc
}

// NewOpener creates a new directory opener.
func NewOpener() *Opener {
	o := &Opener{start: startDetached}
	for _, name := range openers {
		if path, err := exec.LookPath(name); err == nil {
			o.openerPath = path
			break
		}
	}
	return o
}

// OpenDirectory shows path in the user's file manager.
func (o *Opener) OpenDirectory(ctx context.Context, path string) error {
	log := logging.FromContext(ctx)

	if o.openerPath == "" {
		return ErrNoOpener
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("open directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("open directory: %s is not a directory", path)
	}

	args := []string{path}
	if isGio(o.openerPath) {
		args = []string{"open", path}
	}

	pid, err := o.start(o.openerPath, args...)
	if err != nil && pid == 0 {
		return fmt.Errorf("launch %s: %w", o.openerPath, err)
	}
	if err != nil {
		log.Warn().Err(err).Msg("failed to release file manager process (non-fatal)")
	}

	log.Debug().Str("path", path).Str("opener", o.openerPath).Int("pid", pid).Msg("directory opened")
	return nil
}

func isGio(path string) bool {
	return filepath.Base(path) == "gio"
}

var _ port.DirectoryOpener = (*Opener)(nil)
