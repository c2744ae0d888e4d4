// Package notification surfaces extraction failures to the user.
package notification

import (
	"context"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/bnema/slickdir/internal/application/port"
	"github.com/bnema/slickdir/internal/logging"
)

const (
	bell          = "\a"
	notifyTimeout = 2 * time.Second
	appTitle      = "slickdir"
)

// Signal implements port.FailureSignal with a terminal bell and, when
// available, a desktop notification through notify-send.
type Signal struct {
	out        io.Writer
	notifySend string
	run        func(ctx context.Context, name string, args ...string) error
	mu         sync.Mutex
}

// NewSignal creates a failure signal writing the bell to stderr.
func NewSignal() *Signal {
	s := &Signal{
		out: os.Stderr,
		run: func(ctx context.Context, name string, args ...string) error {
			return exec.CommandContext(ctx, name, args...).Run()
		},
	}
	if path, err := exec.LookPath("notify-send"); err == nil {
		s.notifySend = path
	}
	return s
}

// Signal rings the bell and shows message. It never fails the caller.
func (s *Signal) Signal(ctx context.Context, message string) {
	log := logging.FromContext(ctx)

	s.mu.Lock()
	_, _ = io.WriteString(s.out, bell)
	s.mu.Unlock()

	if s.notifySend == "" {
		return
	}

	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	if err := s.run(notifyCtx, s.notifySend, "--urgency=normal", "--app-name="+appTitle, appTitle, message); err != nil {
		log.Debug().Err(err).Msg("notify-send failed (non-fatal)")
	}
}

var _ port.FailureSignal = (*Signal)(nil)
