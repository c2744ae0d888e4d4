package logging

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
)

// PanicError logs a recovered panic value r with its stack trace and
// returns it as an error. what names the operation that panicked.
func PanicError(ctx context.Context, what string, r any) error {
	err := fmt.Errorf("%s panic: %v", what, r)
	FromContext(ctx).Error().
		Err(err).
		Str("stack", string(debug.Stack())).
		Str("go_version", runtime.Version()).
		Str("os", runtime.GOOS).
		Str("arch", runtime.GOARCH).
		Msg("recovered panic")
	return err
}
