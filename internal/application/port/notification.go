package port

import "context"

// FailureSignal surfaces a non-fatal failure to the user (audible cue, desktop
// notification). It must never block or fail the caller.
type FailureSignal interface {
	Signal(ctx context.Context, message string)
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	// Confirm returns true when the user accepts. An error means the question
	// could not be asked and is treated as a decline.
	Confirm(ctx context.Context, message string) (bool, error)
}
