package port

import "context"

// DirectoryOpener reveals a directory to the user, typically in a file manager.
type DirectoryOpener interface {
	// OpenDirectory launches the desktop file manager at path.
	// Returns an error if no opener is available or it fails to start.
	OpenDirectory(ctx context.Context, path string) error
}
