package port

import (
	"context"
	"io/fs"
)

// FileSystem provides file system operations for the application layer.
type FileSystem interface {
	Exists(ctx context.Context, path string) (bool, error)
	IsDirectory(ctx context.Context, path string) (bool, error)
	GetSize(ctx context.Context, path string) (int64, error)
	RemoveAll(ctx context.Context, path string) error

	// Stat follows symlinks; Lstat does not.
	Stat(ctx context.Context, path string) (fs.FileInfo, error)
	Lstat(ctx context.Context, path string) (fs.FileInfo, error)
	ReadDir(ctx context.Context, path string) ([]fs.DirEntry, error)
	MkdirAll(ctx context.Context, path string) error

	// CountFiles returns 1 for a file, the recursive file count for a directory
	// and 0 for a missing path.
	CountFiles(ctx context.Context, path string) (int, error)

	// WriteFile creates or truncates path with data.
	WriteFile(ctx context.Context, path string, data []byte) error
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// CopyFile streams src into dst, creating or truncating dst. The source is
	// opened read-only so other readers are not blocked.
	CopyFile(ctx context.Context, src, dst string) (int64, error)

	// HardLink creates dst as a hard link to src.
	HardLink(ctx context.Context, src, dst string) error
}
