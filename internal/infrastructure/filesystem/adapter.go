// Package filesystem implements port.FileSystem on top of the OS filesystem.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bnema/slickdir/internal/application/port"
)

const (
	filePerm = 0o644
	dirPerm  = 0o755
)

// Adapter implements port.FileSystem using the OS filesystem.
type Adapter struct{}

// New creates a new filesystem adapter.
func New() *Adapter {
	return &Adapter{}
}

func (a *Adapter) Exists(_ context.Context, path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (a *Adapter) IsDirectory(_ context.Context, path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

func (a *Adapter) GetSize(_ context.Context, path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}
	if !info.IsDir() {
		return info.Size(), nil
	}

	var size int64
	err = filepath.WalkDir(path, func(_ string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		size += fi.Size()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return size, nil
}

func (a *Adapter) RemoveAll(_ context.Context, path string) error {
	return os.RemoveAll(path)
}

func (a *Adapter) Stat(_ context.Context, path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

func (a *Adapter) Lstat(_ context.Context, path string) (fs.FileInfo, error) {
	return os.Lstat(path)
}

func (a *Adapter) ReadDir(_ context.Context, path string) ([]fs.DirEntry, error) {
	return os.ReadDir(path)
}

func (a *Adapter) MkdirAll(_ context.Context, path string) error {
	return os.MkdirAll(path, dirPerm)
}

func (a *Adapter) CountFiles(_ context.Context, path string) (int, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}
	if !info.IsDir() {
		return 1, nil
	}

	count := 0
	err = filepath.WalkDir(path, func(_ string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.IsDir() {
			count++
		}
		return nil
	})
	return count, err
}

func (a *Adapter) WriteFile(_ context.Context, path string, data []byte) error {
	return os.WriteFile(path, data, filePerm)
}

func (a *Adapter) ReadFile(_ context.Context, path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (a *Adapter) CopyFile(ctx context.Context, src, dst string) (written int64, err error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("open source: %w", err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm)
	if err != nil {
		return 0, fmt.Errorf("create destination: %w", err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close destination: %w", cerr)
		}
	}()

	written, err = io.Copy(out, &contextReader{ctx: ctx, r: in})
	if err != nil {
		return written, fmt.Errorf("copy: %w", err)
	}
	return written, nil
}

func (a *Adapter) HardLink(_ context.Context, src, dst string) error {
	return os.Link(src, dst)
}

// contextReader aborts a long copy once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

var _ port.FileSystem = (*Adapter)(nil)
