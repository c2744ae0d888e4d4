package logging

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	logFilePerm = 0o600
	logDirPerm  = 0o750
)

// LogRotator is an io.Writer that rolls its file over when it grows past
// maxSize or when the calendar day changes.
type LogRotator struct {
	mu          sync.Mutex
	baseDir     string
	baseName    string
	maxSize     int64 // bytes
	maxAge      time.Duration
	maxBackups  int
	compress    bool
	currentFile *os.File
	currentSize int64
	currentDay  string
	now         func() time.Time
}

// NewLogRotator opens (or creates) baseDir/baseName for appending.
func NewLogRotator(baseDir, baseName string, maxSizeMB, maxBackups, maxAgeDays int, compress bool) (*LogRotator, error) {
	if err := os.MkdirAll(baseDir, logDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	r := &LogRotator{
		baseDir:    baseDir,
		baseName:   baseName,
		maxSize:    int64(maxSizeMB) * 1024 * 1024,
		maxAge:     time.Duration(maxAgeDays) * 24 * time.Hour,
		maxBackups: maxBackups,
		compress:   compress,
		now:        time.Now,
	}

	if err := r.openCurrentFile(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *LogRotator) currentPath() string {
	return filepath.Join(r.baseDir, r.baseName)
}

func (r *LogRotator) openCurrentFile() error {
	logPath := r.currentPath()

	r.currentSize = 0
	r.currentDay = r.now().Format(time.DateOnly)
	if info, err := os.Stat(logPath); err == nil {
		r.currentSize = info.Size()
		// A file left over from a previous day belongs to that day.
		r.currentDay = info.ModTime().Format(time.DateOnly)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePerm)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	r.currentFile = file
	return nil
}

func (r *LogRotator) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currentFile == nil {
		if err := r.openCurrentFile(); err != nil {
			return 0, err
		}
	}

	if r.needsRotation(len(p)) {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}

	n, err := r.currentFile.Write(p)
	r.currentSize += int64(n)
	return n, err
}

func (r *LogRotator) needsRotation(incoming int) bool {
	if r.currentSize == 0 {
		return false
	}
	if r.maxSize > 0 && r.currentSize+int64(incoming) > r.maxSize {
		return true
	}
	return r.now().Format(time.DateOnly) != r.currentDay
}

func (r *LogRotator) rotate() error {
	if r.currentFile != nil {
		if err := r.currentFile.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to close current log file: %v\n", err)
		}
		r.currentFile = nil
	}

	// The day prefix keeps backups sortable; the clock suffix separates size rollovers.
	backupName := fmt.Sprintf("%s.%s.%s", r.baseName, r.currentDay, r.now().Format("150405.000000"))
	backupPath := filepath.Join(r.baseDir, backupName)

	if err := os.Rename(r.currentPath(), backupPath); err != nil {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}

	if r.compress {
		if err := compressFile(backupPath); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to compress log file %s: %v\n", backupPath, err)
		} else if err := os.Remove(backupPath); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to remove uncompressed log file %s: %v\n", backupPath, err)
		}
	}

	r.cleanup()
	return r.openCurrentFile()
}

func compressFile(filePath string) (err error) {
	in, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(filePath+".gz", os.O_CREATE|os.O_WRONLY|os.O_TRUNC, logFilePerm)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	gz := gzip.NewWriter(out)
	if _, err = io.Copy(gz, in); err != nil {
		_ = gz.Close()
		return err
	}
	return gz.Close()
}

// cleanup removes backups older than maxAge, then the oldest backups beyond maxBackups.
func (r *LogRotator) cleanup() {
	entries, err := os.ReadDir(r.baseDir)
	if err != nil {
		return
	}

	var backups []os.FileInfo
	now := r.now()

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), r.baseName+".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}

		if r.maxAge > 0 && now.Sub(info.ModTime()) > r.maxAge {
			if err := os.Remove(filepath.Join(r.baseDir, entry.Name())); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to remove old log file: %v\n", err)
			}
			continue
		}
		backups = append(backups, info)
	}

	if r.maxBackups <= 0 || len(backups) <= r.maxBackups {
		return
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].ModTime().Before(backups[j].ModTime())
	})
	for _, info := range backups[:len(backups)-r.maxBackups] {
		if err := os.Remove(filepath.Join(r.baseDir, info.Name())); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to remove excess backup file: %v\n", err)
		}
	}
}

// Close closes the active log file.
func (r *LogRotator) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currentFile == nil {
		return nil
	}
	err := r.currentFile.Close()
	r.currentFile = nil
	return err
}
