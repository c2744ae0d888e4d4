package entity

import (
	"math"
	"path/filepath"
	"strings"
	"time"
)

// Workspace is a freshly minted directory that receives the artifacts of one
// clipboard extraction. Its lifetime is tracked until the user flushes it.
type Workspace struct {
	Path      string
	CreatedAt time.Time
}

// NormalizeWorkspacePath makes p absolute, cleans it and strips trailing separators
// so that the same directory always maps to the same record.
func NormalizeWorkspacePath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	p = filepath.Clean(p)
	if len(p) > 1 {
		p = strings.TrimRight(p, string(filepath.Separator))
	}
	return p
}

// Sentinels for CopyPolicy.MaxHardLinkSize that disable hard linking.
const (
	HardLinkDisabled  int64 = 0
	HardLinkUnbounded int64 = math.MaxInt32
)

// CopyPolicy decides whether a dropped file is copied or hard-linked.
type CopyPolicy struct {
	// MaxHardLinkSize is the size in bytes above which a file is hard-linked
	// instead of copied. HardLinkDisabled and HardLinkUnbounded turn linking off.
	MaxHardLinkSize int64
}

// HardLinkEnabled reports whether the threshold is active.
func (p CopyPolicy) HardLinkEnabled() bool {
	return p.MaxHardLinkSize > HardLinkDisabled &&
		p.MaxHardLinkSize != HardLinkUnbounded &&
		p.MaxHardLinkSize != math.MaxInt64
}

// ShouldHardLink reports whether a file of the given size must be hard-linked.
func (p CopyPolicy) ShouldHardLink(size int64) bool {
	return p.HardLinkEnabled() && size > p.MaxHardLinkSize
}
