package styles_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/slickdir/internal/application/usecase"
	"github.com/bnema/slickdir/internal/cli/styles"
	"github.com/bnema/slickdir/internal/domain/entity"
)

func indexOf(s, sub string) int {
	return strings.Index(s, sub)
}

func TestWorkspacesCLIRenderer(t *testing.T) {
	r := styles.NewWorkspacesCLIRenderer(styles.NewTheme())

	require.Contains(t, r.RenderEmptyList(), "No tracked workspaces.")

	out := r.RenderList([]*entity.Workspace{
		{Path: "/tmp/1a2b3c4d", CreatedAt: time.Now()},
		{Path: "/tmp/deadbeef"},
	})
	require.Contains(t, out, "Workspaces")
	require.Contains(t, out, "(2)")
	require.Contains(t, out, "/tmp/1a2b3c4d")
	require.Contains(t, out, "just now")
	require.Contains(t, out, "unknown")

	restored := r.RenderRestore(&usecase.RestoreWorkspacesOutput{
		Kept:    []*entity.Workspace{{Path: "/tmp/kept"}},
		Dropped: []*entity.Workspace{{Path: "/tmp/gone"}},
	})
	require.Contains(t, restored, "/tmp/kept")
	require.Contains(t, restored, "/tmp/gone")
	require.Contains(t, restored, "forgotten")

	flushed := r.RenderFlushAll(&usecase.FlushAllOutput{
		Flushed: []string{"/tmp/a"},
		Failed:  map[string]error{"/tmp/c": errors.New("busy"), "/tmp/b": errors.New("locked")},
	})
	require.Contains(t, flushed, "/tmp/a")
	assert.Less(t, indexOf(flushed, "/tmp/b"), indexOf(flushed, "/tmp/c"))
	require.Contains(t, flushed, "busy")

	require.Contains(t, r.RenderFlushAll(&usecase.FlushAllOutput{}), "No tracked workspaces.")
	require.Contains(t, r.RenderError(errors.New("boom")), "boom")
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{30 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{2 * 24 * time.Hour, "2d ago"},
		{15 * 24 * time.Hour, "2w ago"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, styles.RelativeTime(now, now.Add(-tt.ago)))
	}
}
