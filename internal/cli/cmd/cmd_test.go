package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/slickdir/internal/domain/build"
)

// isolate points every XDG directory and the workspace base into a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	t.Setenv("SLICKDIR_WORKSPACE_BASE_DIR", filepath.Join(root, "workspaces"))
	t.Setenv("SLICKDIR_LOGGING_ENABLE_FILE_LOG", "false")
	t.Setenv("SLICKDIR_LOG_LEVEL", "error")
	return root
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		flushAll = false
		schemaKeys = false
		schemaJSON = false
		schemaWrite = false
		schemaSection = ""
		versionShort = false
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestClassify_ReadsStdin(t *testing.T) {
	t.Cleanup(func() { classifyFilename = false })

	tests := []struct {
		name     string
		input    string
		filename bool
		want     string
	}{
		{name: "json label", input: `{"a": 1}`, want: "json"},
		{name: "sql filename", input: "SELECT * FROM users WHERE age > 18;", filename: true, want: "clipboard.sql"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := &cobra.Command{}
			c.SetIn(strings.NewReader(tt.input))
			c.SetOut(&out)
			classifyFilename = tt.filename

			require.NoError(t, runClassify(c, nil))
			assert.Equal(t, tt.want+"\n", out.String())
		})
	}
}

func TestClassify_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page")
	require.NoError(t, os.WriteFile(path, []byte("<!DOCTYPE html><html><body></body></html>"), 0o600))

	var out bytes.Buffer
	c := &cobra.Command{}
	c.SetOut(&out)

	require.NoError(t, runClassify(c, []string{path}))
	assert.Equal(t, "html\n", out.String())
}

func TestRoot_ListWithoutWorkspaces(t *testing.T) {
	isolate(t)

	out, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No tracked workspaces.")
}

func TestRoot_FlushRequiresTarget(t *testing.T) {
	isolate(t)

	_, err := execute(t, "flush")
	assert.ErrorContains(t, err, "--all")
}

func TestRoot_FlushUntrackedPathFails(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	_, err := execute(t, "flush", dir)
	assert.ErrorContains(t, err, "not tracked")
	assert.DirExists(t, dir)
}

func TestRoot_ConfigPathAfterFirstRun(t *testing.T) {
	root := isolate(t)

	out, err := execute(t, "config", "path")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(root, "config", "slickdir", "config.toml"))
	assert.Contains(t, out, "present")
}

func TestRoot_ConfigSchemaKeys(t *testing.T) {
	isolate(t)

	out, err := execute(t, "config", "schema", "--keys", "--section", "fetch")
	require.NoError(t, err)
	assert.Contains(t, out, "fetch.timeout_seconds")
	assert.NotContains(t, out, "logging.level")
}

func TestRoot_VersionShort(t *testing.T) {
	isolate(t)
	SetBuildInfo(build.Info{Version: "v1.2.3"})
	t.Cleanup(func() { SetBuildInfo(build.Info{}) })

	out, err := execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "v1.2.3\n", out)
}
