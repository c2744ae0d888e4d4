package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateXDG(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	return root
}

func TestManager_Load_CreatesDefaultConfig(t *testing.T) {
	root := isolateXDG(t)
	configFile := filepath.Join(root, "config", appName, configFileName)

	mgr, err := NewManagerAt(configFile)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	assert.FileExists(t, configFile)
	assert.FileExists(t, filepath.Join(filepath.Dir(configFile), schemaFileName))

	cfg := mgr.Get()
	assert.Equal(t, int64(defaultMaxHardLinkSize), cfg.Extraction.MaxHardLinkSize)
	assert.Equal(t, defaultConfirmFileThreshold, cfg.Extraction.ConfirmFileThreshold)
	assert.Equal(t, defaultTimeoutSeconds, cfg.Fetch.TimeoutSeconds)
	assert.True(t, cfg.Workspace.OpenOnCreate)
	assert.False(t, cfg.Workspace.OpenOnRestore)
	assert.Equal(t, filepath.Join(root, "data", appName, databaseName), cfg.Database.Path)
	assert.Equal(t, filepath.Join(root, "state", appName, "logs"), cfg.Logging.LogDir)
	assert.Equal(t, filepath.Clean(os.TempDir()), cfg.Workspace.BaseDir)
}

func TestManager_Load_ReadsFileAndEnv(t *testing.T) {
	root := isolateXDG(t)
	configFile := filepath.Join(root, "custom.toml")
	content := `
[extraction]
max_hard_link_size = 2048
confirm_file_threshold = 5

[workspace]
base_dir = '` + filepath.Join(root, "ws") + `'
open_on_create = false
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0o644))
	t.Setenv("SLICKDIR_FETCH_TIMEOUT_SECONDS", "7")
	t.Setenv("SLICKDIR_LOG_LEVEL", "DEBUG")

	mgr, err := NewManagerAt(configFile)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.Equal(t, int64(2048), cfg.Extraction.MaxHardLinkSize)
	assert.Equal(t, 5, cfg.Extraction.ConfirmFileThreshold)
	assert.Equal(t, filepath.Join(root, "ws"), cfg.Workspace.BaseDir)
	assert.False(t, cfg.Workspace.OpenOnCreate)
	assert.Equal(t, 7, cfg.Fetch.TimeoutSeconds)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, defaultUserAgent, cfg.Fetch.UserAgent)
}

func TestManager_Load_RejectsInvalidValues(t *testing.T) {
	root := isolateXDG(t)
	configFile := filepath.Join(root, "bad.toml")
	content := `
[extraction]
max_hard_link_size = -1
confirm_file_threshold = 0
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0o644))

	mgr, err := NewManagerAt(configFile)
	require.NoError(t, err)

	err = mgr.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extraction.max_hard_link_size")
	assert.Contains(t, err.Error(), "extraction.confirm_file_threshold")
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "hard links disabled with zero", mutate: func(c *Config) { c.Extraction.MaxHardLinkSize = 0 }},
		{name: "negative timeout", mutate: func(c *Config) { c.Fetch.TimeoutSeconds = 0 }, wantErr: "fetch.timeout_seconds"},
		{name: "unknown level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: "logging.level"},
		{name: "unknown format", mutate: func(c *Config) { c.Logging.Format = "text" }, wantErr: "logging.format"},
		{name: "negative backups", mutate: func(c *Config) { c.Logging.MaxBackups = -1 }, wantErr: "logging.max_backups"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, strings.HasPrefix(err.Error(), "config validation failed:"))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWriteConfigOrdered_SectionsFollowStructOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, WriteConfigOrdered(DefaultConfig(), path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var sections []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			sections = append(sections, line)
		}
	}
	assert.Equal(t, []string{"[extraction]", "[fetch]", "[workspace]", "[database]", "[logging]"}, sections)
}

func TestWriteConfigOrdered_NilConfig(t *testing.T) {
	err := WriteConfigOrdered(nil, filepath.Join(t.TempDir(), "x.toml"))
	assert.Error(t, err)
}

func TestJSONSchema_DescribesSections(t *testing.T) {
	data, err := JSONSchema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, schemaID, doc["$id"])

	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	for _, section := range []string{"extraction", "fetch", "workspace", "database", "logging"} {
		assert.Contains(t, props, section)
	}
}

func TestSchemaProvider_KeysAreUniqueAndSectioned(t *testing.T) {
	isolateXDG(t)
	keys := NewSchemaProvider().GetSchema()
	require.NotEmpty(t, keys)

	seen := make(map[string]bool)
	for _, k := range keys {
		assert.False(t, seen[k.Key], "duplicate key %s", k.Key)
		seen[k.Key] = true
		assert.NotEmpty(t, k.Section, k.Key)
		assert.NotEmpty(t, k.Description, k.Key)
	}
	assert.True(t, seen["extraction.max_hard_link_size"])
	assert.True(t, seen["database.path"])
}

func TestXDGPaths_FollowEnvironment(t *testing.T) {
	root := isolateXDG(t)

	cfgFile, err := GetConfigFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "config", "slickdir", "config.toml"), cfgFile)

	dbFile, err := GetDatabaseFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "data", "slickdir", "slickdir.db"), dbFile)

	manDir, err := GetManDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "data", "man", "man1"), manDir)
}
