package config

import "time"

// Config represents the complete configuration for slickdir.
type Config struct {
	// Extraction controls how clipboard content is materialized into a workspace.
	Extraction ExtractionConfig `mapstructure:"extraction" yaml:"extraction" toml:"extraction" json:"extraction"`
	// Fetch controls HTTP downloads of copied URLs and embedded HTML images.
	Fetch FetchConfig `mapstructure:"fetch" yaml:"fetch" toml:"fetch" json:"fetch"`
	// Workspace controls where workspaces are created and when they are opened.
	Workspace WorkspaceConfig `mapstructure:"workspace" yaml:"workspace" toml:"workspace" json:"workspace"`
	Database  DatabaseConfig  `mapstructure:"database" yaml:"database" toml:"database" json:"database"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging" toml:"logging" json:"logging"`
}

// ExtractionConfig holds extraction thresholds.
type ExtractionConfig struct {
	// MaxHardLinkSize is the size in bytes above which copied files are hard
	// linked instead of copied. 0 or 2147483647 disables hard linking.
	MaxHardLinkSize int64 `mapstructure:"max_hard_link_size" yaml:"max_hard_link_size" toml:"max_hard_link_size" json:"max_hard_link_size" jsonschema:"minimum=0,default=104857600"`
	// ConfirmFileThreshold is the number of files in a drop list above which
	// the user is asked before copying.
	ConfirmFileThreshold int `mapstructure:"confirm_file_threshold" yaml:"confirm_file_threshold" toml:"confirm_file_threshold" json:"confirm_file_threshold" jsonschema:"minimum=1,default=1000"`
}

// FetchConfig holds HTTP client settings.
type FetchConfig struct {
	UserAgent      string `mapstructure:"user_agent" yaml:"user_agent" toml:"user_agent" json:"user_agent"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds" toml:"timeout_seconds" json:"timeout_seconds" jsonschema:"minimum=1,default=30"`
}

// Timeout returns the configured timeout as a duration.
func (f FetchConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// WorkspaceConfig holds workspace lifecycle settings.
type WorkspaceConfig struct {
	// BaseDir is where workspaces are created. Empty means the OS temp dir.
	BaseDir string `mapstructure:"base_dir" yaml:"base_dir" toml:"base_dir" json:"base_dir"`
	// OpenOnCreate opens a new workspace in the file manager.
	OpenOnCreate bool `mapstructure:"open_on_create" yaml:"open_on_create" toml:"open_on_create" json:"open_on_create"`
	// OpenOnRestore opens every surviving workspace after a restore.
	OpenOnRestore bool `mapstructure:"open_on_restore" yaml:"open_on_restore" toml:"open_on_restore" json:"open_on_restore"`
}

// DatabaseConfig holds database settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path" toml:"path" json:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level         string `mapstructure:"level" yaml:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
	Format        string `mapstructure:"format" yaml:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json"`
	EnableFileLog bool   `mapstructure:"enable_file_log" yaml:"enable_file_log" toml:"enable_file_log" json:"enable_file_log"`
	LogDir        string `mapstructure:"log_dir" yaml:"log_dir" toml:"log_dir" json:"log_dir"`
	MaxSizeMB     int    `mapstructure:"max_size_mb" yaml:"max_size_mb" toml:"max_size_mb" json:"max_size_mb" jsonschema:"minimum=1"`
	MaxBackups    int    `mapstructure:"max_backups" yaml:"max_backups" toml:"max_backups" json:"max_backups" jsonschema:"minimum=0"`
	MaxAgeDays    int    `mapstructure:"max_age_days" yaml:"max_age_days" toml:"max_age_days" json:"max_age_days" jsonschema:"minimum=0"`
}
