package config

import (
	"fmt"

	"github.com/bnema/slickdir/internal/domain/entity"
)

// Section names for grouping config keys.
const (
	SectionExtraction = "Extraction"
	SectionFetch      = "Fetch"
	SectionWorkspace  = "Workspace"
	SectionDatabase   = "Database"
	SectionLogging    = "Logging"
)

// SchemaProvider implements port.ConfigSchemaProvider.
type SchemaProvider struct{}

// NewSchemaProvider creates a new SchemaProvider.
func NewSchemaProvider() *SchemaProvider {
	return &SchemaProvider{}
}

// GetSchema returns all configuration keys with their metadata.
func (p *SchemaProvider) GetSchema() []entity.ConfigKeyInfo {
	defaults := DefaultConfig()

	keys := make([]entity.ConfigKeyInfo, 0, 16)
	keys = append(keys, p.getExtractionKeys(defaults)...)
	keys = append(keys, p.getFetchKeys(defaults)...)
	keys = append(keys, p.getWorkspaceKeys(defaults)...)
	keys = append(keys, p.getDatabaseKeys()...)
	keys = append(keys, p.getLoggingKeys(defaults)...)
	return keys
}

// JSONSchema returns the JSON schema document for the config file.
func (*SchemaProvider) JSONSchema() ([]byte, error) {
	return JSONSchema()
}

func (*SchemaProvider) getExtractionKeys(defaults *Config) []entity.ConfigKeyInfo {
	return []entity.ConfigKeyInfo{
		{
			Key:         "extraction.max_hard_link_size",
			Type:        "int64",
			Default:     fmt.Sprintf("%d", defaults.Extraction.MaxHardLinkSize),
			Description: "Files larger than this many bytes are hard linked instead of copied (0 or 2147483647 disables)",
			Range:       ">=0",
			Section:     SectionExtraction,
		},
		{
			Key:         "extraction.confirm_file_threshold",
			Type:        "int",
			Default:     fmt.Sprintf("%d", defaults.Extraction.ConfirmFileThreshold),
			Description: "Ask before copying a file drop list with more files than this",
			Range:       ">=1",
			Section:     SectionExtraction,
		},
	}
}

func (*SchemaProvider) getFetchKeys(defaults *Config) []entity.ConfigKeyInfo {
	return []entity.ConfigKeyInfo{
		{
			Key:         "fetch.user_agent",
			Type:        "string",
			Default:     defaults.Fetch.UserAgent,
			Description: "User-Agent header sent when downloading copied URLs and HTML images",
			Section:     SectionFetch,
		},
		{
			Key:         "fetch.timeout_seconds",
			Type:        "int",
			Default:     fmt.Sprintf("%d", defaults.Fetch.TimeoutSeconds),
			Description: "Per request timeout",
			Range:       ">=1",
			Section:     SectionFetch,
		},
	}
}

func (*SchemaProvider) getWorkspaceKeys(defaults *Config) []entity.ConfigKeyInfo {
	return []entity.ConfigKeyInfo{
		{
			Key:         "workspace.base_dir",
			Type:        "string",
			Default:     "(empty = OS temp dir)",
			Description: "Directory where new workspaces are created",
			Section:     SectionWorkspace,
		},
		{
			Key:         "workspace.open_on_create",
			Type:        "bool",
			Default:     fmt.Sprintf("%t", defaults.Workspace.OpenOnCreate),
			Description: "Open a new workspace in the file manager",
			Section:     SectionWorkspace,
		},
		{
			Key:         "workspace.open_on_restore",
			Type:        "bool",
			Default:     fmt.Sprintf("%t", defaults.Workspace.OpenOnRestore),
			Description: "Open every surviving workspace after restore",
			Section:     SectionWorkspace,
		},
	}
}

func (*SchemaProvider) getDatabaseKeys() []entity.ConfigKeyInfo {
	dbPath := "$XDG_DATA_HOME/" + appName + "/" + databaseName
	if path, err := GetDatabaseFile(); err == nil {
		dbPath = path
	}

	return []entity.ConfigKeyInfo{
		{
			Key:         "database.path",
			Type:        "string",
			Default:     dbPath,
			Description: "Path to the SQLite database tracking workspaces",
			Section:     SectionDatabase,
		},
	}
}

func (*SchemaProvider) getLoggingKeys(defaults *Config) []entity.ConfigKeyInfo {
	return []entity.ConfigKeyInfo{
		{
			Key:         "logging.level",
			Type:        "string",
			Default:     defaults.Logging.Level,
			Description: "Log verbosity level",
			Values:      validLogLevels,
			Section:     SectionLogging,
		},
		{
			Key:         "logging.format",
			Type:        "string",
			Default:     defaults.Logging.Format,
			Description: "Log output format on stderr",
			Values:      validLogFormats,
			Section:     SectionLogging,
		},
		{
			Key:         "logging.enable_file_log",
			Type:        "bool",
			Default:     fmt.Sprintf("%t", defaults.Logging.EnableFileLog),
			Description: "Enable logging to a rotating file",
			Section:     SectionLogging,
		},
		{
			Key:         "logging.log_dir",
			Type:        "string",
			Default:     "(empty = $XDG_STATE_HOME/slickdir/logs)",
			Description: "Directory for log files",
			Section:     SectionLogging,
		},
		{
			Key:         "logging.max_size_mb",
			Type:        "int",
			Default:     fmt.Sprintf("%d", defaults.Logging.MaxSizeMB),
			Description: "Rotate the log file once it reaches this size",
			Range:       ">=1",
			Section:     SectionLogging,
		},
		{
			Key:         "logging.max_backups",
			Type:        "int",
			Default:     fmt.Sprintf("%d", defaults.Logging.MaxBackups),
			Description: "Number of rotated files to keep",
			Range:       ">=0",
			Section:     SectionLogging,
		},
		{
			Key:         "logging.max_age_days",
			Type:        "int",
			Default:     fmt.Sprintf("%d", defaults.Logging.MaxAgeDays),
			Description: "Maximum age of rotated log files in days",
			Range:       ">=0",
			Section:     SectionLogging,
		},
	}
}
