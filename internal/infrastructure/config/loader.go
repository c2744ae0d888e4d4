package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading.
type Manager struct {
	config     *Config
	viper      *viper.Viper
	configFile string
	mu         sync.RWMutex
}

// NewManager creates a configuration manager for the XDG config file.
func NewManager() (*Manager, error) {
	configFile, err := GetConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	return NewManagerAt(configFile)
}

// NewManagerAt creates a configuration manager bound to an explicit file.
func NewManagerAt(configFile string) (*Manager, error) {
	v := viper.New()
	v.SetConfigFile(configFile)
	v.SetConfigType("toml")

	// SLICKDIR_EXTRACTION_MAX_HARD_LINK_SIZE, SLICKDIR_LOGGING_LEVEL, ...
	v.SetEnvPrefix("SLICKDIR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Short aliases shared with logging.NewFromEnv.
	if err := v.BindEnv("logging.level", "SLICKDIR_LOGGING_LEVEL", "SLICKDIR_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind SLICKDIR_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "SLICKDIR_LOGGING_FORMAT", "SLICKDIR_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind SLICKDIR_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:      v,
		configFile: configFile,
	}, nil
}

// Load loads the configuration from file and environment variables,
// creating a default file on first run.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	if err := resolvePaths(config); err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	if _, err := os.Stat(m.configFile); errors.Is(err, fs.ErrNotExist) {
		if createErr := m.createDefaultConfig(); createErr != nil {
			return fmt.Errorf(
				"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
				m.configFile,
				createErr,
			)
		}
	}

	if err := m.viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", m.configFile, err)
	}
	return nil
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.configFile,
			err,
		)
	}
	return config, nil
}

// resolvePaths fills environment dependent paths left empty in the file.
func resolvePaths(config *Config) error {
	if config.Database.Path == "" {
		dbPath, err := GetDatabaseFile()
		if err != nil {
			return fmt.Errorf("failed to get database path: %w", err)
		}
		config.Database.Path = dbPath
	}
	if config.Logging.LogDir == "" {
		logDir, err := GetLogDir()
		if err != nil {
			return fmt.Errorf("failed to get log directory: %w", err)
		}
		config.Logging.LogDir = logDir
	}
	if config.Workspace.BaseDir == "" {
		config.Workspace.BaseDir = os.TempDir()
	}
	return nil
}

func normalizeConfig(config *Config) {
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	if config.Logging.Level == "" {
		config.Logging.Level = defaultLogLevel
	}
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
	if config.Logging.Format == "" {
		config.Logging.Format = defaultLogFormat
	}
	config.Fetch.UserAgent = strings.TrimSpace(config.Fetch.UserAgent)
	if config.Fetch.UserAgent == "" {
		config.Fetch.UserAgent = defaultUserAgent
	}
	config.Workspace.BaseDir = filepath.Clean(config.Workspace.BaseDir)
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	return &configCopy
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	return m.configFile
}

// createDefaultConfig writes the default configuration and its JSON schema.
func (m *Manager) createDefaultConfig() error {
	if err := os.MkdirAll(filepath.Dir(m.configFile), dirPerm); err != nil {
		return err
	}

	if err := WriteConfigOrdered(DefaultConfig(), m.configFile); err != nil {
		return err
	}

	schemaFile := filepath.Join(filepath.Dir(m.configFile), schemaFileName)
	if err := WriteSchemaFile(schemaFile); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Created default configuration file: %s (TOML format)\n", m.configFile)
	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.setExtractionDefaults(defaults)
	m.setFetchDefaults(defaults)
	m.setWorkspaceDefaults(defaults)
	m.setLoggingDefaults(defaults)
	m.viper.SetDefault("database.path", defaults.Database.Path)
}

func (m *Manager) setExtractionDefaults(defaults *Config) {
	m.viper.SetDefault("extraction.max_hard_link_size", defaults.Extraction.MaxHardLinkSize)
	m.viper.SetDefault("extraction.confirm_file_threshold", defaults.Extraction.ConfirmFileThreshold)
}

func (m *Manager) setFetchDefaults(defaults *Config) {
	m.viper.SetDefault("fetch.user_agent", defaults.Fetch.UserAgent)
	m.viper.SetDefault("fetch.timeout_seconds", defaults.Fetch.TimeoutSeconds)
}

func (m *Manager) setWorkspaceDefaults(defaults *Config) {
	m.viper.SetDefault("workspace.base_dir", defaults.Workspace.BaseDir)
	m.viper.SetDefault("workspace.open_on_create", defaults.Workspace.OpenOnCreate)
	m.viper.SetDefault("workspace.open_on_restore", defaults.Workspace.OpenOnRestore)
}

func (m *Manager) setLoggingDefaults(defaults *Config) {
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.enable_file_log", defaults.Logging.EnableFileLog)
	m.viper.SetDefault("logging.log_dir", defaults.Logging.LogDir)
	m.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	m.viper.SetDefault("logging.max_age_days", defaults.Logging.MaxAgeDays)
}
