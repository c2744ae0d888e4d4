package config

// Default configuration constants
const (
	// Extraction defaults
	defaultMaxHardLinkSize      = 100 * 1024 * 1024 // bytes
	defaultConfirmFileThreshold = 1000              // files

	// Fetch defaults
	defaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.3"
	defaultTimeoutSeconds = 30

	// Logging defaults
	defaultLogLevel      = "info"
	defaultLogFormat     = "console"
	defaultMaxLogSizeMB  = 10
	defaultMaxLogBackups = 3
	defaultMaxLogAgeDays = 7
)

// DefaultConfig returns the default configuration. Paths that depend on
// the environment (database, log dir) are resolved at load time.
func DefaultConfig() *Config {
	return &Config{
		Extraction: ExtractionConfig{
			MaxHardLinkSize:      defaultMaxHardLinkSize,
			ConfirmFileThreshold: defaultConfirmFileThreshold,
		},
		Fetch: FetchConfig{
			UserAgent:      defaultUserAgent,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Workspace: WorkspaceConfig{
			BaseDir:       "",
			OpenOnCreate:  true,
			OpenOnRestore: false,
		},
		Logging: LoggingConfig{
			Level:         defaultLogLevel,
			Format:        defaultLogFormat,
			EnableFileLog: true,
			LogDir:        "",
			MaxSizeMB:     defaultMaxLogSizeMB,
			MaxBackups:    defaultMaxLogBackups,
			MaxAgeDays:    defaultMaxLogAgeDays,
		},
	}
}
