package config

import (
	"os"
	"path/filepath"
)

const (
	appName        = "slickdir"
	databaseName   = "slickdir.db"
	configFileName = "config.toml"
	schemaFileName = "config.schema.json"

	dirPerm  = 0o755
	filePerm = 0o644
)

// XDGDirs holds the XDG Base Directory paths for the application.
type XDGDirs struct {
	ConfigHome string
	DataHome   string
	StateHome  string
}

// GetXDGDirs returns the XDG Base Directory paths for slickdir:
// - $XDG_CONFIG_HOME/slickdir (default: ~/.config/slickdir)
// - $XDG_DATA_HOME/slickdir (default: ~/.local/share/slickdir)
// - $XDG_STATE_HOME/slickdir (default: ~/.local/state/slickdir)
func GetXDGDirs() (*XDGDirs, error) {
	// Development mode: keep everything under ./.dev
	if os.Getenv("ENV") == "dev" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		devDir := filepath.Join(cwd, ".dev", appName)
		return &XDGDirs{
			ConfigHome: devDir,
			DataHome:   devDir,
			StateHome:  devDir,
		}, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	return &XDGDirs{
		ConfigHome: xdgDir("XDG_CONFIG_HOME", homeDir, ".config"),
		DataHome:   xdgDir("XDG_DATA_HOME", homeDir, ".local", "share"),
		StateHome:  xdgDir("XDG_STATE_HOME", homeDir, ".local", "state"),
	}, nil
}

func xdgDir(env, home string, fallback ...string) string {
	base := os.Getenv(env)
	if base == "" {
		base = filepath.Join(append([]string{home}, fallback...)...)
	}
	return filepath.Join(base, appName)
}

// GetConfigDir returns the XDG config directory for slickdir.
func GetConfigDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return dirs.ConfigHome, nil
}

// GetDataDir returns the XDG data directory for slickdir.
func GetDataDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return dirs.DataHome, nil
}

// GetStateDir returns the XDG state directory for slickdir.
func GetStateDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return dirs.StateHome, nil
}

// GetLogDir returns the log directory. Logs live in XDG_STATE_HOME.
func GetLogDir() (string, error) {
	stateDir, err := GetStateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(stateDir, "logs"), nil
}

// GetConfigFile returns the path to the main configuration file.
func GetConfigFile() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFileName), nil
}

// GetDatabaseFile returns the path to the workspace tracking database.
func GetDatabaseFile() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, databaseName), nil
}

// EnsureDirectories creates the XDG directories if they don't exist.
func EnsureDirectories() error {
	dirs, err := GetXDGDirs()
	if err != nil {
		return err
	}

	for _, dir := range []string{dirs.ConfigHome, dirs.DataHome, dirs.StateHome} {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return err
		}
	}
	return nil
}

// GetManDir returns the user man page directory ($XDG_DATA_HOME/man/man1).
func GetManDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(dirs.DataHome), "man", "man1"), nil
}
