// Package cli provides CLI commands using Bubble Tea TUI.
package cli

import (
	"context"
	"os"
	"time"

	"github.com/bnema/slickdir/internal/application/port"
	"github.com/bnema/slickdir/internal/application/usecase"
	"github.com/bnema/slickdir/internal/cli/styles"
	"github.com/bnema/slickdir/internal/domain/build"
	"github.com/bnema/slickdir/internal/domain/classify"
	"github.com/bnema/slickdir/internal/domain/entity"
	"github.com/bnema/slickdir/internal/infrastructure/clipboard"
	"github.com/bnema/slickdir/internal/infrastructure/config"
	"github.com/bnema/slickdir/internal/infrastructure/desktop"
	"github.com/bnema/slickdir/internal/infrastructure/filesystem"
	"github.com/bnema/slickdir/internal/infrastructure/imaging"
	"github.com/bnema/slickdir/internal/infrastructure/notification"
	"github.com/bnema/slickdir/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/slickdir/internal/infrastructure/web"
	"github.com/bnema/slickdir/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config     *config.Config
	ConfigFile string
	Theme      *styles.Theme
	BuildInfo  build.Info

	Clipboard *clipboard.Adapter
	Opener    port.DirectoryOpener

	// Use cases
	WorkspacesUC *usecase.ManageWorkspacesUseCase
	SchemaUC     *usecase.GetConfigSchemaUseCase

	fs         *filesystem.Adapter
	codec      *imaging.Codec
	httpClient port.HTTPClient
	signal     port.FailureSignal
	db         *sqlite.LazyDB

	// Context with logger
	ctx        context.Context
	logCleanup func()
}

// NewApp creates a new CLI application with all dependencies.
// The database is opened lazily by the first command that needs it.
func NewApp() (*App, error) {
	cfg, configFile := loadConfig()

	logger, logCleanup, logErr := logging.NewWithFile(
		logging.Config{Level: logging.ParseLevel(cfg.Logging.Level), Format: cfg.Logging.Format, TimeFormat: time.TimeOnly},
		logging.FileConfig{
			Enabled:    cfg.Logging.EnableFileLog,
			LogDir:     cfg.Logging.LogDir,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
			Compress:   true,
		},
	)
	if logErr != nil {
		logger.Warn().Err(logErr).Str("log_dir", cfg.Logging.LogDir).Msg("file logging unavailable, using stderr")
	}
	ctx := logging.WithContext(context.Background(), logger)

	for _, m := range classify.SelfTest() {
		logger.Warn().
			Str("expected", string(m.Expected)).
			Str("got", string(m.Got)).
			Msg("classifier self-test mismatch")
	}

	db := sqlite.NewLazyDB(cfg.Database.Path)
	fs := filesystem.New()
	codec := imaging.NewCodec()
	opener := desktop.NewOpener()

	logger.Debug().
		Str("config", configFile).
		Str("db_path", cfg.Database.Path).
		Str("base_dir", cfg.Workspace.BaseDir).
		Msg("cli initialized")

	return &App{
		Config:       cfg,
		ConfigFile:   configFile,
		Theme:        styles.NewTheme(),
		Clipboard:    clipboard.New(codec),
		Opener:       opener,
		WorkspacesUC: usecase.NewManageWorkspacesUseCase(sqlite.NewLazyWorkspaceRepository(db), fs, opener, cfg.Workspace.BaseDir),
		SchemaUC:     usecase.NewGetConfigSchemaUseCase(config.NewSchemaProvider()),
		fs:           fs,
		codec:        codec,
		httpClient:   web.NewClient(cfg.Fetch.UserAgent, cfg.Fetch.Timeout()),
		signal:       notification.NewSignal(),
		db:           db,
		ctx:          ctx,
		logCleanup:   logCleanup,
	}, nil
}

// NewExtractor builds an extraction use case that gates large file drops
// through confirmer.
func (a *App) NewExtractor(confirmer port.Confirmer) *usecase.ExtractClipboardUseCase {
	return usecase.NewExtractClipboardUseCase(a.fs, a.httpClient, a.codec, confirmer, a.signal, usecase.ExtractClipboardConfig{
		Policy:               entity.CopyPolicy{MaxHardLinkSize: a.Config.Extraction.MaxHardLinkSize},
		ConfirmFileThreshold: a.Config.Extraction.ConfirmFileThreshold,
	})
}

// Close releases all resources.
func (a *App) Close() error {
	err := a.db.Close()
	if a.logCleanup != nil {
		a.logCleanup()
	}
	return err
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// loadConfig loads configuration from standard locations and returns it
// together with the file it came from.
func loadConfig() (*config.Config, string) {
	mgr, err := config.NewManager()
	if err != nil {
		// Return default config if manager fails
		return withResolvedDefaults(config.DefaultConfig()), ""
	}

	if err := mgr.Load(); err != nil {
		logging.NewFromEnv().Warn().Err(err).Str("path", mgr.GetConfigFile()).Msg("config load failed, using defaults")
		return withResolvedDefaults(config.DefaultConfig()), mgr.GetConfigFile()
	}

	return mgr.Get(), mgr.GetConfigFile()
}

// withResolvedDefaults fills the paths Load would normally resolve.
func withResolvedDefaults(cfg *config.Config) *config.Config {
	if cfg.Database.Path == "" {
		if p, err := config.GetDatabaseFile(); err == nil {
			cfg.Database.Path = p
		}
	}
	if cfg.Logging.LogDir == "" {
		if p, err := config.GetLogDir(); err == nil {
			cfg.Logging.LogDir = p
		}
	}
	if cfg.Workspace.BaseDir == "" {
		cfg.Workspace.BaseDir = os.TempDir()
	}
	return cfg
}
