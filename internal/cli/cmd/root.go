// Package cmd provides Cobra CLI commands for slickdir.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/slickdir/internal/cli"
	"github.com/bnema/slickdir/internal/domain/build"
)

var (
	app       *cli.App
	buildInfo build.Info
	rootCmd   = &cobra.Command{
		Use:   "slickdir",
		Short: "Turn the clipboard into a folder of files",
		Long: `Slickdir - drop whatever is on the clipboard into a fresh directory.

Each grab creates a throwaway workspace and writes every clipboard
representation into it as plain files:
  - Text, classified (JSON, SQL, Python, HTML, ...) and saved with a fitting extension
  - URLs, saved as a shortcut and downloaded
  - Copied files and folders, copied or hard linked when large
  - HTML with its embedded images downloaded
  - Images, saved natively and as PNG
  - CSV and WAV audio

Workspaces are tracked so they can be listed, reopened or flushed later.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "gen-docs":
				return nil
			}

			var err error
			app, err = cli.NewApp()
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

func requireApp() (*cli.App, error) {
	a := GetApp()
	if a == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return a, nil
}
