package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/slickdir/internal/cli/styles"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"about"},
	Short:   "Show version and build information",
	Long:    `Display version, build info, repository URL, and contributors.`,
	Args:    cobra.NoArgs,
	RunE:    runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVarP(&versionShort, "short", "s", false, "print only the version")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	if versionShort {
		fmt.Fprintln(cmd.OutOrStdout(), app.BuildInfo.Version)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), styles.NewAboutRenderer(app.Theme).Render(app.BuildInfo))
	return nil
}
