package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/slickdir/internal/application/port"
	"github.com/bnema/slickdir/internal/application/usecase"
	"github.com/bnema/slickdir/internal/cli"
	"github.com/bnema/slickdir/internal/cli/styles"
	"github.com/bnema/slickdir/internal/logging"
)

var (
	grabYes      bool
	grabNoOpen   bool
	grabCopyPath bool
)

var grabCmd = &cobra.Command{
	Use:   "grab",
	Short: "Extract the clipboard into a new workspace",
	Long: `Create a new workspace directory and write every supported clipboard
representation into it.

Copying more files than extraction.confirm_file_threshold asks first,
unless --yes is given.

Examples:
  slickdir grab                  # Extract and open the workspace
  slickdir grab --no-open        # Extract only
  slickdir grab --copy-path -y   # Extract, skip prompts, put the path on the clipboard`,
	RunE: runGrab,
}

func init() {
	rootCmd.AddCommand(grabCmd)
	grabCmd.Flags().BoolVarP(&grabYes, "yes", "y", false, "copy large file drops without asking")
	grabCmd.Flags().BoolVar(&grabNoOpen, "no-open", false, "do not open the workspace in the file manager")
	grabCmd.Flags().BoolVar(&grabCopyPath, "copy-path", false, "write the workspace path to the clipboard afterwards")
}

func runGrab(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	ctx := logging.WithComponent(app.Ctx(), "grab")
	log := logging.FromContext(ctx)
	renderer := styles.NewExtractCLIRenderer(app.Theme)

	// Read the clipboard before anything else touches it.
	snap, err := app.Clipboard.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("read clipboard: %w", err)
	}

	ws, err := app.WorkspacesUC.Create(ctx)
	if err != nil {
		return fmt.Errorf("create workspace: %w", err)
	}

	if app.Config.Workspace.OpenOnCreate && !grabNoOpen {
		if openErr := app.WorkspacesUC.Open(ctx, ws.Path); openErr != nil {
			log.Warn().Err(openErr).Str("path", ws.Path).Msg("could not open workspace")
		}
	}

	var confirmer port.Confirmer = cli.NewPromptConfirmer(app.Theme)
	if grabYes {
		confirmer = cli.AutoConfirmer{}
	}

	out := app.NewExtractor(confirmer).Execute(ctx, usecase.ExtractClipboardInput{
		Snapshot:  snap,
		TargetDir: ws.Path,
	})
	fmt.Fprintln(cmd.OutOrStdout(), renderer.RenderResult(ws.Path, out))

	if grabCopyPath {
		if err := app.Clipboard.WriteText(ctx, ws.Path); err != nil {
			log.Warn().Err(err).Msg("could not copy workspace path to clipboard")
		}
	}
	return nil
}
