package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/slickdir/internal/application/usecase"
	"github.com/bnema/slickdir/internal/cli/styles"
)

var (
	flushAll    bool
	restoreOpen bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tracked workspaces",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

var flushCmd = &cobra.Command{
	Use:   "flush [path...]",
	Short: "Delete workspaces and stop tracking them",
	Long: `Recursively delete the given workspaces, or all of them with --all.

Only tracked workspaces can be flushed. A workspace whose directory is
already gone is simply forgotten.`,
	RunE: runFlush,
}

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Forget vanished workspaces and reopen the rest",
	Long: `Check every tracked workspace, drop the ones whose directory no longer
exists, and optionally open the survivors in the file manager
(workspace.open_on_restore, overridden by --open).`,
	Args: cobra.NoArgs,
	RunE: runRestore,
}

func init() {
	rootCmd.AddCommand(listCmd, flushCmd, restoreCmd)
	flushCmd.Flags().BoolVarP(&flushAll, "all", "a", false, "flush every tracked workspace")
	restoreCmd.Flags().BoolVar(&restoreOpen, "open", false, "open surviving workspaces (defaults to workspace.open_on_restore)")
}

func runList(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewWorkspacesCLIRenderer(app.Theme)

	items, err := app.WorkspacesUC.List(app.Ctx())
	if err != nil {
		return fmt.Errorf("list workspaces: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderer.RenderList(items))
	return nil
}

func runFlush(cmd *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewWorkspacesCLIRenderer(app.Theme)
	out := cmd.OutOrStdout()

	switch {
	case flushAll && len(args) > 0:
		return fmt.Errorf("--all cannot be combined with paths")
	case flushAll:
		result, err := app.WorkspacesUC.FlushAll(app.Ctx())
		if err != nil {
			return fmt.Errorf("flush workspaces: %w", err)
		}
		fmt.Fprintln(out, renderer.RenderFlushAll(result))
		if len(result.Failed) > 0 {
			return fmt.Errorf("%d workspace(s) could not be flushed", len(result.Failed))
		}
		return nil
	case len(args) == 0:
		return fmt.Errorf("give at least one workspace path, or --all")
	}

	var errs []error
	for _, path := range args {
		if err := app.WorkspacesUC.Flush(app.Ctx(), path); err != nil {
			fmt.Fprintln(out, renderer.RenderError(fmt.Errorf("%s: %w", path, err)))
			errs = append(errs, err)
			continue
		}
		fmt.Fprintln(out, renderer.RenderFlushed(path))
	}
	if len(errs) > 0 {
		return fmt.Errorf("flush: %w", errors.Join(errs...))
	}
	return nil
}

func runRestore(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewWorkspacesCLIRenderer(app.Theme)

	open := app.Config.Workspace.OpenOnRestore
	if cmd.Flags().Changed("open") {
		open = restoreOpen
	}

	result, err := app.WorkspacesUC.Restore(app.Ctx(), usecase.RestoreWorkspacesInput{Open: open})
	if err != nil {
		return fmt.Errorf("restore workspaces: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderer.RenderRestore(result))
	return nil
}
