package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bnema/slickdir/internal/application/usecase"
	"github.com/bnema/slickdir/internal/cli/styles"
	"github.com/bnema/slickdir/internal/infrastructure/config"
)

var (
	schemaKeys    bool
	schemaJSON    bool
	schemaSection string
	schemaWrite   bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
	Long:  `Show where the configuration lives and describe the available settings.`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the config file",
	Long: `Print the JSON Schema describing config.toml.

With --keys, print a readable reference of every key instead, grouped by
section. --json turns that reference into JSON.`,
	Args: cobra.NoArgs,
	RunE: runConfigSchema,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd, configSchemaCmd)
	configSchemaCmd.Flags().BoolVar(&schemaKeys, "keys", false, "list keys with type, default and description")
	configSchemaCmd.Flags().BoolVar(&schemaJSON, "json", false, "with --keys, output JSON")
	configSchemaCmd.Flags().StringVar(&schemaSection, "section", "", "with --keys, only show this section")
	configSchemaCmd.Flags().BoolVar(&schemaWrite, "write", false, "write the schema next to the config file")
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewConfigRenderer(app.Theme)

	path := app.ConfigFile
	if path == "" {
		if path, err = config.GetConfigFile(); err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), renderer.RenderError(err))
			return nil
		}
	}
	_, statErr := os.Stat(path)
	fmt.Fprintln(cmd.OutOrStdout(), renderer.RenderConfigInfo(path, statErr == nil))
	return nil
}

func runConfigSchema(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if schemaWrite {
		renderer := styles.NewConfigRenderer(app.Theme)
		dir := filepath.Dir(app.ConfigFile)
		if app.ConfigFile == "" {
			if dir, err = config.GetConfigDir(); err != nil {
				return fmt.Errorf("resolve config directory: %w", err)
			}
		}
		path := filepath.Join(dir, "config.schema.json")
		if err := config.WriteSchemaFile(path); err != nil {
			fmt.Fprintln(out, renderer.RenderError(err))
			return nil
		}
		fmt.Fprintln(out, renderer.RenderSchemaWritten(path))
		return nil
	}

	if !schemaKeys {
		data, err := config.JSONSchema()
		if err != nil {
			return fmt.Errorf("generate schema: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	result, err := app.SchemaUC.Execute(app.Ctx(), usecase.GetConfigSchemaInput{Section: schemaSection})
	if err != nil {
		return fmt.Errorf("get schema: %w", err)
	}
	renderer := styles.NewConfigSchemaRenderer(app.Theme)
	if schemaJSON {
		data, err := renderer.RenderJSON(result.Keys)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, data)
		return nil
	}
	fmt.Fprintln(out, renderer.Render(result.Keys))
	return nil
}
