package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/slickdir/internal/domain/artifact"
	"github.com/bnema/slickdir/internal/domain/classify"
)

var classifyFilename bool

var classifyCmd = &cobra.Command{
	Use:   "classify [file]",
	Short: "Print the content label of a file or stdin",
	Long: `Run the text classifier used by grab and print the resulting label.

Examples:
  slickdir classify query.txt
  echo '{"a":1}' | slickdir classify
  pbpaste | slickdir classify --filename   # prints clipboard.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
	classifyCmd.Flags().BoolVar(&classifyFilename, "filename", false, "print the artifact file name instead of the label")
}

func runClassify(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	if len(args) == 1 && args[0] != "-" {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	label := classify.Classify(string(data))
	if classifyFilename {
		fmt.Fprintln(cmd.OutOrStdout(), artifact.TextFile(label))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), label)
	return nil
}
