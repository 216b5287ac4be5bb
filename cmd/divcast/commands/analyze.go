package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dividendlab/divcast/internal/analyze"
	"github.com/dividendlab/divcast/internal/export"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Summary statistics over an exported JSON file",
	Long: `Reads a previously exported JSON dataset and prints record counts per
ticker, provenance and strategy, the year range and the dividend spread.

Example:
  divcast analyze
  divcast analyze out/dividends.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, _, err := initDeps()
	if err != nil {
		return err
	}

	path := cfg.Output.JSONPath()
	if len(args) > 0 {
		path = args[0]
	}

	rows, err := export.ReadJSON(path)
	if err != nil {
		return err
	}

	analyze.Render(os.Stdout, analyze.Summarize(rows))
	return nil
}
