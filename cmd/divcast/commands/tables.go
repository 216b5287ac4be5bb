package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dividendlab/divcast/internal/scrape"
	"github.com/dividendlab/divcast/pkg/httputil"
)

var tablesCmd = &cobra.Command{
	Use:   "tables <url>",
	Short: "Dump the table shapes of a page",
	Long: `Debug helper: fetches a page and prints headings, row counts and the
first link of every table on it. Useful when a page layout changes and
the scraper stops finding its tables.

Example:
  divcast tables https://www.dohod.ru/ik/analytics/dividend/sber`,
	Args: cobra.ExactArgs(1),
	RunE: runTables,
}

func init() {
	rootCmd.AddCommand(tablesCmd)
}

func runTables(cmd *cobra.Command, args []string) error {
	cfg, log, err := initDeps()
	if err != nil {
		return err
	}

	httpClient := httputil.New(cfg, log).
		WithPacing(cfg.Scrape.RequestDelay).
		WithUserAgent(cfg.Scrape.UserAgent)
	scraper := scrape.NewClient(httpClient, cfg.Scrape, log)

	infos, err := scraper.Inspect(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if len(infos) == 0 {
		fmt.Println("no tables on the page")
		return nil
	}

	for _, info := range infos {
		fmt.Printf("table %d: %d rows, %d cells in first data row\n", info.Index, info.Rows, info.Cells)
		if len(info.Headings) > 0 {
			fmt.Printf("  headings: %s\n", strings.Join(info.Headings, " | "))
		}
		if info.FirstLink != "" {
			fmt.Printf("  first link: %s\n", info.FirstLink)
		}
	}
	return nil
}
