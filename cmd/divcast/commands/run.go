package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dividendlab/divcast/internal/analyze"
	"github.com/dividendlab/divcast/internal/dividend"
	"github.com/dividendlab/divcast/internal/export"
	"github.com/dividendlab/divcast/internal/forecast"
	"github.com/dividendlab/divcast/internal/normalize"
	"github.com/dividendlab/divcast/internal/scrape"
	"github.com/dividendlab/divcast/pkg/httputil"
)

var (
	runMax       int
	runYears     int
	runWindow    int
	runExcelPath string
	runJSONPath  string
	runSkipExcel bool
	runSkipJSON  bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: scrape, forecast, export",
	Long: `Scrapes the dividend listing and every security's payment history,
normalizes and deduplicates the records, generates forward forecasts,
and exports the combined dataset.

Example:
  divcast run
  divcast run --max 10 --years 5 --window 3 --skip-excel`,
	RunE: runPipeline,
}

func init() {
	runCmd.Flags().IntVar(&runMax, "max", 0, "cap on securities to process (0 = all)")
	runCmd.Flags().IntVar(&runYears, "years", 0, "forecast horizon in years (default from config)")
	runCmd.Flags().IntVar(&runWindow, "window", 0, "recent-activity window in years (default from config)")
	runCmd.Flags().StringVar(&runExcelPath, "excel", "", "Excel output path (default from config)")
	runCmd.Flags().StringVar(&runJSONPath, "json", "", "JSON output path (default from config)")
	runCmd.Flags().BoolVar(&runSkipExcel, "skip-excel", false, "do not write the Excel workbook")
	runCmd.Flags().BoolVar(&runSkipJSON, "skip-json", false, "do not write the JSON file")

	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, log, err := initDeps()
	if err != nil {
		return err
	}

	// Flag overrides
	if runMax > 0 {
		cfg.Scrape.MaxSecurities = runMax
	}
	if runYears > 0 {
		cfg.Forecast.HorizonYears = runYears
	}
	if runWindow > 0 {
		cfg.Forecast.WindowYears = runWindow
	}
	excelPath := cfg.Output.ExcelPath()
	if runExcelPath != "" {
		excelPath = runExcelPath
	}
	jsonPath := cfg.Output.JSONPath()
	if runJSONPath != "" {
		jsonPath = runJSONPath
	}

	ctx := cmd.Context()

	httpClient := httputil.New(cfg, log).
		WithPacing(cfg.Scrape.RequestDelay).
		WithUserAgent(cfg.Scrape.UserAgent)
	scraper := scrape.NewClient(httpClient, cfg.Scrape, log)

	securities, err := scraper.FetchSecurities(ctx)
	if err != nil {
		return fmt.Errorf("fetch securities: %w", err)
	}
	if len(securities) == 0 {
		return fmt.Errorf("no securities found on the listing page")
	}

	var observations []dividend.Observation
	for i, sec := range securities {
		log.WithFields(map[string]interface{}{
			"ticker":   sec.Ticker,
			"progress": fmt.Sprintf("%d/%d", i+1, len(securities)),
		}).Info("Fetching payment history")

		obs, err := scraper.FetchPayments(ctx, sec)
		if err != nil {
			// one broken page must not kill the batch
			log.WithError(err).WithField("ticker", sec.Ticker).Error("Skipping security")
			continue
		}
		observations = append(observations, obs...)
	}

	normalizer := normalize.New(log)
	records := normalizer.Clean(normalizer.Normalize(observations))

	engine := forecast.NewEngine(log)
	merged := engine.Run(records, forecast.Params{
		HorizonYears: cfg.Forecast.HorizonYears,
		WindowYears:  cfg.Forecast.WindowYears,
	})

	rows := export.BuildRows(merged)
	writer := export.NewWriter(log)
	if !runSkipExcel {
		if err := writer.WriteExcel(excelPath, rows); err != nil {
			return fmt.Errorf("export Excel: %w", err)
		}
	}
	if !runSkipJSON {
		if err := writer.WriteJSON(jsonPath, rows); err != nil {
			return fmt.Errorf("export JSON: %w", err)
		}
	}

	analyze.Render(os.Stdout, analyze.Summarize(rows))
	return nil
}
