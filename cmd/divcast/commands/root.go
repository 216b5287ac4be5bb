package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dividendlab/divcast/pkg/config"
	"github.com/dividendlab/divcast/pkg/logger"
)

var (
	// Global flags
	envFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "divcast",
	Short: "Dividend history scraper and forecaster",
	Long: `divcast scrapes historical dividend payments from dohod.ru,
forecasts future payments per security from the historical payment
shape, and exports the combined dataset to Excel and JSON.

Examples:
  divcast run
  divcast run --max 20 --years 5
  divcast analyze dividends.json
  divcast tables https://www.dohod.ru/ik/analytics/dividend/sber`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "path to .env file (default: auto-discovered)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// initDeps loads configuration and builds the root logger shared by all
// commands.
func initDeps() (*config.Config, *logger.Logger, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	return cfg, logger.New(cfg), nil
}
