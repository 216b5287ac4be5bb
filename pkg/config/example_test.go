package config_test

import (
	"fmt"

	"github.com/dividendlab/divcast/pkg/config"
)

// Example demonstrates how to use the config package
func Example() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		return
	}

	// Access configuration values
	_ = cfg.Scrape.ListingURL()
	_ = cfg.Output.ExcelPath()
	_ = cfg.Forecast.HorizonYears
}
