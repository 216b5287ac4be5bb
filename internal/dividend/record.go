// Package dividend defines the payment records shared by every pipeline
// stage, from scraping through forecasting to export.
package dividend

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Source identifies the provenance of a payment record. The numeric codes
// are stable and appear verbatim in exports.
type Source int

const (
	// SourceActual marks a payment observed in the historical tables.
	SourceActual Source = 0
	// SourceSiteForecast marks a forecast published by the site itself.
	SourceSiteForecast Source = 1
	// SourceOurForecast marks a record generated by the forecast engine.
	SourceOurForecast Source = 2
)

// Label returns the human-readable provenance label.
func (s Source) Label() string {
	switch s {
	case SourceActual:
		return "actual"
	case SourceSiteForecast:
		return "site forecast"
	case SourceOurForecast:
		return "our forecast"
	default:
		return "unknown"
	}
}

// Strategy labels stamped on engine-generated records.
const (
	StrategyQuarterly    = "quarterly-data"
	StrategyAnniversary  = "payment-dates"
	StrategyAnnual       = "annual-data"
	StrategySingleAnnual = "single-annual"
	StrategyEmergency    = "emergency"
	StrategyInactive     = "inactive-company"
)

// Sentinels used in export projections.
const (
	NoData   = "no data"
	PeriodNA = "n/a"
)

// DateLayout is the day.month.year format used across exports.
const DateLayout = "02.01.2006"

// Record is a single dividend payment event, observed on the site or
// generated by the forecast engine.
type Record struct {
	Ticker     string
	Name       string
	RecordDate time.Time // register-close date; zero when only the year is known
	Announced  time.Time // announcement date; zero when unknown
	Amount     decimal.Decimal
	Year       int // fiscal year of the payment; 0 when unknown
	Quarter    int // 1..4, 0 for annual-only records
	Source     Source
	Strategy   string // fallback strategy for generated records, empty otherwise
}

// HasDate reports whether the record carries a register-close date.
func (r Record) HasDate() bool { return !r.RecordDate.IsZero() }

// DateLabel formats the register-close date as day.month.year, or the
// "no data" sentinel when the date is unknown.
func (r Record) DateLabel() string {
	if !r.HasDate() {
		return NoData
	}
	return r.RecordDate.Format(DateLayout)
}

// AnnouncedLabel formats the announcement date the same way as DateLabel.
func (r Record) AnnouncedLabel() string {
	if r.Announced.IsZero() {
		return NoData
	}
	return r.Announced.Format(DateLayout)
}

// PeriodLabel describes the payment period: "Q3 2024" for quarterly
// records, "Year 2024" for annual ones, "n/a" when nothing is known.
func (r Record) PeriodLabel() string {
	switch {
	case r.Quarter >= 1 && r.Quarter <= 4 && r.Year > 0:
		return fmt.Sprintf("Q%d %d", r.Quarter, r.Year)
	case r.Year > 0:
		return fmt.Sprintf("Year %d", r.Year)
	default:
		return PeriodNA
	}
}

// QuarterOfMonth maps a calendar month to its quarter.
func QuarterOfMonth(m time.Month) int {
	return (int(m)-1)/3 + 1
}
