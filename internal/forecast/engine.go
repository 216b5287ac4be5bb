// Package forecast generates forward dividend payment records from a
// security's historical payment shape. Strategies form an ordered fallback
// chain; the first one able to derive anything for a ticker wins.
package forecast

import (
	"sort"
	"time"

	"github.com/dividendlab/divcast/internal/dividend"
	"github.com/dividendlab/divcast/pkg/logger"
)

// Params are the caller-supplied projection knobs.
type Params struct {
	HorizonYears int // future years to generate, counted from the year after the current one
	WindowYears  int // lookback for the inactive-security gate
}

// Span fixes the projection window for one run. Deriving everything from a
// single Now keeps repeated runs over the same input bit-identical.
type Span struct {
	Now         time.Time
	FromYear    int
	ToYear      int
	WindowYears int
}

// Engine runs the strategy fallback chain over per-ticker histories.
type Engine struct {
	log        *logger.Logger
	now        func() time.Time
	strategies []Strategy
}

// NewEngine builds the engine with the standard strategy order:
// inactive, quarterly, anniversary, annual average, single annual,
// emergency.
func NewEngine(log *logger.Logger) *Engine {
	componentLog := log.WithField("component", "forecast")
	return &Engine{
		log: componentLog,
		now: time.Now,
		strategies: []Strategy{
			inactive{log: componentLog},
			quarterly{log: componentLog},
			anniversary{log: componentLog},
			annualAverage{log: componentLog},
			singleAnnual{log: componentLog},
			emergency{log: componentLog},
		},
	}
}

// WithClock replaces the engine's time source. Tests pin it to a fixed
// instant.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// span derives the projection window from the engine clock.
func (e *Engine) span(p Params) Span {
	now := e.now()
	return Span{
		Now:         now,
		FromYear:    now.Year() + 1,
		ToYear:      now.Year() + p.HorizonYears,
		WindowYears: p.WindowYears,
	}
}

// Forecast runs the fallback chain for one security and returns the
// generated records. An empty result means no strategy applied, which is
// tolerated; the emergency strategy makes that effectively unreachable.
func (e *Engine) Forecast(h *History, span Span) []dividend.Record {
	for _, s := range e.strategies {
		records := s.Attempt(h, span)
		if len(records) > 0 {
			e.log.WithFields(map[string]interface{}{
				"ticker":   h.Ticker(),
				"strategy": s.Name(),
				"count":    len(records),
			}).Debug("Strategy produced forecasts")
			return records
		}
	}

	e.log.WithField("ticker", h.Ticker()).Warn("No strategy produced forecasts")
	return nil
}

// Run groups the cleaned dataset by ticker, forecasts every security, and
// returns the merged historical+forecast dataset sorted by ticker and
// record date. The input is never mutated.
func (e *Engine) Run(records []dividend.Record, p Params) []dividend.Record {
	span := e.span(p)

	byTicker := make(map[string][]dividend.Record)
	var tickers []string
	for _, r := range records {
		if _, seen := byTicker[r.Ticker]; !seen {
			tickers = append(tickers, r.Ticker)
		}
		byTicker[r.Ticker] = append(byTicker[r.Ticker], r)
	}
	sort.Strings(tickers)

	merged := make([]dividend.Record, 0, len(records))
	merged = append(merged, records...)

	generated := 0
	for _, ticker := range tickers {
		h := NewHistory(ticker, byTicker[ticker])
		forecasts := e.Forecast(h, span)
		generated += len(forecasts)
		merged = append(merged, forecasts...)
	}

	sortRecords(merged)

	e.log.WithFields(map[string]interface{}{
		"tickers":   len(tickers),
		"generated": generated,
		"total":     len(merged),
	}).Info("Forecasting finished")
	return merged
}

// sortRecords orders by ticker ascending, then record date ascending with
// dateless records after all dated records of the same ticker. The sort is
// stable so undated ties keep insertion order.
func sortRecords(records []dividend.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Ticker != b.Ticker {
			return a.Ticker < b.Ticker
		}
		if a.HasDate() != b.HasDate() {
			return a.HasDate()
		}
		if !a.HasDate() {
			return false
		}
		return a.RecordDate.Before(b.RecordDate)
	})
}
