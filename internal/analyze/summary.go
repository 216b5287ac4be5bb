// Package analyze computes summary statistics over an exported dataset.
package analyze

import (
	"fmt"
	"io"
	"sort"

	"github.com/dividendlab/divcast/internal/export"
)

// TickerCount pairs a ticker with its record count.
type TickerCount struct {
	Ticker string
	Count  int
}

// Summary describes an exported dataset: totals, provenance and strategy
// breakdowns, the year range and the dividend amount spread.
type Summary struct {
	Total   int
	Tickers int

	BySource   map[string]int
	ByStrategy map[string]int

	MinYear int
	MaxYear int

	// amount statistics over rows with a positive dividend
	AmountMin  float64
	AmountMean float64
	AmountMax  float64

	// mean dividend per generating strategy
	StrategyMeans map[string]float64

	TopTickers []TickerCount
}

// topTickerCount limits the per-ticker listing in the rendered report.
const topTickerCount = 10

// Summarize walks the rows once and aggregates the dataset statistics.
func Summarize(rows []export.Row) Summary {
	s := Summary{
		BySource:      make(map[string]int),
		ByStrategy:    make(map[string]int),
		StrategyMeans: make(map[string]float64),
	}
	s.Total = len(rows)

	tickerCounts := make(map[string]int)
	strategySums := make(map[string]float64)
	positive := 0
	var amountSum float64

	for _, row := range rows {
		tickerCounts[row.Ticker]++
		s.BySource[row.SourceLabel]++

		if row.Strategy != "" {
			s.ByStrategy[row.Strategy]++
			strategySums[row.Strategy] += row.Amount
		}

		if row.Year != 0 {
			if s.MinYear == 0 || row.Year < s.MinYear {
				s.MinYear = row.Year
			}
			if row.Year > s.MaxYear {
				s.MaxYear = row.Year
			}
		}

		if row.Amount > 0 {
			if positive == 0 || row.Amount < s.AmountMin {
				s.AmountMin = row.Amount
			}
			if row.Amount > s.AmountMax {
				s.AmountMax = row.Amount
			}
			amountSum += row.Amount
			positive++
		}
	}

	s.Tickers = len(tickerCounts)
	if positive > 0 {
		s.AmountMean = amountSum / float64(positive)
	}
	for strategy, count := range s.ByStrategy {
		s.StrategyMeans[strategy] = strategySums[strategy] / float64(count)
	}

	for ticker, count := range tickerCounts {
		s.TopTickers = append(s.TopTickers, TickerCount{Ticker: ticker, Count: count})
	}
	sort.Slice(s.TopTickers, func(i, j int) bool {
		if s.TopTickers[i].Count != s.TopTickers[j].Count {
			return s.TopTickers[i].Count > s.TopTickers[j].Count
		}
		return s.TopTickers[i].Ticker < s.TopTickers[j].Ticker
	})
	if len(s.TopTickers) > topTickerCount {
		s.TopTickers = s.TopTickers[:topTickerCount]
	}

	return s
}

// Render prints the summary as a plain text report.
func Render(w io.Writer, s Summary) {
	fmt.Fprintf(w, "Records: %d\n", s.Total)
	fmt.Fprintf(w, "Tickers: %d\n", s.Tickers)

	fmt.Fprintln(w, "\nRecords per type:")
	for _, label := range sortedKeys(s.BySource) {
		fmt.Fprintf(w, "  %s: %d\n", label, s.BySource[label])
	}

	if len(s.ByStrategy) > 0 {
		fmt.Fprintln(w, "\nRecords per strategy:")
		for _, label := range sortedKeys(s.ByStrategy) {
			fmt.Fprintf(w, "  %s: %d (mean %.2f)\n", label, s.ByStrategy[label], s.StrategyMeans[label])
		}
	}

	if s.MinYear != 0 {
		fmt.Fprintf(w, "\nYears: %d-%d\n", s.MinYear, s.MaxYear)
	}
	if s.AmountMax > 0 {
		fmt.Fprintf(w, "Dividend min/mean/max: %.2f / %.2f / %.2f\n", s.AmountMin, s.AmountMean, s.AmountMax)
	}

	if len(s.TopTickers) > 0 {
		fmt.Fprintln(w, "\nTop tickers:")
		for _, tc := range s.TopTickers {
			fmt.Fprintf(w, "  %s: %d\n", tc.Ticker, tc.Count)
		}
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
