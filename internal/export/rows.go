// Package export serializes the merged historical+forecast dataset into
// the Excel workbook and JSON record file the pipeline produces.
package export

import (
	"github.com/dividendlab/divcast/internal/dividend"
)

// Row is the shared flat projection of one record, as written to both
// output formats. Dates are preformatted strings with the "no data"
// sentinel; Quarter is nil for annual-only records.
type Row struct {
	Ticker      string  `json:"ticker"`
	Name        string  `json:"name"`
	Announced   string  `json:"announcement_date"`
	RecordDate  string  `json:"record_date"`
	Year        int     `json:"year"`
	Quarter     *int    `json:"quarter"`
	Amount      float64 `json:"dividend_value"`
	SourceCode  int     `json:"forecast_type"`
	SourceLabel string  `json:"forecast_type_str"`
	Period      string  `json:"period"`
	Strategy    string  `json:"forecast_strategy,omitempty"`
}

// BuildRows projects records into export rows, preserving order.
func BuildRows(records []dividend.Record) []Row {
	rows := make([]Row, 0, len(records))
	for _, r := range records {
		row := Row{
			Ticker:      r.Ticker,
			Name:        r.Name,
			Announced:   r.AnnouncedLabel(),
			RecordDate:  r.DateLabel(),
			Year:        r.Year,
			Amount:      r.Amount.InexactFloat64(),
			SourceCode:  int(r.Source),
			SourceLabel: r.Source.Label(),
			Period:      r.PeriodLabel(),
			Strategy:    r.Strategy,
		}
		if r.Quarter >= 1 && r.Quarter <= 4 {
			q := r.Quarter
			row.Quarter = &q
		}
		rows = append(rows, row)
	}
	return rows
}
