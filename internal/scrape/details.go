package scrape

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dividendlab/divcast/internal/dividend"
)

var (
	cellDateRe   = regexp.MustCompile(`\d{2}[./-]\d{2}[./-]\d{4}`)
	cellNumberRe = regexp.MustCompile(`\d+[.,]\d+|\d+`)
)

// FetchPayments downloads a security's detail page and extracts raw
// payment observations from its dividend tables. When the page yields
// nothing, the listing row's summary observation stands in.
func (c *Client) FetchPayments(ctx context.Context, sec Security) ([]dividend.Observation, error) {
	doc, err := c.fetchDocument(ctx, sec.URL)
	if err != nil {
		return nil, err
	}

	observations := c.parsePayments(doc, sec)
	if len(observations) == 0 && sec.Summary != nil {
		c.log.WithField("ticker", sec.Ticker).Debug("Detail page empty, using listing summary row")
		observations = append(observations, *sec.Summary)
	}

	c.log.WithFields(map[string]interface{}{
		"ticker": sec.Ticker,
		"count":  len(observations),
	}).Debug("Extracted observations")
	return observations, nil
}

// parsePayments walks every table on the detail page, classifying each as
// a detailed all-payments table, an annual summary table, or noise.
// Cumulative per-year payout tables are skipped outright.
func (c *Client) parsePayments(doc *goquery.Document, sec Security) []dividend.Observation {
	var observations []dividend.Observation

	doc.Find("table").Each(func(idx int, table *goquery.Selection) {
		headers := headerTexts(table)
		joined := strings.Join(headers, " ")

		switch {
		case strings.Contains(joined, "совокупные выплаты"):
			// cumulative payouts per year, not individual payments
			return
		case isDetailedTable(joined):
			observations = append(observations, parseDetailedTable(table, headers, sec)...)
		case isAnnualTable(headers, joined):
			observations = append(observations, parseAnnualTable(table, headers, sec)...)
		}
	})

	return observations
}

// isDetailedTable recognizes the "all payments" table by its register
// close date column.
func isDetailedTable(joined string) bool {
	if strings.Contains(joined, "все выплаты") || strings.Contains(joined, "дата закрытия реестра") {
		return true
	}
	return strings.Contains(joined, "дата") && strings.Contains(joined, "реестр")
}

// isAnnualTable recognizes the compact year/dividend summary table.
func isAnnualTable(headers []string, joined string) bool {
	return len(headers) <= 3 &&
		strings.Contains(joined, "год") &&
		strings.Contains(joined, "дивиденд")
}

// headerIndex returns the index of the first header containing any of the
// given substrings, or fallback when none matches.
func headerIndex(headers []string, fallback int, keywords ...string) int {
	for i, h := range headers {
		for _, keyword := range keywords {
			if strings.Contains(h, keyword) {
				return i
			}
		}
	}
	return fallback
}

// parseDetailedTable extracts one observation per data row. Column indexes
// come from the headers and are corrected against the first data row when
// the header texts lied about the layout.
func parseDetailedTable(table *goquery.Selection, headers []string, sec Security) []dividend.Observation {
	dateIdx := headerIndex(headers, 1, "реестр", "закрыт")
	amountIdx := headerIndex(headers, 3, "дивиденд")
	announcedIdx := headerIndex(headers, -1, "объявлен")

	rows := table.Find("tr")
	if rows.Length() < 2 {
		return nil
	}

	// Probe the first data row: when the nominated cells do not look like
	// a date and a number, search the row for columns that do.
	sample := rows.Eq(1).Find("td")
	if sample.Length() > dateIdx && sample.Length() > amountIdx {
		dateOK := cellDateRe.MatchString(sample.Eq(dateIdx).Text())
		amountOK := cellNumberRe.MatchString(sample.Eq(amountIdx).Text())
		if !dateOK && !amountOK {
			return nil
		}
		if !dateOK {
			sample.EachWithBreak(func(i int, cell *goquery.Selection) bool {
				if cellDateRe.MatchString(cell.Text()) {
					dateIdx = i
					return false
				}
				return true
			})
		}
		if !amountOK {
			sample.EachWithBreak(func(i int, cell *goquery.Selection) bool {
				text := cell.Text()
				if cellNumberRe.MatchString(text) && !cellDateRe.MatchString(text) {
					amountIdx = i
					return false
				}
				return true
			})
		}
	}

	var observations []dividend.Observation
	rows.Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		cells := row.Find("td")
		if cells.Length() <= dateIdx || cells.Length() <= amountIdx {
			return
		}

		rawDate := strings.TrimSpace(cells.Eq(dateIdx).Text())
		rawAmount := strings.TrimSpace(cells.Eq(amountIdx).Text())
		if !cellDateRe.MatchString(rawDate) {
			return
		}

		obs := dividend.Observation{
			Ticker:       sec.Ticker,
			Name:         sec.Name,
			RawDate:      rawDate,
			RawAmount:    rawAmount,
			SiteForecast: containsForecastMarker(rawDate) || containsForecastMarker(rawAmount),
		}
		if announcedIdx >= 0 && cells.Length() > announcedIdx {
			obs.RawAnnounced = strings.TrimSpace(cells.Eq(announcedIdx).Text())
		}
		observations = append(observations, obs)
	})
	return observations
}

// parseAnnualTable extracts year-only observations from the year/dividend
// summary table. Rows marked as forecasts keep that marker.
func parseAnnualTable(table *goquery.Selection, headers []string, sec Security) []dividend.Observation {
	yearIdx := headerIndex(headers, 0, "год")
	amountIdx := headerIndex(headers, 1, "дивиденд")

	var observations []dividend.Observation
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		cells := row.Find("td")
		if cells.Length() <= yearIdx || cells.Length() <= amountIdx {
			return
		}

		rawYear := strings.TrimSpace(cells.Eq(yearIdx).Text())
		rawAmount := strings.TrimSpace(cells.Eq(amountIdx).Text())
		if !cellNumberRe.MatchString(rawAmount) {
			return
		}

		observations = append(observations, dividend.Observation{
			Ticker:       sec.Ticker,
			Name:         sec.Name,
			RawYear:      rawYear,
			RawAmount:    rawAmount,
			SiteForecast: containsForecastMarker(rawYear),
		})
	})
	return observations
}
