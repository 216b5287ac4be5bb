package forecast

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dividendlab/divcast/internal/dividend"
)

// payment is one historical payout as the strategies see it.
type payment struct {
	amount  decimal.Decimal
	date    time.Time // zero when only the year is known
	month   int       // calendar month of the record date, 0 without a date
	year    int
	quarter int // 1..4, 0 when unknown
}

// monthDay keys an anniversary group: payments sharing the same calendar
// date across years.
type monthDay struct {
	month int
	day   int
}

// yearQuarter keys the site's own forecasts.
type yearQuarter struct {
	year    int
	quarter int
}

// History is the per-ticker view the engine works on. It is rebuilt fresh
// for every run and borrowed read-only by the strategies; all engine output
// is newly allocated.
type History struct {
	ticker string
	name   string

	// actual payments with a known quarter, keyed by quarter. quarterOrder
	// preserves first-seen order so repeated runs iterate identically.
	quarters     map[int][]payment
	quarterOrder []int

	// every actual payment with a positive amount
	payments []payment

	// actual payments grouped by their (month, day) anniversary
	anniversaries map[monthDay][]payment
	annivOrder    []monthDay

	// the site's own forecasts keyed by (year, quarter); last one wins
	siteForecasts map[yearQuarter]dividend.Record
}

// NewHistory builds the per-ticker view from that ticker's cleaned records.
// Records of other provenances than actual/site-forecast are ignored.
func NewHistory(ticker string, records []dividend.Record) *History {
	h := &History{
		ticker:        ticker,
		quarters:      make(map[int][]payment),
		anniversaries: make(map[monthDay][]payment),
		siteForecasts: make(map[yearQuarter]dividend.Record),
	}

	for _, r := range records {
		if r.Ticker != ticker {
			continue
		}
		if h.name == "" && r.Name != "" {
			h.name = r.Name
		}

		switch r.Source {
		case dividend.SourceActual:
			if r.Year == 0 {
				continue
			}
			p := payment{
				amount:  r.Amount,
				date:    r.RecordDate,
				year:    r.Year,
				quarter: r.Quarter,
			}
			if r.HasDate() {
				p.month = int(r.RecordDate.Month())
			}

			if r.Amount.IsPositive() {
				h.payments = append(h.payments, p)

				if r.HasDate() {
					key := monthDay{month: int(r.RecordDate.Month()), day: r.RecordDate.Day()}
					if _, seen := h.anniversaries[key]; !seen {
						h.annivOrder = append(h.annivOrder, key)
					}
					h.anniversaries[key] = append(h.anniversaries[key], p)
				}
			}

			if r.Quarter >= 1 && r.Quarter <= 4 {
				if _, seen := h.quarters[r.Quarter]; !seen {
					h.quarterOrder = append(h.quarterOrder, r.Quarter)
				}
				h.quarters[r.Quarter] = append(h.quarters[r.Quarter], p)
			}

		case dividend.SourceSiteForecast:
			if r.Year != 0 && r.Quarter >= 1 && r.Quarter <= 4 {
				h.siteForecasts[yearQuarter{year: r.Year, quarter: r.Quarter}] = r
			}
		}
	}

	return h
}

// Ticker returns the grouping key the history was built for.
func (h *History) Ticker() string { return h.ticker }

// Name returns the security's display name.
func (h *History) Name() string { return h.name }

// recentSum totals the actual payments attributed to fromYear or later.
// A zero sum classifies the security as inactive.
func (h *History) recentSum(fromYear int) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range h.payments {
		if p.year >= fromYear {
			sum = sum.Add(p.amount)
		}
	}
	return sum
}

// siteForecast returns the site's own forecast for (year, quarter) when one
// was stored.
func (h *History) siteForecast(year, quarter int) (dividend.Record, bool) {
	r, ok := h.siteForecasts[yearQuarter{year: year, quarter: quarter}]
	return r, ok
}
