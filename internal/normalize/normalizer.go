// Package normalize converts raw scraped observations into canonical
// payment records and cleans the combined dataset before forecasting.
package normalize

import (
	"time"

	"github.com/dividendlab/divcast/internal/dividend"
	"github.com/dividendlab/divcast/pkg/logger"
)

// Normalizer turns observations into typed records. Provenance of rows
// without an explicit forecast marker is decided against the clock:
// a future register-close date means the site is forecasting.
type Normalizer struct {
	log *logger.Logger
	now func() time.Time
}

// New creates a Normalizer.
func New(log *logger.Logger) *Normalizer {
	return &Normalizer{
		log: log.WithField("component", "normalize"),
		now: time.Now,
	}
}

// WithClock replaces the time source used for provenance decisions.
func (n *Normalizer) WithClock(now func() time.Time) *Normalizer {
	n.now = now
	return n
}

// Normalize converts observations into records, dropping rows without a
// usable ticker, amount or year. Dropped rows are logged, never fatal.
func (n *Normalizer) Normalize(observations []dividend.Observation) []dividend.Record {
	records := make([]dividend.Record, 0, len(observations))
	dropped := 0

	for _, obs := range observations {
		r, ok := n.normalizeOne(obs)
		if !ok {
			dropped++
			continue
		}
		records = append(records, r)
	}

	n.log.WithFields(map[string]interface{}{
		"observations": len(observations),
		"records":      len(records),
		"dropped":      dropped,
	}).Info("Normalized observations")
	return records
}

func (n *Normalizer) normalizeOne(obs dividend.Observation) (dividend.Record, bool) {
	if obs.Ticker == "" {
		n.log.Debug("Dropping observation without ticker")
		return dividend.Record{}, false
	}

	amount, ok := ParseAmount(obs.RawAmount)
	if !ok || !amount.IsPositive() {
		n.log.WithFields(map[string]interface{}{
			"ticker": obs.Ticker, "amount": obs.RawAmount,
		}).Debug("Dropping observation without positive amount")
		return dividend.Record{}, false
	}

	recordDate, hasDate := ParseDate(obs.RawDate)

	// The year comes from the explicit year cell on annual tables, else
	// from the register-close date, else from the period text.
	annual := false
	year := ParseYear(obs.RawYear)
	if year != 0 {
		annual = true
	} else if hasDate {
		year = recordDate.Year()
	} else {
		year = ParseYear(obs.RawPeriod)
	}
	if year == 0 {
		n.log.WithFields(map[string]interface{}{
			"ticker": obs.Ticker, "date": obs.RawDate,
		}).Debug("Dropping observation without date or year")
		return dividend.Record{}, false
	}

	quarter := ParseQuarter(obs.RawPeriod)
	if quarter == 0 && !annual && hasDate {
		quarter = dividend.QuarterOfMonth(recordDate.Month())
	}

	source := dividend.SourceActual
	if obs.SiteForecast || (hasDate && recordDate.After(n.now())) {
		source = dividend.SourceSiteForecast
	}

	// Annual rows carry no register-close date; mid-year is the
	// conventional stand-in.
	if annual && !hasDate {
		recordDate = time.Date(year, time.June, 30, 0, 0, 0, 0, time.UTC)
	}

	announced, _ := ParseDate(obs.RawAnnounced)

	return dividend.Record{
		Ticker:     obs.Ticker,
		Name:       obs.Name,
		RecordDate: recordDate,
		Announced:  announced,
		Amount:     amount,
		Year:       year,
		Quarter:    quarter,
		Source:     source,
	}, true
}

// Clean drops unusable records and removes exact duplicates, keeping the
// first occurrence of every (ticker, record date, amount) triple.
func (n *Normalizer) Clean(records []dividend.Record) []dividend.Record {
	type key struct {
		ticker string
		date   string
		amount string
	}

	seen := make(map[key]bool, len(records))
	out := make([]dividend.Record, 0, len(records))
	duplicates := 0

	for _, r := range records {
		if r.Ticker == "" || r.Year == 0 {
			continue
		}
		k := key{ticker: r.Ticker, date: r.DateLabel(), amount: r.Amount.String()}
		if seen[k] {
			duplicates++
			continue
		}
		seen[k] = true
		out = append(out, r)
	}

	n.log.WithFields(map[string]interface{}{
		"records":    len(records),
		"kept":       len(out),
		"duplicates": duplicates,
	}).Info("Cleaned dataset")
	return out
}
