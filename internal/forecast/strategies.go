package forecast

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dividendlab/divcast/internal/dividend"
	"github.com/dividendlab/divcast/pkg/logger"
)

// Strategy is one link of the fallback chain. Attempt returns the forecast
// records it could derive from the history, or an empty slice when the
// security does not fit the strategy; the first non-empty result wins.
type Strategy interface {
	Name() string
	Attempt(h *History, span Span) []dividend.Record
}

func meanAmount(payments []payment) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payments {
		sum = sum.Add(p.amount)
	}
	return sum.Div(decimal.NewFromInt(int64(len(payments)))).Round(2)
}

// forecastRecord assembles one engine-generated record.
func forecastRecord(h *History, strategy string, year, quarter int, date time.Time, amount decimal.Decimal) dividend.Record {
	return dividend.Record{
		Ticker:     h.ticker,
		Name:       h.name,
		RecordDate: date,
		Amount:     amount,
		Year:       year,
		Quarter:    quarter,
		Source:     dividend.SourceOurForecast,
		Strategy:   strategy,
	}
}

// inactive fires for securities with no actual payments inside the recent
// activity window. It emits four zero-amount records per future year at the
// fixed anchors and thereby stops the chain.
type inactive struct {
	log *logger.Logger
}

func (s inactive) Name() string { return dividend.StrategyInactive }

func (s inactive) Attempt(h *History, span Span) []dividend.Record {
	if !h.recentSum(span.Now.Year() - span.WindowYears).IsZero() {
		return nil
	}

	s.log.WithField("ticker", h.ticker).Debug("No payments inside the activity window, emitting inactive forecasts")
	return fixedAnchorRecords(h, span, dividend.StrategyInactive, decimal.Zero, s.log)
}

// quarterly averages each quarter's payment history and projects it onto
// the quarter's typical (month, day). The site's own forecast for a
// (year, quarter) overrides the synthesized date and amount.
type quarterly struct {
	log *logger.Logger
}

func (s quarterly) Name() string { return dividend.StrategyQuarterly }

func (s quarterly) Attempt(h *History, span Span) []dividend.Record {
	eligible := false
	for _, q := range h.quarterOrder {
		if len(h.quarters[q]) > 1 {
			eligible = true
			break
		}
	}
	// A lone historical payment disqualifies the strategy outright.
	if len(h.payments) <= 1 {
		eligible = false
	}
	if !eligible {
		return nil
	}

	var out []dividend.Record
	for _, q := range h.quarterOrder {
		history := h.quarters[q]
		if len(history) == 0 {
			continue
		}

		avg := meanAmount(history)

		var months []int
		for _, p := range history {
			if p.month != 0 {
				months = append(months, p.month)
			}
		}
		month := mostCommon(months)
		if month == 0 {
			month = int(span.Now.Month())
		}

		var days []int
		for _, p := range history {
			if !p.date.IsZero() && int(p.date.Month()) == month {
				days = append(days, p.date.Day())
			}
		}
		day := averageDay(days)
		if day == 0 {
			day = 15
		}

		for year := span.FromYear; year <= span.ToYear; year++ {
			if site, ok := h.siteForecast(year, q); ok && site.HasDate() {
				out = append(out, forecastRecord(h, dividend.StrategyQuarterly, year, q, site.RecordDate, site.Amount))
				continue
			}

			date, err := synthDate(year, month, day)
			if err != nil {
				s.log.WithError(err).WithFields(map[string]interface{}{
					"ticker": h.ticker, "quarter": q, "year": year,
				}).Error("Skipping quarterly forecast point")
				continue
			}
			out = append(out, forecastRecord(h, dividend.StrategyQuarterly, year, q, date, avg))
		}
	}
	return out
}

// anniversary projects each historical (month, day) payment anniversary
// forward with its group's average amount.
type anniversary struct {
	log *logger.Logger
}

func (s anniversary) Name() string { return dividend.StrategyAnniversary }

func (s anniversary) Attempt(h *History, span Span) []dividend.Record {
	if len(h.annivOrder) == 0 {
		return nil
	}

	var out []dividend.Record
	for _, key := range h.annivOrder {
		group := h.anniversaries[key]
		avg := meanAmount(group)

		var quarters []int
		for _, p := range group {
			if p.quarter != 0 {
				quarters = append(quarters, p.quarter)
			}
		}
		q := mostCommon(quarters)
		if q == 0 {
			q = (key.month-1)/3 + 1
		}

		for year := span.FromYear; year <= span.ToYear; year++ {
			date, err := synthDate(year, key.month, key.day)
			if err != nil {
				s.log.WithError(err).WithFields(map[string]interface{}{
					"ticker": h.ticker, "month": key.month, "day": key.day, "year": year,
				}).Error("Skipping anniversary forecast point")
				continue
			}
			out = append(out, forecastRecord(h, dividend.StrategyAnniversary, year, q, date, avg))
		}
	}
	return out
}

// annualAverage splits the overall mean payment into four equal quarterly
// installments at the fixed anchors.
type annualAverage struct {
	log *logger.Logger
}

func (s annualAverage) Name() string { return dividend.StrategyAnnual }

func (s annualAverage) Attempt(h *History, span Span) []dividend.Record {
	if len(h.payments) == 0 {
		return nil
	}

	installment := meanAmount(h.payments).Div(decimal.NewFromInt(4)).Round(2)
	return fixedAnchorRecords(h, span, dividend.StrategyAnnual, installment, s.log)
}

// singleAnnual is the last resort for securities with payment history:
// one full-mean record per future year at the typical payment date,
// without a quarter.
type singleAnnual struct {
	log *logger.Logger
}

func (s singleAnnual) Name() string { return dividend.StrategySingleAnnual }

func (s singleAnnual) Attempt(h *History, span Span) []dividend.Record {
	if len(h.payments) == 0 {
		return nil
	}

	var months []int
	var days []int
	for _, p := range h.payments {
		if p.month != 0 {
			months = append(months, p.month)
		}
		if !p.date.IsZero() {
			days = append(days, p.date.Day())
		}
	}
	month := mostCommon(months)
	if month == 0 {
		month = 6
	}
	day := averageDay(days)
	if day == 0 {
		day = 15
	}

	amount := meanAmount(h.payments)

	var out []dividend.Record
	for year := span.FromYear; year <= span.ToYear; year++ {
		date, err := synthDate(year, month, day)
		if err != nil {
			s.log.WithError(err).WithFields(map[string]interface{}{
				"ticker": h.ticker, "year": year,
			}).Error("Skipping single-annual forecast point")
			continue
		}
		out = append(out, forecastRecord(h, dividend.StrategySingleAnnual, year, 0, date, amount))
	}
	return out
}

// emergency fires when nothing else produced a record for an active
// security. Mechanically identical to inactive, but the label tells the
// reader no usable historical shape existed.
type emergency struct {
	log *logger.Logger
}

func (s emergency) Name() string { return dividend.StrategyEmergency }

func (s emergency) Attempt(h *History, span Span) []dividend.Record {
	s.log.WithField("ticker", h.ticker).Debug("No strategy produced forecasts, emitting emergency records")
	return fixedAnchorRecords(h, span, dividend.StrategyEmergency, decimal.Zero, s.log)
}

// fixedAnchorRecords emits one record per quarter per future year at the
// Mar/Jun/Sep/Dec 15 anchors, all carrying the same amount.
func fixedAnchorRecords(h *History, span Span, strategy string, amount decimal.Decimal, log *logger.Logger) []dividend.Record {
	var out []dividend.Record
	for i, anchor := range quarterAnchors {
		quarter := i + 1
		for year := span.FromYear; year <= span.ToYear; year++ {
			date, err := synthDate(year, anchor.month, anchor.day)
			if err != nil {
				log.WithError(err).WithFields(map[string]interface{}{
					"ticker": h.ticker, "quarter": quarter, "year": year,
				}).Error("Skipping fixed-anchor forecast point")
				continue
			}
			out = append(out, forecastRecord(h, strategy, year, quarter, date, amount))
		}
	}
	return out
}
