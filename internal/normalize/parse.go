package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	dateRe   = regexp.MustCompile(`(\d{2})[./-](\d{2})[./-](\d{4})`)
	yearRe   = regexp.MustCompile(`(\d{4})`)
	numberRe = regexp.MustCompile(`\d+[.,]\d+|\d+`)

	// quarter markers seen in period cells: Q1, 1Q, 1 кв, квартал 1
	quarterRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)[qк]\s*(\d)`),
		regexp.MustCompile(`(?i)(\d)\s*[qк]`),
		regexp.MustCompile(`(?i)(\d)\s*кв`),
		regexp.MustCompile(`(?i)квартал\s*(\d)`),
	}
)

// ParseDate extracts a day.month.year date from a cell, accepting '.',
// '-' and '/' separators. Returns false when no valid date is present.
func ParseDate(s string) (time.Time, bool) {
	m := dateRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day || int(d.Month()) != month || d.Year() != year {
		return time.Time{}, false
	}
	return d, true
}

// ParseAmount extracts the first numeric value from a cell. Comma decimal
// separators are accepted. Returns false when no number is present.
func ParseAmount(s string) (decimal.Decimal, bool) {
	m := numberRe.FindString(s)
	if m == "" {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(strings.ReplaceAll(m, ",", "."))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ParseQuarter extracts a quarter number from a period cell, or 0 when
// none of the known markers match.
func ParseQuarter(period string) int {
	for _, re := range quarterRes {
		if m := re.FindStringSubmatch(period); m != nil {
			q, _ := strconv.Atoi(m[1])
			if q >= 1 && q <= 4 {
				return q
			}
		}
	}
	return 0
}

// ParseYear extracts the first 4-digit year from a cell, or 0.
func ParseYear(s string) int {
	m := yearRe.FindString(s)
	if m == "" {
		return 0
	}
	y, _ := strconv.Atoi(m)
	return y
}
