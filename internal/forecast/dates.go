package forecast

import (
	"fmt"
	"time"
)

// quarterAnchors are the fixed register-close anchors used when no better
// date can be derived: Mar 15, Jun 15, Sep 15, Dec 15.
var quarterAnchors = [4]monthDay{
	{month: 3, day: 15},
	{month: 6, day: 15},
	{month: 9, day: 15},
	{month: 12, day: 15},
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// synthDate builds a register-close date from components, clamping invalid
// combinations: Feb 29/30/31 snaps to the month's last day, day 31 in a
// 30-day month snaps to 30, anything else falls back to the last day of
// the previous month (Dec 31 of the previous year for January).
func synthDate(year, month, day int) (time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("month %d out of range", month)
	}
	if day < 1 {
		return time.Time{}, fmt.Errorf("day %d out of range", day)
	}

	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() == year && int(d.Month()) == month && d.Day() == day {
		return d, nil
	}

	switch {
	case month == 2 && day > 28:
		if isLeapYear(year) {
			return time.Date(year, 2, 29, 0, 0, 0, 0, time.UTC), nil
		}
		return time.Date(year, 2, 28, 0, 0, 0, 0, time.UTC), nil
	case day > 30 && (month == 4 || month == 6 || month == 9 || month == 11):
		return time.Date(year, time.Month(month), 30, 0, 0, 0, 0, time.UTC), nil
	case month > 1:
		first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		return first.AddDate(0, 0, -1), nil
	default:
		return time.Date(year-1, 12, 31, 0, 0, 0, 0, time.UTC), nil
	}
}

// mostCommon returns the most frequent value, ties broken by the first
// value in iteration order holding the maximal count. Returns 0 for an
// empty slice.
func mostCommon(values []int) int {
	counts := make(map[int]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	best, bestCount := 0, 0
	for _, v := range values {
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best
}

// averageDay is the truncating integer mean of observed days of month.
// Returns 0 for an empty slice.
func averageDay(days []int) int {
	if len(days) == 0 {
		return 0
	}
	sum := 0
	for _, d := range days {
		sum += d
	}
	return sum / len(days)
}
