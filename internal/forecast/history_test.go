package forecast

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dividendlab/divcast/internal/dividend"
)

func TestNewHistoryPartitions(t *testing.T) {
	records := []dividend.Record{
		actual("HST", date(2022, 9, 10), 2.0, 2022, 3),
		actual("HST", date(2022, 3, 10), 5.0, 2022, 1),
		actual("HST", date(2023, 3, 10), 7.0, 2023, 1),
		// ignored: other ticker
		actual("ZZZ", date(2023, 3, 10), 7.0, 2023, 1),
	}

	h := NewHistory("HST", records)

	assert.Equal(t, "HST", h.Ticker())
	assert.Equal(t, "HST inc", h.Name())
	assert.Len(t, h.payments, 3)
	// quarters keep first-seen order
	assert.Equal(t, []int{3, 1}, h.quarterOrder)
	assert.Len(t, h.quarters[1], 2)
	// the two March 10 payments share one anniversary group
	require.Len(t, h.annivOrder, 2)
	assert.Len(t, h.anniversaries[monthDay{month: 3, day: 10}], 2)
}

func TestHistoryRecentSum(t *testing.T) {
	h := NewHistory("SUM", []dividend.Record{
		actual("SUM", date(2018, 3, 10), 5.0, 2018, 1),
		actual("SUM", date(2023, 3, 10), 7.0, 2023, 1),
	})

	assert.True(t, h.recentSum(2021).Equal(decimal.NewFromInt(7)))
	assert.True(t, h.recentSum(2010).Equal(decimal.NewFromInt(12)))
	assert.True(t, h.recentSum(2024).IsZero())
}

func TestHistorySiteForecastLastWins(t *testing.T) {
	first := dividend.Record{Ticker: "SF", Year: 2026, Quarter: 2, Amount: decimal.NewFromInt(1), Source: dividend.SourceSiteForecast}
	second := first
	second.Amount = decimal.NewFromInt(2)

	h := NewHistory("SF", []dividend.Record{first, second})

	got, ok := h.siteForecast(2026, 2)
	require.True(t, ok)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(2)))

	_, ok = h.siteForecast(2026, 3)
	assert.False(t, ok)
}
