package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthDateClamping(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month int
		day   int
		want  time.Time
	}{
		{"valid date passes through", 2025, 3, 14, date(2025, 3, 14)},
		{"feb 29 in a non-leap year", 2025, 2, 29, date(2025, 2, 28)},
		{"feb 29 in a leap year", 2028, 2, 29, date(2028, 2, 29)},
		{"feb 29 in a century non-leap year", 2100, 2, 29, date(2100, 2, 28)},
		{"feb 31 snaps to month end", 2025, 2, 31, date(2025, 2, 28)},
		{"apr 31 snaps to apr 30", 2025, 4, 31, date(2025, 4, 30)},
		{"nov 31 snaps to nov 30", 2025, 11, 31, date(2025, 11, 30)},
		{"mar 40 falls back to end of feb", 2025, 3, 40, date(2025, 2, 28)},
		{"jan 40 falls back to dec 31 of previous year", 2025, 1, 40, date(2024, 12, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := synthDate(tt.year, tt.month, tt.day)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSynthDateRejectsImpossibleComponents(t *testing.T) {
	_, err := synthDate(2025, 13, 10)
	assert.Error(t, err)

	_, err = synthDate(2025, 0, 10)
	assert.Error(t, err)

	_, err = synthDate(2025, 6, 0)
	assert.Error(t, err)
}

func TestMostCommon(t *testing.T) {
	assert.Equal(t, 3, mostCommon([]int{1, 3, 3, 2}))
	// ties resolve to the first value in iteration order with the maximal count
	assert.Equal(t, 2, mostCommon([]int{2, 3, 3, 2}))
	assert.Equal(t, 0, mostCommon(nil))
}

func TestAverageDay(t *testing.T) {
	assert.Equal(t, 14, averageDay([]int{10, 20, 12})) // truncating division
	assert.Equal(t, 0, averageDay(nil))
}
