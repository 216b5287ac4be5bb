package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/dividendlab/divcast/internal/dividend"
	"github.com/dividendlab/divcast/pkg/logger"
)

func sampleRecords() []dividend.Record {
	return []dividend.Record{
		{
			Ticker:     "sber",
			Name:       "Сбербанк",
			RecordDate: time.Date(2023, 5, 11, 0, 0, 0, 0, time.UTC),
			Announced:  time.Date(2023, 3, 17, 0, 0, 0, 0, time.UTC),
			Amount:     decimal.NewFromFloat(25.0),
			Year:       2023,
			Quarter:    2,
			Source:     dividend.SourceActual,
		},
		{
			Ticker:   "gazp",
			Name:     "Газпром",
			Amount:   decimal.NewFromFloat(51.03),
			Year:     2022,
			Quarter:  0,
			Source:   dividend.SourceActual,
			Strategy: "",
		},
		{
			Ticker:     "sber",
			Name:       "Сбербанк",
			RecordDate: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
			Amount:     decimal.NewFromFloat(6.0),
			Year:       2025,
			Quarter:    1,
			Source:     dividend.SourceOurForecast,
			Strategy:   dividend.StrategyQuarterly,
		},
	}
}

func TestBuildRows(t *testing.T) {
	rows := BuildRows(sampleRecords())
	require.Len(t, rows, 3)

	actual := rows[0]
	assert.Equal(t, "11.05.2023", actual.RecordDate)
	assert.Equal(t, "17.03.2023", actual.Announced)
	require.NotNil(t, actual.Quarter)
	assert.Equal(t, 2, *actual.Quarter)
	assert.Equal(t, "Q2 2023", actual.Period)
	assert.Equal(t, 0, actual.SourceCode)
	assert.Equal(t, "actual", actual.SourceLabel)
	assert.Empty(t, actual.Strategy)

	annual := rows[1]
	assert.Equal(t, dividend.NoData, annual.RecordDate)
	assert.Equal(t, dividend.NoData, annual.Announced)
	assert.Nil(t, annual.Quarter)
	assert.Equal(t, "Year 2022", annual.Period)

	forecast := rows[2]
	assert.Equal(t, 2, forecast.SourceCode)
	assert.Equal(t, "our forecast", forecast.SourceLabel)
	assert.Equal(t, dividend.StrategyQuarterly, forecast.Strategy)
}

func TestWriteAndReadJSON(t *testing.T) {
	rows := BuildRows(sampleRecords())
	path := filepath.Join(t.TempDir(), "dividends.json")

	w := NewWriter(logger.Nop())
	require.NoError(t, w.WriteJSON(path, rows))

	got, err := ReadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestWriteExcel(t *testing.T) {
	rows := BuildRows(sampleRecords())
	path := filepath.Join(t.TempDir(), "dividends.xlsx")

	w := NewWriter(logger.Nop())
	require.NoError(t, w.WriteExcel(path, rows))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Ticker", header)

	ticker, err := f.GetCellValue(sheetName, "A2")
	require.NoError(t, err)
	assert.Equal(t, "sber", ticker)

	// the annual record has no quarter, its cell stays empty
	quarter, err := f.GetCellValue(sheetName, "F3")
	require.NoError(t, err)
	assert.Empty(t, quarter)

	strategy, err := f.GetCellValue(sheetName, "K4")
	require.NoError(t, err)
	assert.Equal(t, dividend.StrategyQuarterly, strategy)
}
