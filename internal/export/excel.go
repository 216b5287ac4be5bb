package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dividendlab/divcast/pkg/logger"
)

const sheetName = "Dividends"

var excelHeaders = []string{
	"Ticker", "Name", "Announcement date", "Record date", "Year",
	"Quarter", "Dividend", "Type code", "Type", "Period", "Strategy",
}

// Writer serializes export rows to the output files.
type Writer struct {
	log *logger.Logger
}

// NewWriter creates a Writer.
func NewWriter(log *logger.Logger) *Writer {
	return &Writer{log: log.WithField("component", "export")}
}

// WriteExcel writes the dataset to a single-sheet workbook with a bold
// header row.
func (w *Writer) WriteExcel(path string, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for col, header := range excelHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetRowStyle(sheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}

	for i, row := range rows {
		values := []interface{}{
			row.Ticker, row.Name, row.Announced, row.RecordDate, row.Year,
			nil, row.Amount, row.SourceCode, row.SourceLabel, row.Period, row.Strategy,
		}
		if row.Quarter != nil {
			values[5] = *row.Quarter
		}

		for col, value := range values {
			if value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("write row %d: %w", i+2, err)
			}
		}
	}

	if err := f.SetColWidth(sheetName, "A", "K", 18); err != nil {
		return fmt.Errorf("column widths: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	w.log.WithFields(map[string]interface{}{
		"path": path,
		"rows": len(rows),
	}).Info("Wrote Excel workbook")
	return nil
}
