package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfrederiksen/thai-lottery/internal/draw"
	"github.com/pfrederiksen/thai-lottery/internal/stats"
	"github.com/xuri/excelize/v2"
)

const (
	ResultsSheet   = "Results"
	FrequencySheet = "Digit Frequency"
	ChartTitle     = "Frequency of Digits in 3 Front Numbers by Place"
)

// ExpandPath expands a leading ~/ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}
	return path, nil
}

// WriteWorkbook saves the dataset and the digit frequency table to a single
// .xlsx file. The results sheet has a header row and one row per draw in
// dataset order. When freq is nil the frequency sheet is omitted.
func WriteWorkbook(path string, ds draw.Dataset, freq *stats.Frequency) error {
	path, err := ExpandPath(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ResultsSheet); err != nil {
		return fmt.Errorf("naming results sheet: %w", err)
	}
	if err := writeResults(f, ds); err != nil {
		return err
	}

	if freq != nil {
		if err := writeFrequency(f, freq); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeResults(f *excelize.File, ds draw.Dataset) error {
	header := make([]interface{}, len(draw.Columns))
	for i, col := range draw.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(ResultsSheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, rec := range ds {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("addressing row %d: %w", i+2, err)
		}
		// Prize numbers stay text so leading zeros survive
		row := make([]interface{}, 0, len(draw.Columns))
		for _, v := range rec.Row() {
			row = append(row, v)
		}
		if err := f.SetSheetRow(ResultsSheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(ResultsSheet, "A", "A", 20); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}
	if err := f.SetColWidth(ResultsSheet, "B", "E", 16); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}
	return nil
}

func writeFrequency(f *excelize.File, freq *stats.Frequency) error {
	if _, err := f.NewSheet(FrequencySheet); err != nil {
		return fmt.Errorf("creating frequency sheet: %w", err)
	}

	header := []interface{}{"Digit"}
	for _, place := range stats.Places {
		header = append(header, string(place))
	}
	if err := f.SetSheetRow(FrequencySheet, "A1", &header); err != nil {
		return fmt.Errorf("writing frequency header: %w", err)
	}

	table := freq.Table()
	for i, row := range table {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("addressing frequency row %d: %w", i+2, err)
		}
		values := []interface{}{row.Digit, row.Hundreds, row.Tens, row.Ones}
		if err := f.SetSheetRow(FrequencySheet, cell, &values); err != nil {
			return fmt.Errorf("writing frequency row %d: %w", i+2, err)
		}
	}

	if len(table) == 0 {
		return nil
	}

	last := len(table) + 1
	sheetRef := "'" + FrequencySheet + "'"
	series := make([]excelize.ChartSeries, 0, len(stats.Places))
	for i := range stats.Places {
		col, err := excelize.ColumnNumberToName(i + 2)
		if err != nil {
			return fmt.Errorf("addressing series column: %w", err)
		}
		series = append(series, excelize.ChartSeries{
			Name:       fmt.Sprintf("%s!$%s$1", sheetRef, col),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", sheetRef, last),
			Values:     fmt.Sprintf("%s!$%s$2:$%s$%d", sheetRef, col, col, last),
		})
	}

	chart := &excelize.Chart{
		Type:   excelize.Col,
		Series: series,
		Title:  []excelize.RichTextRun{{Text: ChartTitle}},
		XAxis: excelize.ChartAxis{
			Title: []excelize.RichTextRun{{Text: "Digit"}},
		},
		YAxis: excelize.ChartAxis{
			Title: []excelize.RichTextRun{{Text: "Frequency"}},
		},
		Legend: excelize.ChartLegend{Position: "right"},
		Dimension: excelize.ChartDimension{
			Width:  960,
			Height: 480,
		},
	}
	if err := f.AddChart(FrequencySheet, "F2", chart); err != nil {
		return fmt.Errorf("adding chart: %w", err)
	}
	return nil
}
