package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/thai-lottery/internal/draw"
	"github.com/pfrederiksen/thai-lottery/internal/scraper"
	"github.com/pfrederiksen/thai-lottery/internal/stats"
)

func sampleReport() *Report {
	ds := draw.Dataset{
		{Date: "March 1, 2024", ThreeFront: "207 800"},
		{Date: "February 16, 2024", ThreeFront: "045 111"},
	}
	result := &scraper.Result{
		Years: []scraper.YearSummary{
			{Year: 2567, Entries: 2},
			{Year: 2566, Entries: 0},
		},
		Failures: []scraper.YearFailure{
			{Year: 2566, URL: "https://example.com/lottery/result-2566.aspx", Err: errors.New("unexpected status code 500")},
		},
	}
	return NewReport(result, ds.Len(), stats.Aggregate(ds), "lottery_data.xlsx", time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))
}

func TestWriteReport_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteReport(&buf, sampleReport(), FormatText, true); err != nil {
		t.Fatalf("WriteReport() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"2567: 2 entries",
		"Total entries: 2",
		"Failed years: 1 (2566)",
		"Saved to: lottery_data.xlsx",
		"(4 numbers)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// Ten digit groups of three bars each
	if lines := strings.Count(out, " H "); lines != 10 {
		t.Errorf("found %d hundreds bars, want 10", lines)
	}
}

func TestWriteReport_NoChart(t *testing.T) {
	report := sampleReport()
	report.NoChart = true

	var buf bytes.Buffer
	if err := WriteReport(&buf, report, FormatText, false); err != nil {
		t.Fatalf("WriteReport() error = %v", err)
	}
	if strings.Contains(buf.String(), "Frequency of Digits") {
		t.Error("chart should be skipped")
	}
	if strings.Contains(buf.String(), "2567: 2 entries") {
		t.Error("per-year lines are verbose only")
	}
}

func TestWriteReport_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteReport(&buf, sampleReport(), FormatJSON, false); err != nil {
		t.Fatalf("WriteReport() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"total_entries": 2`, `"failed_years"`, `"unexpected status code 500"`, `"digit_frequency"`} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON output missing %s:\n%s", want, out)
		}
	}
}

func TestWriteReport_UnknownFormat(t *testing.T) {
	if err := WriteReport(&bytes.Buffer{}, sampleReport(), OutputFormat("xml"), false); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		value, max, want int
	}{
		{0, 10, 0},
		{10, 10, chartWidth},
		{5, 10, chartWidth / 2},
		{1, 1000, 1},
		{3, 0, 0},
	}
	for _, tt := range tests {
		if got := len([]rune(bar(tt.value, tt.max))); got != tt.want {
			t.Errorf("bar(%d, %d) width = %d, want %d", tt.value, tt.max, got, tt.want)
		}
	}
}
