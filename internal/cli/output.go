package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pfrederiksen/thai-lottery/internal/scraper"
	"github.com/pfrederiksen/thai-lottery/internal/stats"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

const chartWidth = 40

// FailedYear is a year page that contributed nothing because it failed.
type FailedYear struct {
	Year  int    `json:"year"`
	URL   string `json:"url"`
	Error string `json:"error"`
}

// Report contains data to be output
type Report struct {
	CheckedAt    time.Time             `json:"checked_at"`
	Output       string                `json:"output"`
	TotalEntries int                   `json:"total_entries"`
	Years        []scraper.YearSummary `json:"years"`
	Failed       []FailedYear          `json:"failed_years,omitempty"`
	Frequency    *stats.Frequency      `json:"-"`
	Table        []stats.Row           `json:"digit_frequency"`
	Numbers      int                   `json:"front_numbers"`
	Skipped      int                   `json:"skipped_tokens"`
	OutOfRange   int                   `json:"out_of_range"`
	NoChart      bool                  `json:"-"`
}

// NewReport summarizes a run.
func NewReport(result *scraper.Result, total int, freq *stats.Frequency, output string, checkedAt time.Time) *Report {
	r := &Report{
		CheckedAt:    checkedAt.UTC(),
		Output:       output,
		TotalEntries: total,
		Years:        result.Years,
		Frequency:    freq,
		Table:        freq.Table(),
		Numbers:      freq.Numbers,
		Skipped:      freq.Skipped,
		OutOfRange:   freq.OutOfRange,
	}
	for _, f := range result.Failures {
		msg := ""
		if f.Err != nil {
			msg = f.Err.Error()
		}
		r.Failed = append(r.Failed, FailedYear{Year: f.Year, URL: f.URL, Error: msg})
	}
	return r
}

// WriteReport writes the report in the specified format
func WriteReport(w io.Writer, report *Report, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, report)
	case FormatText:
		return writeText(w, report, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, report *Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func writeText(w io.Writer, report *Report, verbose bool) error {
	if verbose {
		for _, y := range report.Years {
			fmt.Fprintf(w, "%d: %d entries\n", y.Year, y.Entries)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total entries: %d\n", report.TotalEntries)
	if len(report.Failed) > 0 {
		years := make([]string, len(report.Failed))
		for i, f := range report.Failed {
			years[i] = fmt.Sprint(f.Year)
		}
		fmt.Fprintf(w, "Failed years: %d (%s)\n", len(report.Failed), strings.Join(years, ", "))
	}
	fmt.Fprintf(w, "Saved to: %s\n", report.Output)

	if report.OutOfRange > 0 {
		fmt.Fprintf(w, "Warning: %d front numbers outside 0-999 were tabulated as-is\n", report.OutOfRange)
	}

	if report.NoChart {
		return nil
	}
	return writeChart(w, report)
}

// writeChart renders the digit frequency table as grouped horizontal bars,
// one group per digit and one bar per place.
func writeChart(w io.Writer, report *Report) error {
	fmt.Fprintf(w, "\nFrequency of Digits in 3 Front Numbers by Place (%d numbers)\n", report.Numbers)

	max := 0
	if report.Frequency != nil {
		max = report.Frequency.Max()
	}

	labels := map[stats.Place]string{stats.Hundreds: "H", stats.Tens: "T", stats.Ones: "O"}
	for _, row := range report.Table {
		values := map[stats.Place]int{stats.Hundreds: row.Hundreds, stats.Tens: row.Tens, stats.Ones: row.Ones}
		for i, place := range stats.Places {
			digit := ""
			if i == 0 {
				digit = fmt.Sprint(row.Digit)
			}
			fmt.Fprintf(w, "%3s %s %s %d\n", digit, labels[place], bar(values[place], max), values[place])
		}
	}
	fmt.Fprintln(w, "\nH = Hundreds Place, T = Tens Place, O = Ones Place")
	return nil
}

func bar(value, max int) string {
	if max <= 0 || value <= 0 {
		return ""
	}
	n := value * chartWidth / max
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}
