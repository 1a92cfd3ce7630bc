package scraper

import (
	"context"
	"time"

	"github.com/pfrederiksen/thai-lottery/internal/draw"
	"github.com/pfrederiksen/thai-lottery/internal/logger"
)

// DefaultYearsBack is how many yearly pages a run covers by default.
const DefaultYearsBack = 31

// YearSummary records how many draws a year page contributed.
type YearSummary struct {
	Year    int    `json:"year"`
	URL     string `json:"url"`
	Entries int    `json:"entries"`
}

// YearFailure records a year page that could not be fetched.
type YearFailure struct {
	Year int    `json:"year"`
	URL  string `json:"url"`
	Err  error  `json:"-"`
}

// Result is the outcome of a multi-year run. Records holds every year's
// draws in the order the years were processed.
type Result struct {
	Records  []*draw.Record
	Years    []YearSummary
	Failures []YearFailure
}

// YearRange returns the yearsBack Buddhist-era years ending at current,
// newest first.
func YearRange(current, yearsBack int) []int {
	if yearsBack <= 0 {
		return []int{}
	}
	years := make([]int, yearsBack)
	for i := range years {
		years[i] = current - i
	}
	return years
}

// Run fetches every year page in the range ending at now's Buddhist year,
// one at a time. A year that fails contributes no records and the run moves
// on to the next one. Cancelling ctx stops the run after the current year.
func (s *Scraper) Run(ctx context.Context, yearsBack int, now time.Time) *Result {
	result := &Result{Records: make([]*draw.Record, 0)}

	for _, year := range YearRange(draw.BuddhistYear(now.Year()), yearsBack) {
		if err := ctx.Err(); err != nil {
			logger.Warn("Run cancelled", logger.Fields{"next_year": year})
			break
		}
		s.runYear(ctx, year, result)
	}

	logger.SetGauge("records.total", float64(len(result.Records)))
	return result
}

// runYear appends one year's records to result.
func (s *Scraper) runYear(ctx context.Context, year int, result *Result) {
	url := s.YearURL(year)
	logger.Debug("Processing year page", logger.Fields{"year": year, "url": url})

	start := time.Now()
	records, err := s.FetchYear(ctx, year)
	logger.RecordTiming("page.fetch", time.Since(start))

	if err != nil {
		logger.Error("Fetching year page failed", logger.Fields{"year": year, "url": url}, err)
		logger.IncrCounter("pages.failed")
		result.Failures = append(result.Failures, YearFailure{Year: year, URL: url, Err: err})
		records = nil
	} else {
		logger.IncrCounter("pages.fetched")
	}

	logger.Info("Year processed", logger.Fields{"year": year, "entries": len(records)})
	result.Years = append(result.Years, YearSummary{Year: year, URL: url, Entries: len(records)})
	result.Records = append(result.Records, records...)
}
