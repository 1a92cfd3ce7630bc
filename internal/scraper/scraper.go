package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/thai-lottery/internal/draw"
	"github.com/pfrederiksen/thai-lottery/internal/logger"
	"golang.org/x/net/html/charset"
)

const (
	DefaultBaseURL = "https://www.myhora.com"
	UserAgent      = "thai-lottery-cli/1.0 (github.com/pfrederiksen/thai-lottery)"
	Timeout        = 30 * time.Second
)

const (
	resultsTableSelector = "table#dl_lottery_stats_list"
	prizeRowSelector     = "div.lot-dr"
	prizeCellSelector    = "div.lot-dc"
)

// StatusError is returned when a year page answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d from %s", e.StatusCode, e.URL)
}

// Scraper handles fetching and parsing yearly lottery result pages
type Scraper struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithBaseURL points the scraper at another host (scheme and host, no path).
func WithBaseURL(baseURL string) Option {
	return func(s *Scraper) {
		s.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) {
		s.client.Timeout = d
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Scraper) {
		s.client = c
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(s *Scraper) {
		s.userAgent = ua
	}
}

// New creates a new Scraper instance
func New(opts ...Option) *Scraper {
	s := &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		baseURL:   DefaultBaseURL,
		userAgent: UserAgent,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// YearURL returns the results page for a Buddhist-era year.
func (s *Scraper) YearURL(year int) string {
	return fmt.Sprintf("%s/lottery/result-%d.aspx", s.baseURL, year)
}

// FetchYear fetches and parses the results page for a Buddhist-era year
func (s *Scraper) FetchYear(ctx context.Context, year int) ([]*draw.Record, error) {
	url := s.YearURL(year)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: url}
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("decoding page: %w", err)
	}

	return ParseRecords(body, url, year)
}

// ParseRecords extracts one record per draw row of the results table.
// A page without the table yields no records and no error.
func ParseRecords(r io.Reader, sourceURL string, year int) ([]*draw.Record, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	records := make([]*draw.Record, 0)

	table := doc.Find(resultsTableSelector).First()
	if table.Length() == 0 {
		logger.Warn("Results table not found", logger.Fields{"url": sourceURL})
		logger.IncrCounter("pages.no_table")
		return records, nil
	}

	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		anchor := row.Find("a").First()
		container := row.Find(prizeRowSelector).First()
		// Header, footer and spacer rows
		if anchor.Length() == 0 || container.Length() == 0 {
			return
		}

		date := draw.Normalize(strings.TrimSpace(anchor.Text()))

		prizes := container.Find(prizeCellSelector).Map(func(_ int, cell *goquery.Selection) string {
			return strings.TrimSpace(cell.Text())
		})

		rec, ok := draw.NewRecord(date, prizes, year, sourceURL)
		if !ok {
			logger.Debug("Dropping row with missing prizes", logger.Fields{
				"url":    sourceURL,
				"date":   date,
				"prizes": len(prizes),
			})
			logger.IncrCounter("rows.dropped")
			return
		}
		records = append(records, rec)
	})

	logger.Info("Parsed results page", logger.Fields{
		"url":     sourceURL,
		"entries": len(records),
	})

	return records, nil
}
