package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/pfrederiksen/thai-lottery/internal/draw"
	"github.com/pfrederiksen/thai-lottery/internal/export"
	"github.com/pfrederiksen/thai-lottery/internal/logger"
	"github.com/pfrederiksen/thai-lottery/internal/scraper"
	"github.com/pfrederiksen/thai-lottery/internal/stats"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagYearsBack int
	flagOutput    string
	flagBaseURL   string
	flagTimeout   time.Duration
	flagFormat    string
	flagNoChart   bool
	flagVerbose   bool
	flagEnvFile   string
)

// now is the clock used to pick the current Buddhist year.
var now = time.Now

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "thai-lottery",
		Short: "Fetch historical Thai lottery results and chart front-number digits",
		Long: `A CLI tool that downloads the yearly Thai government lottery result pages,
converts the Thai draw dates to Gregorian dates, saves every draw newest-first
to an Excel workbook and charts how often each digit appears in each place of
the 3 front numbers.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runFetch,
	}

	cmd.Flags().IntVar(&flagYearsBack, "years-back", scraper.DefaultYearsBack, "Number of yearly pages to fetch, starting with the current year")
	cmd.Flags().StringVar(&flagOutput, "output", DefaultOutput, "Path of the .xlsx workbook to write")
	cmd.Flags().StringVar(&flagBaseURL, "base-url", scraper.DefaultBaseURL, "Results site (scheme and host)")
	cmd.Flags().DurationVar(&flagTimeout, "timeout", scraper.Timeout, "Per-page request timeout")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&flagNoChart, "no-chart", false, "Skip the terminal chart")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")
	cmd.Flags().StringVar(&flagEnvFile, "env-file", ".env", "Optional file with THAI_LOTTERY_* variables")

	return cmd
}

// runFetch is the main command logic
func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	level := logger.LevelInfo
	if cfg.Verbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))
	logger.ResetMetrics()

	logger.Debug("Starting run", logger.Fields{
		"years_back": cfg.YearsBack,
		"base_url":   cfg.BaseURL,
		"output":     cfg.Output,
	})

	sc := scraper.New(
		scraper.WithBaseURL(cfg.BaseURL),
		scraper.WithTimeout(cfg.Timeout),
	)

	checkedAt := now()
	result := sc.Run(cmd.Context(), cfg.YearsBack, checkedAt)

	ds, err := draw.Build(result.Records)
	if err != nil {
		logger.Error("Cannot order draws", nil, err)
		return err
	}

	freq := stats.Aggregate(ds)
	if freq.OutOfRange > 0 {
		logger.Warn("Front numbers outside 0-999 tabulated as-is", logger.Fields{"count": freq.OutOfRange})
	}

	if err := export.WriteWorkbook(cfg.Output, ds, freq); err != nil {
		return fmt.Errorf("exporting workbook: %w", err)
	}
	logger.Info("Workbook saved", logger.Fields{"path": cfg.Output, "entries": ds.Len()})

	report := NewReport(result, ds.Len(), freq, cfg.Output, checkedAt)
	report.NoChart = cfg.NoChart
	if err := WriteReport(cmd.OutOrStdout(), report, cfg.Format, cfg.Verbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if cfg.Verbose {
		logger.Debug("Run metrics", logger.Fields(logger.GetMetricsSnapshot()))
	}
	return nil
}

// Execute runs the CLI. An interrupt stops fetching; draws collected so far are still saved.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
