package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pfrederiksen/thai-lottery/internal/scraper"
	"github.com/spf13/cobra"
)

// Environment variables that override the built-in defaults. Explicit flags
// still win over them.
const (
	EnvYearsBack = "THAI_LOTTERY_YEARS_BACK"
	EnvOutput    = "THAI_LOTTERY_OUTPUT"
	EnvBaseURL   = "THAI_LOTTERY_BASE_URL"
	EnvTimeout   = "THAI_LOTTERY_TIMEOUT"
)

const DefaultOutput = "lottery_data.xlsx"

// Config holds the resolved run parameters.
type Config struct {
	YearsBack int
	Output    string
	BaseURL   string
	Timeout   time.Duration
	Format    OutputFormat
	NoChart   bool
	Verbose   bool
}

// loadEnvFile reads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is fine.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

// resolveConfig merges flags, environment and defaults, then validates.
func resolveConfig(cmd *cobra.Command) (*Config, error) {
	if err := loadEnvFile(flagEnvFile); err != nil {
		return nil, err
	}

	cfg := &Config{
		YearsBack: flagYearsBack,
		Output:    flagOutput,
		BaseURL:   flagBaseURL,
		Timeout:   flagTimeout,
		Format:    OutputFormat(strings.ToLower(strings.TrimSpace(flagFormat))),
		NoChart:   flagNoChart,
		Verbose:   flagVerbose,
	}

	flags := cmd.Flags()
	if v, ok := os.LookupEnv(EnvYearsBack); ok && !flags.Changed("years-back") {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %q", EnvYearsBack, v)
		}
		cfg.YearsBack = n
	}
	if v, ok := os.LookupEnv(EnvOutput); ok && !flags.Changed("output") {
		cfg.Output = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv(EnvBaseURL); ok && !flags.Changed("base-url") {
		cfg.BaseURL = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv(EnvTimeout); ok && !flags.Changed("timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %q", EnvTimeout, v)
		}
		cfg.Timeout = d
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.YearsBack < 1 {
		return fmt.Errorf("--years-back must be at least 1, got %d", c.YearsBack)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("--timeout must be positive, got %s", c.Timeout)
	}
	if c.Format != FormatText && c.Format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", c.Format)
	}
	if !strings.EqualFold(filepath.Ext(c.Output), ".xlsx") {
		return fmt.Errorf("--output must be an .xlsx file, got %q", c.Output)
	}
	if c.BaseURL == "" {
		c.BaseURL = scraper.DefaultBaseURL
	}
	return nil
}
