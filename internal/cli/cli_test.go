package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/thai-lottery/internal/scraper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func fixedClock(t *testing.T, at time.Time) {
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}

func lotteryServer(t *testing.T, pages map[string]string) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Path]
		if !ok {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(body)) // nolint:errcheck
	}))
	t.Cleanup(server.Close)
	return server
}

func runCmd(t *testing.T, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(append(args, "--env-file", ""))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRun_OneYearFailsOthersSaved(t *testing.T) {
	fixture, err := os.ReadFile("../../testdata/fixtures/result_2567.html")
	require.NoError(t, err)

	server := lotteryServer(t, map[string]string{"/lottery/result-2567.aspx": string(fixture)})
	fixedClock(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))
	output := filepath.Join(t.TempDir(), "lottery_data.xlsx")

	stdout, stderr, err := runCmd(t,
		"--years-back", "2",
		"--base-url", server.URL,
		"--output", output,
		"--format", "json",
	)
	require.NoError(t, err)

	var report struct {
		TotalEntries int `json:"total_entries"`
		Failed       []struct {
			Year int    `json:"year"`
			URL  string `json:"url"`
		} `json:"failed_years"`
		Years []struct {
			Year    int `json:"year"`
			Entries int `json:"entries"`
		} `json:"years"`
		DigitFrequency []struct {
			Digit    int `json:"digit"`
			Hundreds int `json:"hundreds"`
		} `json:"digit_frequency"`
		FrontNumbers int `json:"front_numbers"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))

	assert.Equal(t, 3, report.TotalEntries)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, 2566, report.Failed[0].Year)
	require.Len(t, report.Years, 2)
	assert.Equal(t, 2567, report.Years[0].Year)
	assert.Len(t, report.DigitFrequency, 10)
	assert.Equal(t, 6, report.FrontNumbers)

	// The failed year is logged, not fatal
	assert.Contains(t, stderr, "result-2566.aspx")
	assert.Contains(t, stderr, "Fetching year page failed")

	f, err := excelize.OpenFile(output)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Results")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "February 16, 2024", rows[1][0])
	assert.Equal(t, "January 17, 2024", rows[3][0])
}

func TestRun_TextChart(t *testing.T) {
	fixture, err := os.ReadFile("../../testdata/fixtures/result_2567.html")
	require.NoError(t, err)

	server := lotteryServer(t, map[string]string{"/lottery/result-2567.aspx": string(fixture)})
	fixedClock(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))

	stdout, _, err := runCmd(t,
		"--years-back", "1",
		"--base-url", server.URL,
		"--output", filepath.Join(t.TempDir(), "out.xlsx"),
	)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Total entries: 3")
	assert.Contains(t, stdout, "Frequency of Digits in 3 Front Numbers by Place")
	assert.Contains(t, stdout, "█")
	assert.NotContains(t, stdout, "Failed years")
}

func TestRun_UnparseableDateIsFatal(t *testing.T) {
	page := `<table id="dl_lottery_stats_list"><tr><td><a>วันที่ 1 มกราคม 2567</a></td>
<td><div class="lot-dr"><div class="lot-dc">1</div><div class="lot-dc">2</div><div class="lot-dc">3</div><div class="lot-dc">4</div></div></td></tr></table>`
	server := lotteryServer(t, map[string]string{"/lottery/result-2567.aspx": page})
	fixedClock(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))
	output := filepath.Join(t.TempDir(), "out.xlsx")

	_, _, err := runCmd(t,
		"--years-back", "1",
		"--base-url", server.URL,
		"--output", output,
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid draw date")
	assert.Contains(t, err.Error(), "วันที่ 1 มกราคม 2567")

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr), "no workbook should be written")
}

func TestRun_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"zero years", []string{"--years-back", "0"}, "--years-back"},
		{"bad format", []string{"--format", "yaml"}, "invalid format"},
		{"not xlsx", []string{"--output", "out.csv"}, ".xlsx"},
		{"bad timeout", []string{"--timeout", "0s"}, "--timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCmd(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestResolveConfig_Precedence(t *testing.T) {
	t.Setenv(EnvYearsBack, "5")
	t.Setenv(EnvBaseURL, "http://env.example.com")
	t.Setenv(EnvTimeout, "5s")

	cmd := NewRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--years-back", "3", "--env-file", ""}))

	cfg, err := resolveConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.YearsBack, "explicit flag wins over env")
	assert.Equal(t, "http://env.example.com", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.Equal(t, FormatText, cfg.Format)
}

func TestResolveConfig_Defaults(t *testing.T) {
	cmd := NewRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--env-file", ""}))

	cfg, err := resolveConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, scraper.DefaultYearsBack, cfg.YearsBack)
	assert.Equal(t, scraper.DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, scraper.Timeout, cfg.Timeout)
	assert.Equal(t, "lottery_data.xlsx", cfg.Output)
}

func TestResolveConfig_EnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("THAI_LOTTERY_OUTPUT=from-file.xlsx\n"), 0644))
	t.Cleanup(func() { os.Unsetenv(EnvOutput) })

	cmd := NewRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--env-file", envFile}))

	cfg, err := resolveConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "from-file.xlsx", cfg.Output)
}

func TestResolveConfig_BadEnv(t *testing.T) {
	t.Setenv(EnvYearsBack, "many")

	cmd := NewRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--env-file", ""}))

	_, err := resolveConfig(cmd)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), EnvYearsBack))
}
