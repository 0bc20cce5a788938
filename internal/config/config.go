package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load(".env")
}

// Get returns a trimmed environment variable value.
func Get(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func getOr(key, defaultVal string) string {
	if v := Get(key); v != "" {
		return v
	}
	return defaultVal
}

// Config carries everything a report or download run needs. Built once at
// the edge (FromEnv plus flag overrides) and passed in explicitly.
type Config struct {
	FilingsDir string // root of the downloaded filings tree, one subfolder per date
	ReportsDir string
	LogDir     string // empty means log to stdout
	UserAgent  string // contact email required by the SEC fair-access policy
	SP500CSV   string // local constituents CSV; empty means fetch and cache
	Dates      []time.Time
}

// FromEnv builds a Config from the environment. Date selection comes from
// SEC_REPORT_DATE_RANGE ("YYYY-MM-DD" or "YYYY-MM-DD:YYYY-MM-DD"); when unset
// the previous business day is used.
func FromEnv() (Config, error) {
	dates, err := DateRange(Get("SEC_REPORT_DATE_RANGE"), time.Now())
	if err != nil {
		return Config{}, err
	}
	return Config{
		FilingsDir: getOr("SEC_FILINGS_REPO_FOLDER", filepath.Join("data", "filings")),
		ReportsDir: getOr("REPORTS_FOLDER", filepath.Join("data", "reports")),
		LogDir:     Get("LOG_FOLDER"),
		UserAgent:  Get("USER_AGENT_EMAIL"),
		SP500CSV:   Get("SP500_COMPANY_CSV"),
		Dates:      dates,
	}, nil
}

// FilingsPath returns the folder holding one report date's filings.
func (c Config) FilingsPath(reportDate time.Time) string {
	return filepath.Join(c.FilingsDir, reportDate.Format("20060102"))
}

// DateRange expands a date-range string into an inclusive list of dates.
// "a:b" order does not matter; a single date yields one entry; empty yields
// the previous business day relative to today.
func DateRange(s string, today time.Time) ([]time.Time, error) {
	if s == "" {
		return []time.Time{PreviousWeekday(today)}, nil
	}
	parts := strings.Split(s, ":")
	if len(parts) > 2 {
		return nil, fmt.Errorf("invalid date range %q: want YYYY-MM-DD or YYYY-MM-DD:YYYY-MM-DD", s)
	}
	minDate, err := time.Parse("2006-01-02", strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, fmt.Errorf("invalid date range %q: %w", s, err)
	}
	maxDate := minDate
	if len(parts) == 2 {
		maxDate, err = time.Parse("2006-01-02", strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid date range %q: %w", s, err)
		}
	}
	if maxDate.Before(minDate) {
		minDate, maxDate = maxDate, minDate
	}
	var dates []time.Time
	for d := minDate; !d.After(maxDate); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates, nil
}

// PreviousWeekday returns the last business day before today:
// Friday for Monday and Sunday, otherwise yesterday.
func PreviousWeekday(today time.Time) time.Time {
	switch today.Weekday() {
	case time.Monday:
		return today.AddDate(0, 0, -3)
	case time.Sunday:
		return today.AddDate(0, 0, -2)
	default:
		return today.AddDate(0, 0, -1)
	}
}

// IsWeekend reports whether the report date falls on a weekend; the SEC
// publishes no daily index for those days.
func IsWeekend(d time.Time) bool {
	return d.Weekday() == time.Saturday || d.Weekday() == time.Sunday
}
