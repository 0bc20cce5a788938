package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jwangus/insider-trading/internal/config"
	"github.com/jwangus/insider-trading/internal/edgar"
	"github.com/jwangus/insider-trading/internal/logger"
)

func main() {
	dateRange := flag.String("date-range", "", "Date or range YYYY-MM-DD[:YYYY-MM-DD] (default: SEC_REPORT_DATE_RANGE or previous business day)")
	filingsDir := flag.String("filings-dir", "", "Filings repository folder")
	userAgent := flag.String("user-agent", "", "Contact email sent as User-Agent (required by SEC)")
	flag.Parse()

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	if *dateRange != "" {
		if cfg.Dates, err = config.DateRange(*dateRange, time.Now()); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid date range: %v\n", err)
			os.Exit(1)
		}
	}
	if *filingsDir != "" {
		cfg.FilingsDir = *filingsDir
	}
	if *userAgent != "" {
		cfg.UserAgent = *userAgent
	}
	if cfg.UserAgent == "" {
		fmt.Fprintln(os.Stderr, "A contact email is required: set USER_AGENT_EMAIL or -user-agent.")
		os.Exit(1)
	}

	log := logger.GetLogger()
	log.UseLogFile(cfg.LogDir, "download_daily_form4.log")
	runLog := log.WithComponent("download")

	client := edgar.New(cfg.UserAgent)
	ctx := context.Background()
	for _, date := range cfg.Dates {
		if config.IsWeekend(date) {
			runLog.WithFields(logger.Fields{"date": date.Format("2006-01-02")}).Info("skipping weekend")
			continue
		}
		dayLog := runLog.WithFields(logger.Fields{"date": date.Format("2006-01-02")})
		dayLog.Info("downloading Form 4 filings")
		n, err := client.DownloadDaily(ctx, date, cfg.FilingsPath(date))
		if err != nil {
			dayLog.WithError(err).Error("download failed")
			continue
		}
		dayLog.WithFields(logger.Fields{"filings": n}).Info("download completed")
	}
	runLog.Info("all done")
}
