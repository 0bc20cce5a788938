package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jwangus/insider-trading/internal/config"
	"github.com/jwangus/insider-trading/internal/edgar"
	"github.com/jwangus/insider-trading/internal/enrich"
	"github.com/jwangus/insider-trading/internal/form4"
	"github.com/jwangus/insider-trading/internal/logger"
	"github.com/jwangus/insider-trading/internal/report"
	"github.com/jwangus/insider-trading/internal/sp500"
	"github.com/jwangus/insider-trading/internal/summary"
)

// errNoFilings distinguishes "nothing downloaded for this date" from a date
// with zero qualifying transactions, which is a valid empty report.
var errNoFilings = errors.New("could not find downloaded forms")

func main() {
	dateRange := flag.String("date-range", "", "Report date or range YYYY-MM-DD[:YYYY-MM-DD] (default: SEC_REPORT_DATE_RANGE or previous business day)")
	filingsDir := flag.String("filings-dir", "", "Filings repository folder")
	reportsDir := flag.String("reports-dir", "", "Reports output folder")
	sp500CSV := flag.String("sp500-csv", "", "Local S&P 500 constituents CSV")
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
	if *reportsDir != "" {
		cfg.ReportsDir = *reportsDir
	}
	if *sp500CSV != "" {
		cfg.SP500CSV = *sp500CSV
	}

	log := logger.GetLogger()
	log.UseLogFile(cfg.LogDir, "create_daily_insider_trade_summary.log")
	runLog := log.WithComponent("report")

	ref, err := sp500.Load(cfg.SP500CSV)
	if err != nil {
		runLog.WithError(err).Error("cannot load S&P 500 reference table")
		os.Exit(1)
	}

	failures := 0
	for _, reportDate := range cfg.Dates {
		if config.IsWeekend(reportDate) {
			runLog.WithFields(logger.Fields{"date": reportDate.Format("2006-01-02")}).Info("skipping weekend")
			continue
		}
		dayLog := runLog.WithFields(logger.Fields{"date": reportDate.Format("2006-01-02")})
		dayLog.Info("generating daily insider trading summary")
		if err := runDate(cfg, ref, reportDate, dayLog); err != nil {
			// One bad date never stops the rest of the batch.
			dayLog.WithError(err).Error("daily summary failed")
			failures++
			continue
		}
		dayLog.Info("daily summary completed")
	}
	if failures == len(cfg.Dates) && failures > 0 {
		os.Exit(1)
	}
}

func runDate(cfg config.Config, ref sp500.Table, reportDate time.Time, log *logger.Entry) error {
	dateDir := cfg.FilingsPath(reportDate)

	submissions, err := form4.FindFilingFiles(dateDir, "txt")
	if err != nil {
		if os.IsNotExist(err) {
			return errNoFilings
		}
		return err
	}
	if len(submissions) == 0 {
		return errNoFilings
	}
	log.WithFields(logger.Fields{"submissions": len(submissions)}).Info("extracting downloaded filings")
	for _, txt := range submissions {
		if err := edgar.ExtractDocuments(txt); err != nil {
			return fmt.Errorf("extract %s: %w", txt, err)
		}
	}

	xmlFiles, err := form4.FindFilingFiles(dateDir, "xml")
	if err != nil {
		return err
	}
	if len(xmlFiles) == 0 {
		return errNoFilings
	}
	var form4Files []string
	for _, f := range xmlFiles {
		if form4.IsForm4Document(f) {
			form4Files = append(form4Files, f)
		}
	}

	records, diags := form4.ProcessBatch(form4Files, log)
	log.WithFields(logger.Fields{
		"files":      len(form4Files),
		"records":    len(records),
		"unparsable": len(diags),
	}).Info("filings parsed")

	enriched, err := enrich.Enrich(records, ref)
	if err != nil {
		return err
	}

	byTicker := summary.ByTicker(enriched)
	byInsider := summary.ByInsider(enriched)
	return report.Write(cfg.ReportsDir, reportDate, enriched, byTicker, byInsider, log)
}
