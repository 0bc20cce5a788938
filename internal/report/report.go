// Package report renders the daily summaries as HTML tables and flat CSV
// exports in the reports folder.
package report

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/jwangus/insider-trading/internal/logger"
	"github.com/jwangus/insider-trading/internal/models"
	"github.com/jwangus/insider-trading/internal/summary"
)

var tickerColumns = []string{"cik", "Ticker", "Buy/Sell", "Trade Dollar", "Trade Share", "Average Price"}

var insiderColumns = []string{
	"Name/Title", "Ticker", "SP500 Sector", "Buy/Sell",
	"Trade Amount", "% Change In Position", "Average Price", "Trade Date/Range",
}

var tableTmpl = template.Must(template.New("table").Parse(
	`<table border="1" class="dataframe">
<thead>
<tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
</thead>
<tbody>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
`))

type table struct {
	Columns []string
	Rows    [][]template.HTML
}

// Write renders all four report files for one date:
// the two HTML summaries, the insider-group CSV and the enriched raw CSV.
func Write(reportsDir string, reportDate time.Time, enriched []models.EnrichedTransaction,
	tickerRows []summary.TickerRow, insiderRows []summary.InsiderRow, log *logger.Entry) error {

	if err := os.MkdirAll(reportsDir, 0755); err != nil {
		return err
	}
	base := filepath.Join(reportsDir, "insider_reports_"+reportDate.Format("2006-01-02"))

	if err := writeHTML(base+"_by_ticker.html", tickerTable(tickerRows)); err != nil {
		return err
	}
	if err := writeHTML(base+".html", insiderTable(insiderRows)); err != nil {
		return err
	}
	if err := writeCSV(base+".csv", insiderExportRows(insiderRows, reportDate)); err != nil {
		return err
	}
	if err := writeCSV(base+"_raw.csv", rawExportRows(enriched, reportDate)); err != nil {
		return err
	}
	log.WithFields(logger.Fields{"reports": base + "*", "rows": len(enriched)}).Info("report files written")
	return nil
}

func tickerTable(rows []summary.TickerRow) table {
	t := table{Columns: tickerColumns}
	for _, r := range rows {
		t.Rows = append(t.Rows, []template.HTML{
			template.HTML(summary.FormatCIK(r.CIK)),
			template.HTML(summary.FormatTicker(r.Ticker)),
			cell(summary.FormatBuySell(r.TxCode)),
			cell(summary.Commaf(r.AmtSum, 0)),
			cell(summary.Commaf(r.ShareSum, 0)),
			cell(summary.AveragePrice(r.AmtSum, r.ShareSum)),
		})
	}
	return t
}

func insiderTable(rows []summary.InsiderRow) table {
	t := table{Columns: insiderColumns}
	for _, r := range rows {
		t.Rows = append(t.Rows, []template.HTML{
			template.HTML(r.NameTitleCell()),
			template.HTML(summary.FormatTicker(r.Ticker)),
			cell(r.SectorCell()),
			cell(summary.FormatBuySell(r.TxCode)),
			cell(summary.Commaf(r.AmtSum, 0)),
			cell(r.ChangeInPosition()),
			cell(summary.AveragePrice(r.AmtSum, r.ShareSum)),
			cell(r.TradeDateRange()),
		})
	}
	return t
}

// cell escapes plain text; link cells are built by the summary formatters
// and passed through unescaped.
func cell(s string) template.HTML {
	return template.HTML(template.HTMLEscapeString(s))
}

func writeHTML(path string, t table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := tableTmpl.Execute(f, t); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return nil
}

// rawExportRow mirrors the enriched record table, one line per transaction.
type rawExportRow struct {
	CIK          int      `csv:"cik"`
	Ticker       string   `csv:"ticker"`
	Name         string   `csv:"name"`
	Relationship string   `csv:"relationship"`
	Title        string   `csv:"title"`
	TxDate       string   `csv:"tx_date"`
	TxCode       string   `csv:"tx_code"`
	TxShare      *float64 `csv:"tx_share"`
	TxPrice      *float64 `csv:"tx_price"`
	SharePostTx  *float64 `csv:"share_post_tx"`
	Amt          *float64 `csv:"amt"`
	PreShare     *float64 `csv:"pre_share"`
	BuySellOrder int      `csv:"buy_sell_order"`
	Sector       *string  `csv:"sector"`
	DateAdded    *string  `csv:"date_added_to_sp500"`
	ReportDate   string   `csv:"report_date"`
}

func rawExportRows(enriched []models.EnrichedTransaction, reportDate time.Time) []rawExportRow {
	date := reportDate.Format("2006-01-02")
	out := make([]rawExportRow, 0, len(enriched))
	for _, e := range enriched {
		out = append(out, rawExportRow{
			CIK:          e.CIK,
			Ticker:       e.Ticker,
			Name:         e.Name,
			Relationship: e.Relationship,
			Title:        e.Title,
			TxDate:       e.TxDate.Format("2006-01-02"),
			TxCode:       e.TxCode,
			TxShare:      e.TxShare,
			TxPrice:      e.TxPrice,
			SharePostTx:  e.SharePostTx,
			Amt:          e.Amt,
			PreShare:     e.PreShare,
			BuySellOrder: e.BuySellOrder,
			Sector:       e.Sector,
			DateAdded:    e.DateAdded,
			ReportDate:   date,
		})
	}
	return out
}

// insiderExportRow is the insider-level grouping with raw aggregate values,
// before display formatting.
type insiderExportRow struct {
	CIK          int      `csv:"cik"`
	Name         string   `csv:"name"`
	Relationship string   `csv:"relationship"`
	Title        string   `csv:"title"`
	Ticker       string   `csv:"ticker"`
	TxCode       string   `csv:"tx_code"`
	BuySellOrder int      `csv:"buy_sell_order"`
	AmtSum       float64  `csv:"amt_sum"`
	ShareSum     float64  `csv:"tx_share_sum"`
	PreShareMin  *float64 `csv:"pre_share_min"`
	PreShareMax  *float64 `csv:"pre_share_max"`
	TxDateMin    string   `csv:"tx_date_min"`
	TxDateMax    string   `csv:"tx_date_max"`
	TxPriceMin   *float64 `csv:"tx_price_min"`
	TxPriceMax   *float64 `csv:"tx_price_max"`
	Sector       *string  `csv:"sector"`
	ReportDate   string   `csv:"report_date"`
}

func insiderExportRows(rows []summary.InsiderRow, reportDate time.Time) []insiderExportRow {
	date := reportDate.Format("2006-01-02")
	out := make([]insiderExportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, insiderExportRow{
			CIK:          r.CIK,
			Name:         r.Name,
			Relationship: r.Relationship,
			Title:        r.Title,
			Ticker:       r.Ticker,
			TxCode:       r.TxCode,
			BuySellOrder: r.BuySellOrder,
			AmtSum:       r.AmtSum,
			ShareSum:     r.ShareSum,
			PreShareMin:  r.PreShareMin,
			PreShareMax:  r.PreShareMax,
			TxDateMin:    r.TxDateMin.Format("2006-01-02"),
			TxDateMax:    r.TxDateMax.Format("2006-01-02"),
			TxPriceMin:   r.TxPriceMin,
			TxPriceMax:   r.TxPriceMax,
			Sector:       r.Sector,
			ReportDate:   date,
		})
	}
	return out
}

func writeCSV[T any](path string, rows []T) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
