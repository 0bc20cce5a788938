package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwangus/insider-trading/internal/logger"
	"github.com/jwangus/insider-trading/internal/models"
	"github.com/jwangus/insider-trading/internal/summary"
)

func f(v float64) *float64 { return &v }

func TestWriteReportFiles(t *testing.T) {
	dir := t.TempDir()
	reportDate := time.Date(2024, 2, 21, 0, 0, 0, 0, time.UTC)

	amt := 1000.0
	enriched := []models.EnrichedTransaction{{
		CIK: 1018724, Ticker: "AMZN", Name: "DOE JANE", Relationship: "Officer",
		TxDate: reportDate, TxCode: "P",
		TxShare: f(100), TxPrice: f(10), SharePostTx: f(600),
		Amt: &amt, PreShare: f(500), BuySellOrder: 1,
	}}
	byTicker := summary.ByTicker(enriched)
	byInsider := summary.ByInsider(enriched)

	log := logger.GetLogger().WithComponent("test")
	require.NoError(t, Write(dir, reportDate, enriched, byTicker, byInsider, log))

	base := filepath.Join(dir, "insider_reports_2024-02-21")
	for _, path := range []string{
		base + "_by_ticker.html",
		base + ".html",
		base + ".csv",
		base + "_raw.csv",
	} {
		_, err := os.Stat(path)
		assert.NoError(t, err, path)
	}

	tickerHTML, err := os.ReadFile(base + "_by_ticker.html")
	require.NoError(t, err)
	// Link cells pass through unescaped; formatted sums appear as text.
	assert.Contains(t, string(tickerHTML), `<a href="https://finance.yahoo.com/quote/AMZN">AMZN</a>`)
	assert.Contains(t, string(tickerHTML), "<td>1,000</td>")
	assert.Contains(t, string(tickerHTML), "<td>10.00</td>")
	assert.Contains(t, string(tickerHTML), "<td>Buy</td>")

	insiderHTML, err := os.ReadFile(base + ".html")
	require.NoError(t, err)
	assert.Contains(t, string(insiderHTML), "Not in SP500")
	assert.Contains(t, string(insiderHTML), ">Doe Jane/Officer/<")

	rawCSV, err := os.ReadFile(base + "_raw.csv")
	require.NoError(t, err)
	assert.Contains(t, string(rawCSV), "report_date")
	assert.Contains(t, string(rawCSV), "2024-02-21")
	assert.Contains(t, string(rawCSV), "1018724")

	insiderCSV, err := os.ReadFile(base + ".csv")
	require.NoError(t, err)
	assert.Contains(t, string(insiderCSV), "pre_share_min")
	assert.Contains(t, string(insiderCSV), "500")
}

func TestWriteEmptyReport(t *testing.T) {
	dir := t.TempDir()
	reportDate := time.Date(2024, 2, 21, 0, 0, 0, 0, time.UTC)
	log := logger.GetLogger().WithComponent("test")
	require.NoError(t, Write(dir, reportDate, nil, nil, nil, log))

	body, err := os.ReadFile(filepath.Join(dir, "insider_reports_2024-02-21_by_ticker.html"))
	require.NoError(t, err)
	assert.Contains(t, string(body), "<table")
}
