package summary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCommaf(t *testing.T) {
	assert.Equal(t, "1,234,568", Commaf(1234567.891, 0))
	assert.Equal(t, "1,000", Commaf(1000, 0))
	assert.Equal(t, "123", Commaf(123.4, 0))
	assert.Equal(t, "25.0", Commaf(25, 1))
	assert.Equal(t, "-1,234.50", Commaf(-1234.5, 2))
}

func TestFormatBuySell(t *testing.T) {
	assert.Equal(t, "Buy", FormatBuySell("P"))
	assert.Equal(t, "Sell", FormatBuySell("S"))
	assert.Equal(t, "Unknown", FormatBuySell("A"))
}

func TestFormatLinks(t *testing.T) {
	assert.Equal(t,
		`<a href="https://www.sec.gov/cgi-bin/own-disp?action=getissuer&CIK=320193">320193</a>`,
		FormatCIK(320193))
	assert.Equal(t,
		`<a href="https://finance.yahoo.com/quote/AAPL">AAPL</a>`,
		FormatTicker("AAPL"))
}

func TestCapitalizeWords(t *testing.T) {
	assert.Equal(t, "Cook Timothy D", CapitalizeWords("COOK TIMOTHY D"))
	assert.Equal(t, "EVP And CFO", CapitalizeWords("EVP AND CFO"))
	assert.Equal(t, "", CapitalizeWords(""))
}

func TestNameTitleCell(t *testing.T) {
	r := InsiderRow{
		CIK: 100, Name: "SMITH JOHN", Relationship: "Officer",
		Title: "CHIEF FINANCIAL OFFICER",
	}
	cell := r.NameTitleCell()
	assert.Contains(t, cell, ">Smith John/Officer/CFO<")
	assert.Contains(t, cell, "CIK=100")

	r.Title = "CHIEF EXECUTIVE OFFICER"
	assert.Contains(t, r.NameTitleCell(), "/CEO<")
}

func TestChangeInPosition(t *testing.T) {
	newPos := InsiderRow{TxCode: "P", PreShareMin: f(0), PreShareMax: f(0), ShareSum: 100}
	assert.Equal(t, "New", newPos.ChangeInPosition())

	buy := InsiderRow{TxCode: "P", PreShareMin: f(1000), PreShareMax: f(2000), ShareSum: 250}
	assert.Equal(t, "25.0%", buy.ChangeInPosition())

	// Sales measure against the larger pre-sale balance.
	sell := InsiderRow{TxCode: "S", PreShareMin: f(1000), PreShareMax: f(2000), ShareSum: 500}
	assert.Equal(t, "25.0%", sell.ChangeInPosition())

	unknown := InsiderRow{TxCode: "P", ShareSum: 100}
	assert.Equal(t, "", unknown.ChangeInPosition())
}

func TestChangeInPositionThousands(t *testing.T) {
	r := InsiderRow{TxCode: "P", PreShareMin: f(100), ShareSum: 2000}
	assert.Equal(t, "2,000.0%", r.ChangeInPosition())
}

func TestTradeDateRange(t *testing.T) {
	day := time.Date(2024, 2, 21, 0, 0, 0, 0, time.UTC)
	single := InsiderRow{TxDateMin: day, TxDateMax: day}
	assert.Equal(t, "02-21", single.TradeDateRange())

	span := InsiderRow{TxDateMin: day, TxDateMax: day.AddDate(0, 0, 2)}
	assert.Equal(t, "02-21/02-23", span.TradeDateRange())
}

func TestSectorCell(t *testing.T) {
	s := "Energy"
	assert.Equal(t, "Energy", InsiderRow{Sector: &s}.SectorCell())
	assert.Equal(t, "Not in SP500", InsiderRow{}.SectorCell())
}

func TestAveragePrice(t *testing.T) {
	assert.Equal(t, "10.00", AveragePrice(1000, 100))
	assert.Equal(t, "1,234.57", AveragePrice(123456.789, 100))
}
