// Package summary builds the two grouped report views over enriched
// transactions: by ticker and by individual insider.
package summary

import (
	"sort"
	"time"

	"github.com/jwangus/insider-trading/internal/models"
)

// TickerRow is one (cik, ticker, tx_code) group of the ticker summary.
type TickerRow struct {
	CIK          int
	Ticker       string
	TxCode       string
	BuySellOrder int
	AmtSum       float64
	ShareSum     float64
}

// InsiderRow is one insider-level group with the aggregates the insider
// summary and its raw export need.
type InsiderRow struct {
	CIK          int
	Name         string
	Relationship string
	Title        string
	Ticker       string
	TxCode       string
	BuySellOrder int

	AmtSum      float64
	ShareSum    float64
	PreShareMin *float64
	PreShareMax *float64
	TxDateMin   time.Time
	TxDateMax   time.Time
	TxPriceMin  *float64
	TxPriceMax  *float64
	Sector      *string
}

type tickerKey struct {
	cik          int
	ticker       string
	txCode       string
	buySellOrder int
}

type insiderKey struct {
	cik          int
	name         string
	relationship string
	title        string
	ticker       string
	txCode       string
	buySellOrder int
}

// ByTicker groups by (cik, ticker, tx_code, buy_sell_order) and sums dollar
// amount and share count. Buys sort before sells, largest trades first.
func ByTicker(rows []models.EnrichedTransaction) []TickerRow {
	groups := make(map[tickerKey]*TickerRow)
	for _, r := range rows {
		k := tickerKey{r.CIK, r.Ticker, r.TxCode, r.BuySellOrder}
		g, ok := groups[k]
		if !ok {
			g = &TickerRow{CIK: r.CIK, Ticker: r.Ticker, TxCode: r.TxCode, BuySellOrder: r.BuySellOrder}
			groups[k] = g
		}
		addIf(&g.AmtSum, r.Amt)
		addIf(&g.ShareSum, r.TxShare)
	}

	out := make([]TickerRow, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BuySellOrder != out[j].BuySellOrder {
			return out[i].BuySellOrder > out[j].BuySellOrder
		}
		if out[i].AmtSum != out[j].AmtSum {
			return out[i].AmtSum > out[j].AmtSum
		}
		// Deterministic tie-break for equal sums.
		if out[i].Ticker != out[j].Ticker {
			return out[i].Ticker < out[j].Ticker
		}
		return out[i].TxCode < out[j].TxCode
	})
	return out
}

// ByInsider groups by the full insider identity. Aggregates: sum of amount
// and shares, min/max of pre-transaction shares, dates and prices, and a
// representative sector (constant per cik, max taken for determinism).
func ByInsider(rows []models.EnrichedTransaction) []InsiderRow {
	groups := make(map[insiderKey]*InsiderRow)
	for _, r := range rows {
		k := insiderKey{r.CIK, r.Name, r.Relationship, r.Title, r.Ticker, r.TxCode, r.BuySellOrder}
		g, ok := groups[k]
		if !ok {
			g = &InsiderRow{
				CIK: r.CIK, Name: r.Name, Relationship: r.Relationship, Title: r.Title,
				Ticker: r.Ticker, TxCode: r.TxCode, BuySellOrder: r.BuySellOrder,
				TxDateMin: r.TxDate, TxDateMax: r.TxDate,
			}
			groups[k] = g
		}
		addIf(&g.AmtSum, r.Amt)
		addIf(&g.ShareSum, r.TxShare)
		minMaxIf(&g.PreShareMin, &g.PreShareMax, r.PreShare)
		minMaxIf(&g.TxPriceMin, &g.TxPriceMax, r.TxPrice)
		if r.TxDate.Before(g.TxDateMin) {
			g.TxDateMin = r.TxDate
		}
		if r.TxDate.After(g.TxDateMax) {
			g.TxDateMax = r.TxDate
		}
		if r.Sector != nil && (g.Sector == nil || *r.Sector > *g.Sector) {
			g.Sector = r.Sector
		}
	}

	out := make([]InsiderRow, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BuySellOrder != out[j].BuySellOrder {
			return out[i].BuySellOrder > out[j].BuySellOrder
		}
		if out[i].AmtSum != out[j].AmtSum {
			return out[i].AmtSum > out[j].AmtSum
		}
		if out[i].Ticker != out[j].Ticker {
			return out[i].Ticker < out[j].Ticker
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// addIf accumulates an optional value; missing values are skipped, not
// treated as zero rows.
func addIf(sum *float64, v *float64) {
	if v != nil {
		*sum += *v
	}
}

func minMaxIf(minDst, maxDst **float64, v *float64) {
	if v == nil {
		return
	}
	if *minDst == nil || *v < **minDst {
		f := *v
		*minDst = &f
	}
	if *maxDst == nil || *v > **maxDst {
		f := *v
		*maxDst = &f
	}
}
