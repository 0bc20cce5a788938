// Package enrich derives the report columns from raw Form 4 records and
// joins them against the S&P 500 reference table.
package enrich

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jwangus/insider-trading/internal/models"
	"github.com/jwangus/insider-trading/internal/sp500"
)

// UnsupportedCodeError signals that a row with a transaction code outside
// {P, S} reached the pre-share computation. The purchase/sale filter should
// make this impossible, so it is fatal to the run rather than a data issue.
type UnsupportedCodeError struct {
	Code string
}

func (e *UnsupportedCodeError) Error() string {
	return fmt.Sprintf("cannot handle tx_code: %q", e.Code)
}

// Enrich keeps purchase ("P") and sale ("S") rows, computes the derived
// columns and left-joins the reference table by CIK. Rows with no reference
// match keep nil sector fields; they are never dropped.
func Enrich(rows []models.RawTransaction, ref sp500.Table) ([]models.EnrichedTransaction, error) {
	out := make([]models.EnrichedTransaction, 0, len(rows))
	for _, r := range rows {
		if r.TxCode != "P" && r.TxCode != "S" {
			continue
		}
		cik, err := strconv.Atoi(strings.TrimSpace(r.CIK))
		if err != nil {
			return nil, fmt.Errorf("invalid issuer CIK %q: %w", r.CIK, err)
		}
		preShare, err := PreShare(r.TxCode, r.SharePostTx, r.TxShare)
		if err != nil {
			return nil, err
		}
		e := models.EnrichedTransaction{
			CIK:          cik,
			Ticker:       r.Ticker,
			Name:         r.Name,
			Relationship: r.Relationship,
			Title:        r.Title,
			TxDate:       r.TxDate,
			TxCode:       r.TxCode,
			TxShare:      r.TxShare,
			TxPrice:      r.TxPrice,
			SharePostTx:  r.SharePostTx,
			Amt:          amount(r.TxShare, r.TxPrice),
			PreShare:     preShare,
			BuySellOrder: buySellOrder(r.TxCode),
		}
		if c, ok := ref.Lookup(cik); ok {
			sector, added := c.Sector, c.DateAdded
			e.Sector = &sector
			e.DateAdded = &added
		}
		out = append(out, e)
	}
	return out, nil
}

// PreShare computes the share balance before the transaction: a purchase
// increased holdings, a sale decreased them. Nil when either input was
// missing in the filing.
func PreShare(txCode string, sharePostTx, txShare *float64) (*float64, error) {
	switch txCode {
	case "P", "S":
	default:
		return nil, &UnsupportedCodeError{Code: txCode}
	}
	if sharePostTx == nil || txShare == nil {
		return nil, nil
	}
	var pre float64
	if txCode == "P" {
		pre = *sharePostTx - *txShare
	} else {
		pre = *sharePostTx + *txShare
	}
	return &pre, nil
}

func amount(txShare, txPrice *float64) *float64 {
	if txShare == nil || txPrice == nil {
		return nil
	}
	amt := *txShare * *txPrice
	return &amt
}

// buySellOrder is the primary sort key of both summaries: buys before sells.
func buySellOrder(txCode string) int {
	if txCode == "P" {
		return 1
	}
	return 0
}
