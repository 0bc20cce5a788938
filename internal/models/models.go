package models

import "time"

// RawTransaction is one non-derivative transaction line extracted from a
// Form 4 filing, plus the filing-level fields shared by every line.
// Optional XML fields stay nil when the source node is absent.
type RawTransaction struct {
	CIK          string
	Ticker       string
	Name         string
	Relationship string
	Title        string
	TxDate       time.Time
	TxCode       string
	TxShare      *float64
	TxPrice      *float64
	SharePostTx  *float64
}

// EnrichedTransaction is a purchase/sale row with derived columns and the
// S&P 500 reference join applied. Amt and PreShare are nil when the inputs
// they derive from were missing in the filing.
type EnrichedTransaction struct {
	CIK          int
	Ticker       string
	Name         string
	Relationship string
	Title        string
	TxDate       time.Time
	TxCode       string
	TxShare      *float64
	TxPrice      *float64
	SharePostTx  *float64

	Amt          *float64
	PreShare     *float64
	BuySellOrder int

	Sector    *string
	DateAdded *string
}
