package summary

import (
	"fmt"
	"strconv"
	"strings"
)

// Words kept as-is when capitalizing names and officer titles.
var doNotCapitalize = map[string]bool{
	"VP": true, "EVP": true, "CEO": true, "II": true,
	"III": true, "CFO": true, "SVP": true, "C.E.O": true, "CCO": true,
}

var titleAbbreviations = strings.NewReplacer(
	"Chief Financial Officer", "CFO",
	"Chief Executive Officer", "CEO",
)

// FormatCIK wraps a CIK in a link to the filer's EDGAR transaction history.
func FormatCIK(cik int) string {
	return fmt.Sprintf(`<a href="https://www.sec.gov/cgi-bin/own-disp?action=getissuer&CIK=%d">%d</a>`, cik, cik)
}

// FormatTicker wraps a trading symbol in a Yahoo Finance quote link.
func FormatTicker(t string) string {
	return fmt.Sprintf(`<a href="https://finance.yahoo.com/quote/%s">%s</a>`, t, t)
}

// FormatBuySell maps transaction codes to the report labels.
func FormatBuySell(code string) string {
	switch code {
	case "P":
		return "Buy"
	case "S":
		return "Sell"
	}
	return "Unknown"
}

// CapitalizeWords title-cases each word except known abbreviations, which
// filer names tend to carry in all caps.
func CapitalizeWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if doNotCapitalize[w] {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// NameTitleCell renders "Name/Relationship/Title" with common officer
// titles abbreviated, wrapped in the insider's EDGAR link.
func (r InsiderRow) NameTitleCell() string {
	text := strings.Join([]string{
		CapitalizeWords(r.Name),
		r.Relationship,
		CapitalizeWords(r.Title),
	}, "/")
	text = titleAbbreviations.Replace(text)
	return fmt.Sprintf(`<a href="https://www.sec.gov/cgi-bin/own-disp?action=getissuer&CIK=%d">%s</a>`, r.CIK, text)
}

// SectorCell renders the joined sector, with a placeholder for companies
// outside the index.
func (r InsiderRow) SectorCell() string {
	if r.Sector == nil {
		return "Not in SP500"
	}
	return *r.Sector
}

// ChangeInPosition shows the aggregated trade as a percentage of the
// holding before the activity. The base is the smaller pre-purchase balance
// for buys and the larger pre-sale balance for sells; a zero base means the
// position is new.
func (r InsiderRow) ChangeInPosition() string {
	var base *float64
	if r.TxCode == "P" {
		base = r.PreShareMin
	} else {
		base = r.PreShareMax
	}
	if base == nil {
		return ""
	}
	if *base == 0 {
		return "New"
	}
	return Commaf(r.ShareSum / *base * 100, 1) + "%"
}

// TradeDateRange shows "MM-DD" for single-day activity, otherwise
// "MM-DD/MM-DD".
func (r InsiderRow) TradeDateRange() string {
	dMin := r.TxDateMin.Format("01-02")
	dMax := r.TxDateMax.Format("01-02")
	if dMin == dMax {
		return dMin
	}
	return dMin + "/" + dMax
}

// AveragePrice is the dollar sum over the share sum, to cents.
func AveragePrice(amtSum, shareSum float64) string {
	return Commaf(amtSum/shareSum, 2)
}

// Commaf formats with a fixed number of decimals and thousands separators
// in the integer part ("1,234,567.8").
func Commaf(v float64, decimals int) string {
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	if len(intPart) > 3 {
		var b strings.Builder
		lead := len(intPart) % 3
		if lead > 0 {
			b.WriteString(intPart[:lead])
		}
		for i := lead; i < len(intPart); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(intPart[i : i+3])
		}
		intPart = b.String()
	}
	out := intPart + frac
	if neg {
		out = "-" + out
	}
	return out
}
