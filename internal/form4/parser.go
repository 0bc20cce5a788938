// Package form4 extracts insider transaction records from SEC Form 4
// filing documents.
package form4

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/antchfx/xmlquery"

	"github.com/jwangus/insider-trading/internal/models"
)

// MalformedFilingError marks a single filing whose content could not be
// parsed. It is contained at the batch boundary and never aborts a run.
type MalformedFilingError struct {
	Path string
	Err  error
}

func (e *MalformedFilingError) Error() string {
	return fmt.Sprintf("cannot parse filing %s: %v", e.Path, e.Err)
}

func (e *MalformedFilingError) Unwrap() error { return e.Err }

// truthy values accepted for the reportingOwnerRelationship boolean flags.
func isTrueFlag(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "1", "yes", "true", "y":
		return true
	}
	return false
}

// Parse reads one Form 4 document body and returns its non-derivative
// transaction rows. Entries without a transaction date or code are skipped;
// a filing with no qualifying entries yields an empty slice and no error.
func Parse(content string) ([]models.RawTransaction, error) {
	doc, err := xmlquery.Parse(strings.NewReader(stripEnvelope(content)))
	if err != nil {
		return nil, err
	}

	cik, err := requireText(doc, "//issuer/issuerCik")
	if err != nil {
		return nil, err
	}
	ticker, err := requireText(doc, "//issuer/issuerTradingSymbol")
	if err != nil {
		return nil, err
	}
	name, err := requireText(doc, "//reportingOwner/reportingOwnerId/rptOwnerName")
	if err != nil {
		return nil, err
	}
	relationship, title := ownerRelationship(doc)

	table := xmlquery.FindOne(doc, "//nonDerivativeTable")
	if table == nil {
		return nil, nil
	}

	var rows []models.RawTransaction
	for entry := table.FirstChild; entry != nil; entry = entry.NextSibling {
		if entry.Type != xmlquery.ElementNode {
			continue
		}
		dateNode := xmlquery.FindOne(entry, "transactionDate/value")
		codeNode := xmlquery.FindOne(entry, "transactionCoding/transactionCode")
		if dateNode == nil || codeNode == nil {
			// Holdings and incomplete entries carry neither; not an error.
			continue
		}
		txDate, err := parseDate(dateNode.InnerText())
		if err != nil {
			return nil, err
		}
		txShare, err := optionalFloat(entry, "transactionAmounts/transactionShares/value")
		if err != nil {
			return nil, err
		}
		txPrice, err := optionalFloat(entry, "transactionAmounts/transactionPricePerShare/value")
		if err != nil {
			return nil, err
		}
		postTx, err := optionalFloat(entry, "postTransactionAmounts/sharesOwnedFollowingTransaction/value")
		if err != nil {
			return nil, err
		}
		rows = append(rows, models.RawTransaction{
			CIK:          cik,
			Ticker:       ticker,
			Name:         name,
			Relationship: relationship,
			Title:        title,
			TxDate:       txDate,
			TxCode:       strings.TrimSpace(codeNode.InnerText()),
			TxShare:      txShare,
			TxPrice:      txPrice,
			SharePostTx:  postTx,
		})
	}
	return rows, nil
}

// stripEnvelope drops the literal <XML>/</XML> wrapper lines that EDGAR
// embeds around the ownership document.
func stripEnvelope(content string) string {
	lines := strings.Split(content, "\n")
	kept := lines[:0]
	for _, l := range lines {
		t := strings.TrimSpace(l)
		if strings.HasPrefix(t, "<XML>") || strings.HasPrefix(t, "</XML>") {
			continue
		}
		kept = append(kept, l)
	}
	return strings.Join(kept, "\n")
}

// ownerRelationship scans the owner-relationship element in document order.
// The first true boolean flag, tag prefix "is" stripped, becomes the
// relationship; an officerTitle child sets the title wherever it appears.
func ownerRelationship(doc *xmlquery.Node) (relationship, title string) {
	rel := xmlquery.FindOne(doc, "//reportingOwner/reportingOwnerRelationship")
	if rel == nil {
		return "", ""
	}
	for c := rel.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		if strings.HasPrefix(c.Data, "is") && isTrueFlag(c.InnerText()) {
			if relationship == "" {
				relationship = strings.TrimPrefix(c.Data, "is")
			}
		} else if c.Data == "officerTitle" {
			title = strings.TrimSpace(c.InnerText())
		}
	}
	return relationship, title
}

func requireText(doc *xmlquery.Node, path string) (string, error) {
	n := xmlquery.FindOne(doc, path)
	if n == nil {
		return "", fmt.Errorf("missing element %s", path)
	}
	return strings.TrimSpace(n.InnerText()), nil
}

// parseDate keeps the date portion only; trailing time/zone text is
// discarded.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) < 10 {
		return time.Time{}, fmt.Errorf("invalid transaction date %q", s)
	}
	d, err := time.Parse("2006-01-02", s[:10])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid transaction date %q: %w", s, err)
	}
	return d, nil
}

func optionalFloat(entry *xmlquery.Node, path string) (*float64, error) {
	n := xmlquery.FindOne(entry, path)
	if n == nil {
		return nil, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(n.InnerText()), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid numeric value at %s: %w", path, err)
	}
	return &f, nil
}
