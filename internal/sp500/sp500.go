package sp500

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jwangus/insider-trading/internal/cache"
	"github.com/jwangus/insider-trading/internal/httpclient"
)

const csvURL = "https://raw.githubusercontent.com/datasets/s-and-p-500-companies/master/data/constituents.csv"

const cacheName = "sp500_constituents.csv"

// Company is one S&P 500 constituent, keyed by the issuer CIK.
type Company struct {
	CIK       int
	Symbol    string
	Sector    string
	DateAdded string
}

// Table maps issuer CIK to constituent data for the reference left join.
type Table map[int]Company

// Lookup returns the constituent for a CIK, if the company is an index
// member.
func (t Table) Lookup(cik int) (Company, bool) {
	c, ok := t[cik]
	return c, ok
}

// Load reads the constituents table from a local CSV, or fetches the public
// dataset (with a 24h disk cache) when no path is configured.
func Load(path string) (Table, error) {
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return parse(f)
	}
	return loadRemote()
}

func loadRemote() (Table, error) {
	if body, ok := cache.Read(cacheName); ok {
		return parse(strings.NewReader(string(body)))
	}
	resp, err := httpclient.Default.Get(csvURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("constituents fetch: status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	t, err := parse(strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}
	cache.Write(cacheName, body)
	return t, nil
}

// parse scans the header row for the columns we need. Header names vary
// between dataset versions ("Date added" vs "Date first added"), so columns
// are located by name, not position.
func parse(r io.Reader) (Table, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("constituents CSV has no data rows")
	}
	cikIdx, symIdx, sectorIdx, addedIdx := -1, -1, -1, -1
	for i, h := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "cik":
			cikIdx = i
		case "symbol":
			symIdx = i
		case "gics sector":
			sectorIdx = i
		case "date added", "date first added":
			addedIdx = i
		}
	}
	if cikIdx < 0 || sectorIdx < 0 {
		return nil, fmt.Errorf("constituents CSV missing CIK or GICS Sector column")
	}
	table := make(Table)
	for _, row := range rows[1:] {
		if cikIdx >= len(row) {
			continue
		}
		cik, err := strconv.Atoi(strings.TrimSpace(row[cikIdx]))
		if err != nil {
			continue
		}
		c := Company{CIK: cik}
		if symIdx >= 0 && symIdx < len(row) {
			c.Symbol = strings.TrimSpace(row[symIdx])
		}
		if sectorIdx < len(row) {
			c.Sector = strings.TrimSpace(row[sectorIdx])
		}
		if addedIdx >= 0 && addedIdx < len(row) {
			c.DateAdded = strings.TrimSpace(row[addedIdx])
		}
		if _, dup := table[cik]; !dup {
			table[cik] = c
		}
	}
	return table, nil
}
