package sp500

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const constituentsCSV = `Symbol,Security,GICS Sector,GICS Sub-Industry,Headquarters Location,Date added,CIK,Founded
MMM,3M,Industrials,Industrial Conglomerates,"Saint Paul, Minnesota",1957-03-04,66740,1902
AAPL,Apple Inc.,Information Technology,"Technology Hardware, Storage & Peripherals","Cupertino, California",1982-11-30,320193,1977
`

func TestParseConstituents(t *testing.T) {
	table, err := parse(strings.NewReader(constituentsCSV))
	require.NoError(t, err)
	require.Len(t, table, 2)

	c, ok := table.Lookup(320193)
	require.True(t, ok)
	assert.Equal(t, "AAPL", c.Symbol)
	assert.Equal(t, "Information Technology", c.Sector)
	assert.Equal(t, "1982-11-30", c.DateAdded)

	_, ok = table.Lookup(999999)
	assert.False(t, ok)
}

func TestParseLegacyDateHeader(t *testing.T) {
	csv := "CIK,GICS Sector,Date first added\n66740,Industrials,1957-03-04\n"
	table, err := parse(strings.NewReader(csv))
	require.NoError(t, err)
	c, ok := table.Lookup(66740)
	require.True(t, ok)
	assert.Equal(t, "1957-03-04", c.DateAdded)
}

func TestParseMissingColumns(t *testing.T) {
	_, err := parse(strings.NewReader("Symbol,Security\nMMM,3M\n"))
	assert.Error(t, err)
}

func TestParseSkipsBadCIKRows(t *testing.T) {
	csv := "CIK,GICS Sector\nnot-a-number,Energy\n66740,Industrials\n"
	table, err := parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Len(t, table, 1)
}

func TestLoadLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "constituents.csv")
	require.NoError(t, os.WriteFile(path, []byte(constituentsCSV), 0644))

	table, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, table, 2)
}
