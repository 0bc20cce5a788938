package edgar

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const submission = `<SEC-DOCUMENT>0000320193-24-000019.txt : 20240221
<SEC-HEADER>0000320193-24-000019.hdr.sgml : 20240221
</SEC-HEADER>
<DOCUMENT>
<TYPE>4
<SEQUENCE>1
<FILENAME>wk-form4_1708555887.xml
<DESCRIPTION>FORM 4
<TEXT>
<XML>
<?xml version="1.0"?>
<ownershipDocument></ownershipDocument>
</XML>
</TEXT>
</DOCUMENT>
<DOCUMENT>
<TYPE>EX-24
<SEQUENCE>2
<TEXT>
power of attorney
</TEXT>
</DOCUMENT>
</SEC-DOCUMENT>
`

func TestExtractDocuments(t *testing.T) {
	dir := t.TempDir()
	txtPath := filepath.Join(dir, "0000320193-24-000019.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte(submission), 0644))

	require.NoError(t, ExtractDocuments(txtPath))

	// Destination folder carries the accession number.
	destDir := filepath.Join(dir, "0000320193-24-000019")
	xml, err := os.ReadFile(filepath.Join(destDir, "wk-form4_1708555887.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(xml), "<ownershipDocument>")
	assert.Contains(t, string(xml), "<XML>")

	// Second document has no FILENAME header, gets a sequence name.
	body, err := os.ReadFile(filepath.Join(destDir, "document_2.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(body), "power of attorney")
}

func TestExtractDocumentsIdempotent(t *testing.T) {
	dir := t.TempDir()
	txtPath := filepath.Join(dir, "acc-1.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte(submission), 0644))

	require.NoError(t, ExtractDocuments(txtPath))
	require.NoError(t, ExtractDocuments(txtPath))

	files, err := os.ReadDir(filepath.Join(dir, "acc-1"))
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestTagValue(t *testing.T) {
	doc := "<TYPE>4\n<FILENAME>form4.xml\n<TEXT>\nbody\n</TEXT>"
	assert.Equal(t, "form4.xml", tagValue(doc, "FILENAME"))
	assert.Equal(t, "4", tagValue(doc, "TYPE"))
	assert.Equal(t, "", tagValue(doc, "DESCRIPTION"))
}
