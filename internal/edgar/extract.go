package edgar

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExtractDocuments unpacks an EDGAR full-submission .txt into a folder
// named after the accession number (the file name minus extension), one
// file per embedded <DOCUMENT>. Re-running overwrites, so extraction is
// idempotent.
func ExtractDocuments(txtPath string) error {
	content, err := os.ReadFile(txtPath)
	if err != nil {
		return err
	}
	destDir := strings.TrimSuffix(txtPath, filepath.Ext(txtPath))
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return err
	}

	docs := strings.Split(string(content), "<DOCUMENT>")
	seq := 0
	for _, doc := range docs[1:] {
		if i := strings.Index(doc, "</DOCUMENT>"); i >= 0 {
			doc = doc[:i]
		}
		seq++
		name := tagValue(doc, "FILENAME")
		if name == "" {
			name = fmt.Sprintf("document_%d.txt", seq)
		}
		body := textSection(doc)
		if body == "" {
			continue
		}
		if err := os.WriteFile(filepath.Join(destDir, filepath.Base(name)), []byte(body), 0644); err != nil {
			return err
		}
	}
	return nil
}

// tagValue reads a header value of the SGML form "<TAG>value" terminated by
// end of line.
func tagValue(doc, tag string) string {
	marker := "<" + tag + ">"
	i := strings.Index(doc, marker)
	if i < 0 {
		return ""
	}
	rest := doc[i+len(marker):]
	if j := strings.IndexByte(rest, '\n'); j >= 0 {
		rest = rest[:j]
	}
	return strings.TrimSpace(rest)
}

// textSection returns the document body between <TEXT> and </TEXT>.
func textSection(doc string) string {
	i := strings.Index(doc, "<TEXT>")
	if i < 0 {
		return ""
	}
	body := doc[i+len("<TEXT>"):]
	if j := strings.Index(body, "</TEXT>"); j >= 0 {
		body = body[:j]
	}
	return strings.TrimLeft(body, "\n")
}
