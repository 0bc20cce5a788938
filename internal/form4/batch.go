package form4

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jwangus/insider-trading/internal/logger"
	"github.com/jwangus/insider-trading/internal/models"
)

// Diagnostic records one filing that failed to parse during a batch.
type Diagnostic struct {
	Path string
	Err  error
}

// FindFilingFiles walks the report-date folder and returns every file with
// the given extension (no leading dot).
func FindFilingFiles(dir, ext string) ([]string, error) {
	suffix := "." + ext
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), suffix) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// IsForm4Document reports whether a file path signals a Form 4 primary
// document. EDGAR names these inconsistently; "form4" and "doc4" both occur.
func IsForm4Document(path string) bool {
	p := strings.ToLower(path)
	return strings.Contains(p, "form4") || strings.Contains(p, "doc4")
}

// ProcessBatch parses each logical filing in the batch exactly once and
// returns the merged record set.
//
// The same filing is often indexed under both the owner's and the issuer's
// CIK, so paths are deduplicated by the name of their immediate parent
// directory (the accession folder). Paths are sorted first so "first
// occurrence wins" does not depend on filesystem traversal order. Files
// that fail to parse become diagnostics; the batch continues.
func ProcessBatch(paths []string, log *logger.Entry) ([]models.RawTransaction, []Diagnostic) {
	sorted := make([]string, len(paths))
	copy(sorted, paths)
	sort.Strings(sorted)

	var records []models.RawTransaction
	var diags []Diagnostic
	folderSeen := make(map[string]bool)
	for _, path := range sorted {
		folder := filepath.Base(filepath.Dir(path))
		if folderSeen[folder] {
			continue
		}
		folderSeen[folder] = true

		rows, err := parseFile(path)
		if err != nil {
			mfe := &MalformedFilingError{Path: path, Err: err}
			diags = append(diags, Diagnostic{Path: path, Err: mfe})
			log.WithError(mfe).Warn("cannot parse filing, skipping")
			continue
		}
		records = append(records, rows...)
	}
	return records, diags
}

func parseFile(path string) ([]models.RawTransaction, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(content))
}
