package edgar

import (
	"fmt"
	"strings"
)

// IndexEntry is one line of an EDGAR master daily index.
type IndexEntry struct {
	CIK         string
	CompanyName string
	FormType    string
	DateFiled   string
	FileName    string // archive-relative path to the full submission .txt
}

// ParseMasterIndex reads the pipe-delimited master.idx format. Header lines
// run until a dashed separator; each data line is
// CIK|Company Name|Form Type|Date Filed|File Name.
func ParseMasterIndex(content string) ([]IndexEntry, error) {
	lines := strings.Split(content, "\n")
	start := -1
	for i, l := range lines {
		if strings.HasPrefix(strings.TrimSpace(l), "-----") {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil, fmt.Errorf("master index: separator line not found")
	}
	var entries []IndexEntry
	for _, l := range lines[start:] {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		fields := strings.Split(l, "|")
		if len(fields) != 5 {
			continue
		}
		entries = append(entries, IndexEntry{
			CIK:         strings.TrimSpace(fields[0]),
			CompanyName: strings.TrimSpace(fields[1]),
			FormType:    strings.TrimSpace(fields[2]),
			DateFiled:   strings.TrimSpace(fields[3]),
			FileName:    strings.TrimSpace(fields[4]),
		})
	}
	return entries, nil
}
