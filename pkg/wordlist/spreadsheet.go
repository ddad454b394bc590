package wordlist

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SpreadsheetOptions selects where ReadSpreadsheet looks for entries.
type SpreadsheetOptions struct {
	// Sheet to read; empty means the first sheet of the workbook.
	Sheet string
	// SkipHeader drops the first row.
	SkipHeader bool
}

// ReadSpreadsheet imports entries from an .xlsx workbook whose first three columns
// hold word, translation and part of speech. Rows with an empty word or fewer than
// three cells are reported the same way Parse reports malformed lines.
func ReadSpreadsheet(path string, opts SpreadsheetOptions) (ParseResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return ParseResult{}, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return ParseResult{}, fmt.Errorf("spreadsheet %s has no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return ParseResult{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	res := ParseResult{Entries: []Entry{}}
	for i, row := range rows {
		if i == 0 && opts.SkipHeader {
			continue
		}
		if isBlankRow(row) {
			continue
		}
		if len(row) < MinFields || strings.TrimSpace(row[0]) == "" {
			res.Dropped = append(res.Dropped, Malformed{Line: i + 1, Text: strings.Join(row, ",")})
			continue
		}
		res.Entries = append(res.Entries, Entry{
			Word:         strings.TrimSpace(row[0]),
			Translation:  strings.TrimSpace(row[1]),
			PartOfSpeech: strings.TrimSpace(row[2]),
		})
	}
	return res, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
