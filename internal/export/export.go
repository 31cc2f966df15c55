// Package export names and inspects the spreadsheets produced by the
// adjustment list download button.
package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ListPrefix is the file prefix of the adjustment list export
const ListPrefix = "Inventory Adjustment List"

const stampLayout = "20060102_1504"

var (
	ErrUnexpectedFilename = errors.New("unexpected export filename")
	ErrEmptyWorkbook      = errors.New("export workbook is empty")
)

// Filename builds the expected export name for a download started at t
func Filename(prefix string, t time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", prefix, t.Format(stampLayout))
}

// MatchFilename checks name against every minute stamp between from and to.
// The download may cross a minute boundary, so both ends are accepted.
func MatchFilename(name, prefix string, from, to time.Time) error {
	if to.Before(from) {
		from, to = to, from
	}
	base := filepath.Base(name)
	for t := from.Truncate(time.Minute); !t.After(to); t = t.Add(time.Minute) {
		if base == Filename(prefix, t) {
			return nil
		}
	}
	return fmt.Errorf("%w: %q, want %s between %s and %s", ErrUnexpectedFilename, base,
		Filename(prefix, from), from.Format(stampLayout), to.Format(stampLayout))
}

// Workbook summarises a downloaded export
type Workbook struct {
	Sheets []string
	Header []string
	Rows   int
}

// Inspect opens the xlsx at path and reads the first sheet.
// Rows excludes the header row.
func Inspect(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open export: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyWorkbook
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %s is empty", ErrEmptyWorkbook, sheets[0])
	}

	wb := &Workbook{Sheets: sheets, Rows: len(rows) - 1}
	for _, cell := range rows[0] {
		wb.Header = append(wb.Header, strings.TrimSpace(cell))
	}
	return wb, nil
}
