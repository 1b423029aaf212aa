package core

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// DecodeXLSX reads the first sheet of a workbook. The first non-empty row
// is the header. Cell values are read unformatted so numbers keep their
// stored precision; cells styled as dates or times become ISO 8601 text,
// the same text a CSV export of the sheet would carry.
func DecodeXLSX(data []byte) (*Table, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, newError(KindDecodeFailure, "failed to open workbook", err)
	}
	defer func() {
		_ = file.Close()
	}()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, newError(KindNoData, "workbook has no sheets", nil)
	}

	sheet := sheets[0]
	grid, err := file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, newError(KindDecodeFailure, fmt.Sprintf("failed to read sheet %q", sheet), err)
	}

	// Skip leading empty rows
	start := 0
	for start < len(grid) && len(grid[start]) == 0 {
		start++
	}
	if start == len(grid) {
		return nil, newError(KindNoData, fmt.Sprintf("sheet %q is empty", sheet), nil)
	}

	dates := newDateStyles(file, sheet)
	rows := make([][]Cell, 0, len(grid)-start-1)
	for r, values := range grid[start+1:] {
		sheetRow := start + r + 2 // 1-based, below the header
		row := make([]Cell, len(values))
		for i, v := range values {
			row[i] = dates.cell(i+1, sheetRow, v)
		}
		rows = append(rows, row)
	}

	return NewTable(grid[start], rows)
}

// dateStyles recognizes numeric cells whose number format shows a date or
// time. Excel stores those as day serials, indistinguishable from plain
// numbers without the style.
type dateStyles struct {
	file     *excelize.File
	sheet    string
	date1904 bool
	known    map[int]bool // style index -> date format
}

func newDateStyles(file *excelize.File, sheet string) *dateStyles {
	d := &dateStyles{file: file, sheet: sheet, known: make(map[int]bool)}
	if props, err := file.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		d.date1904 = *props.Date1904
	}
	return d
}

// cell converts one raw value at (col, row), both 1-based.
func (d *dateStyles) cell(col, row int, raw string) Cell {
	serial, ok := ParseNumber(raw)
	if !ok || !d.isDate(col, row) {
		return sourceCell(raw)
	}
	t, err := excelize.ExcelDateToTime(serial, d.date1904)
	if err != nil {
		return sourceCell(raw)
	}
	return TextCell(formatSerialTime(serial, t))
}

func (d *dateStyles) isDate(col, row int) bool {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return false
	}
	idx, err := d.file.GetCellStyle(d.sheet, name)
	if err != nil {
		return false
	}
	if isDate, ok := d.known[idx]; ok {
		return isDate
	}
	style, err := d.file.GetStyle(idx)
	isDate := err == nil && isDateNumFmt(style)
	d.known[idx] = isDate
	return isDate
}

// formatSerialTime renders a date as YYYY-MM-DD, a date with a time of day
// as YYYY-MM-DDTHH:MM:SS, and a bare time (serial below one day) as HH:MM:SS.
func formatSerialTime(serial float64, t time.Time) string {
	switch {
	case serial < 1:
		return t.Format(time.TimeOnly)
	case t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0:
		return t.Format(time.DateOnly)
	}
	return t.Format("2006-01-02T15:04:05")
}

// isDateNumFmt reports whether a cell style formats numbers as a date,
// time or duration.
func isDateNumFmt(style *excelize.Style) bool {
	if style.CustomNumFmt != nil {
		return isDateFormatCode(*style.CustomNumFmt)
	}
	switch id := style.NumFmt; {
	case id >= 14 && id <= 22, id >= 45 && id <= 47:
		return true
	case id >= 27 && id <= 36, id >= 50 && id <= 58:
		// Locale-specific (CJK) date formats
		return true
	}
	return false
}

// isDateFormatCode inspects a custom format code for date or time tokens,
// ignoring quoted literals, bracketed sections such as [$-409] or [Red],
// and escaped, padding and fill characters.
func isDateFormatCode(code string) bool {
	code = strings.ToLower(code)
	for i := 0; i < len(code); i++ {
		switch code[i] {
		case '"':
			end := strings.IndexByte(code[i+1:], '"')
			if end < 0 {
				return false
			}
			i += end + 1
		case '[':
			end := strings.IndexByte(code[i+1:], ']')
			if end < 0 {
				return false
			}
			if isElapsedToken(code[i+1 : i+1+end]) {
				return true
			}
			i += end + 1
		case '\\', '_', '*':
			i++
		case 'y', 'd', 'h', 'm', 's':
			return true
		}
	}
	return false
}

// isElapsedToken matches the bracketed duration tokens [h], [mm], [ss].
func isElapsedToken(s string) bool {
	if s == "" {
		return false
	}
	return strings.Trim(s, "h") == "" || strings.Trim(s, "m") == "" || strings.Trim(s, "s") == ""
}
