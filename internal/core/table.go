package core

import (
	"fmt"
	"strings"
)

// NewTable builds a typed Table from a header and data rows.
//
// Rows shorter than the widest row are padded with absent cells. Rows
// wider than the header get generated column names. Blank header names
// become "Unnamed: <i>" and repeated names get a ".<n>" suffix.
// A table with no rows or no columns fails with KindNoData.
func NewTable(header []string, rows [][]Cell) (*Table, error) {
	width := len(header)
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	if len(rows) == 0 || width == 0 {
		return nil, newError(KindNoData, fmt.Sprintf("%d rows, %d columns", len(rows), width), nil)
	}

	names := normalizeHeader(header, width)

	cols := make([][]Cell, width)
	for c := range cols {
		cols[c] = make([]Cell, len(rows))
	}
	for r, row := range rows {
		for c := 0; c < width; c++ {
			if c < len(row) {
				cols[c][r] = row[c]
			}
		}
	}

	t := &Table{
		Columns: make([]Column, width),
		rows:    len(rows),
	}
	for c := range cols {
		t.Columns[c] = buildColumn(names[c], cols[c])
	}
	return t, nil
}

// normalizeHeader fills blank names and disambiguates repeated ones.
func normalizeHeader(header []string, width int) []string {
	names := make([]string, width)
	seen := make(map[string]int, width)

	for i := 0; i < width; i++ {
		name := ""
		if i < len(header) {
			name = header[i]
		}
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}

		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			candidate := fmt.Sprintf("%s.%d", name, n+1)
			for {
				if _, taken := seen[candidate]; !taken {
					break
				}
				seen[name]++
				candidate = fmt.Sprintf("%s.%d", name, seen[name])
			}
			name = candidate
		}
		seen[name] = 0
		names[i] = name
	}
	return names
}
