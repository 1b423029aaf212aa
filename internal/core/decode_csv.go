package core

import (
	"encoding/csv"
	"strings"
)

// DecodeCSV parses comma-separated text with a header row.
//
// Data is read as UTF-8 and retried once as CP932. Every data row must
// have as many fields as the header; blank lines are skipped.
func DecodeCSV(data []byte) (*Table, error) {
	text, encoding, err := decodeText(data)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(NewBOMSkippingReader(strings.NewReader(text)))
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, newError(KindDecodeFailure, "malformed delimited text", err)
	}
	if len(records) == 0 {
		return nil, newError(KindNoData, "delimited text has no header", nil)
	}

	rows := make([][]Cell, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make([]Cell, len(record))
		for i, field := range record {
			row[i] = sourceCell(field)
		}
		rows = append(rows, row)
	}

	table, err := NewTable(records[0], rows)
	if err != nil {
		return nil, err
	}
	table.Encoding = encoding
	return table, nil
}
