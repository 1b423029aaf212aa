package core

import (
	"bytes"
	"encoding/json"
)

// RawInput is the request-supplied data before format detection.
// A file (name + bytes) takes precedence over Text when both are set.
type RawInput struct {
	FileName string // Upload name, used to pick the decoder
	Data     []byte // File contents
	HasFile  bool   // True when a file part was supplied, even if empty
	Text     string // Free text of unspecified format
}

// FileInput builds a RawInput for an uploaded file.
func FileInput(name string, data []byte) RawInput {
	return RawInput{FileName: name, Data: data, HasFile: true}
}

// TextInput builds a RawInput for free text.
func TextInput(text string) RawInput {
	return RawInput{Text: text}
}

// Cell is one source value before column typing.
// Valid is false for absent cells, which are distinct from "" and "0".
type Cell struct {
	Text  string
	Valid bool
}

// TextCell returns a present cell.
func TextCell(s string) Cell {
	return Cell{Text: s, Valid: true}
}

// AbsentCell returns a missing cell.
func AbsentCell() Cell {
	return Cell{}
}

// ColumnKind is the inferred type of a column.
type ColumnKind int

const (
	ColumnText ColumnKind = iota
	ColumnNumeric
)

func (k ColumnKind) String() string {
	if k == ColumnNumeric {
		return "numeric"
	}
	return "text"
}

// Column is a named, typed sequence of cells.
//
// Exactly one of numbers/texts is populated, chosen by Kind when the
// table is built. present marks which positions hold a value.
type Column struct {
	Name    string
	Kind    ColumnKind
	numbers []float64
	texts   []string
	present []bool
}

// Len returns the number of cells in the column.
func (c *Column) Len() int { return len(c.present) }

// IsNumeric reports whether every present cell parsed as a number.
func (c *Column) IsNumeric() bool { return c.Kind == ColumnNumeric }

// Absent reports whether row i has no value.
func (c *Column) Absent(i int) bool { return !c.present[i] }

// Number returns the numeric value at row i. ok is false for absent cells
// and for text columns.
func (c *Column) Number(i int) (float64, bool) {
	if c.Kind != ColumnNumeric || !c.present[i] {
		return 0, false
	}
	return c.numbers[i], true
}

// Text returns the text value at row i. ok is false for absent cells
// and for numeric columns.
func (c *Column) Text(i int) (string, bool) {
	if c.Kind != ColumnText || !c.present[i] {
		return "", false
	}
	return c.texts[i], true
}

// Value returns the cell at row i as float64 or string, with "" for absent.
func (c *Column) Value(i int) any {
	if !c.present[i] {
		return ""
	}
	if c.Kind == ColumnNumeric {
		return c.numbers[i]
	}
	return c.texts[i]
}

// Table is a rectangular set of typed columns in source order.
type Table struct {
	Columns  []Column
	Encoding string // Text encoding the source was read with; empty for binary formats
	rows     int
}

// Rows returns the row count shared by all columns.
func (t *Table) Rows() int { return t.rows }

// ColumnNames returns the column names in source order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i := range t.Columns {
		names[i] = t.Columns[i].Name
	}
	return names
}

// Column looks up a column by exact name.
func (t *Table) Column(name string) (*Column, bool) {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// Partition splits the columns into numeric and non-numeric, keeping order.
func (t *Table) Partition() (numeric, other []*Column) {
	for i := range t.Columns {
		if t.Columns[i].IsNumeric() {
			numeric = append(numeric, &t.Columns[i])
		} else {
			other = append(other, &t.Columns[i])
		}
	}
	return numeric, other
}

// Records re-expresses the table as one ordered record per row.
func (t *Table) Records() []Record {
	names := t.ColumnNames()
	out := make([]Record, t.rows)
	for r := 0; r < t.rows; r++ {
		values := make([]any, len(t.Columns))
		for c := range t.Columns {
			values[c] = t.Columns[c].Value(r)
		}
		out[r] = Record{Columns: names, Values: values}
	}
	return out
}

// Record is one row keyed by column name. It marshals as a JSON object
// whose keys follow column order.
type Record struct {
	Columns []string
	Values  []any
}

// Get returns the value for a column name.
func (r Record) Get(name string) (any, bool) {
	for i, c := range r.Columns {
		if c == name {
			return r.Values[i], true
		}
	}
	return nil, false
}

// MarshalJSON implements json.Marshaler.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.Values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Dataset is one charted numeric column.
type Dataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor string    `json:"backgroundColor"`
	BorderColor     string    `json:"borderColor"`
	BorderWidth     int       `json:"borderWidth"`
}

// ChartBundle is the normalized output consumed by a charting client.
//
// When the table has no numeric column only Message and RawRecords are set.
type ChartBundle struct {
	Message        string    `json:"message,omitempty"`
	Labels         []any     `json:"labels,omitempty"`
	Datasets       []Dataset `json:"datasets,omitempty"`
	RawRecords     []Record  `json:"raw_data"`
	AllColumns     []string  `json:"all_columns,omitempty"`
	NumericColumns []string  `json:"numeric_columns,omitempty"`
}

// Chartable reports whether the bundle carries datasets.
func (b *ChartBundle) Chartable() bool {
	return len(b.Datasets) > 0
}

// ProjectOptions override the default label and dataset selection.
// Zero values keep the defaults.
type ProjectOptions struct {
	LabelColumn  string   // Column used for labels instead of the first non-numeric one
	ValueColumns []string // Numeric columns to chart, in this order
}
