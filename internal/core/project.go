package core

import (
	"fmt"
)

// NoNumericMessage is the message of a bundle without datasets.
const NoNumericMessage = "No numeric data found for charting."

// palette holds muted chart colors: slate, blue, emerald, amber.
var palette = [...]string{
	"rgba(71, 85, 105, 0.8)",
	"rgba(59, 130, 246, 0.8)",
	"rgba(16, 185, 129, 0.8)",
	"rgba(245, 158, 11, 0.8)",
}

// ColorFor returns the palette color for the dataset at position i.
func ColorFor(i int) string {
	return palette[i%len(palette)]
}

// Project builds a ChartBundle from a table using the default label and
// dataset selection.
func Project(t *Table) *ChartBundle {
	// Only explicit options can fail; the zero value never does.
	bundle, _ := ProjectWith(t, ProjectOptions{})
	return bundle
}

// ProjectWith builds a ChartBundle, honoring label and dataset overrides.
//
// Labels come from opts.LabelColumn, else the first non-numeric column,
// else the 0-based row index. Datasets cover opts.ValueColumns, else every
// numeric column, in order. A table without numeric columns yields only
// Message and RawRecords.
func ProjectWith(t *Table, opts ProjectOptions) (*ChartBundle, error) {
	numeric, other := t.Partition()
	records := t.Records()

	if len(numeric) == 0 {
		return &ChartBundle{
			Message:    NoNumericMessage,
			RawRecords: records,
		}, nil
	}

	labels, err := projectLabels(t, other, opts.LabelColumn)
	if err != nil {
		return nil, err
	}

	charted, err := selectValueColumns(t, numeric, opts.ValueColumns)
	if err != nil {
		return nil, err
	}

	datasets := make([]Dataset, len(charted))
	for i, col := range charted {
		color := ColorFor(i)
		datasets[i] = Dataset{
			Label:           col.Name,
			Data:            filledNumbers(col),
			BackgroundColor: color,
			BorderColor:     color,
			BorderWidth:     1,
		}
	}

	numericNames := make([]string, len(numeric))
	for i, col := range numeric {
		numericNames[i] = col.Name
	}

	return &ChartBundle{
		Labels:         labels,
		Datasets:       datasets,
		RawRecords:     records,
		AllColumns:     t.ColumnNames(),
		NumericColumns: numericNames,
	}, nil
}

func projectLabels(t *Table, other []*Column, name string) ([]any, error) {
	labels := make([]any, t.Rows())

	var source *Column
	switch {
	case name != "":
		col, ok := t.Column(name)
		if !ok {
			return nil, newError(KindInvalidOption, fmt.Sprintf("label column %q does not exist", name), nil)
		}
		source = col
	case len(other) > 0:
		source = other[0]
	}

	for i := range labels {
		if source == nil {
			labels[i] = i
			continue
		}
		labels[i] = source.Value(i)
	}
	return labels, nil
}

func selectValueColumns(t *Table, numeric []*Column, names []string) ([]*Column, error) {
	if len(names) == 0 {
		return numeric, nil
	}

	out := make([]*Column, 0, len(names))
	for _, name := range names {
		col, ok := t.Column(name)
		if !ok {
			return nil, newError(KindInvalidOption, fmt.Sprintf("value column %q does not exist", name), nil)
		}
		if !col.IsNumeric() {
			return nil, newError(KindInvalidOption, fmt.Sprintf("value column %q is not numeric", name), nil)
		}
		out = append(out, col)
	}
	return out, nil
}

// filledNumbers returns the column with absent cells as 0.
func filledNumbers(col *Column) []float64 {
	out := make([]float64, col.Len())
	for i := range out {
		if v, ok := col.Number(i); ok {
			out[i] = v
		}
	}
	return out
}
