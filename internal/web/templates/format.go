package templates

import (
	"fmt"
	"strconv"

	"github.com/JonMunkholm/chartparse/internal/core"
	"github.com/a-h/templ"
)

// maxPreviewRows caps the rows rendered in the result table.
const maxPreviewRows = 100

func summaryLine(bundle *core.ChartBundle) string {
	return fmt.Sprintf("%d rows, %d charted series", len(bundle.RawRecords), len(bundle.Datasets))
}

func previewRows(records []core.Record) []core.Record {
	if len(records) > maxPreviewRows {
		return records[:maxPreviewRows]
	}
	return records
}

func moreRowsNote(records []core.Record) string {
	return fmt.Sprintf("%d more rows not shown", len(records)-maxPreviewRows)
}

// swatchStyle colors a series swatch. Palette colors are constants, so
// the declaration skips CSS sanitization.
func swatchStyle(color string) templ.SafeCSS {
	return templ.SafeCSS("background-color: " + color)
}

func formatValue(v any) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	}
	return ""
}
