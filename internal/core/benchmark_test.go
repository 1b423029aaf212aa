package core

import (
	"fmt"
	"strings"
	"testing"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// ============================================================================
// Fixtures
// ============================================================================

// benchCSV builds a delimited table with a label column and numeric columns.
func benchCSV(rows, numericCols int) string {
	var b strings.Builder
	b.WriteString("label")
	for c := 0; c < numericCols; c++ {
		fmt.Fprintf(&b, ",v%d", c)
	}
	b.WriteByte('\n')
	for r := 0; r < rows; r++ {
		fmt.Fprintf(&b, "row%d", r)
		for c := 0; c < numericCols; c++ {
			if (r+c)%17 == 0 {
				b.WriteString(",NA")
				continue
			}
			fmt.Fprintf(&b, ",%d.%d", r*c, c)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// benchJSON builds the same shape as an array of row objects.
func benchJSON(rows, numericCols int) string {
	var b strings.Builder
	b.WriteByte('[')
	for r := 0; r < rows; r++ {
		if r > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, `{"label":"row%d"`, r)
		for c := 0; c < numericCols; c++ {
			fmt.Fprintf(&b, `,"v%d":%d.%d`, c, r*c, c)
		}
		b.WriteByte('}')
	}
	b.WriteByte(']')
	return b.String()
}

// ============================================================================
// Conversion Benchmarks
// ============================================================================

// BenchmarkParseNumber covers the per-cell hot path of column inference.
func BenchmarkParseNumber(b *testing.B) {
	testCases := []string{
		"123",
		"-456.78",
		"1e6",
		"  999.99  ",
		"abc",
		"1,234",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, tc := range testCases {
			ParseNumber(tc)
		}
	}
}

// ============================================================================
// Decode Benchmarks
// ============================================================================

func BenchmarkDecodeCSV(b *testing.B) {
	for _, rows := range []int{100, 10000} {
		data := []byte(benchCSV(rows, 8))
		b.Run(fmt.Sprintf("rows=%d", rows), func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := DecodeCSV(data); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkDecodeCSV_CP932 measures the fallback path: a failed UTF-8
// check followed by a Shift_JIS transform.
func BenchmarkDecodeCSV_CP932(b *testing.B) {
	data, _, err := transform.Bytes(japanese.ShiftJIS.NewEncoder(), []byte(strings.ReplaceAll(benchCSV(1000, 4), "row", "行")))
	if err != nil {
		b.Fatal(err)
	}

	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := DecodeCSV(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecodeJSON(b *testing.B) {
	data := []byte(benchJSON(10000, 8))

	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := DecodeJSON(data); err != nil {
			b.Fatal(err)
		}
	}
}

// ============================================================================
// Projection Benchmarks
// ============================================================================

func BenchmarkProject(b *testing.B) {
	table, err := DecodeCSV([]byte(benchCSV(10000, 8)))
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Project(table)
	}
}
