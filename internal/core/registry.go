package core

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DecodeFunc turns raw bytes into a Table.
type DecodeFunc func(data []byte) (*Table, error)

// Format is one decode strategy and the file extensions that select it.
type Format struct {
	Name        string
	Extensions  []string   // Lowercase, with leading dot
	Decode      DecodeFunc // nil when the capability is not available
	Requires    string     // Capability reported when Decode is nil
	AcceptsText bool       // Tried, in registry order, for free text input
}

// Available reports whether the format can decode input.
func (f Format) Available() bool {
	return f.Decode != nil
}

// Unavailable returns a copy of f that fails with KindMissingCapability.
func (f Format) Unavailable() Format {
	f.Decode = nil
	return f
}

// SpreadsheetFormat decodes .xlsx workbooks.
func SpreadsheetFormat() Format {
	return Format{
		Name:       "xlsx",
		Extensions: []string{".xlsx"},
		Decode:     DecodeXLSX,
		Requires:   "spreadsheet decoder (excelize)",
	}
}

// JSONFormat decodes JSON tables.
func JSONFormat() Format {
	return Format{
		Name:        "json",
		Extensions:  []string{".json"},
		Decode:      DecodeJSON,
		Requires:    "JSON decoder",
		AcceptsText: true,
	}
}

// CSVFormat decodes comma-separated text.
func CSVFormat() Format {
	return Format{
		Name:        "csv",
		Extensions:  []string{".csv"},
		Decode:      DecodeCSV,
		Requires:    "delimited text decoder",
		AcceptsText: true,
	}
}

// Registry is the immutable format dispatch table. Build it once at
// startup and share it; lookups never mutate it.
type Registry struct {
	formats []Format
	byExt   map[string]int
}

// NewRegistry builds a registry from formats in priority order.
// Panics if two formats claim the same extension or name.
func NewRegistry(formats ...Format) *Registry {
	r := &Registry{
		formats: make([]Format, 0, len(formats)),
		byExt:   make(map[string]int),
	}

	names := make(map[string]bool, len(formats))
	for _, f := range formats {
		if names[f.Name] {
			panic(fmt.Sprintf("format already registered: %s", f.Name))
		}
		names[f.Name] = true

		f.Extensions = append([]string(nil), f.Extensions...)
		for i, ext := range f.Extensions {
			ext = strings.ToLower(ext)
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			if _, exists := r.byExt[ext]; exists {
				panic(fmt.Sprintf("extension already registered: %s", ext))
			}
			f.Extensions[i] = ext
			r.byExt[ext] = len(r.formats)
		}
		r.formats = append(r.formats, f)
	}
	return r
}

// DefaultRegistry holds the spreadsheet, JSON and CSV formats.
func DefaultRegistry() *Registry {
	return NewRegistry(SpreadsheetFormat(), JSONFormat(), CSVFormat())
}

// Formats returns the registered formats in priority order.
func (r *Registry) Formats() []Format {
	return append([]Format(nil), r.formats...)
}

// Extensions returns every registered extension in priority order.
func (r *Registry) Extensions() []string {
	var exts []string
	for _, f := range r.formats {
		exts = append(exts, f.Extensions...)
	}
	return exts
}

// ForFile picks the format for a file name by its extension, ignoring case.
func (r *Registry) ForFile(name string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(name))

	idx, ok := r.byExt[ext]
	if !ok {
		return Format{}, &ParseError{
			Kind:   KindUnsupportedFormat,
			Detail: fmt.Sprintf("file %q has unsupported extension %q", name, ext),
			Action: "Upload a " + joinChoices(r.Extensions()) + " file",
		}
	}

	f := r.formats[idx]
	if !f.Available() {
		return Format{}, newError(KindMissingCapability,
			fmt.Sprintf("%s files need the %s, which is not installed", f.Name, f.Requires), nil)
	}
	return f, nil
}

// TextFormats returns the formats tried for free text, in order.
func (r *Registry) TextFormats() []Format {
	var out []Format
	for _, f := range r.formats {
		if f.AcceptsText {
			out = append(out, f)
		}
	}
	return out
}

// joinChoices renders ".a", ".a or .b", ".a, .b, or .c".
func joinChoices(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " or " + items[1]
	}
	return strings.Join(items[:len(items)-1], ", ") + ", or " + items[len(items)-1]
}
