package core

import (
	"errors"
	"reflect"
	"testing"
)

func TestDecodeJSON_Shapes(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCols  []string
		wantRows  int
		wantKinds []ColumnKind
	}{
		{
			name:      "row objects",
			input:     `[{"name":"a","score":1},{"name":"b","score":2}]`,
			wantCols:  []string{"name", "score"},
			wantRows:  2,
			wantKinds: []ColumnKind{ColumnText, ColumnNumeric},
		},
		{
			name:      "row objects with uneven keys",
			input:     `[{"a":1},{"b":"x","a":2}]`,
			wantCols:  []string{"a", "b"},
			wantRows:  2,
			wantKinds: []ColumnKind{ColumnNumeric, ColumnText},
		},
		{
			name:      "row arrays",
			input:     `[[1,"x"],[2,"y"],[3]]`,
			wantCols:  []string{"0", "1"},
			wantRows:  3,
			wantKinds: []ColumnKind{ColumnNumeric, ColumnText},
		},
		{
			name:      "scalars",
			input:     `[1, 2.5, null]`,
			wantCols:  []string{"0"},
			wantRows:  3,
			wantKinds: []ColumnKind{ColumnNumeric},
		},
		{
			name:      "column arrays",
			input:     `{"x":[1,2],"y":[3,4]}`,
			wantCols:  []string{"x", "y"},
			wantRows:  2,
			wantKinds: []ColumnKind{ColumnNumeric, ColumnNumeric},
		},
		{
			name:      "column arrays with broadcast scalar",
			input:     `{"x":[1,2],"unit":"kg"}`,
			wantCols:  []string{"x", "unit"},
			wantRows:  2,
			wantKinds: []ColumnKind{ColumnNumeric, ColumnText},
		},
		{
			name:      "columns keyed by row",
			input:     `{"x":{"r1":1,"r2":2},"y":{"r2":4,"r3":6}}`,
			wantCols:  []string{"x", "y"},
			wantRows:  3,
			wantKinds: []ColumnKind{ColumnNumeric, ColumnNumeric},
		},
		{
			name:      "booleans are text",
			input:     `[{"ok":true},{"ok":false}]`,
			wantCols:  []string{"ok"},
			wantRows:  2,
			wantKinds: []ColumnKind{ColumnText},
		},
		{
			name:      "numeric strings are numeric",
			input:     `[{"v":"1.5"},{"v":"2"}]`,
			wantCols:  []string{"v"},
			wantRows:  2,
			wantKinds: []ColumnKind{ColumnNumeric},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := DecodeJSON([]byte(tt.input))
			if err != nil {
				t.Fatalf("DecodeJSON: %v", err)
			}
			if got := table.ColumnNames(); !reflect.DeepEqual(got, tt.wantCols) {
				t.Errorf("ColumnNames() = %v, want %v", got, tt.wantCols)
			}
			if table.Rows() != tt.wantRows {
				t.Errorf("Rows() = %d, want %d", table.Rows(), tt.wantRows)
			}
			for i, want := range tt.wantKinds {
				if got := table.Columns[i].Kind; got != want {
					t.Errorf("column %q kind = %s, want %s", table.Columns[i].Name, got, want)
				}
			}
		})
	}
}

func TestDecodeJSON_NullIsAbsent(t *testing.T) {
	table, err := DecodeJSON([]byte(`[{"a":1,"b":"x"},{"a":null,"b":""}]`))
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}

	a, _ := table.Column("a")
	if !a.Absent(1) {
		t.Error("null should be absent")
	}
	b, _ := table.Column("b")
	if b.Absent(1) {
		t.Error("empty JSON string should be present")
	}
}

func TestDecodeJSON_Errors(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantKind    ErrorKind
		wantNotThis bool
	}{
		{name: "not json", input: "a,b\n1,2", wantKind: KindDecodeFailure, wantNotThis: true},
		{name: "truncated", input: `{"x":[1,2`, wantKind: KindDecodeFailure, wantNotThis: true},
		{name: "scalar root", input: `42`, wantKind: KindDecodeFailure},
		{name: "string root", input: `"hello"`, wantKind: KindDecodeFailure},
		{name: "mixed rows", input: `[{"a":1},[1]]`, wantKind: KindDecodeFailure},
		{name: "uneven column arrays", input: `{"x":[1,2],"y":[3]}`, wantKind: KindDecodeFailure},
		{name: "arrays and objects", input: `{"x":[1],"y":{"r":1}}`, wantKind: KindDecodeFailure},
		{name: "object of scalars", input: `{"x":1,"y":2}`, wantKind: KindDecodeFailure},
		{name: "empty array", input: `[]`, wantKind: KindNoData},
		{name: "only nulls", input: `[null,null]`, wantKind: KindNoData},
		{name: "empty object", input: `{}`, wantKind: KindNoData},
		{name: "empty column arrays", input: `{"x":[],"y":[]}`, wantKind: KindNoData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeJSON([]byte(tt.input))
			if got := KindOf(err); got != tt.wantKind {
				t.Errorf("kind = %s, want %s (err: %v)", got, tt.wantKind, err)
			}
			if got := errors.Is(err, errNotThisFormat); got != tt.wantNotThis {
				t.Errorf("errors.Is(errNotThisFormat) = %v, want %v", got, tt.wantNotThis)
			}
		})
	}
}
