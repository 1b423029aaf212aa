package core

import (
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
)

// DecodeJSON parses a JSON table. Accepted shapes:
//
//	[{"a":1,"b":"x"}, ...]     row objects; keys are unioned in first-seen order
//	[[1,"x"], ...]             row arrays; columns are named "0", "1", ...
//	[1, 2, 3]                  a single column named "0"
//	{"a":[1,2],"b":[3,4]}      column arrays of equal length; scalars are repeated
//	{"a":{"r1":1},"b":{...}}   columns keyed by row; row keys are unioned
//
// Only null is absent. Input that is not JSON at all fails with an error
// wrapping errNotThisFormat so the text resolver can try another format.
func DecodeJSON(data []byte) (*Table, error) {
	if !gjson.ValidBytes(data) {
		return nil, newError(KindDecodeFailure, "malformed JSON", errNotThisFormat)
	}

	root := gjson.ParseBytes(data)
	switch {
	case root.IsArray():
		return decodeJSONRows(root)
	case root.IsObject():
		return decodeJSONColumns(root)
	}
	return nil, newError(KindDecodeFailure, fmt.Sprintf("JSON %s is not a table", root.Type), nil)
}

// jsonCell converts a JSON value into a Cell. Strings keep their text,
// numbers their literal, and nested values their raw JSON.
func jsonCell(v gjson.Result) Cell {
	switch v.Type {
	case gjson.Null:
		return AbsentCell()
	case gjson.String:
		return TextCell(v.Str)
	case gjson.True:
		return TextCell("true")
	case gjson.False:
		return TextCell("false")
	}
	return TextCell(v.Raw)
}

type jsonShape int

const (
	shapeNone jsonShape = iota
	shapeObject
	shapeArray
	shapeScalar
)

func shapeOf(v gjson.Result) jsonShape {
	switch {
	case v.Type == gjson.Null:
		return shapeNone
	case v.IsObject():
		return shapeObject
	case v.IsArray():
		return shapeArray
	}
	return shapeScalar
}

// columnIndex assigns column positions to names in first-seen order.
type columnIndex struct {
	names []string
	pos   map[string]int
}

func newColumnIndex() *columnIndex {
	return &columnIndex{pos: make(map[string]int)}
}

func (ci *columnIndex) add(name string) int {
	if p, ok := ci.pos[name]; ok {
		return p
	}
	p := len(ci.names)
	ci.pos[name] = p
	ci.names = append(ci.names, name)
	return p
}

func decodeJSONRows(root gjson.Result) (*Table, error) {
	elems := root.Array()

	shape := shapeNone
	for _, e := range elems {
		s := shapeOf(e)
		if s == shapeNone {
			continue
		}
		if shape != shapeNone && s != shape {
			return nil, newError(KindDecodeFailure, "JSON rows mix objects, arrays and scalars", nil)
		}
		shape = s
	}

	switch shape {
	case shapeObject:
		cols := newColumnIndex()
		rows := make([][]Cell, 0, len(elems))
		for _, e := range elems {
			row := []Cell{}
			e.ForEach(func(key, value gjson.Result) bool {
				p := cols.add(key.Str)
				for len(row) <= p {
					row = append(row, AbsentCell())
				}
				row[p] = jsonCell(value)
				return true
			})
			rows = append(rows, row)
		}
		return NewTable(cols.names, rows)

	case shapeArray:
		rows := make([][]Cell, 0, len(elems))
		width := 0
		for _, e := range elems {
			var row []Cell
			for _, v := range e.Array() {
				row = append(row, jsonCell(v))
			}
			if len(row) > width {
				width = len(row)
			}
			rows = append(rows, row)
		}
		return NewTable(positionalNames(width), rows)

	case shapeScalar:
		rows := make([][]Cell, len(elems))
		for i, e := range elems {
			rows[i] = []Cell{jsonCell(e)}
		}
		return NewTable(positionalNames(1), rows)
	}

	// Empty array, or nothing but nulls
	return nil, newError(KindNoData, "JSON array has no rows", nil)
}

func decodeJSONColumns(root gjson.Result) (*Table, error) {
	var (
		names  []string
		values []gjson.Result
		shape  = shapeNone
		length = -1
	)

	var shapeErr error
	root.ForEach(func(key, value gjson.Result) bool {
		names = append(names, key.Str)
		values = append(values, value)

		s := shapeOf(value)
		switch s {
		case shapeObject:
			if shape == shapeArray {
				shapeErr = newError(KindDecodeFailure, "JSON columns mix arrays and objects", nil)
				return false
			}
			shape = shapeObject
		case shapeArray:
			if shape == shapeObject {
				shapeErr = newError(KindDecodeFailure, "JSON columns mix arrays and objects", nil)
				return false
			}
			shape = shapeArray
			n := len(value.Array())
			if length >= 0 && n != length {
				shapeErr = newError(KindDecodeFailure,
					fmt.Sprintf("column %q has %d values, expected %d", key.Str, n, length), nil)
				return false
			}
			length = n
		}
		return true
	})
	if shapeErr != nil {
		return nil, shapeErr
	}

	if len(names) == 0 {
		return nil, newError(KindNoData, "JSON object has no columns", nil)
	}

	switch shape {
	case shapeArray:
		rows := make([][]Cell, length)
		for r := range rows {
			rows[r] = make([]Cell, len(names))
		}
		for c, v := range values {
			if shapeOf(v) == shapeArray {
				for r, item := range v.Array() {
					rows[r][c] = jsonCell(item)
				}
				continue
			}
			cell := jsonCell(v)
			for r := range rows {
				rows[r][c] = cell
			}
		}
		return NewTable(names, rows)

	case shapeObject:
		index := newColumnIndex()
		var rows [][]Cell
		for c, v := range values {
			if shapeOf(v) != shapeObject {
				if shapeOf(v) == shapeScalar {
					return nil, newError(KindDecodeFailure,
						fmt.Sprintf("column %q is a scalar among row-keyed columns", names[c]), nil)
				}
				continue
			}
			v.ForEach(func(key, item gjson.Result) bool {
				r := index.add(key.Str)
				for len(rows) <= r {
					rows = append(rows, make([]Cell, len(names)))
				}
				rows[r][c] = jsonCell(item)
				return true
			})
		}
		return NewTable(names, rows)
	}

	return nil, newError(KindDecodeFailure, "JSON object of scalar values has no rows", nil)
}

func positionalNames(width int) []string {
	names := make([]string, width)
	for i := range names {
		names[i] = strconv.Itoa(i)
	}
	return names
}
