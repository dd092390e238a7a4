package dfrs

import (
	"strconv"
	"strings"
)

// cell is one raw input after classification. text is what the cell
// becomes if the column falls back to String.
type cell struct {
	v    Value
	text string
}

// classify turns a raw Go value into a typed cell. Strings are parsed:
// null markers become Null, integer and float literals become numbers and
// a token wrapped in double quotes is always text, with the quotes removed.
func classify(raw any, nullValues []string) (cell, error) {
	s, ok := raw.(string)
	if !ok {
		v, err := ValueOf(raw)
		if err != nil {
			return cell{}, err
		}
		return cell{v: v, text: v.format("", -1)}, nil
	}

	trimmed := strings.TrimSpace(s)
	if isNull(trimmed, nullValues) {
		return cell{v: NullValue()}, nil
	}
	if unquoted, quoted := unquote(trimmed); quoted {
		return cell{v: Str(unquoted), text: unquoted}, nil
	}
	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return cell{v: Int(i), text: s}, nil
	}
	if looksLikeFloat(trimmed) {
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return cell{v: Float(f), text: s}, nil
		}
	}
	return cell{v: Str(s), text: s}, nil
}

// unquote strips one pair of surrounding double quotes and collapses
// doubled quotes inside them.
func unquote(s string) (string, bool) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s, false
	}
	return strings.ReplaceAll(s[1:len(s)-1], `""`, `"`), true
}

// looksLikeFloat rejects spellings strconv.ParseFloat accepts but that are
// not decimal literals ("inf", "NaN", hex floats).
func looksLikeFloat(s string) bool {
	if s == "" {
		return false
	}
	digits := false
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
			digits = true
		case c == '.' || c == '-' || c == '+' || c == 'e' || c == 'E':
		default:
			return false
		}
	}
	return digits
}

func isNull(val string, nullValues []string) bool {
	for _, nv := range nullValues {
		if val == nv {
			return true
		}
	}
	return false
}

// inferKind picks the single kind every non-null cell fits into.
// Priority: String > Float64 > Int64; Bool only when every cell is Bool.
// Empty and all-null input fall back to String.
func inferKind(cells []cell) DType {
	if len(cells) == 0 {
		return String
	}

	hasInt := false
	hasFloat := false
	hasBool := false
	hasString := false
	nonNull := 0

	for _, c := range cells {
		switch c.v.Kind() {
		case Int64:
			hasInt = true
		case Float64:
			hasFloat = true
		case Bool:
			hasBool = true
		case String:
			hasString = true
		default:
			continue
		}
		nonNull++
	}

	switch {
	case nonNull == 0:
		return String
	case hasString:
		return String
	case hasBool && (hasInt || hasFloat):
		return String
	case hasBool:
		return Bool
	case hasFloat:
		return Float64
	default:
		return Int64
	}
}

// classifyAll classifies every raw value, tagging errors with the column.
func classifyAll(name string, raw []any, nullValues []string) ([]cell, error) {
	cells := make([]cell, len(raw))
	for i, r := range raw {
		c, err := classify(r, nullValues)
		if err != nil {
			if tie, ok := err.(*TypeInferenceError); ok {
				tie.Column = name
			}
			return nil, err
		}
		cells[i] = c
	}
	return cells, nil
}

// buildColumn materializes classified cells as a column of kind dtype.
// dtype must be the result of inferKind over the same cells.
func buildColumn(name string, dtype DType, cells []cell) *Column {
	n := len(cells)
	col := &Column{name: name, dtype: dtype, length: n}

	var valid []bool
	markNull := func(i int) {
		if valid == nil {
			valid = make([]bool, n)
			for j := range valid {
				valid[j] = true
			}
		}
		valid[i] = false
	}

	switch dtype {
	case Int64:
		col.ints = make([]int64, n)
		for i, c := range cells {
			if c.v.IsNull() {
				markNull(i)
				continue
			}
			col.ints[i], _ = c.v.Int64()
		}
	case Float64:
		col.floats = make([]float64, n)
		for i, c := range cells {
			if c.v.IsNull() {
				markNull(i)
				continue
			}
			col.floats[i], _ = c.v.Float64()
		}
	case Bool:
		col.bools = make([]bool, n)
		for i, c := range cells {
			if c.v.IsNull() {
				markNull(i)
				continue
			}
			col.bools[i], _ = c.v.Bool()
		}
	case String:
		col.strs = make([]string, n)
		for i, c := range cells {
			if c.v.IsNull() {
				markNull(i)
				continue
			}
			col.strs[i] = c.text
		}
	case Null:
		valid = make([]bool, n)
	}

	col.valid = valid
	return col
}
