package dfrs

import (
	"math"
	"strconv"
	"strings"
)

// Column is a named, homogeneously typed sequence of cells. Exactly one of
// the typed backing slices is in use, selected by dtype. valid marks which
// cells hold a value; a nil mask means every cell is valid.
type Column struct {
	name   string
	dtype  DType
	length int

	ints   []int64
	floats []float64
	strs   []string
	bools  []bool
	valid  []bool
}

// DefaultNullValues are the raw strings treated as Null by NewColumn.
var DefaultNullValues = []string{""}

// ============================================================================
// Creation
// ============================================================================

// NewColumn builds a column from raw Go values, inferring its kind.
// Strings are parsed (see NewColumnFromStrings); nil is Null.
func NewColumn(name string, raw []any) (*Column, error) {
	return newColumnWithNulls(name, raw, DefaultNullValues)
}

func newColumnWithNulls(name string, raw []any, nullValues []string) (*Column, error) {
	cells, err := classifyAll(name, raw, nullValues)
	if err != nil {
		return nil, err
	}
	return buildColumn(name, inferKind(cells), cells), nil
}

// NewColumnFromStrings builds a column from text fields, the way the CSV
// loader does. Fields equal to one of nullValues (after trimming) are Null.
func NewColumnFromStrings(name string, fields []string, nullValues []string) *Column {
	cells := make([]cell, len(fields))
	for i, f := range fields {
		// strings never fail classification
		cells[i], _ = classify(f, nullValues)
	}
	return buildColumn(name, inferKind(cells), cells)
}

// NewColumnInt64 creates an Int64 column from a Go slice. The slice is copied.
func NewColumnInt64(name string, data []int64) *Column {
	return &Column{name: name, dtype: Int64, length: len(data), ints: append([]int64{}, data...)}
}

// NewColumnFloat64 creates a Float64 column from a Go slice.
func NewColumnFloat64(name string, data []float64) *Column {
	return &Column{name: name, dtype: Float64, length: len(data), floats: append([]float64{}, data...)}
}

// NewColumnString creates a String column from a Go slice.
func NewColumnString(name string, data []string) *Column {
	return &Column{name: name, dtype: String, length: len(data), strs: append([]string{}, data...)}
}

// NewColumnBool creates a Bool column from a Go slice.
func NewColumnBool(name string, data []bool) *Column {
	return &Column{name: name, dtype: Bool, length: len(data), bools: append([]bool{}, data...)}
}

// NewColumnInt64WithNulls creates an Int64 column with null values.
// The valid slice indicates which values are valid (true) vs null (false).
func NewColumnInt64WithNulls(name string, data []int64, valid []bool) (*Column, error) {
	if len(valid) != len(data) {
		return nil, &ShapeMismatchError{Name: name, Want: len(data), Got: len(valid)}
	}
	c := NewColumnInt64(name, data)
	c.valid = compactValidity(valid)
	return c, nil
}

// NewColumnFloat64WithNulls creates a Float64 column with null values.
func NewColumnFloat64WithNulls(name string, data []float64, valid []bool) (*Column, error) {
	if len(valid) != len(data) {
		return nil, &ShapeMismatchError{Name: name, Want: len(data), Got: len(valid)}
	}
	c := NewColumnFloat64(name, data)
	c.valid = compactValidity(valid)
	return c, nil
}

// NewColumnStringWithNulls creates a String column with null values.
func NewColumnStringWithNulls(name string, data []string, valid []bool) (*Column, error) {
	if len(valid) != len(data) {
		return nil, &ShapeMismatchError{Name: name, Want: len(data), Got: len(valid)}
	}
	c := NewColumnString(name, data)
	c.valid = compactValidity(valid)
	return c, nil
}

// NewColumnBoolWithNulls creates a Bool column with null values.
func NewColumnBoolWithNulls(name string, data []bool, valid []bool) (*Column, error) {
	if len(valid) != len(data) {
		return nil, &ShapeMismatchError{Name: name, Want: len(data), Got: len(valid)}
	}
	c := NewColumnBool(name, data)
	c.valid = compactValidity(valid)
	return c, nil
}

// NewNullColumn creates a column of n Null cells.
func NewNullColumn(name string, n int) *Column {
	return &Column{name: name, dtype: Null, length: n, valid: make([]bool, n)}
}

// compactValidity copies a validity mask, returning nil when nothing is null.
func compactValidity(valid []bool) []bool {
	for _, ok := range valid {
		if !ok {
			return append([]bool{}, valid...)
		}
	}
	return nil
}

// ============================================================================
// Access
// ============================================================================

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// DType returns the declared element kind.
func (c *Column) DType() DType { return c.dtype }

// Len returns the number of cells.
func (c *Column) Len() int { return c.length }

// IsValid reports whether cell i holds a value.
func (c *Column) IsValid(i int) bool {
	if c.valid == nil {
		return true
	}
	return c.valid[i]
}

// NullCount returns the number of Null cells.
func (c *Column) NullCount() int {
	if c.valid == nil {
		return 0
	}
	n := 0
	for _, ok := range c.valid {
		if !ok {
			n++
		}
	}
	return n
}

// Get returns the value at position i.
func (c *Column) Get(i int) (Value, error) {
	if i < 0 || i >= c.length {
		return NullValue(), &IndexOutOfRangeError{Index: i, Len: c.length}
	}
	return c.at(i), nil
}

// at returns cell i without bounds checking.
func (c *Column) at(i int) Value {
	if !c.IsValid(i) {
		return NullValue()
	}
	switch c.dtype {
	case Int64:
		return Int(c.ints[i])
	case Float64:
		return Float(c.floats[i])
	case String:
		return Str(c.strs[i])
	case Bool:
		return Boolean(c.bools[i])
	default:
		return NullValue()
	}
}

// Set replaces cell i. Null fits every kind; any other value must match
// the column kind exactly, Int64 is not widened into a Float64 column.
func (c *Column) Set(i int, v Value) error {
	if i < 0 || i >= c.length {
		return &IndexOutOfRangeError{Index: i, Len: c.length}
	}
	if v.IsNull() {
		if c.valid == nil {
			c.valid = make([]bool, c.length)
			for j := range c.valid {
				c.valid[j] = true
			}
		}
		c.valid[i] = false
		return nil
	}
	if v.Kind() != c.dtype {
		return &TypeMismatchError{Column: c.name, Want: c.dtype, Got: v.Kind()}
	}

	switch c.dtype {
	case Int64:
		c.ints[i], _ = v.Int64()
	case Float64:
		c.floats[i], _ = v.Float64()
	case String:
		c.strs[i], _ = v.Text()
	case Bool:
		c.bools[i], _ = v.Bool()
	}
	if c.valid != nil {
		c.valid[i] = true
	}
	return nil
}

// Values returns the cells as plain Go values; Null cells are nil.
func (c *Column) Values() []any {
	out := make([]any, c.length)
	for i := range out {
		out[i] = c.at(i).Interface()
	}
	return out
}

// ============================================================================
// Copies
// ============================================================================

// Clone returns a deep copy of the column.
func (c *Column) Clone() *Column {
	return c.slice(0, c.length)
}

// Rename returns a deep copy of the column under a new name.
func (c *Column) Rename(name string) *Column {
	out := c.Clone()
	out.name = name
	return out
}

// slice copies cells [start, end) into a new column.
func (c *Column) slice(start, end int) *Column {
	out := &Column{name: c.name, dtype: c.dtype, length: end - start}
	switch c.dtype {
	case Int64:
		out.ints = append([]int64{}, c.ints[start:end]...)
	case Float64:
		out.floats = append([]float64{}, c.floats[start:end]...)
	case String:
		out.strs = append([]string{}, c.strs[start:end]...)
	case Bool:
		out.bools = append([]bool{}, c.bools[start:end]...)
	}
	if c.valid != nil {
		out.valid = append([]bool{}, c.valid[start:end]...)
		if c.dtype != Null {
			out.valid = compactValidity(out.valid)
		}
	}
	return out
}

// Cast converts the column to another kind. This is the only way a column
// widens: Int64 to Float64, anything to String, numeric text to numbers,
// integral floats to Int64. Cells that cannot be converted fail the cast.
func (c *Column) Cast(dtype DType) (*Column, error) {
	if dtype == c.dtype {
		return c.Clone(), nil
	}
	if c.dtype == Null {
		out := NewNullColumn(c.name, c.length)
		out.dtype = dtype
		switch dtype {
		case Int64:
			out.ints = make([]int64, c.length)
		case Float64:
			out.floats = make([]float64, c.length)
		case String:
			out.strs = make([]string, c.length)
		case Bool:
			out.bools = make([]bool, c.length)
		}
		return out, nil
	}

	cells := make([]cell, c.length)
	for i := range cells {
		v := c.at(i)
		if v.IsNull() {
			cells[i] = cell{v: v}
			continue
		}
		converted, ok := convertValue(v, dtype)
		if !ok {
			return nil, &TypeMismatchError{Column: c.name, Want: dtype, Got: c.dtype}
		}
		cells[i] = cell{v: converted, text: converted.format("", -1)}
	}
	out := buildColumn(c.name, dtype, cells)
	return out, nil
}

func convertValue(v Value, dtype DType) (Value, bool) {
	switch dtype {
	case String:
		return Str(v.format("", -1)), true
	case Float64:
		if f, ok := v.Float64(); ok {
			return Float(f), true
		}
		if s, ok := v.Text(); ok {
			f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			return Float(f), err == nil
		}
		if b, ok := v.Bool(); ok {
			return Float(boolToFloat(b)), true
		}
	case Int64:
		switch v.Kind() {
		case Int64:
			return v, true
		case Float64:
			f, _ := v.Float64()
			if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
				return v, false
			}
			return Int(int64(f)), true
		case String:
			s, _ := v.Text()
			i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
			return Int(i), err == nil
		case Bool:
			b, _ := v.Bool()
			return Int(int64(boolToFloat(b))), true
		}
	case Bool:
		if s, ok := v.Text(); ok {
			b, err := strconv.ParseBool(strings.TrimSpace(s))
			return Boolean(b), err == nil
		}
		if f, ok := v.Float64(); ok {
			return Boolean(f != 0), true
		}
	}
	return v, false
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
